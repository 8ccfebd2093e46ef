// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package data

import (
	"slices"
)

// Instrument is a tradable security as listed by FMP's available-traded
// endpoint. Only Symbol and Name are persisted.
type Instrument struct {
	Symbol            string  `json:"symbol" csv:"symbol" db:"stock_symbol"`
	Name              string  `json:"name" csv:"name" db:"stock_name"`
	Price             float64 `json:"price" csv:"price" db:"-"`
	Exchange          string  `json:"exchange" csv:"exchange" db:"-"`
	ExchangeShortName string  `json:"exchangeShortName" csv:"exchange_short_name" db:"-"`
	Type              string  `json:"type" csv:"type" db:"-"`
}

// FilterUniverse keeps instruments listed on one of exchanges whose type
// equals instrumentType. Input order and duplicates are preserved.
func FilterUniverse(instruments []*Instrument, exchanges []string, instrumentType string) []*Instrument {
	filtered := make([]*Instrument, 0, len(instruments))
	for _, instrument := range instruments {
		if instrument == nil {
			continue
		}

		if !slices.Contains(exchanges, instrument.ExchangeShortName) {
			continue
		}

		if instrument.Type != instrumentType {
			continue
		}

		filtered = append(filtered, instrument)
	}

	return filtered
}

// Symbols returns the ticker of each instrument in order
func Symbols(instruments []*Instrument) []string {
	symbols := make([]string, len(instruments))
	for idx, instrument := range instruments {
		symbols[idx] = instrument.Symbol
	}
	return symbols
}
