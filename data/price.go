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
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// PriceRecord is one month of price history for a stock. It is the last
// daily bar FMP reported in that calendar month.
type PriceRecord struct {
	Symbol           string    `json:"symbol" parquet:"name=stock_symbol, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY" db:"stock_symbol"`
	DateStr          string    `json:"date" parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY" db:"-"`
	Date             time.Time `json:"-" db:"date"`
	Open             *float64  `json:"open" parquet:"name=open, type=DOUBLE, repetitiontype=OPTIONAL" db:"open"`
	High             *float64  `json:"high" parquet:"name=high, type=DOUBLE, repetitiontype=OPTIONAL" db:"high"`
	Low              *float64  `json:"low" parquet:"name=low, type=DOUBLE, repetitiontype=OPTIONAL" db:"low"`
	Close            *float64  `json:"close" parquet:"name=close, type=DOUBLE, repetitiontype=OPTIONAL" db:"close"`
	AdjClose         *float64  `json:"adjClose" parquet:"name=adj_close, type=DOUBLE, repetitiontype=OPTIONAL" db:"adj_close"`
	Volume           *int64    `json:"-" parquet:"name=volume, type=INT64, repetitiontype=OPTIONAL" db:"volume"`
	UnadjustedVolume *int64    `json:"-" parquet:"name=unadjusted_volume, type=INT64, repetitiontype=OPTIONAL" db:"unadjusted_volume"`
	Change           *float64  `json:"change" parquet:"name=change, type=DOUBLE, repetitiontype=OPTIONAL" db:"change"`
	ChangePercent    *float64  `json:"changePercent" parquet:"name=change_percent, type=DOUBLE, repetitiontype=OPTIONAL" db:"change_percent"`
	VWAP             *float64  `json:"vwap" parquet:"name=vwap, type=DOUBLE, repetitiontype=OPTIONAL" db:"vwap"`
	Label            string    `json:"label" parquet:"name=label, type=BYTE_ARRAY, convertedtype=UTF8" db:"label"`
	ChangeOverTime   *float64  `json:"changeOverTime" parquet:"name=change_over_time, type=DOUBLE, repetitiontype=OPTIONAL" db:"change_over_time"`
}

// UnmarshalJSON decodes an FMP daily bar. FMP sometimes encodes share
// volumes as floats (68488301.0 or 6.8488301E7); integral values are kept
// and anything else is stored as NULL.
func (price *PriceRecord) UnmarshalJSON(b []byte) error {
	type Alias PriceRecord
	bar := struct {
		*Alias
		Volume           *float64 `json:"volume"`
		UnadjustedVolume *float64 `json:"unadjustedVolume"`
	}{Alias: (*Alias)(price)}

	if err := json.Unmarshal(b, &bar); err != nil {
		return err
	}

	price.Volume = volumeValue(price, "Volume", bar.Volume)
	price.UnadjustedVolume = volumeValue(price, "UnadjustedVolume", bar.UnadjustedVolume)
	return nil
}

// volumeValue converts a decoded share count to an integer. Fractional or
// out of range values are logged and become nil.
func volumeValue(price *PriceRecord, field string, val *float64) *int64 {
	if val == nil {
		return nil
	}

	v := *val
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
		log.Warn().Str("Symbol", price.Symbol).Str("Date", price.DateStr).Str("Field", field).Float64("Value", v).Msg("volume is not a whole number; storing NULL")
		return nil
	}

	count := int64(v)
	return &count
}

func (price *PriceRecord) ParseDate() error {
	date, err := time.Parse(DateLayout, price.DateStr)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, price.DateStr)
	}

	price.Date = date
	return nil
}

func (price *PriceRecord) Ticker() string {
	return price.Symbol
}

func (price *PriceRecord) SetTicker(symbol string) {
	price.Symbol = symbol
}
