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
	"sort"
)

// ResampleMonthlyLast reduces a daily price series to one row per calendar
// month: the chronologically last observation of that month. Rows must have
// Date populated. The input may be in any order; the result is ascending by
// date. Months without observations are not filled in.
func ResampleMonthlyLast(prices []*PriceRecord) []*PriceRecord {
	if len(prices) == 0 {
		return []*PriceRecord{}
	}

	sorted := make([]*PriceRecord, len(prices))
	copy(sorted, prices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	monthly := make([]*PriceRecord, 0, len(sorted)/20+1)
	for idx, price := range sorted {
		if idx+1 < len(sorted) && sameMonth(price, sorted[idx+1]) {
			continue
		}
		monthly = append(monthly, price)
	}

	return monthly
}

func sameMonth(a, b *PriceRecord) bool {
	return a.Date.Year() == b.Date.Year() && a.Date.Month() == b.Date.Month()
}
