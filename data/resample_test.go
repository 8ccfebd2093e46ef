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
package data_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvfmp/data"
)

func price(dateStr string, close float64) *data.PriceRecord {
	rec := &data.PriceRecord{
		Symbol:  "AAPL",
		DateStr: dateStr,
		Close:   &close,
	}
	Expect(rec.ParseDate()).To(Succeed())
	return rec
}

var _ = Describe("ResampleMonthlyLast", func() {
	It("keeps the last observation of each month", func() {
		// FMP returns history newest first
		daily := []*data.PriceRecord{
			price("2023-02-28", 6),
			price("2023-02-15", 5),
			price("2023-02-01", 4),
			price("2023-01-31", 3),
			price("2023-01-17", 2),
			price("2023-01-03", 1),
		}

		monthly := data.ResampleMonthlyLast(daily)
		Expect(monthly).To(HaveLen(2))
		Expect(monthly[0].DateStr).To(Equal("2023-01-31"))
		Expect(*monthly[0].Close).To(Equal(3.0))
		Expect(monthly[1].DateStr).To(Equal("2023-02-28"))
		Expect(*monthly[1].Close).To(Equal(6.0))
	})

	It("uses the actual last trading day when the month ends on a weekend", func() {
		daily := []*data.PriceRecord{
			price("2023-09-29", 10),
			price("2023-09-28", 9),
			price("2023-10-02", 11),
		}

		monthly := data.ResampleMonthlyLast(daily)
		Expect(monthly).To(HaveLen(2))
		Expect(monthly[0].DateStr).To(Equal("2023-09-29"))
		Expect(monthly[1].DateStr).To(Equal("2023-10-02"))
	})

	It("does not merge the same month of different years", func() {
		daily := []*data.PriceRecord{
			price("2022-03-15", 1),
			price("2023-03-15", 2),
		}

		Expect(data.ResampleMonthlyLast(daily)).To(HaveLen(2))
	})

	It("does not fill months without observations", func() {
		daily := []*data.PriceRecord{
			price("2023-01-10", 1),
			price("2023-04-10", 2),
		}

		Expect(data.ResampleMonthlyLast(daily)).To(HaveLen(2))
	})

	It("returns an empty slice for empty input", func() {
		Expect(data.ResampleMonthlyLast(nil)).To(BeEmpty())
	})

	It("does not reorder the caller's slice", func() {
		daily := []*data.PriceRecord{
			price("2023-02-28", 2),
			price("2023-01-31", 1),
		}

		data.ResampleMonthlyLast(daily)
		Expect(daily[0].DateStr).To(Equal("2023-02-28"))
	})
})
