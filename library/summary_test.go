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
package library_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvfmp/library"
)

var _ = Describe("FormatSummary", func() {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	It("reports an empty library as never updated", func() {
		stats := []*library.TableStats{
			{Table: "stock_names"},
			{Table: "price_data"},
		}

		summary := library.FormatSummary("postgres://localhost/market", stats, now)
		Expect(summary).To(ContainSubstring("Database: postgres://localhost/market"))
		Expect(summary).To(ContainSubstring("Last Updated: Never"))
		Expect(summary).To(ContainSubstring("| price_data | 0 | 0 | - |"))
	})

	It("formats counts and coverage", func() {
		stats := []*library.TableStats{
			{Table: "stock_names", NumRows: 5321, NumSymbols: 5321},
			{
				Table:       "fin_ratio",
				NumRows:     204512,
				NumSymbols:  5120,
				FirstDate:   time.Date(2014, 3, 31, 0, 0, 0, 0, time.UTC),
				LastDate:    time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
				LastUpdated: now.Add(-2 * time.Hour),
			},
		}

		summary := library.FormatSummary("db", stats, now)
		Expect(summary).To(ContainSubstring("| stock_names | 5,321 | 5,321 | - |"))
		Expect(summary).To(ContainSubstring("| fin_ratio | 204,512 | 5,120 | Mar 2014 - Dec 2023 |"))
		Expect(summary).To(ContainSubstring("hours ago"))
	})
})
