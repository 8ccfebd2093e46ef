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
package cmd

import (
	"errors"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvfmp/config"
	"github.com/penny-vault/pvfmp/data"
	"github.com/penny-vault/pvfmp/pipeline"
	"github.com/penny-vault/pvfmp/provider"
)

var _ = Describe("Run summary", func() {
	var summary *pipeline.RunSummary

	BeforeEach(func() {
		start := time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC)
		summary = &pipeline.RunSummary{
			RunID:      uuid.MustParse("5bf66975-d4c7-4bf5-bcc8-b8d8a82ea278"),
			StartTime:  start,
			EndTime:    start.Add(95 * time.Minute),
			NumSymbols: 5321,
			Fetches: []*pipeline.FetchSummary{
				{
					DataType:  data.DataTypes[data.RatiosKey],
					StartTime: start,
					EndTime:   start.Add(30 * time.Minute),
					NumRows:   204512,
					Skipped:   []string{"BADX", "BADY"},
				},
			},
			Snapshots: []string{"data/stock_fin_ratios.parquet.gzip"},
			Loaded:    true,
		}
	})

	It("lists counts, snapshots and load status", func() {
		report := formatRunSummary(summary)
		Expect(report).To(ContainSubstring("Run: 5bf66975-d4c7-4bf5-bcc8-b8d8a82ea278"))
		Expect(report).To(ContainSubstring("Symbols: 5,321"))
		Expect(report).To(ContainSubstring("1 hour 35 minutes"))
		Expect(report).To(ContainSubstring("fin-ratios"))
		Expect(report).To(ContainSubstring("204,512 rows"))
		Expect(report).To(ContainSubstring("2 skipped"))
		Expect(report).To(ContainSubstring("data/stock_fin_ratios.parquet.gzip"))
		Expect(report).To(ContainSubstring("Database loaded: yes"))
	})

	It("marks failed runs", func() {
		summary.Loaded = false
		report := formatRunSummary(summary)
		Expect(report).To(ContainSubstring("Database loaded: no"))
		Expect(renderRunSummary(report, errors.New("boom"))).To(ContainSubstring("RUN FAILED"))
		Expect(renderRunSummary(report, nil)).To(ContainSubstring("RUN COMPLETE"))
	})
})

var _ = Describe("describeProvider", func() {
	It("lists every dataset with its destination", func() {
		conf := &config.Config{
			FMP: config.FMPConfig{
				Exchanges:      []string{"NASDAQ", "NYSE"},
				InstrumentType: "stock",
				Quarters:       40,
				Workers:        4,
			},
			Data: config.DataConfig{Dir: "snapshots"},
		}

		doc := describeProvider(provider.NewFMP(&conf.FMP), conf)
		Expect(doc).To(HavePrefix("# fmp\n"))
		Expect(doc).To(ContainSubstring("Exchanges: NASDAQ, NYSE"))
		Expect(doc).To(ContainSubstring("- Financial Ratios (fin_ratio, snapshots/stock_fin_ratios.parquet.gzip)"))
		Expect(doc).To(ContainSubstring("- Stock Universe (stock_names)"))
	})
})
