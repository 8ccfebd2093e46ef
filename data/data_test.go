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
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvfmp/data"
)

var _ = Describe("FilterUniverse", func() {
	var universe []*data.Instrument

	BeforeEach(func() {
		universe = []*data.Instrument{
			{Symbol: "AAPL", Name: "Apple Inc.", ExchangeShortName: "NASDAQ", Type: "stock"},
			{Symbol: "SPY", Name: "SPDR S&P 500 ETF Trust", ExchangeShortName: "AMEX", Type: "etf"},
			{Symbol: "IBM", Name: "International Business Machines", ExchangeShortName: "NYSE", Type: "stock"},
			{Symbol: "BRK-B", Name: "Berkshire Hathaway", ExchangeShortName: "NYSE", Type: "stock"},
			{Symbol: "SAP.DE", Name: "SAP SE", ExchangeShortName: "XETRA", Type: "stock"},
			{Symbol: "IMO", Name: "Imperial Oil", ExchangeShortName: "AMEX", Type: "stock"},
			{Symbol: "BTCUSD", Name: "Bitcoin USD", ExchangeShortName: "CRYPTO", Type: "crypto"},
			{Symbol: "OTCX", Name: "Some OTC stock", ExchangeShortName: "OTC", Type: "stock"},
			{Symbol: "AAPL", Name: "Apple Inc.", ExchangeShortName: "NASDAQ", Type: "stock"},
		}
	})

	It("keeps exactly the stocks on the target exchanges", func() {
		filtered := data.FilterUniverse(universe, []string{"NASDAQ", "NYSE", "AMEX"}, "stock")
		Expect(data.Symbols(filtered)).To(Equal([]string{"AAPL", "IBM", "BRK-B", "IMO", "AAPL"}))

		for _, instrument := range filtered {
			Expect(instrument.ExchangeShortName).To(BeElementOf("NASDAQ", "NYSE", "AMEX"))
			Expect(instrument.Type).To(Equal("stock"))
		}
	})

	It("rejects everything else", func() {
		filtered := data.FilterUniverse(universe, []string{"NASDAQ", "NYSE", "AMEX"}, "stock")
		kept := make(map[*data.Instrument]bool, len(filtered))
		for _, instrument := range filtered {
			kept[instrument] = true
		}

		for _, instrument := range universe {
			eligible := (instrument.ExchangeShortName == "NASDAQ" ||
				instrument.ExchangeShortName == "NYSE" ||
				instrument.ExchangeShortName == "AMEX") && instrument.Type == "stock"
			Expect(kept[instrument]).To(Equal(eligible), instrument.Symbol)
		}
	})

	It("honours a custom exchange set and instrument type", func() {
		filtered := data.FilterUniverse(universe, []string{"AMEX"}, "etf")
		Expect(data.Symbols(filtered)).To(Equal([]string{"SPY"}))
	})

	It("skips nil entries", func() {
		filtered := data.FilterUniverse([]*data.Instrument{nil, universe[0]}, []string{"NASDAQ"}, "stock")
		Expect(filtered).To(HaveLen(1))
	})
})

var _ = Describe("ParseDate", func() {
	It("parses FMP dates", func() {
		ratio := &data.RatioRecord{DateStr: "2023-07-01"}
		Expect(ratio.ParseDate()).To(Succeed())
		Expect(ratio.Date.Year()).To(Equal(2023))
		Expect(ratio.Date.Month().String()).To(Equal("July"))
	})

	It("rejects malformed dates", func() {
		growth := &data.GrowthRecord{DateStr: "07/01/2023"}
		err := growth.ParseDate()
		Expect(errors.Is(err, data.ErrInvalidDate)).To(BeTrue())
	})
})

var _ = Describe("Table", func() {
	It("appends rows in order", func() {
		tbl := data.NewTable[*data.RatioRecord](data.DataTypes[data.RatiosKey])
		tbl.Append(&data.RatioRecord{Symbol: "A"}, &data.RatioRecord{Symbol: "B"})
		tbl.Append(&data.RatioRecord{Symbol: "C"})

		Expect(tbl.Len()).To(Equal(3))
		Expect(tbl.Rows[0].Symbol).To(Equal("A"))
		Expect(tbl.Rows[2].Symbol).To(Equal("C"))
		Expect(tbl.DataType.Table).To(Equal("fin_ratio"))
	})
})

var _ = Describe("DataTypes", func() {
	It("has a fixed snapshot file per fetched data type", func() {
		Expect(data.DataTypes[data.RatiosKey].SnapshotPath("data")).To(Equal("data/stock_fin_ratios.parquet.gzip"))
		Expect(data.DataTypes[data.GrowthKey].SnapshotPath("data")).To(Equal("data/stock_fin_growth.parquet.gzip"))
		Expect(data.DataTypes[data.PricesKey].SnapshotPath("data")).To(Equal("data/stock_prices.parquet.gzip"))
	})
})

var _ = Describe("Columns", func() {
	It("lists db tagged fields in declaration order", func() {
		Expect(data.Columns[data.Instrument]()).To(Equal([]string{"stock_symbol", "stock_name"}))

		cols := data.Columns[*data.PriceRecord]()
		Expect(cols).To(Equal([]string{
			"stock_symbol", "date", "open", "high", "low", "close", "adj_close", "volume",
			"unadjusted_volume", "change", "change_percent", "vwap", "label", "change_over_time",
		}))
	})

	It("counts the ratio and growth metrics", func() {
		Expect(data.Columns[data.RatioRecord]()).To(HaveLen(3 + 54))
		Expect(data.Columns[data.GrowthRecord]()).To(HaveLen(3 + 34))
	})

	It("extracts values aligned with the columns", func() {
		closePrice := 12.5
		row := &data.PriceRecord{Symbol: "AAA", Close: &closePrice, Label: "x"}
		values := data.Values(row)

		Expect(values).To(HaveLen(len(data.Columns[data.PriceRecord]())))
		Expect(values[0]).To(Equal("AAA"))
		Expect(values[5]).To(Equal(&closePrice))
		Expect(values[2]).To(BeNil())
		Expect(values[12]).To(Equal("x"))
	})
})
