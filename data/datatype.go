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
	"errors"
	"path/filepath"
)

const (
	// DateLayout is the date format used by FMP and in parquet snapshots
	DateLayout = "2006-01-02"
)

var (
	ErrInvalidDate = errors.New("invalid date")
)

// DataType describes one kind of data the pipeline produces: the database
// table it is loaded into and the parquet snapshot it is written to.
type DataType struct {
	Name         string
	Description  string
	Table        string
	SnapshotFile string
}

const (
	NamesKey  = "stock-names"
	PricesKey = "stock-prices"
	RatiosKey = "fin-ratios"
	GrowthKey = "fin-growth"
)

var DataTypes = map[string]*DataType{
	NamesKey: {
		Name:        NamesKey,
		Description: "Ticker symbol and company name of every stock in the universe",
		Table:       "stock_names",
	},
	PricesKey: {
		Name:         PricesKey,
		Description:  "Monthly price history (last trading day of each month)",
		Table:        "price_data",
		SnapshotFile: "stock_prices.parquet.gzip",
	},
	RatiosKey: {
		Name:         RatiosKey,
		Description:  "Quarterly financial ratios",
		Table:        "fin_ratio",
		SnapshotFile: "stock_fin_ratios.parquet.gzip",
	},
	GrowthKey: {
		Name:         GrowthKey,
		Description:  "Quarterly financial growth metrics",
		Table:        "fin_growth",
		SnapshotFile: "stock_fin_growth.parquet.gzip",
	},
}

// SnapshotPath returns the location of the data type's parquet snapshot
// inside dir
func (dt *DataType) SnapshotPath(dir string) string {
	return filepath.Join(dir, dt.SnapshotFile)
}

// Record is implemented by every per-symbol row type the pipeline fetches
type Record interface {
	ParseDate() error
	Ticker() string
	SetTicker(string)
}
