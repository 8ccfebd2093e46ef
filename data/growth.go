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
	"time"
)

// GrowthRecord is one quarterly financial-growth observation for a stock.
type GrowthRecord struct {
	Symbol  string    `json:"symbol" parquet:"name=stock_symbol, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY" db:"stock_symbol"`
	DateStr string    `json:"date" parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY" db:"-"`
	Date    time.Time `json:"-" db:"date"`
	Period  string    `json:"period" parquet:"name=period, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY" db:"period"`

	RevenueGrowth                          *float64 `json:"revenueGrowth" parquet:"name=revenue_growth, type=DOUBLE, repetitiontype=OPTIONAL" db:"revenue_growth"`
	GrossProfitGrowth                      *float64 `json:"grossProfitGrowth" parquet:"name=gross_profit_growth, type=DOUBLE, repetitiontype=OPTIONAL" db:"gross_profit_growth"`
	EBITGrowth                             *float64 `json:"ebitgrowth" parquet:"name=ebit_growth, type=DOUBLE, repetitiontype=OPTIONAL" db:"ebit_growth"`
	OperatingIncomeGrowth                  *float64 `json:"operatingIncomeGrowth" parquet:"name=operating_income_growth, type=DOUBLE, repetitiontype=OPTIONAL" db:"operating_income_growth"`
	NetIncomeGrowth                        *float64 `json:"netIncomeGrowth" parquet:"name=net_income_growth, type=DOUBLE, repetitiontype=OPTIONAL" db:"net_income_growth"`
	EPSGrowth                              *float64 `json:"epsgrowth" parquet:"name=eps_growth, type=DOUBLE, repetitiontype=OPTIONAL" db:"eps_growth"`
	EPSDilutedGrowth                       *float64 `json:"epsdilutedGrowth" parquet:"name=eps_diluted_growth, type=DOUBLE, repetitiontype=OPTIONAL" db:"eps_diluted_growth"`
	WeightedAverageSharesGrowth            *float64 `json:"weightedAverageSharesGrowth" parquet:"name=weighted_average_shares_growth, type=DOUBLE, repetitiontype=OPTIONAL" db:"weighted_average_shares_growth"`
	WeightedAverageSharesDilutedGrowth     *float64 `json:"weightedAverageSharesDilutedGrowth" parquet:"name=weighted_average_shares_diluted_growth, type=DOUBLE, repetitiontype=OPTIONAL" db:"weighted_average_shares_diluted_growth"`
	DividendsPerShareGrowth                *float64 `json:"dividendsperShareGrowth" parquet:"name=dividends_per_share_growth, type=DOUBLE, repetitiontype=OPTIONAL" db:"dividends_per_share_growth"`
	OperatingCashFlowGrowth                *float64 `json:"operatingCashFlowGrowth" parquet:"name=operating_cash_flow_growth, type=DOUBLE, repetitiontype=OPTIONAL" db:"operating_cash_flow_growth"`
	FreeCashFlowGrowth                     *float64 `json:"freeCashFlowGrowth" parquet:"name=free_cash_flow_growth, type=DOUBLE, repetitiontype=OPTIONAL" db:"free_cash_flow_growth"`
	TenYRevenueGrowthPerShare              *float64 `json:"tenYRevenueGrowthPerShare" parquet:"name=ten_y_revenue_growth_per_share, type=DOUBLE, repetitiontype=OPTIONAL" db:"ten_y_revenue_growth_per_share"`
	FiveYRevenueGrowthPerShare             *float64 `json:"fiveYRevenueGrowthPerShare" parquet:"name=five_y_revenue_growth_per_share, type=DOUBLE, repetitiontype=OPTIONAL" db:"five_y_revenue_growth_per_share"`
	ThreeYRevenueGrowthPerShare            *float64 `json:"threeYRevenueGrowthPerShare" parquet:"name=three_y_revenue_growth_per_share, type=DOUBLE, repetitiontype=OPTIONAL" db:"three_y_revenue_growth_per_share"`
	TenYOperatingCFGrowthPerShare          *float64 `json:"tenYOperatingCFGrowthPerShare" parquet:"name=ten_y_operating_cf_growth_per_share, type=DOUBLE, repetitiontype=OPTIONAL" db:"ten_y_operating_cf_growth_per_share"`
	FiveYOperatingCFGrowthPerShare         *float64 `json:"fiveYOperatingCFGrowthPerShare" parquet:"name=five_y_operating_cf_growth_per_share, type=DOUBLE, repetitiontype=OPTIONAL" db:"five_y_operating_cf_growth_per_share"`
	ThreeYOperatingCFGrowthPerShare        *float64 `json:"threeYOperatingCFGrowthPerShare" parquet:"name=three_y_operating_cf_growth_per_share, type=DOUBLE, repetitiontype=OPTIONAL" db:"three_y_operating_cf_growth_per_share"`
	TenYNetIncomeGrowthPerShare            *float64 `json:"tenYNetIncomeGrowthPerShare" parquet:"name=ten_y_net_income_growth_per_share, type=DOUBLE, repetitiontype=OPTIONAL" db:"ten_y_net_income_growth_per_share"`
	FiveYNetIncomeGrowthPerShare           *float64 `json:"fiveYNetIncomeGrowthPerShare" parquet:"name=five_y_net_income_growth_per_share, type=DOUBLE, repetitiontype=OPTIONAL" db:"five_y_net_income_growth_per_share"`
	ThreeYNetIncomeGrowthPerShare          *float64 `json:"threeYNetIncomeGrowthPerShare" parquet:"name=three_y_net_income_growth_per_share, type=DOUBLE, repetitiontype=OPTIONAL" db:"three_y_net_income_growth_per_share"`
	TenYShareholdersEquityGrowthPerShare   *float64 `json:"tenYShareholdersEquityGrowthPerShare" parquet:"name=ten_y_shareholders_equity_growth_per_share, type=DOUBLE, repetitiontype=OPTIONAL" db:"ten_y_shareholders_equity_growth_per_share"`
	FiveYShareholdersEquityGrowthPerShare  *float64 `json:"fiveYShareholdersEquityGrowthPerShare" parquet:"name=five_y_shareholders_equity_growth_per_share, type=DOUBLE, repetitiontype=OPTIONAL" db:"five_y_shareholders_equity_growth_per_share"`
	ThreeYShareholdersEquityGrowthPerShare *float64 `json:"threeYShareholdersEquityGrowthPerShare" parquet:"name=three_y_shareholders_equity_growth_per_share, type=DOUBLE, repetitiontype=OPTIONAL" db:"three_y_shareholders_equity_growth_per_share"`
	TenYDividendPerShareGrowthPerShare     *float64 `json:"tenYDividendperShareGrowthPerShare" parquet:"name=ten_y_dividend_per_share_growth_per_share, type=DOUBLE, repetitiontype=OPTIONAL" db:"ten_y_dividend_per_share_growth_per_share"`
	FiveYDividendPerShareGrowthPerShare    *float64 `json:"fiveYDividendperShareGrowthPerShare" parquet:"name=five_y_dividend_per_share_growth_per_share, type=DOUBLE, repetitiontype=OPTIONAL" db:"five_y_dividend_per_share_growth_per_share"`
	ThreeYDividendPerShareGrowthPerShare   *float64 `json:"threeYDividendperShareGrowthPerShare" parquet:"name=three_y_dividend_per_share_growth_per_share, type=DOUBLE, repetitiontype=OPTIONAL" db:"three_y_dividend_per_share_growth_per_share"`
	ReceivablesGrowth                      *float64 `json:"receivablesGrowth" parquet:"name=receivables_growth, type=DOUBLE, repetitiontype=OPTIONAL" db:"receivables_growth"`
	InventoryGrowth                        *float64 `json:"inventoryGrowth" parquet:"name=inventory_growth, type=DOUBLE, repetitiontype=OPTIONAL" db:"inventory_growth"`
	AssetGrowth                            *float64 `json:"assetGrowth" parquet:"name=asset_growth, type=DOUBLE, repetitiontype=OPTIONAL" db:"asset_growth"`
	BookValuePerShareGrowth                *float64 `json:"bookValueperShareGrowth" parquet:"name=book_value_per_share_growth, type=DOUBLE, repetitiontype=OPTIONAL" db:"book_value_per_share_growth"`
	DebtGrowth                             *float64 `json:"debtGrowth" parquet:"name=debt_growth, type=DOUBLE, repetitiontype=OPTIONAL" db:"debt_growth"`
	RDExpenseGrowth                        *float64 `json:"rdexpenseGrowth" parquet:"name=rd_expense_growth, type=DOUBLE, repetitiontype=OPTIONAL" db:"rd_expense_growth"`
	SGAExpensesGrowth                      *float64 `json:"sgaexpensesGrowth" parquet:"name=sga_expenses_growth, type=DOUBLE, repetitiontype=OPTIONAL" db:"sga_expenses_growth"`
}

func (growth *GrowthRecord) ParseDate() error {
	date, err := time.Parse(DateLayout, growth.DateStr)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, growth.DateStr)
	}

	growth.Date = date
	return nil
}

func (growth *GrowthRecord) Ticker() string {
	return growth.Symbol
}

func (growth *GrowthRecord) SetTicker(symbol string) {
	growth.Symbol = symbol
}
