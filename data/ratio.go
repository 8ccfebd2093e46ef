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

// RatioRecord is one quarterly financial-ratio observation for a stock. Every
// ratio is optional because FMP omits fields that it cannot compute for a
// given company and quarter.
type RatioRecord struct {
	Symbol  string    `json:"symbol" parquet:"name=stock_symbol, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY" db:"stock_symbol"`
	DateStr string    `json:"date" parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY" db:"-"`
	Date    time.Time `json:"-" db:"date"`
	Period  string    `json:"period" parquet:"name=period, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY" db:"period"`

	CurrentRatio                       *float64 `json:"currentRatio" parquet:"name=current_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"current_ratio"`
	QuickRatio                         *float64 `json:"quickRatio" parquet:"name=quick_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"quick_ratio"`
	CashRatio                          *float64 `json:"cashRatio" parquet:"name=cash_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"cash_ratio"`
	DaysOfSalesOutstanding             *float64 `json:"daysOfSalesOutstanding" parquet:"name=days_of_sales_outstanding, type=DOUBLE, repetitiontype=OPTIONAL" db:"days_of_sales_outstanding"`
	DaysOfInventoryOutstanding         *float64 `json:"daysOfInventoryOutstanding" parquet:"name=days_of_inventory_outstanding, type=DOUBLE, repetitiontype=OPTIONAL" db:"days_of_inventory_outstanding"`
	OperatingCycle                     *float64 `json:"operatingCycle" parquet:"name=operating_cycle, type=DOUBLE, repetitiontype=OPTIONAL" db:"operating_cycle"`
	DaysOfPayablesOutstanding          *float64 `json:"daysOfPayablesOutstanding" parquet:"name=days_of_payables_outstanding, type=DOUBLE, repetitiontype=OPTIONAL" db:"days_of_payables_outstanding"`
	CashConversionCycle                *float64 `json:"cashConversionCycle" parquet:"name=cash_conversion_cycle, type=DOUBLE, repetitiontype=OPTIONAL" db:"cash_conversion_cycle"`
	GrossProfitMargin                  *float64 `json:"grossProfitMargin" parquet:"name=gross_profit_margin, type=DOUBLE, repetitiontype=OPTIONAL" db:"gross_profit_margin"`
	OperatingProfitMargin              *float64 `json:"operatingProfitMargin" parquet:"name=operating_profit_margin, type=DOUBLE, repetitiontype=OPTIONAL" db:"operating_profit_margin"`
	PretaxProfitMargin                 *float64 `json:"pretaxProfitMargin" parquet:"name=pretax_profit_margin, type=DOUBLE, repetitiontype=OPTIONAL" db:"pretax_profit_margin"`
	NetProfitMargin                    *float64 `json:"netProfitMargin" parquet:"name=net_profit_margin, type=DOUBLE, repetitiontype=OPTIONAL" db:"net_profit_margin"`
	EffectiveTaxRate                   *float64 `json:"effectiveTaxRate" parquet:"name=effective_tax_rate, type=DOUBLE, repetitiontype=OPTIONAL" db:"effective_tax_rate"`
	ReturnOnAssets                     *float64 `json:"returnOnAssets" parquet:"name=return_on_assets, type=DOUBLE, repetitiontype=OPTIONAL" db:"return_on_assets"`
	ReturnOnEquity                     *float64 `json:"returnOnEquity" parquet:"name=return_on_equity, type=DOUBLE, repetitiontype=OPTIONAL" db:"return_on_equity"`
	ReturnOnCapitalEmployed            *float64 `json:"returnOnCapitalEmployed" parquet:"name=return_on_capital_employed, type=DOUBLE, repetitiontype=OPTIONAL" db:"return_on_capital_employed"`
	NetIncomePerEBT                    *float64 `json:"netIncomePerEBT" parquet:"name=net_income_per_ebt, type=DOUBLE, repetitiontype=OPTIONAL" db:"net_income_per_ebt"`
	EBTPerEBIT                         *float64 `json:"ebtPerEbit" parquet:"name=ebt_per_ebit, type=DOUBLE, repetitiontype=OPTIONAL" db:"ebt_per_ebit"`
	EBITPerRevenue                     *float64 `json:"ebitPerRevenue" parquet:"name=ebit_per_revenue, type=DOUBLE, repetitiontype=OPTIONAL" db:"ebit_per_revenue"`
	DebtRatio                          *float64 `json:"debtRatio" parquet:"name=debt_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"debt_ratio"`
	DebtEquityRatio                    *float64 `json:"debtEquityRatio" parquet:"name=debt_equity_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"debt_equity_ratio"`
	LongTermDebtToCapitalization       *float64 `json:"longTermDebtToCapitalization" parquet:"name=long_term_debt_to_capitalization, type=DOUBLE, repetitiontype=OPTIONAL" db:"long_term_debt_to_capitalization"`
	TotalDebtToCapitalization          *float64 `json:"totalDebtToCapitalization" parquet:"name=total_debt_to_capitalization, type=DOUBLE, repetitiontype=OPTIONAL" db:"total_debt_to_capitalization"`
	InterestCoverage                   *float64 `json:"interestCoverage" parquet:"name=interest_coverage, type=DOUBLE, repetitiontype=OPTIONAL" db:"interest_coverage"`
	CashFlowToDebtRatio                *float64 `json:"cashFlowToDebtRatio" parquet:"name=cash_flow_to_debt_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"cash_flow_to_debt_ratio"`
	CompanyEquityMultiplier            *float64 `json:"companyEquityMultiplier" parquet:"name=company_equity_multiplier, type=DOUBLE, repetitiontype=OPTIONAL" db:"company_equity_multiplier"`
	ReceivablesTurnover                *float64 `json:"receivablesTurnover" parquet:"name=receivables_turnover, type=DOUBLE, repetitiontype=OPTIONAL" db:"receivables_turnover"`
	PayablesTurnover                   *float64 `json:"payablesTurnover" parquet:"name=payables_turnover, type=DOUBLE, repetitiontype=OPTIONAL" db:"payables_turnover"`
	InventoryTurnover                  *float64 `json:"inventoryTurnover" parquet:"name=inventory_turnover, type=DOUBLE, repetitiontype=OPTIONAL" db:"inventory_turnover"`
	FixedAssetTurnover                 *float64 `json:"fixedAssetTurnover" parquet:"name=fixed_asset_turnover, type=DOUBLE, repetitiontype=OPTIONAL" db:"fixed_asset_turnover"`
	AssetTurnover                      *float64 `json:"assetTurnover" parquet:"name=asset_turnover, type=DOUBLE, repetitiontype=OPTIONAL" db:"asset_turnover"`
	OperatingCashFlowPerShare          *float64 `json:"operatingCashFlowPerShare" parquet:"name=operating_cash_flow_per_share, type=DOUBLE, repetitiontype=OPTIONAL" db:"operating_cash_flow_per_share"`
	FreeCashFlowPerShare               *float64 `json:"freeCashFlowPerShare" parquet:"name=free_cash_flow_per_share, type=DOUBLE, repetitiontype=OPTIONAL" db:"free_cash_flow_per_share"`
	CashPerShare                       *float64 `json:"cashPerShare" parquet:"name=cash_per_share, type=DOUBLE, repetitiontype=OPTIONAL" db:"cash_per_share"`
	PayoutRatio                        *float64 `json:"payoutRatio" parquet:"name=payout_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"payout_ratio"`
	OperatingCashFlowSalesRatio        *float64 `json:"operatingCashFlowSalesRatio" parquet:"name=operating_cash_flow_sales_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"operating_cash_flow_sales_ratio"`
	FreeCashFlowOperatingCashFlowRatio *float64 `json:"freeCashFlowOperatingCashFlowRatio" parquet:"name=free_cash_flow_operating_cash_flow_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"free_cash_flow_operating_cash_flow_ratio"`
	CashFlowCoverageRatios             *float64 `json:"cashFlowCoverageRatios" parquet:"name=cash_flow_coverage_ratios, type=DOUBLE, repetitiontype=OPTIONAL" db:"cash_flow_coverage_ratios"`
	ShortTermCoverageRatios            *float64 `json:"shortTermCoverageRatios" parquet:"name=short_term_coverage_ratios, type=DOUBLE, repetitiontype=OPTIONAL" db:"short_term_coverage_ratios"`
	CapitalExpenditureCoverageRatio    *float64 `json:"capitalExpenditureCoverageRatio" parquet:"name=capital_expenditure_coverage_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"capital_expenditure_coverage_ratio"`
	DividendPaidAndCapexCoverageRatio  *float64 `json:"dividendPaidAndCapexCoverageRatio" parquet:"name=dividend_paid_and_capex_coverage_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"dividend_paid_and_capex_coverage_ratio"`
	DividendPayoutRatio                *float64 `json:"dividendPayoutRatio" parquet:"name=dividend_payout_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"dividend_payout_ratio"`
	PriceBookValueRatio                *float64 `json:"priceBookValueRatio" parquet:"name=price_book_value_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"price_book_value_ratio"`
	PriceToBookRatio                   *float64 `json:"priceToBookRatio" parquet:"name=price_to_book_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"price_to_book_ratio"`
	PriceToSalesRatio                  *float64 `json:"priceToSalesRatio" parquet:"name=price_to_sales_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"price_to_sales_ratio"`
	PriceEarningsRatio                 *float64 `json:"priceEarningsRatio" parquet:"name=price_earnings_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"price_earnings_ratio"`
	PriceToFreeCashFlowsRatio          *float64 `json:"priceToFreeCashFlowsRatio" parquet:"name=price_to_free_cash_flows_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"price_to_free_cash_flows_ratio"`
	PriceToOperatingCashFlowsRatio     *float64 `json:"priceToOperatingCashFlowsRatio" parquet:"name=price_to_operating_cash_flows_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"price_to_operating_cash_flows_ratio"`
	PriceCashFlowRatio                 *float64 `json:"priceCashFlowRatio" parquet:"name=price_cash_flow_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"price_cash_flow_ratio"`
	PriceEarningsToGrowthRatio         *float64 `json:"priceEarningsToGrowthRatio" parquet:"name=price_earnings_to_growth_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"price_earnings_to_growth_ratio"`
	PriceSalesRatio                    *float64 `json:"priceSalesRatio" parquet:"name=price_sales_ratio, type=DOUBLE, repetitiontype=OPTIONAL" db:"price_sales_ratio"`
	DividendYield                      *float64 `json:"dividendYield" parquet:"name=dividend_yield, type=DOUBLE, repetitiontype=OPTIONAL" db:"dividend_yield"`
	EnterpriseValueMultiple            *float64 `json:"enterpriseValueMultiple" parquet:"name=enterprise_value_multiple, type=DOUBLE, repetitiontype=OPTIONAL" db:"enterprise_value_multiple"`
	PriceFairValue                     *float64 `json:"priceFairValue" parquet:"name=price_fair_value, type=DOUBLE, repetitiontype=OPTIONAL" db:"price_fair_value"`
}

// ParseDate fills Date from the serialized DateStr
func (ratio *RatioRecord) ParseDate() error {
	date, err := time.Parse(DateLayout, ratio.DateStr)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, ratio.DateStr)
	}

	ratio.Date = date
	return nil
}

func (ratio *RatioRecord) Ticker() string {
	return ratio.Symbol
}

func (ratio *RatioRecord) SetTicker(symbol string) {
	ratio.Symbol = symbol
}
