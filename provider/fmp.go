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
package provider

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/penny-vault/pvfmp/config"
	"github.com/penny-vault/pvfmp/data"
)

var (
	ErrInvalidStatusCode = errors.New("invalid status code received")
	ErrMalformedResponse = errors.New("malformed response body")
	ErrEmptyUniverse     = errors.New("no instruments matched the configured exchanges and instrument type")
)

const (
	universeEndpoint = "/available-traded/list"
	ratiosEndpoint   = "/ratios/{symbol}"
	growthEndpoint   = "/financial-growth/{symbol}"
	pricesEndpoint   = "/historical-price-full/{symbol}"
)

type FMP struct {
	client         *resty.Client
	limiter        *rate.Limiter
	quarters       int
	exchanges      []string
	instrumentType string
}

// NewFMP returns a Financial Modeling Prep client. Every request made by
// the client, no matter which goroutine issues it, shares one rate limiter.
func NewFMP(conf *config.FMPConfig) *FMP {
	rateLimit := conf.RateLimit
	if rateLimit <= 0 {
		rateLimit = config.DefaultRateLimit
	}

	baseURL := conf.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}

	quarters := conf.Quarters
	if quarters <= 0 {
		quarters = config.DefaultQuarters
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetQueryParam("apikey", conf.APIKey).
		SetTimeout(60 * time.Second)

	return &FMP{
		client:         client,
		limiter:        rate.NewLimiter(rate.Limit(float64(rateLimit)/float64(61)), 1),
		quarters:       quarters,
		exchanges:      conf.Exchanges,
		instrumentType: conf.InstrumentType,
	}
}

func (fmp *FMP) Name() string {
	return "fmp"
}

func (fmp *FMP) Description() string {
	return `Financial Modeling Prep provides end-of-day prices, company fundamentals and derived financial metrics for stocks listed on US and international exchanges.`
}

func (fmp *FMP) Datasets() map[string]Dataset {
	return map[string]Dataset{
		"Stock Universe": {
			Name:        "Stock Universe",
			Description: "Tradable instruments filtered by exchange and instrument type.",
			DataType:    data.DataTypes[data.NamesKey],
			Endpoint:    universeEndpoint,
		},
		"Financial Ratios": {
			Name:        "Financial Ratios",
			Description: "Quarterly valuation, profitability, liquidity and leverage ratios.",
			DataType:    data.DataTypes[data.RatiosKey],
			Endpoint:    ratiosEndpoint,
		},
		"Financial Growth": {
			Name:        "Financial Growth",
			Description: "Quarter over quarter and multi-year growth of income, cash flow and per-share metrics.",
			DataType:    data.DataTypes[data.GrowthKey],
			Endpoint:    growthEndpoint,
		},
		"Monthly Prices": {
			Name:        "Monthly Prices",
			Description: "Daily price history reduced to the last trading day of each month.",
			DataType:    data.DataTypes[data.PricesKey],
			Endpoint:    pricesEndpoint,
		},
	}
}

// Quarters is the number of most recent quarterly periods requested per symbol
func (fmp *FMP) Quarters() int {
	return fmp.quarters
}

// Universe lists every traded instrument and keeps those on one of the
// configured exchanges with the configured instrument type
func (fmp *FMP) Universe(ctx context.Context) ([]*data.Instrument, error) {
	logger := zerolog.Ctx(ctx)

	body, err := fmp.get(ctx, universeEndpoint, "", nil)
	if err != nil {
		logger.Error().Err(err).Msg("could not download list of traded instruments")
		return nil, err
	}

	listed := make([]*data.Instrument, 0, 80000)
	if err := json.Unmarshal(body, &listed); err != nil {
		logger.Error().Err(err).Msg("could not decode list of traded instruments")
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	universe := data.FilterUniverse(listed, fmp.exchanges, fmp.instrumentType)

	logger.Info().
		Int("NumListed", len(listed)).
		Int("NumUniverse", len(universe)).
		Strs("Exchanges", fmp.exchanges).
		Str("InstrumentType", fmp.instrumentType).
		Msg("resolved stock universe")

	if len(universe) == 0 {
		return nil, ErrEmptyUniverse
	}

	return universe, nil
}

// Ratios returns up to Quarters() of the most recent quarterly ratio rows
// for symbol
func (fmp *FMP) Ratios(ctx context.Context, symbol string) ([]*data.RatioRecord, error) {
	return fetchQuarterly[data.RatioRecord](ctx, fmp, ratiosEndpoint, symbol)
}

// Growth returns up to Quarters() of the most recent quarterly growth rows
// for symbol
func (fmp *FMP) Growth(ctx context.Context, symbol string) ([]*data.GrowthRecord, error) {
	return fetchQuarterly[data.GrowthRecord](ctx, fmp, growthEndpoint, symbol)
}

// Prices downloads the full daily history of symbol and reduces it to one
// row per calendar month
func (fmp *FMP) Prices(ctx context.Context, symbol string) ([]*data.PriceRecord, error) {
	logger := zerolog.Ctx(ctx).With().Str("Symbol", symbol).Logger()

	body, err := fmp.get(ctx, pricesEndpoint, symbol, nil)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, ErrMalformedResponse
	}

	// FMP answers {} for symbols it has no history for
	historical := gjson.GetBytes(body, "historical")
	if !historical.Exists() {
		logger.Debug().Msg("no price history returned")
		return []*data.PriceRecord{}, nil
	}

	if !historical.IsArray() {
		return nil, fmt.Errorf("%w: historical is not an array", ErrMalformedResponse)
	}

	ticker := gjson.GetBytes(body, "symbol").String()
	if ticker == "" {
		ticker = symbol
	}

	daily := make([]*data.PriceRecord, 0, len(historical.Array()))
	if err := json.Unmarshal([]byte(historical.Raw), &daily); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	valid := make([]*data.PriceRecord, 0, len(daily))
	for _, bar := range daily {
		if bar == nil {
			continue
		}

		bar.SetTicker(ticker)
		if err := bar.ParseDate(); err != nil {
			logger.Warn().Err(err).Msg("dropping price bar with unparseable date")
			continue
		}

		valid = append(valid, bar)
	}

	return data.ResampleMonthlyLast(valid), nil
}

// fetchQuarterly requests the quarterly statement-derived endpoint for
// symbol, tags each row with the symbol when FMP leaves it blank and keeps
// at most fmp.quarters rows with a valid date
func fetchQuarterly[T any, PT interface {
	*T
	data.Record
}](ctx context.Context, fmp *FMP, endpoint, symbol string) ([]PT, error) {
	logger := zerolog.Ctx(ctx).With().Str("Symbol", symbol).Str("Endpoint", endpoint).Logger()

	params := map[string]string{
		"period": "quarter",
		"limit":  strconv.Itoa(fmp.quarters),
	}

	body, err := fmp.get(ctx, endpoint, symbol, params)
	if err != nil {
		return nil, err
	}

	rows := make([]PT, 0, fmp.quarters)
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	valid := make([]PT, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}

		if row.Ticker() == "" {
			row.SetTicker(symbol)
		}

		if err := row.ParseDate(); err != nil {
			logger.Warn().Err(err).Msg("dropping row with unparseable date")
			continue
		}

		valid = append(valid, row)
		if len(valid) == fmp.quarters {
			break
		}
	}

	return valid, nil
}

func (fmp *FMP) get(ctx context.Context, endpoint, symbol string, params map[string]string) ([]byte, error) {
	if err := fmp.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req := fmp.client.R().SetContext(ctx)
	if symbol != "" {
		req.SetPathParam("symbol", symbol)
	}

	if params != nil {
		req.SetQueryParams(params)
	}

	resp, err := req.Get(endpoint)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() >= 300 {
		zerolog.Ctx(ctx).Warn().
			Int("StatusCode", resp.StatusCode()).
			Str("Symbol", symbol).
			Str("Endpoint", endpoint).
			Msg("fmp returned an invalid HTTP response")
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatusCode, resp.StatusCode())
	}

	return resp.Body(), nil
}
