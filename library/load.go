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
package library

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/penny-vault/pvfmp/data"
)

// numericLimit is the smallest magnitude that no longer fits NUMERIC(12, 2)
// after rounding to two decimal places
const numericLimit = 9_999_999_999.995

var (
	ErrNotConnected = errors.New("library is not connected to a database")
	ErrLoadFailed   = errors.New("bulk load failed")
)

// Load inserts the names, then prices, ratios and growth tables. Each table
// is copied in its own transaction; the first failure stops the load and
// nothing of the failing table is committed.
func (myLibrary *Library) Load(ctx context.Context, names []*data.Instrument, prices *data.Table[*data.PriceRecord],
	ratios *data.Table[*data.RatioRecord], growth *data.Table[*data.GrowthRecord]) error {
	if myLibrary.Pool == nil {
		return ErrNotConnected
	}

	if myLibrary.Replace {
		if err := myLibrary.Truncate(ctx); err != nil {
			return err
		}
	}

	if _, err := myLibrary.LoadNames(ctx, names); err != nil {
		return err
	}

	if _, err := myLibrary.LoadPrices(ctx, prices); err != nil {
		return err
	}

	if _, err := myLibrary.LoadRatios(ctx, ratios); err != nil {
		return err
	}

	if _, err := myLibrary.LoadGrowth(ctx, growth); err != nil {
		return err
	}

	return nil
}

func (myLibrary *Library) LoadNames(ctx context.Context, names []*data.Instrument) (int64, error) {
	return copyRows(ctx, myLibrary, data.DataTypes[data.NamesKey].Table, names)
}

func (myLibrary *Library) LoadPrices(ctx context.Context, prices *data.Table[*data.PriceRecord]) (int64, error) {
	return copyRows(ctx, myLibrary, prices.DataType.Table, prices.Rows)
}

func (myLibrary *Library) LoadRatios(ctx context.Context, ratios *data.Table[*data.RatioRecord]) (int64, error) {
	return copyRows(ctx, myLibrary, ratios.DataType.Table, ratios.Rows)
}

func (myLibrary *Library) LoadGrowth(ctx context.Context, growth *data.Table[*data.GrowthRecord]) (int64, error) {
	return copyRows(ctx, myLibrary, growth.DataType.Table, growth.Rows)
}

// Truncate removes every row from the stock tables
func (myLibrary *Library) Truncate(ctx context.Context) error {
	if myLibrary.Pool == nil {
		return ErrNotConnected
	}

	_, err := myLibrary.Pool.Exec(ctx, `TRUNCATE fin_growth, fin_ratio, price_data, stock_names`)
	if err != nil {
		return fmt.Errorf("truncate stock tables: %w", err)
	}

	zerolog.Ctx(ctx).Info().Msg("emptied stock tables")
	return nil
}

func copyRows[T any](ctx context.Context, myLibrary *Library, table string, rows []*T) (int64, error) {
	logger := zerolog.Ctx(ctx).With().Str("Table", table).Logger()

	if myLibrary.Pool == nil {
		return 0, ErrNotConnected
	}

	tx, err := myLibrary.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Error().Err(err).Msg("could not rollback transaction")
		}
	}()

	cols := data.Columns[T]()
	src := make([][]any, len(rows))
	for idx, row := range rows {
		values := data.Values(row)
		for pos, value := range values {
			fitted, ok := fitNumeric(value)
			if !ok {
				logger.Warn().
					Str("Column", cols[pos]).
					Interface("Row", values[0]).
					Float64("Value", *value.(*float64)).
					Msg("value out of range for NUMERIC(12, 2), storing NULL")
			}
			values[pos] = fitted
		}
		src[idx] = values
	}

	numRows, err := tx.CopyFrom(ctx, pgx.Identifier{table}, cols, pgx.CopyFromRows(src))
	if err != nil {
		logger.Error().Err(err).Int("NumRows", len(rows)).Msg("copy failed")
		return 0, fmt.Errorf("%w: %s: %w", ErrLoadFailed, table, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrLoadFailed, table, err)
	}

	logger.Info().Int64("NumRows", numRows).Msg("loaded table")
	return numRows, nil
}

// fitNumeric replaces a float that cannot be stored in a NUMERIC(12, 2)
// column with NULL. The second return value is false when a value was
// replaced.
func fitNumeric(value any) (any, bool) {
	num, ok := value.(*float64)
	if !ok || num == nil {
		return value, true
	}

	if math.IsNaN(*num) || math.IsInf(*num, 0) || math.Abs(*num) >= numericLimit {
		return (*float64)(nil), false
	}

	return value, true
}
