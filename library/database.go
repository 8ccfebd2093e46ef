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
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/penny-vault/pvfmp/data"
	"github.com/penny-vault/pvfmp/db"
)

// Library is the PostgreSQL database the pipeline loads into
type Library struct {
	DBUrl string

	// Replace empties every stock table before a load so that a full run
	// can be repeated against the same database
	Replace bool

	Pool *pgxpool.Pool
}

// TableStats describes the contents of one stock table
type TableStats struct {
	Table       string    `db:"table_name"`
	NumRows     int64     `db:"num_rows"`
	NumSymbols  int64     `db:"num_symbols"`
	FirstDate   time.Time `db:"first_date"`
	LastDate    time.Time `db:"last_date"`
	LastUpdated time.Time `db:"last_updated"`
}

func New(dbURL string) *Library {
	return &Library{
		DBUrl: dbURL,
	}
}

// Connect to the database configured for the library
func (myLibrary *Library) Connect(ctx context.Context) error {
	if myLibrary.Pool != nil {
		return nil
	}

	pool, err := pgxpool.New(ctx, myLibrary.DBUrl)
	if err != nil {
		return err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return err
	}

	myLibrary.Pool = pool
	return nil
}

// Close the database pool
func (myLibrary *Library) Close() {
	if myLibrary.Pool != nil {
		myLibrary.Pool.Close()
		myLibrary.Pool = nil
	}
}

// Migrate creates the stock tables if they do not already exist
func (myLibrary *Library) Migrate(ctx context.Context) error {
	zerolog.Ctx(ctx).Debug().Msg("applying database migrations")
	return db.Migrate(myLibrary.DBUrl)
}

// Names returns every stock in the names table ordered by symbol
func (myLibrary *Library) Names(ctx context.Context) ([]*data.Instrument, error) {
	names := make([]*data.Instrument, 0)
	err := pgxscan.Select(ctx, myLibrary.Pool, &names,
		`SELECT stock_symbol, coalesce(stock_name, '') AS stock_name FROM stock_names ORDER BY stock_symbol`)
	return names, err
}

// Stats returns row counts and date coverage of every stock table
func (myLibrary *Library) Stats(ctx context.Context) ([]*TableStats, error) {
	stats := make([]*TableStats, 0, 4)
	err := pgxscan.Select(ctx, myLibrary.Pool, &stats, `
SELECT 'stock_names' AS table_name, count(*) AS num_rows, count(*) AS num_symbols,
	'0001-01-01'::timestamptz AS first_date, '0001-01-01'::timestamptz AS last_date,
	'0001-01-01'::timestamptz AS last_updated
FROM stock_names
UNION ALL
SELECT 'price_data', count(*), count(DISTINCT stock_symbol),
	coalesce(min(date), '0001-01-01')::timestamptz, coalesce(max(date), '0001-01-01')::timestamptz,
	coalesce(max(updated_on), '0001-01-01'::timestamptz)
FROM price_data
UNION ALL
SELECT 'fin_ratio', count(*), count(DISTINCT stock_symbol),
	coalesce(min(date), '0001-01-01')::timestamptz, coalesce(max(date), '0001-01-01')::timestamptz,
	coalesce(max(updated_on), '0001-01-01'::timestamptz)
FROM fin_ratio
UNION ALL
SELECT 'fin_growth', count(*), count(DISTINCT stock_symbol),
	coalesce(min(date), '0001-01-01')::timestamptz, coalesce(max(date), '0001-01-01')::timestamptz,
	coalesce(max(updated_on), '0001-01-01'::timestamptz)
FROM fin_growth`)
	return stats, err
}
