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
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/penny-vault/pvfmp/config"
	"github.com/penny-vault/pvfmp/data"
	"github.com/penny-vault/pvfmp/snapshot"
)

// Source provides the universe and per-symbol data sets
type Source interface {
	Universe(ctx context.Context) ([]*data.Instrument, error)
	Ratios(ctx context.Context, symbol string) ([]*data.RatioRecord, error)
	Growth(ctx context.Context, symbol string) ([]*data.GrowthRecord, error)
	Prices(ctx context.Context, symbol string) ([]*data.PriceRecord, error)
}

// Store creates the relational schema and bulk loads the combined tables
type Store interface {
	Migrate(ctx context.Context) error
	Load(ctx context.Context, names []*data.Instrument, prices *data.Table[*data.PriceRecord],
		ratios *data.Table[*data.RatioRecord], growth *data.Table[*data.GrowthRecord]) error
}

// Uploader copies a finished snapshot file to remote storage
type Uploader interface {
	Upload(ctx context.Context, fn string) error
}

// Deps are the collaborators of a run. Store and Uploader are optional; a
// nil Store skips the database stage.
type Deps struct {
	Source   Source
	Store    Store
	Uploader Uploader
}

type RunSummary struct {
	RunID      uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
	NumSymbols int
	Fetches    []*FetchSummary
	Snapshots  []string
	NumUploads int
	Loaded     bool
}

func (summary *RunSummary) Duration() time.Duration {
	return summary.EndTime.Sub(summary.StartTime)
}

// Run executes one full pipeline pass: resolve the universe, fetch ratios,
// growth and prices for every symbol, write the parquet snapshots and load
// everything into the database. Fetch failures for individual symbols are
// skipped; every other failure aborts the run.
func Run(ctx context.Context, conf *config.Config, deps Deps) (*RunSummary, error) {
	summary := &RunSummary{
		RunID:     uuid.New(),
		StartTime: time.Now(),
		Fetches:   make([]*FetchSummary, 0, 3),
		Snapshots: make([]string, 0, 3),
	}

	logger := zerolog.Ctx(ctx).With().Str("RunID", summary.RunID.String()).Logger()
	ctx = logger.WithContext(ctx)

	err := run(ctx, conf, deps, summary)
	summary.EndTime = time.Now()

	if err != nil {
		logger.Error().Err(err).Dur("Elapsed", summary.Duration()).Msg("run failed")
		return summary, err
	}

	logger.Info().
		Int("NumSymbols", summary.NumSymbols).
		Int("NumSnapshots", len(summary.Snapshots)).
		Bool("Loaded", summary.Loaded).
		Dur("Elapsed", summary.Duration()).
		Msg("run finished")

	return summary, nil
}

func run(ctx context.Context, conf *config.Config, deps Deps, summary *RunSummary) error {
	logger := zerolog.Ctx(ctx)

	universe, err := deps.Source.Universe(ctx)
	if err != nil {
		return fmt.Errorf("resolve universe: %w", err)
	}

	symbols := data.Symbols(universe)
	summary.NumSymbols = len(symbols)
	workers := conf.FMP.Workers

	ratios, fetchSummary := FetchAll[*data.RatioRecord](ctx, data.DataTypes[data.RatiosKey], symbols, workers, deps.Source.Ratios)
	summary.Fetches = append(summary.Fetches, fetchSummary)

	growth, fetchSummary := FetchAll[*data.GrowthRecord](ctx, data.DataTypes[data.GrowthKey], symbols, workers, deps.Source.Growth)
	summary.Fetches = append(summary.Fetches, fetchSummary)

	prices, fetchSummary := FetchAll[*data.PriceRecord](ctx, data.DataTypes[data.PricesKey], symbols, workers, deps.Source.Prices)
	summary.Fetches = append(summary.Fetches, fetchSummary)

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := persist(ctx, conf.Data.Dir, ratios, deps.Uploader, summary); err != nil {
		return err
	}

	if err := persist(ctx, conf.Data.Dir, growth, deps.Uploader, summary); err != nil {
		return err
	}

	if err := persist(ctx, conf.Data.Dir, prices, deps.Uploader, summary); err != nil {
		return err
	}

	if deps.Store == nil {
		logger.Info().Msg("no database configured, skipping load")
		return nil
	}

	if err := deps.Store.Migrate(ctx); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	if err := deps.Store.Load(ctx, universe, prices, ratios, growth); err != nil {
		return fmt.Errorf("load tables: %w", err)
	}

	summary.Loaded = true
	return nil
}

// persist writes the snapshot of tbl and, when an uploader is configured,
// copies it to remote storage. Upload failures are logged but not fatal.
func persist[T any](ctx context.Context, dir string, tbl *data.Table[*T], uploader Uploader, summary *RunSummary) error {
	if err := snapshot.Write(dir, tbl.DataType, tbl.Rows); err != nil {
		return fmt.Errorf("write %s snapshot: %w", tbl.DataType.Name, err)
	}

	fn := tbl.DataType.SnapshotPath(dir)
	summary.Snapshots = append(summary.Snapshots, fn)

	if uploader == nil {
		return nil
	}

	if err := uploader.Upload(ctx, fn); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("FileName", fn).Msg("snapshot upload failed")
		return nil
	}

	summary.NumUploads++
	return nil
}
