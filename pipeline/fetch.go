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
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"

	"github.com/penny-vault/pvfmp/data"
	"github.com/penny-vault/pvfmp/provider"
)

// FetchSummary describes the outcome of fetching one data type for the
// whole universe
type FetchSummary struct {
	DataType   *data.DataType
	StartTime  time.Time
	EndTime    time.Time
	NumSymbols int
	NumRows    int

	// Skipped lists, in universe order, the symbols whose fetch failed
	Skipped []string
}

func (summary *FetchSummary) NumSkipped() int {
	return len(summary.Skipped)
}

func (summary *FetchSummary) Duration() time.Duration {
	return summary.EndTime.Sub(summary.StartTime)
}

// FetchAll calls fetch for every symbol using at most workers concurrent
// requests and concatenates the results in symbol order. A failed symbol
// is logged and left out of the table; it never cancels the others.
func FetchAll[T any](ctx context.Context, dataType *data.DataType, symbols []string, workers int, fetch provider.FetchFunc[T]) (*data.Table[T], *FetchSummary) {
	logger := zerolog.Ctx(ctx)

	if workers <= 0 {
		workers = 1
	}

	summary := &FetchSummary{
		DataType:   dataType,
		StartTime:  time.Now(),
		NumSymbols: len(symbols),
		Skipped:    make([]string, 0),
	}

	slots := make([][]T, len(symbols))
	errs := make([]error, len(symbols))

	workerPool := pool.New().WithMaxGoroutines(workers)
	for idx, symbol := range symbols {
		workerPool.Go(func() {
			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}
			slots[idx], errs[idx] = fetch(ctx, symbol)
		})
	}
	workerPool.Wait()

	table := data.NewTable[T](dataType)
	for idx, symbol := range symbols {
		if errs[idx] != nil {
			logger.Warn().Err(errs[idx]).Str("Symbol", symbol).Str("DataType", dataType.Name).Msg("skipping symbol")
			summary.Skipped = append(summary.Skipped, symbol)
			continue
		}
		table.Append(slots[idx]...)
	}

	summary.EndTime = time.Now()
	summary.NumRows = table.Len()

	logger.Info().
		Str("DataType", dataType.Name).
		Int("NumSymbols", summary.NumSymbols).
		Int("NumSkipped", summary.NumSkipped()).
		Int("NumRows", summary.NumRows).
		Dur("Elapsed", summary.Duration()).
		Msg("fetch complete")

	return table, summary
}
