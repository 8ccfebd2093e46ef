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
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/penny-vault/pvfmp/data"
)

const parallelism = 4

var (
	ErrNoSnapshotFile = errors.New("data type has no snapshot file")
)

// Write stores rows as a GZIP compressed parquet file at
// dataType.SnapshotPath(dir). An existing file at that path is replaced.
func Write[T any](dir string, dataType *data.DataType, rows []*T) error {
	if dataType.SnapshotFile == "" {
		return fmt.Errorf("%w: %s", ErrNoSnapshotFile, dataType.Name)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	fn := dataType.SnapshotPath(dir)
	tmp := filepath.Join(dir, "."+dataType.SnapshotFile+".tmp")

	if err := writeFile(tmp, rows); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, fn); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	log.Info().Str("FileName", fn).Int("NumRecords", len(rows)).Msg("parquet snapshot written")
	return nil
}

// writeFile writes rows to fn. The file is closed before returning and a
// close failure is reported, so callers never rename a partial file.
func writeFile[T any](fn string, rows []*T) error {
	fh, err := local.NewLocalFileWriter(fn)
	if err != nil {
		log.Error().Err(err).Str("FileName", fn).Msg("cannot create local file")
		return err
	}

	if err := writeRows(fh, rows); err != nil {
		_ = fh.Close()
		return err
	}

	if err := fh.Close(); err != nil {
		return fmt.Errorf("close parquet file: %w", err)
	}

	return nil
}

func writeRows[T any](fh source.ParquetFile, rows []*T) error {
	pw, err := writer.NewParquetWriter(fh, new(T), parallelism)
	if err != nil {
		return fmt.Errorf("create parquet writer: %w", err)
	}

	pw.RowGroupSize = 128 * 1024 * 1024 // 128M
	pw.PageSize = 8 * 1024              // 8k
	pw.CompressionType = parquet.CompressionCodec_GZIP

	for idx, row := range rows {
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return fmt.Errorf("write parquet row %d: %w", idx, err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("finalize parquet file: %w", err)
	}

	return nil
}

// Read loads every row stored in the parquet snapshot of dataType in dir.
// Date fields are re-parsed from their serialized form.
func Read[T any, PT interface {
	*T
	data.Record
}](dir string, dataType *data.DataType) ([]PT, error) {
	if dataType.SnapshotFile == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoSnapshotFile, dataType.Name)
	}

	fn := dataType.SnapshotPath(dir)

	fr, err := local.NewLocalFileReader(fn)
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(T), parallelism)
	if err != nil {
		return nil, fmt.Errorf("create parquet reader: %w", err)
	}
	defer pr.ReadStop()

	values := make([]T, int(pr.GetNumRows()))
	if len(values) > 0 {
		if err := pr.Read(&values); err != nil {
			return nil, fmt.Errorf("read parquet rows: %w", err)
		}
	}

	rows := make([]PT, len(values))
	for idx := range values {
		row := PT(&values[idx])
		if err := row.ParseDate(); err != nil {
			return nil, err
		}
		rows[idx] = row
	}

	return rows, nil
}
