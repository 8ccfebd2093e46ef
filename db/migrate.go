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
package db

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate creates the stock tables in the database at databaseURL. Running
// it against an up-to-date schema is a no-op.
func Migrate(databaseURL string) error {
	migrationDir, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return err
	}

	migration, err := migrate.NewWithSourceInstance("iofs", migrationDir, driverURL(databaseURL))
	if err != nil {
		return fmt.Errorf("open migration target: %w", err)
	}

	defer func() {
		srcErr, dbErr := migration.Close()
		if srcErr != nil || dbErr != nil {
			log.Warn().AnErr("SourceError", srcErr).AnErr("DatabaseError", dbErr).Msg("closing migration failed")
		}
	}()

	err = migration.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Debug().Msg("database schema is up to date")
		return nil
	}

	if err != nil {
		return err
	}

	version, dirty, err := migration.Version()
	if err == nil {
		log.Info().Uint("Version", version).Bool("Dirty", dirty).Msg("database schema migrated")
	}

	return nil
}

// driverURL rewrites a postgres connection string to select the pgx/v5
// migrate driver
func driverURL(databaseURL string) string {
	for _, scheme := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(databaseURL, scheme) {
			return "pgx5://" + strings.TrimPrefix(databaseURL, scheme)
		}
	}
	return databaseURL
}
