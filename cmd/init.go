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
package cmd

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/jackc/pgx/v5"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/penny-vault/pvfmp/db"
	"github.com/penny-vault/pvfmp/healthcheck"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Gather FMP and database configuration and setup schema",
	Run: func(cmd *cobra.Command, args []string) {
		conf := loadConfig()

		workers := strconv.Itoa(conf.FMP.Workers)
		rateLimit := strconv.Itoa(conf.FMP.RateLimit)
		monitored := conf.Healthchecks.ID != ""

		validateInt := func(val string) error {
			_, err := strconv.Atoi(val)
			return err
		}

		form := huh.NewForm(
			// Financial Modeling Prep access
			huh.NewGroup(
				huh.NewInput().
					Title("Enter your Financial Modeling Prep API key:").
					Password(true).
					Value(&conf.FMP.APIKey),

				huh.NewInput().
					Title("What is the maximum number of requests per minute?").
					Value(&rateLimit).
					Validate(validateInt),

				huh.NewInput().
					Title("How many symbols should be downloaded concurrently?").
					Value(&workers).
					Validate(validateInt),
			),

			// Get details about the database
			huh.NewGroup(
				huh.NewInput().
					Title("Provide the DSN for connecting to your PostgreSQL database (postgres://[user[:password]@][netloc][:port][/dbname][?param1=value1&...])").
					Value(&conf.DB.URL).
					Validate(func(dsn string) error {
						_, err := pgx.ParseConfig(dsn)
						return err
					}),

				huh.NewInput().
					Title("Where should parquet snapshots be written?").
					Value(&conf.Data.Dir),
			),

			// Monitoring
			huh.NewGroup(
				huh.NewConfirm().
					Title("Monitor runs with healthchecks.io?").
					Value(&monitored),
			),
		)

		err := form.Run()
		if err != nil {
			log.Fatal().Err(err).Msg("error gathering settings")
		}

		conf.FMP.Workers, _ = strconv.Atoi(workers)
		conf.FMP.RateLimit, _ = strconv.Atoi(rateLimit)

		if monitored && conf.Healthchecks.ID == "" {
			keyForm := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Enter your healthchecks.io API key:").
						Password(true).
						Value(&conf.Healthchecks.APIKey),
				),
			)

			if err := keyForm.Run(); err != nil {
				log.Fatal().Err(err).Msg("error gathering healthchecks settings")
			}

			checkID, err := healthcheck.New(conf.Healthchecks.APIKey).Create("pvfmp import", []string{"pvfmp"}, "0 6 * * *")
			if err != nil {
				log.Fatal().Err(err).Msg("could not create health check")
			}

			conf.Healthchecks.ID = checkID
			log.Info().Str("CheckID", checkID).Msg("created health check")
		}

		if !monitored {
			conf.Healthchecks.ID = ""
		}

		log.Info().Msg("creating database tables")

		// run migration
		err = db.Migrate(conf.DB.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("error running database migration")
		}

		log.Info().Msg("database tables created")

		// save settings to config file
		configFN := cfgFile
		if configFN == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				log.Fatal().Err(err).Msg("could not determine user home directory")
			}
			configFN = filepath.Join(home, ".pvfmp.toml")
		}

		log.Info().Str("ConfigFile", configFN).Msg("Saving settings to config file")
		configData, err := toml.Marshal(conf)
		if err != nil {
			log.Fatal().Err(err).Msg("could not marshal configuration data")
		}

		err = os.WriteFile(configFN, configData, 0600)
		if err != nil {
			log.Fatal().Err(err).Str("FileName", configFN).Msg("could not save configuration to file")
		}

		log.Info().Msg("pvfmp has been initialized, start an import with 'pvfmp run'")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
