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
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hako/durafmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/penny-vault/pvfmp/backblaze"
	"github.com/penny-vault/pvfmp/healthcheck"
	"github.com/penny-vault/pvfmp/library"
	"github.com/penny-vault/pvfmp/pipeline"
	"github.com/penny-vault/pvfmp/provider"
)

var (
	snapshotOnly bool
	replace      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Download FMP data, write parquet snapshots and load the database",
	Long: `The run sub-command resolves the stock universe, downloads quarterly
ratios, quarterly growth metrics and monthly prices for every symbol, writes a
parquet snapshot of each data set and bulk loads everything into PostgreSQL.
Symbols that fail to download are skipped. Any other error aborts the run.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		conf := loadConfig()
		if err := conf.Validate(); err != nil {
			log.Fatal().Err(err).Msg("invalid configuration")
		}

		ctx = log.Logger.WithContext(ctx)

		deps := pipeline.Deps{
			Source: provider.NewFMP(&conf.FMP),
		}

		if uploader := backblaze.New(conf.Backblaze, "fmp/"+time.Now().Format("2006-01-02")); uploader != nil {
			deps.Uploader = uploader
		}

		if !snapshotOnly {
			dsn, err := conf.DB.DSN()
			if err != nil {
				log.Fatal().Err(err).Msg("database is not configured, use --snapshot-only to skip loading")
			}

			myLibrary := library.New(dsn)
			myLibrary.Replace = replace
			if err := myLibrary.Connect(ctx); err != nil {
				log.Fatal().Err(err).Str("Database", conf.DB.Redacted()).Msg("could not connect to database")
			}
			defer myLibrary.Close()

			deps.Store = myLibrary
		}

		var monitor *healthcheck.Client
		if conf.Healthchecks.ID != "" {
			monitor = healthcheck.New(conf.Healthchecks.APIKey)
			if err := monitor.Ping(ctx, conf.Healthchecks.ID, healthcheck.Start, ""); err != nil {
				log.Warn().Err(err).Msg("healthcheck start ping failed")
			}
		}

		log.Info().Str("Config", conf.String()).Msg("starting run")

		summary, err := pipeline.Run(ctx, conf, deps)
		report := formatRunSummary(summary)

		if monitor != nil {
			sig := healthcheck.Success
			if err != nil {
				sig = healthcheck.Fail
			}

			// the run context may already be cancelled
			if err := monitor.Ping(context.Background(), conf.Healthchecks.ID, sig, report); err != nil {
				log.Warn().Err(err).Msg("healthcheck ping failed")
			}
		}

		fmt.Println(renderRunSummary(report, err))

		if err != nil {
			stop()
			log.Fatal().Err(err).Str("RunID", summary.RunID.String()).Msg("run failed")
		}
	},
}

func formatRunSummary(summary *pipeline.RunSummary) string {
	p := message.NewPrinter(language.English)
	var sb strings.Builder

	fmt.Fprintf(&sb, "Run: %s\nDuration: %s\nSymbols: %s\n\n",
		summary.RunID, durafmt.Parse(summary.Duration().Round(time.Second)).String(), p.Sprintf("%d", summary.NumSymbols))

	for _, fetch := range summary.Fetches {
		fmt.Fprint(&sb, p.Sprintf("%-14s %9d rows  %6d skipped  (%s)\n", fetch.DataType.Name, fetch.NumRows,
			fetch.NumSkipped(), durafmt.ParseShort(fetch.Duration()).String()))
	}

	if len(summary.Snapshots) > 0 {
		fmt.Fprintf(&sb, "\nSnapshots:\n")
		for _, fn := range summary.Snapshots {
			fmt.Fprintf(&sb, "  %s\n", fn)
		}
	}

	if summary.NumUploads > 0 {
		fmt.Fprintf(&sb, "Uploaded: %d\n", summary.NumUploads)
	}

	loaded := "no"
	if summary.Loaded {
		loaded = "yes"
	}
	fmt.Fprintf(&sb, "Database loaded: %s", loaded)

	return sb.String()
}

func renderRunSummary(report string, runErr error) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")).Render("RUN COMPLETE")
	border := lipgloss.Color("63")
	if runErr != nil {
		title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")).Render("RUN FAILED")
		border = lipgloss.Color("196")
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Render(title + "\n\n" + report)
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&snapshotOnly, "snapshot-only", false, "write parquet snapshots without loading the database")
	runCmd.Flags().BoolVar(&replace, "replace", false, "empty the stock tables before loading")

	runCmd.Flags().Int("workers", 0, "number of concurrent downloads")
	if err := viper.BindPFlag("fmp.workers", runCmd.Flags().Lookup("workers")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for workers failed")
	}

	runCmd.Flags().Int("quarters", 0, "number of quarters of ratios and growth to fetch per symbol")
	if err := viper.BindPFlag("fmp.quarters", runCmd.Flags().Lookup("quarters")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for quarters failed")
	}
}
