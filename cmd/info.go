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
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/penny-vault/pvfmp/config"
	"github.com/penny-vault/pvfmp/library"
	"github.com/penny-vault/pvfmp/provider"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display the configured data sets and the contents of the database",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		conf := loadConfig()

		builder := strings.Builder{}
		builder.WriteString(describeProvider(provider.NewFMP(&conf.FMP), conf))

		if dsn, err := conf.DB.DSN(); err == nil {
			myLibrary := library.New(dsn)
			if err := myLibrary.Connect(ctx); err != nil {
				log.Fatal().Err(err).Str("Database", conf.DB.Redacted()).Msg("could not connect to database")
			}
			defer myLibrary.Close()

			summary, err := myLibrary.Summary(ctx)
			if err != nil {
				log.Fatal().Err(err).Msg("could not create library summary document")
			}
			builder.WriteString("\n")
			builder.WriteString(summary)
		}

		r, _ := glamour.NewTermRenderer(
			// detect background color and pick either the default dark or light theme
			glamour.WithAutoStyle(),
			// wrap output at specific width (default is 80)
			glamour.WithWordWrap(80),
		)

		out, err := r.Render(builder.String())
		if err != nil {
			log.Fatal().Err(err).Msg("could not render summary document")
		}

		fmt.Print(out)
	},
}

func describeProvider(src provider.Provider, conf *config.Config) string {
	builder := strings.Builder{}

	builder.WriteString(fmt.Sprintf("# %s\n", src.Name()))
	builder.WriteString(src.Description())
	builder.WriteString("\n\n")
	builder.WriteString(fmt.Sprintf("Exchanges: %s, instrument type: %s, quarters: %d, workers: %d\n\n",
		strings.Join(conf.FMP.Exchanges, ", "), conf.FMP.InstrumentType, conf.FMP.Quarters, conf.FMP.Workers))

	builder.WriteString("## Datasets\n")

	datasets := src.Datasets()
	names := make([]string, 0, len(datasets))
	for name := range datasets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		dataset := datasets[name]
		target := dataset.DataType.Table
		if dataset.DataType.SnapshotFile != "" {
			target = fmt.Sprintf("%s, %s", target, dataset.DataType.SnapshotPath(conf.Data.Dir))
		}
		builder.WriteString(fmt.Sprintf("- %s (%s): %s\n", dataset.Name, target, dataset.Description))
	}

	return builder.String()
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
