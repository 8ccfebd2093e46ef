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

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/penny-vault/pvfmp/provider"
)

var universeOut string

// universeCmd represents the universe command
var universeCmd = &cobra.Command{
	Use:   "universe",
	Short: "Print the stocks a run would download as CSV",
	Run: func(cmd *cobra.Command, args []string) {
		conf := loadConfig()
		if err := conf.Validate(); err != nil {
			log.Fatal().Err(err).Msg("invalid configuration")
		}

		ctx := log.Logger.WithContext(context.Background())

		fmp := provider.NewFMP(&conf.FMP)
		universe, err := fmp.Universe(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("could not resolve stock universe")
		}

		out := os.Stdout
		if universeOut != "" {
			fh, err := os.Create(universeOut)
			if err != nil {
				log.Fatal().Err(err).Str("FileName", universeOut).Msg("could not create output file")
			}
			defer fh.Close()
			out = fh
		}

		if err := gocsv.Marshal(universe, out); err != nil {
			log.Fatal().Err(err).Msg("could not write universe csv")
		}

		if universeOut != "" {
			fmt.Fprintf(os.Stderr, "wrote %d instruments to %s\n", len(universe), universeOut)
		}
	},
}

func init() {
	rootCmd.AddCommand(universeCmd)
	universeCmd.Flags().StringVarP(&universeOut, "output", "o", "", "write csv to file instead of stdout")
}
