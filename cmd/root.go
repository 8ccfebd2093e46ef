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
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/penny-vault/pvfmp/config"
)

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pvfmp",
	Short: "pvfmp builds a stock fundamentals database from Financial Modeling Prep",
	Long: `pvfmp is a command line utility that downloads quarterly financial
ratios, quarterly financial growth metrics and monthly price history for every
common stock listed on NASDAQ, NYSE and AMEX from the Financial Modeling Prep
API (https://financialmodelingprep.com).

Each run writes one compressed parquet snapshot per data set and loads the
same data into PostgreSQL:

	* stock_names  - ticker and company name
	* price_data   - last trading day of every month
	* fin_ratio    - quarterly financial ratios
	* fin_growth   - quarterly growth metrics

Settings are read from $HOME/.pvfmp.toml (create it with 'pvfmp init') and
can be overridden with PVFMP_ prefixed environment variables, e.g.
PVFMP_FMP_APIKEY.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			log.Fatal().Err(err).Str("LogLevel", logLevel).Msg("invalid log level")
		}
		zerolog.SetGlobalLevel(level)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pvfmp.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")

	rootCmd.PersistentFlags().String("db-url", "", "database connection string")
	if err := viper.BindPFlag("db.url", rootCmd.PersistentFlags().Lookup("db-url")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for db-url failed")
	}

	rootCmd.PersistentFlags().String("data-dir", "", "directory parquet snapshots are written to")
	if err := viper.BindPFlag("data.dir", rootCmd.PersistentFlags().Lookup("data-dir")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for data-dir failed")
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".pvfmp" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("toml")
		viper.SetConfigName(".pvfmp")
	}

	viper.SetEnvPrefix("pvfmp")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Info().Str("ConfigFN", viper.ConfigFileUsed()).Msg("Using config file")
	}
}

// loadConfig returns the merged configuration of file, environment and flags
func loadConfig() *config.Config {
	conf, err := config.Load(viper.GetViper())
	if err != nil {
		log.Fatal().Err(err).Msg("could not parse configuration")
	}
	return conf
}
