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
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultBaseURL        = "https://financialmodelingprep.com/api/v3"
	DefaultQuarters       = 40
	DefaultInstrumentType = "stock"
	DefaultRateLimit      = 300
	DefaultWorkers        = 4
	DefaultDataDir        = "data"
)

var (
	DefaultExchanges = []string{"NASDAQ", "NYSE", "AMEX"}

	ErrMissingAPIKey   = errors.New("fmp.apikey is not set")
	ErrMissingDatabase = errors.New("database connection is not configured (set db.url or db.host and db.name)")
	ErrPasswordNoUser  = errors.New("db.password is set but db.user is empty")
)

// Config carries every setting a pipeline run needs
type Config struct {
	FMP          FMPConfig          `mapstructure:"fmp" toml:"fmp"`
	Data         DataConfig         `mapstructure:"data" toml:"data"`
	DB           DBConfig           `mapstructure:"db" toml:"db"`
	Backblaze    BackblazeConfig    `mapstructure:"backblaze" toml:"backblaze"`
	Healthchecks HealthchecksConfig `mapstructure:"healthchecks" toml:"healthchecks"`
}

type FMPConfig struct {
	APIKey         string   `mapstructure:"apikey" toml:"apikey"`
	BaseURL        string   `mapstructure:"base_url" toml:"base_url"`
	Quarters       int      `mapstructure:"quarters" toml:"quarters"`
	Exchanges      []string `mapstructure:"exchanges" toml:"exchanges"`
	InstrumentType string   `mapstructure:"instrument_type" toml:"instrument_type"`

	// RateLimit is the maximum number of requests per minute
	RateLimit int `mapstructure:"rate_limit" toml:"rate_limit"`
	Workers   int `mapstructure:"workers" toml:"workers"`
}

type DataConfig struct {
	Dir string `mapstructure:"dir" toml:"dir"`
}

type DBConfig struct {
	URL      string `mapstructure:"url" toml:"url,omitempty"`
	User     string `mapstructure:"user" toml:"user,omitempty"`
	Password string `mapstructure:"password" toml:"password,omitempty"`
	Host     string `mapstructure:"host" toml:"host,omitempty"`
	Name     string `mapstructure:"name" toml:"name,omitempty"`
}

type BackblazeConfig struct {
	ApplicationID  string `mapstructure:"application_id" toml:"application_id,omitempty"`
	ApplicationKey string `mapstructure:"application_key" toml:"application_key,omitempty"`
	Bucket         string `mapstructure:"bucket" toml:"bucket,omitempty"`
}

type HealthchecksConfig struct {
	APIKey string `mapstructure:"apikey" toml:"apikey,omitempty"`
	ID     string `mapstructure:"id" toml:"id,omitempty"`
}

// SetDefaults registers the default value of every setting with v
func SetDefaults(v *viper.Viper) {
	// keys without a meaningful default are registered empty so that
	// environment variables are seen by Unmarshal
	for _, key := range []string{
		"fmp.apikey",
		"db.url", "db.user", "db.password", "db.host", "db.name",
		"backblaze.application_id", "backblaze.application_key", "backblaze.bucket",
		"healthchecks.apikey", "healthchecks.id",
	} {
		v.SetDefault(key, "")
	}

	v.SetDefault("fmp.base_url", DefaultBaseURL)
	v.SetDefault("fmp.quarters", DefaultQuarters)
	v.SetDefault("fmp.exchanges", DefaultExchanges)
	v.SetDefault("fmp.instrument_type", DefaultInstrumentType)
	v.SetDefault("fmp.rate_limit", DefaultRateLimit)
	v.SetDefault("fmp.workers", DefaultWorkers)
	v.SetDefault("data.dir", DefaultDataDir)
}

// Load builds a Config from the settings known to v
func Load(v *viper.Viper) (*Config, error) {
	conf := &Config{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, err
	}

	conf.normalize()
	return conf, nil
}

func (conf *Config) normalize() {
	if conf.FMP.BaseURL == "" {
		conf.FMP.BaseURL = DefaultBaseURL
	}
	conf.FMP.BaseURL = strings.TrimSuffix(conf.FMP.BaseURL, "/")

	if conf.FMP.Quarters <= 0 {
		conf.FMP.Quarters = DefaultQuarters
	}

	if len(conf.FMP.Exchanges) == 0 {
		conf.FMP.Exchanges = DefaultExchanges
	}

	if conf.FMP.InstrumentType == "" {
		conf.FMP.InstrumentType = DefaultInstrumentType
	}

	if conf.FMP.RateLimit <= 0 {
		conf.FMP.RateLimit = DefaultRateLimit
	}

	if conf.FMP.Workers <= 0 {
		conf.FMP.Workers = DefaultWorkers
	}

	if conf.Data.Dir == "" {
		conf.Data.Dir = DefaultDataDir
	}
}

// Validate checks that the settings required to fetch data are present
func (conf *Config) Validate() error {
	if conf.FMP.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// DSN returns the PostgreSQL connection string. An explicit URL wins,
// otherwise one is composed from user, password, host and database name.
func (db DBConfig) DSN() (string, error) {
	if db.URL != "" {
		return db.URL, nil
	}

	if db.Host == "" || db.Name == "" {
		return "", ErrMissingDatabase
	}

	if db.Password != "" && db.User == "" {
		return "", ErrPasswordNoUser
	}

	dsn := url.URL{
		Scheme: "postgres",
		Host:   db.Host,
		Path:   "/" + db.Name,
	}

	switch {
	case db.User != "" && db.Password != "":
		dsn.User = url.UserPassword(db.User, db.Password)
	case db.User != "":
		dsn.User = url.User(db.User)
	}

	return dsn.String(), nil
}

// Redacted returns the DSN with the password masked, suitable for logs
func (db DBConfig) Redacted() string {
	dsn, err := db.DSN()
	if err != nil {
		return ""
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return ""
	}

	return parsed.Redacted()
}

func (conf *Config) String() string {
	return fmt.Sprintf("fmp=%s quarters=%d exchanges=%v type=%s data=%s db=%s",
		conf.FMP.BaseURL, conf.FMP.Quarters, conf.FMP.Exchanges, conf.FMP.InstrumentType,
		conf.Data.Dir, conf.DB.Redacted())
}
