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
package library

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary returns a description of the library in markdown
func (myLibrary *Library) Summary(ctx context.Context) (string, error) {
	stats, err := myLibrary.Stats(ctx)
	if err != nil {
		return "", err
	}

	return FormatSummary(redact(myLibrary.DBUrl), stats, time.Now()), nil
}

// FormatSummary renders table statistics as markdown
func FormatSummary(database string, stats []*TableStats, now time.Time) string {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	builder.WriteString("# Stock Library\n\n")
	builder.WriteString(fmt.Sprintf("Database: %s\n\n", database))

	var lastUpdated time.Time
	for _, table := range stats {
		if table.LastUpdated.After(lastUpdated) {
			lastUpdated = table.LastUpdated
		}
	}

	if lastUpdated.Year() <= 1 {
		builder.WriteString("Last Updated: Never\n\n")
	} else {
		age := timeago.English.FormatReference(lastUpdated, now)
		builder.WriteString(fmt.Sprintf("Last Updated: %s (%s)\n\n", age, lastUpdated.Local().Format("01/02/2006")))
	}

	builder.WriteString("## Tables\n\n")
	builder.WriteString("| Table | Rows | Symbols | Coverage |\n")
	builder.WriteString("|-------|-----:|--------:|----------|\n")

	for _, table := range stats {
		coverage := "-"
		if table.FirstDate.Year() > 1 {
			coverage = fmt.Sprintf("%s - %s", table.FirstDate.Format("Jan 2006"), table.LastDate.Format("Jan 2006"))
		}

		builder.WriteString(p.Sprintf("| %s | %d | %d | %s |\n", table.Table, table.NumRows, table.NumSymbols, coverage))
	}

	return builder.String()
}

func redact(dbURL string) string {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "(invalid connection string)"
	}
	return parsed.Redacted()
}
