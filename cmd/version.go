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
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/penny-vault/pvfmp/pkginfo"
)

// versionOptions selects what `pvfmp version` prints
type versionOptions struct {
	Deps  bool
	Short bool
	JSON  bool
}

var versionOpts versionOptions

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pvfmp version and build information",
	Long: `Print the pvfmp release, commit and build date.

Use --short for only the release number, --deps to also list the Go modules
compiled into the binary, or --json for a machine readable document that
includes the platform and Go toolchain.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeVersion(cmd.OutOrStdout(), versionOpts)
	},
}

func writeVersion(w io.Writer, opts versionOptions) error {
	if opts.JSON {
		out, err := json.MarshalIndent(pkginfo.BuildInfo(opts.Deps), "", "  ")
		if err != nil {
			return fmt.Errorf("encode version info: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}

	line := pkginfo.BuildVersionString()
	if opts.Short {
		line = pkginfo.BuildInfo(false).Version
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}

	if opts.Deps {
		_, err := fmt.Fprintf(w, "\nmodules:\n%s\n", strings.Join(pkginfo.GetDependencyList(), "\n"))
		return err
	}

	return nil
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVarP(&versionOpts.Deps, "deps", "d", false, "also list the Go modules built into pvfmp")
	versionCmd.Flags().BoolVarP(&versionOpts.Short, "short", "s", false, "print only the pvfmp release number")
	versionCmd.Flags().BoolVar(&versionOpts.JSON, "json", false, "print build information as JSON")
}
