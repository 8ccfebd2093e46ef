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
package pkginfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sort"

	"github.com/rs/zerolog/log"
)

var (
	BuildDate  string
	CommitHash string
	Version    string
)

// Info is the machine readable form of the build metadata
type Info struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Commit    string            `json:"commit"`
	BuildDate string            `json:"buildDate"`
	Platform  string            `json:"platform"`
	GoVersion string            `json:"goVersion"`
	Deps      map[string]string `json:"deps,omitempty"`
}

// BuildInfo collects the build metadata; dependencies are included when
// withDeps is set
func BuildInfo(withDeps bool) Info {
	info := Info{
		Name:      "pvfmp",
		Version:   valueOr(Version, "devel"),
		Commit:    valueOr(CommitHash, "unknown"),
		BuildDate: valueOr(BuildDate, "unknown"),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		GoVersion: runtime.Version(),
	}

	if withDeps {
		info.Deps = make(map[string]string)
		for _, dep := range dependencies() {
			info.Deps[dep.Path] = dep.Version
		}
	}

	return info
}

// BuildVersionString returns a version info string suitable for printing on the command line
func BuildVersionString() string {
	info := BuildInfo(false)
	return fmt.Sprintf(`%s %s %s

Build Date: %s
Commit: %s
Built with: %s`, info.Name, info.Version, info.Platform, info.BuildDate, info.Commit, info.GoVersion)
}

// GetDependencyList returns an array of all dependencies linked in with this program
// each string is of the form `package="version"`
func GetDependencyList() []string {
	deps := make([]string, 0)
	for _, dep := range dependencies() {
		deps = append(deps, fmt.Sprintf("%s=%q", dep.Path, dep.Version))
	}

	sort.Strings(deps)
	return deps
}

func dependencies() []*debug.Module {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		log.Error().Msg("could not get package build info")
		return nil
	}
	return buildInfo.Deps
}

func valueOr(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}
