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
	"bytes"

	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvfmp/pkginfo"
)

var _ = Describe("version", func() {
	It("describes pvfmp in its help text", func() {
		Expect(versionCmd.Short).To(ContainSubstring("pvfmp"))
		Expect(versionCmd.Long).To(ContainSubstring("--json"))
		Expect(versionCmd.Flags().Lookup("deps").Usage).To(ContainSubstring("pvfmp"))
	})

	It("prints only the release number with --short", func() {
		var buf bytes.Buffer
		Expect(writeVersion(&buf, versionOptions{Short: true})).To(Succeed())
		Expect(buf.String()).To(Equal(pkginfo.BuildInfo(false).Version + "\n"))
	})

	It("prints the full version string by default", func() {
		var buf bytes.Buffer
		Expect(writeVersion(&buf, versionOptions{})).To(Succeed())
		Expect(buf.String()).To(HavePrefix("pvfmp "))
		Expect(buf.String()).To(ContainSubstring("Commit: "))
	})

	It("emits build information as JSON", func() {
		var buf bytes.Buffer
		Expect(writeVersion(&buf, versionOptions{JSON: true})).To(Succeed())

		var info pkginfo.Info
		Expect(json.Unmarshal(buf.Bytes(), &info)).To(Succeed())
		Expect(info.Name).To(Equal("pvfmp"))
		Expect(info.Deps).To(BeNil())
	})
})
