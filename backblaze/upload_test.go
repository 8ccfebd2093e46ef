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
package backblaze_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvfmp/backblaze"
	"github.com/penny-vault/pvfmp/config"
)

var _ = Describe("Uploader", func() {
	It("is disabled without credentials", func() {
		Expect(backblaze.New(config.BackblazeConfig{}, "fmp")).To(BeNil())
		Expect(backblaze.New(config.BackblazeConfig{ApplicationID: "id", ApplicationKey: "key"}, "fmp")).To(BeNil())
	})

	It("stores files under the prefix", func() {
		uploader := backblaze.New(config.BackblazeConfig{ApplicationID: "id", ApplicationKey: "key", Bucket: "market"}, "fmp/2024-03-15")
		Expect(uploader).NotTo(BeNil())
		Expect(uploader.ObjectName("/tmp/data/stock_prices.parquet.gzip")).To(Equal("fmp/2024-03-15/stock_prices.parquet.gzip"))
	})
})
