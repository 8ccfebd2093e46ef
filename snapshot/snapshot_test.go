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
package snapshot_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvfmp/data"
	"github.com/penny-vault/pvfmp/snapshot"
)

func ptr[T any](v T) *T {
	return &v
}

var _ = Describe("Snapshot", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("round-trips price rows including nulls", func() {
		rows := []*data.PriceRecord{
			{Symbol: "AAA", DateStr: "2024-01-31", Close: ptr(9.5), Volume: ptr(int64(800)), Label: "January 31, 24"},
			{Symbol: "AAA", DateStr: "2024-02-29", Close: ptr(11.5), Label: "February 29, 24"},
		}

		dataType := data.DataTypes[data.PricesKey]
		Expect(snapshot.Write(dir, dataType, rows)).To(Succeed())
		Expect(dataType.SnapshotPath(dir)).To(BeAnExistingFile())

		read, err := snapshot.Read[data.PriceRecord](dir, dataType)
		Expect(err).NotTo(HaveOccurred())
		Expect(read).To(HaveLen(2))
		Expect(read[0].Symbol).To(Equal("AAA"))
		Expect(read[0].Date.Format(data.DateLayout)).To(Equal("2024-01-31"))
		Expect(*read[0].Volume).To(Equal(int64(800)))
		Expect(read[1].Volume).To(BeNil())
		Expect(read[1].Open).To(BeNil())
		Expect(*read[1].Close).To(Equal(11.5))
	})

	It("overwrites a previous snapshot", func() {
		dataType := data.DataTypes[data.RatiosKey]
		first := []*data.RatioRecord{
			{Symbol: "AAA", DateStr: "2023-12-31", Period: "Q4", CurrentRatio: ptr(1.5)},
			{Symbol: "BBB", DateStr: "2023-12-31", Period: "Q4"},
		}
		second := []*data.RatioRecord{
			{Symbol: "CCC", DateStr: "2023-09-30", Period: "Q3", CurrentRatio: ptr(2.0)},
		}

		Expect(snapshot.Write(dir, dataType, first)).To(Succeed())
		Expect(snapshot.Write(dir, dataType, second)).To(Succeed())

		read, err := snapshot.Read[data.RatioRecord](dir, dataType)
		Expect(err).NotTo(HaveOccurred())
		Expect(read).To(HaveLen(1))
		Expect(read[0].Symbol).To(Equal("CCC"))
		Expect(*read[0].CurrentRatio).To(Equal(2.0))

		entries, err := os.ReadDir(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
	})

	It("keeps the previous snapshot when a write fails", func() {
		dataType := data.DataTypes[data.PricesKey]
		good := []*data.PriceRecord{
			{Symbol: "AAA", DateStr: "2024-01-31", Close: ptr(9.5), Label: "January 31, 24"},
		}
		Expect(snapshot.Write(dir, dataType, good)).To(Succeed())

		// a non-empty directory squatting on the temp path makes the write fail
		blocker := filepath.Join(dir, "."+dataType.SnapshotFile+".tmp")
		Expect(os.MkdirAll(filepath.Join(blocker, "busy"), 0o755)).To(Succeed())

		replacement := []*data.PriceRecord{
			{Symbol: "ZZZ", DateStr: "2024-02-29", Close: ptr(1.0), Label: "February 29, 24"},
		}
		Expect(snapshot.Write(dir, dataType, replacement)).NotTo(Succeed())

		read, err := snapshot.Read[data.PriceRecord](dir, dataType)
		Expect(err).NotTo(HaveOccurred())
		Expect(read).To(HaveLen(1))
		Expect(read[0].Symbol).To(Equal("AAA"))
	})

	It("writes an empty table", func() {
		dataType := data.DataTypes[data.GrowthKey]
		Expect(snapshot.Write(dir, dataType, []*data.GrowthRecord{})).To(Succeed())

		read, err := snapshot.Read[data.GrowthRecord](dir, dataType)
		Expect(err).NotTo(HaveOccurred())
		Expect(read).To(BeEmpty())
	})

	It("refuses data types without a snapshot file", func() {
		err := snapshot.Write(dir, data.DataTypes[data.NamesKey], []*data.Instrument{})
		Expect(err).To(MatchError(snapshot.ErrNoSnapshotFile))
	})
})
