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
package data

// Table is the combined set of rows of a single data type across every
// symbol in the universe
type Table[T any] struct {
	DataType *DataType
	Rows     []T
}

func NewTable[T any](dataType *DataType) *Table[T] {
	return &Table[T]{
		DataType: dataType,
		Rows:     make([]T, 0),
	}
}

// Append concatenates rows onto the end of the table. No sorting or
// de-duplication is performed.
func (tbl *Table[T]) Append(rows ...T) {
	tbl.Rows = append(tbl.Rows, rows...)
}

func (tbl *Table[T]) Len() int {
	return len(tbl.Rows)
}
