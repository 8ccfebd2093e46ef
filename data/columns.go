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

import (
	"reflect"
)

const columnTag = "db"

// Columns returns the database column names of struct type T, in field
// order, as declared by its db tags. Untagged fields and fields tagged "-"
// are not columns.
func Columns[T any]() []string {
	typ := reflect.TypeFor[T]()
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	cols := make([]string, 0, typ.NumField())
	for _, idx := range columnFields(typ) {
		cols = append(cols, typ.Field(idx).Tag.Get(columnTag))
	}
	return cols
}

// Values returns the column values of row in the same order as Columns
func Values(row any) []any {
	val := reflect.Indirect(reflect.ValueOf(row))
	fields := columnFields(val.Type())

	values := make([]any, len(fields))
	for pos, idx := range fields {
		values[pos] = val.Field(idx).Interface()
	}
	return values
}

func columnFields(typ reflect.Type) []int {
	fields := make([]int, 0, typ.NumField())
	for idx := 0; idx < typ.NumField(); idx++ {
		field := typ.Field(idx)
		name := field.Tag.Get(columnTag)
		if !field.IsExported() || name == "" || name == "-" {
			continue
		}
		fields = append(fields, idx)
	}
	return fields
}
