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
package provider

import (
	"context"

	"github.com/penny-vault/pvfmp/data"
)

type Provider interface {
	Name() string
	Description() string
	Datasets() map[string]Dataset
}

// FetchFunc retrieves every row of a dataset for a single symbol
type FetchFunc[T any] func(ctx context.Context, symbol string) ([]T, error)

type Dataset struct {
	Name        string
	Description string
	DataType    *data.DataType

	// Endpoint is the path, relative to the provider base URL, that the
	// dataset is requested from. {symbol} is replaced per request.
	Endpoint string
}
