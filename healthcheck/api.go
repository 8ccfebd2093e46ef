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
package healthcheck

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gosimple/slug"
)

const (
	DefaultAPIURL  = "https://healthchecks.io/api/v3"
	DefaultPingURL = "https://hc-ping.com"
)

var (
	ErrStatus = errors.New("status code is invalid")
)

// Signal is the kind of ping sent to a check
type Signal string

const (
	Start   Signal = "start"
	Success Signal = ""
	Fail    Signal = "fail"
)

type Client struct {
	APIURL  string
	PingURL string

	client *resty.Client
}

type createReq struct {
	Name        string   `json:"name"`
	Description string   `json:"desc,omitempty"`
	Grace       int      `json:"grace"`
	Schedule    string   `json:"schedule"`
	Slug        string   `json:"slug"`
	Tags        string   `json:"tags"`
	Timezone    string   `json:"tz"`
	Unique      []string `json:"unique"`
}

type createResp struct {
	PingURL string `json:"ping_url"`
}

// New returns a healthchecks.io client. apiKey is only needed to create
// checks; pings are authenticated by the check id.
func New(apiKey string) *Client {
	return &Client{
		APIURL:  DefaultAPIURL,
		PingURL: DefaultPingURL,
		client: resty.New().
			SetHeader("X-Api-Key", apiKey).
			SetTimeout(10 * time.Second),
	}
}

// Create a new healthchecks.io check and return the id. An existing check
// with the same name is returned instead of a duplicate.
func (hc *Client) Create(name string, tags []string, schedule string) (string, error) {
	command := createReq{
		Name:     name,
		Slug:     slug.Make(name),
		Tags:     strings.Join(tags, " "),
		Grace:    3600,
		Schedule: schedule,
		Timezone: "America/New_York",
		Unique:   []string{"name"},
	}

	result := createResp{}

	resp, err := hc.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(command).
		SetResult(&result).
		Post(hc.APIURL + "/checks/")

	if err != nil {
		return "", err
	}

	if resp.StatusCode() > 201 {
		return "", fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode())
	}

	checkID := strings.Split(result.PingURL, "/")
	healthCheckID := checkID[len(checkID)-1]

	return healthCheckID, nil
}

// Ping reports signal for the check. msg is attached to the ping and shown
// in the check's event log.
func (hc *Client) Ping(ctx context.Context, checkID string, signal Signal, msg string) error {
	url := fmt.Sprintf("%s/%s", hc.PingURL, checkID)
	if signal != Success {
		url = fmt.Sprintf("%s/%s", url, signal)
	}

	resp, err := hc.client.R().
		SetContext(ctx).
		SetBody(msg).
		Post(url)

	if err != nil {
		return err
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode())
	}

	return nil
}
