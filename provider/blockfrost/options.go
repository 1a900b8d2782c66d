// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package blockfrost

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/blinklabs-io/txcompose/ledger"
)

// OptionFunc is a type that represents functions that modify the Blockfrost client config
type OptionFunc func(*Client)

// WithProjectId specifies the project ID sent with every request
func WithProjectId(projectId string) OptionFunc {
	return func(c *Client) {
		c.projectId = projectId
	}
}

// WithNetwork selects the public Blockfrost endpoint for the specified network. This
// defaults to mainnet
func WithNetwork(network ledger.Network) OptionFunc {
	return func(c *Client) {
		c.baseUrl = fmt.Sprintf(networkUrlFormat, network.Name, apiVersion)
	}
}

// WithBaseUrl specifies the API base URL, including the version path. This overrides
// WithNetwork
func WithBaseUrl(baseUrl string) OptionFunc {
	return func(c *Client) {
		c.baseUrl = baseUrl
	}
}

// WithHttpClient specifies the HTTP client used for requests. This defaults to a client
// with a 30 second timeout
func WithHttpClient(httpClient *http.Client) OptionFunc {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger specifies the logger to use. This defaults to slog.Default()
func WithLogger(logger *slog.Logger) OptionFunc {
	return func(c *Client) {
		c.logger = logger
	}
}
