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
// Package blockfrost implements provider.Fetcher and provider.Submitter on top of the
// Blockfrost HTTP API
package blockfrost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/blinklabs-io/txcompose/ledger"
	"github.com/blinklabs-io/txcompose/provider"
)

const (
	apiVersion       = 0
	networkUrlFormat = "https://cardano-%s.blockfrost.io/api/v%d"
	projectIdHeader  = "project_id"
	defaultTimeout   = 30 * time.Second
	// Maximum number of items per page allowed by the API
	pageSize = 100
	// Upper bound on pages fetched for a single query
	maxPages = 1000
	// Limit on error response bodies kept for error messages
	maxErrorBodySize = 64 * 1024
)

var (
	_ provider.Fetcher   = (*Client)(nil)
	_ provider.Submitter = (*Client)(nil)
)

// Client is a Blockfrost API client
type Client struct {
	baseUrl    string
	projectId  string
	httpClient *http.Client
	logger     *slog.Logger
}

// New returns a Blockfrost client with the specified options
func New(opts ...OptionFunc) *Client {
	c := &Client{
		baseUrl: fmt.Sprintf(networkUrlFormat, ledger.NetworkMainnet.Name, apiVersion),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// FetchProtocolParameters returns the protocol parameters for the specified epoch, or for
// the latest epoch if epoch is nil
func (c *Client) FetchProtocolParameters(
	ctx context.Context,
	epoch *uint64,
) (ledger.ProtocolParameters, error) {
	epochPath := "latest"
	if epoch != nil {
		epochPath = strconv.FormatUint(*epoch, 10)
	}
	var resp protocolParametersResponse
	if err := c.get(ctx, "epochs/"+epochPath+"/parameters", nil, &resp); err != nil {
		return ledger.ProtocolParameters{}, err
	}
	return resp.toLedger(), nil
}

// FetchAssetUtxosFromAddress returns the UTxOs at address that hold asset. All result
// pages are fetched. An address without matching UTxOs returns an empty list
func (c *Client) FetchAssetUtxosFromAddress(
	ctx context.Context,
	asset string,
	address string,
) ([]ledger.UTxO, error) {
	path := "addresses/" + url.PathEscape(address) + "/utxos/" + url.PathEscape(asset)
	ret := []ledger.UTxO{}
	for page := 1; page <= maxPages; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("count", strconv.Itoa(pageSize))
		var resp []utxoResponse
		if err := c.get(ctx, path, query, &resp); err != nil {
			var httpErr provider.HTTPError
			if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
				break
			}
			return nil, err
		}
		for _, item := range resp {
			utxo, err := item.toLedger(address)
			if err != nil {
				return nil, provider.HTTPError{
					Method: http.MethodGet,
					Path:   path,
					Err:    fmt.Errorf("decode UTxO %s#%d: %w", item.TxHash, item.OutputIndex, err),
				}
			}
			ret = append(ret, utxo)
		}
		if len(resp) < pageSize {
			break
		}
	}
	c.logger.Debug(
		"fetched asset UTxOs",
		"asset", asset,
		"address", address,
		"count", len(ret),
	)
	return ret, nil
}

// SubmitTx submits the CBOR encoded transaction and returns its hash. Rejections are
// returned as provider.SubmissionError
func (c *Client) SubmitTx(ctx context.Context, tx []byte) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "tx/submit", nil, bytes.NewReader(tx))
	if err != nil {
		return "", provider.SubmissionError{Err: err}
	}
	req.Header.Set("Content-Type", "application/cbor")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", provider.SubmissionError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg := readErrorMessage(resp.Body)
		c.logger.Warn(
			"transaction submission rejected",
			"status", resp.StatusCode,
			"message", msg,
		)
		return "", provider.SubmissionError{
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}
	var txHash string
	if err := json.NewDecoder(resp.Body).Decode(&txHash); err != nil {
		return "", provider.SubmissionError{Err: fmt.Errorf("decode response: %w", err)}
	}
	if txHash == "" {
		return "", provider.SubmissionError{Err: errEmptyHash}
	}
	c.logger.Debug(
		"submitted transaction",
		"tx_hash", txHash,
	)
	return txHash, nil
}

func (c *Client) newRequest(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	body io.Reader,
) (*http.Request, error) {
	reqUrl := c.baseUrl + "/" + path
	if len(query) > 0 {
		reqUrl += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, reqUrl, body)
	if err != nil {
		return nil, err
	}
	if c.projectId != "" {
		req.Header.Set(projectIdHeader, c.projectId)
	}
	c.logger.Debug(
		"sending request",
		"method", method,
		"path", path,
	)
	return req, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return provider.HTTPError{Method: http.MethodGet, Path: path, Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return provider.HTTPError{Method: http.MethodGet, Path: path, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg := readErrorMessage(resp.Body)
		if resp.StatusCode != http.StatusNotFound {
			c.logger.Warn(
				"request failed",
				"path", path,
				"status", resp.StatusCode,
				"message", msg,
			)
		}
		return provider.HTTPError{
			Method:     http.MethodGet,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return provider.HTTPError{
			Method:     http.MethodGet,
			Path:       path,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

func readErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBodySize))
	if err != nil {
		return err.Error()
	}
	return errorMessage(data)
}
