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
// Package provider defines the chain data sources the composer and wallets can use
// to fetch protocol parameters and UTxOs and to submit signed transactions
package provider

import (
	"context"

	"github.com/blinklabs-io/txcompose/ledger"
)

// Fetcher retrieves chain data
type Fetcher interface {
	// FetchProtocolParameters returns the protocol parameters for the specified epoch, or
	// for the latest epoch if epoch is nil
	FetchProtocolParameters(ctx context.Context, epoch *uint64) (ledger.ProtocolParameters, error)
	// FetchAssetUtxosFromAddress returns the UTxOs at address that hold asset. The asset is
	// given as a unit (policy ID followed by the hex asset name)
	FetchAssetUtxosFromAddress(ctx context.Context, asset string, address string) ([]ledger.UTxO, error)
}

// Submitter submits signed transactions
type Submitter interface {
	// SubmitTx submits the CBOR encoded transaction and returns its hash
	SubmitTx(ctx context.Context, tx []byte) (string, error)
}
