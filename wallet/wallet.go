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

// Package wallet connects transaction composition to an external CIP-30 style wallet. It
// decodes the raw entities the wallet returns and merges the witnesses it produces into
// composed transactions
package wallet

import (
	"context"
)

// Wallet is the API of a connected wallet. All entities are exchanged as raw bytes:
// addresses are raw address bytes, UTxOs and values are CBOR, and SignTx returns a CBOR
// witness set
type Wallet interface {
	Signer
	GetNetworkId(ctx context.Context) (uint8, error)
	GetUtxos(ctx context.Context) ([][]byte, error)
	GetCollateral(ctx context.Context) ([][]byte, error)
	GetBalance(ctx context.Context) ([]byte, error)
	GetUsedAddresses(ctx context.Context) ([][]byte, error)
	GetUnusedAddresses(ctx context.Context) ([][]byte, error)
	GetChangeAddress(ctx context.Context) ([]byte, error)
	GetRewardAddresses(ctx context.Context) ([][]byte, error)
	SignData(ctx context.Context, address []byte, payload []byte) (DataSignature, error)
	SubmitTx(ctx context.Context, tx []byte) (string, error)
}

// Signer produces a witness set for a transaction. When partialSign is true, the signer
// must not fail if it can't provide every required witness
type Signer interface {
	SignTx(ctx context.Context, tx []byte, partialSign bool) ([]byte, error)
}

// DataSignature is a CIP-8 message signature. Signature holds a COSE_Sign1 structure and
// Key holds a COSE_Key structure, both CBOR encoded
type DataSignature struct {
	Signature []byte
	Key       []byte
}
