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
// Package test_ledger holds ledger fixtures shared by tests outside the ledger package
package test_ledger

import (
	"crypto/ed25519"
	"fmt"

	"github.com/blinklabs-io/txcompose/internal/test"
	"github.com/blinklabs-io/txcompose/ledger"
)

// KeyAddress returns a testnet enterprise address whose payment key is derived from the
// provided seed byte, along with the signing key
func KeyAddress(seed byte) (ledger.Address, ed25519.PrivateKey) {
	pubKey, privKey := test.NewKey(seed)
	keyHash := ledger.Blake2b224Hash(pubKey)
	addr, err := ledger.NewAddressFromParts(
		ledger.AddressTypeKeyNone,
		ledger.AddressNetworkTestnet,
		keyHash.Bytes(),
		nil,
	)
	if err != nil {
		panic(fmt.Sprintf("error building key address: %s", err))
	}
	return addr, privKey
}

// ScriptAddress returns a testnet enterprise address with a script payment part
func ScriptAddress(script ledger.PlutusScript) ledger.Address {
	scriptHash := script.Hash()
	addr, err := ledger.NewAddressFromParts(
		ledger.AddressTypeScriptNone,
		ledger.AddressNetworkTestnet,
		scriptHash.Bytes(),
		nil,
	)
	if err != nil {
		panic(fmt.Sprintf("error building script address: %s", err))
	}
	return addr
}

// AlwaysSucceeds is a small PlutusV2 script used as a fixture. Its contents are never
// evaluated
func AlwaysSucceeds() ledger.PlutusScript {
	script, err := ledger.NewPlutusScript(
		ledger.PlutusV2,
		test.DecodeHexString("4e4d01000033222220051200120011"),
	)
	if err != nil {
		panic(fmt.Sprintf("error building script: %s", err))
	}
	return script
}

// PolicyId returns a policy ID filled with the provided byte
func PolicyId(b byte) ledger.PolicyId {
	return ledger.NewBlake2b224(test.RepeatByte(b, ledger.Blake2b224Size))
}

// Tokens returns a multi-asset bundle with a single asset
func Tokens(policyId ledger.PolicyId, assetName string, quantity uint64) ledger.MultiAsset {
	return ledger.MultiAsset{
		policyId: {
			ledger.NewAssetName([]byte(assetName)): quantity,
		},
	}
}

// NewUTxO returns a UTxO at the provided address. The transaction ID is filled with
// txIdByte
func NewUTxO(
	txIdByte byte,
	outputIndex uint32,
	addr ledger.Address,
	value ledger.Value,
) ledger.UTxO {
	return ledger.UTxO{
		Input: ledger.TxInput{
			TxId:        ledger.NewBlake2b256(test.RepeatByte(txIdByte, ledger.Blake2b256Size)),
			OutputIndex: outputIndex,
		},
		Output: ledger.TxOutput{
			Address: addr,
			Amount:  value,
		},
	}
}

// Lovelace returns a token-free value
func Lovelace(coin uint64) ledger.Value {
	return ledger.Value{Coin: coin}
}
