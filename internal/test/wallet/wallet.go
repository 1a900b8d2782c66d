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
// Package test_wallet provides an in-memory wallet for tests
package test_wallet

import (
	"context"
	"crypto/ed25519"
	"errors"

	"github.com/blinklabs-io/txcompose/cbor"
	"github.com/blinklabs-io/txcompose/ledger"
	"github.com/blinklabs-io/txcompose/wallet"
)

// Compile-time check that MockWallet implements wallet.Wallet
var _ wallet.Wallet = (*MockWallet)(nil)

// MockWallet is a wallet.Wallet backed by plain fields. Tests construct
// &test_wallet.MockWallet{} and set the fields they need. The Func fields override the
// default behavior when set
type MockWallet struct {
	NetworkIdVal       uint8
	UtxosVal           []ledger.UTxO
	CollateralVal      []ledger.UTxO
	ChangeAddressVal   ledger.Address
	UsedAddressesVal   []ledger.Address
	UnusedAddressesVal []ledger.Address
	RewardAddressesVal []ledger.Address
	// BalanceVal is returned by GetBalance. If nil, the sum of UtxosVal is returned
	BalanceVal *ledger.Value
	// SigningKeys are used by the default SignTx to witness the transaction body
	SigningKeys []ed25519.PrivateKey
	// SignTxFunc optionally overrides SignTx
	SignTxFunc func(context.Context, []byte, bool) ([]byte, error)
	// SignDataFunc optionally overrides SignData
	SignDataFunc func(context.Context, []byte, []byte) (wallet.DataSignature, error)
	// SubmitTxFunc optionally overrides SubmitTx. If nil, the transaction body hash
	// is returned
	SubmitTxFunc func(context.Context, []byte) (string, error)
	// SignTxCalls counts calls to SignTx
	SignTxCalls int
}

func (m *MockWallet) GetNetworkId(ctx context.Context) (uint8, error) {
	return m.NetworkIdVal, nil
}

func (m *MockWallet) GetUtxos(ctx context.Context) ([][]byte, error) {
	return encodeUtxos(m.UtxosVal)
}

func (m *MockWallet) GetCollateral(ctx context.Context) ([][]byte, error) {
	return encodeUtxos(m.CollateralVal)
}

func (m *MockWallet) GetBalance(ctx context.Context) ([]byte, error) {
	if m.BalanceVal != nil {
		return m.BalanceVal.MarshalCBOR()
	}
	value := ledger.SumValue(m.UtxosVal)
	return value.MarshalCBOR()
}

func (m *MockWallet) GetUsedAddresses(ctx context.Context) ([][]byte, error) {
	return addressBytes(m.UsedAddressesVal), nil
}

func (m *MockWallet) GetUnusedAddresses(ctx context.Context) ([][]byte, error) {
	return addressBytes(m.UnusedAddressesVal), nil
}

func (m *MockWallet) GetChangeAddress(ctx context.Context) ([]byte, error) {
	addrBytes := m.ChangeAddressVal.Bytes()
	if len(addrBytes) == 0 {
		return nil, errors.New("mock wallet has no change address")
	}
	return addrBytes, nil
}

func (m *MockWallet) GetRewardAddresses(ctx context.Context) ([][]byte, error) {
	return addressBytes(m.RewardAddressesVal), nil
}

// SignTx returns a witness set containing a vkey witness over the transaction body for
// each of SigningKeys
func (m *MockWallet) SignTx(
	ctx context.Context,
	tx []byte,
	partialSign bool,
) ([]byte, error) {
	m.SignTxCalls++
	if m.SignTxFunc != nil {
		return m.SignTxFunc(ctx, tx, partialSign)
	}
	parts, err := ledger.DecodeTransactionParts(tx)
	if err != nil {
		return nil, wallet.TxSignError{
			Code: wallet.TxSignErrorProofGeneration,
			Info: err.Error(),
		}
	}
	bodyHash, err := parts.BodyHash()
	if err != nil {
		return nil, err
	}
	witnessSet := ledger.WitnessSet{
		VkeyWitnesses: SignBody(bodyHash, m.SigningKeys...),
	}
	return cbor.Encode(&witnessSet)
}

func (m *MockWallet) SignData(
	ctx context.Context,
	address []byte,
	payload []byte,
) (wallet.DataSignature, error) {
	if m.SignDataFunc != nil {
		return m.SignDataFunc(ctx, address, payload)
	}
	if len(m.SigningKeys) == 0 {
		return wallet.DataSignature{}, wallet.TxSignError{
			Code: wallet.TxSignErrorProofGeneration,
			Info: "no signing keys",
		}
	}
	key := m.SigningKeys[0]
	return wallet.DataSignature{
		Signature: ed25519.Sign(key, payload),
		Key:       key.Public().(ed25519.PublicKey),
	}, nil
}

func (m *MockWallet) SubmitTx(ctx context.Context, tx []byte) (string, error) {
	if m.SubmitTxFunc != nil {
		return m.SubmitTxFunc(ctx, tx)
	}
	parts, err := ledger.DecodeTransactionParts(tx)
	if err != nil {
		return "", err
	}
	txHash, err := parts.BodyHash()
	if err != nil {
		return "", err
	}
	return txHash.String(), nil
}

// SignBody returns a vkey witness over the body hash for each of the provided keys
func SignBody(bodyHash ledger.Blake2b256, keys ...ed25519.PrivateKey) []ledger.VkeyWitness {
	ret := make([]ledger.VkeyWitness, 0, len(keys))
	for _, key := range keys {
		ret = append(
			ret,
			ledger.VkeyWitness{
				Vkey:      key.Public().(ed25519.PublicKey),
				Signature: ed25519.Sign(key, bodyHash.Bytes()),
			},
		)
	}
	return ret
}

func encodeUtxos(utxos []ledger.UTxO) ([][]byte, error) {
	ret := make([][]byte, 0, len(utxos))
	for _, utxo := range utxos {
		utxoCbor, err := cbor.Encode(&utxo)
		if err != nil {
			return nil, err
		}
		ret = append(ret, utxoCbor)
	}
	return ret, nil
}

func addressBytes(addrs []ledger.Address) [][]byte {
	ret := make([][]byte, 0, len(addrs))
	for _, addr := range addrs {
		ret = append(ret, addr.Bytes())
	}
	return ret
}
