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

package ledger

import (
	"bytes"
	"testing"

	"github.com/blinklabs-io/txcompose/cbor"
	"github.com/blinklabs-io/txcompose/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTransaction(t *testing.T) *Transaction {
	t.Helper()
	ttl := uint64(1234)
	signer := NewBlake2b224(test.RepeatByte(0x05, Blake2b224Size))
	script, err := NewPlutusScript(PlutusV2, test.DecodeHexString("4e4d01000033222220051200120011"))
	require.NoError(t, err)
	tx := &Transaction{
		Body: TransactionBody{
			Inputs: []TxInput{
				{TxId: NewBlake2b256(test.RepeatByte(0x01, Blake2b256Size)), OutputIndex: 0},
			},
			Outputs: []TxOutput{
				{Address: testEnterpriseAddress(t), Amount: Value{Coin: 2000000}},
			},
			Fee:             170000,
			Ttl:             &ttl,
			RequiredSigners: []AddrKeyHash{signer},
		},
		WitnessSet: WitnessSet{
			Redeemers: []Redeemer{
				{Data: DefaultDatum(), ExUnits: DefaultRedeemerBudget},
			},
		},
		IsValid: true,
	}
	tx.WitnessSet.AddScript(script)
	// Duplicates are ignored
	tx.WitnessSet.AddScript(script)
	return tx
}

func TestTransactionRoundTrip(t *testing.T) {
	tx := testTransaction(t)
	require.Len(t, tx.WitnessSet.PlutusV2Scripts, 1)
	txCbor, err := tx.MarshalCBOR()
	require.NoError(t, err)
	// [body, witness_set, is_valid, aux_data]
	assert.Equal(t, cbor.CborTypeArray|4, txCbor[0])

	var decoded Transaction
	require.NoError(t, decoded.UnmarshalCBOR(txCbor))
	assert.True(t, decoded.IsValid)
	assert.Nil(t, decoded.AuxiliaryData)
	assert.Equal(t, uint64(170000), decoded.Body.Fee)
	require.NotNil(t, decoded.Body.Ttl)
	assert.Equal(t, uint64(1234), *decoded.Body.Ttl)
	assert.Equal(t, tx.Body.RequiredSigners, decoded.Body.RequiredSigners)
	require.Len(t, decoded.WitnessSet.Redeemers, 1)
	assert.Equal(t, DefaultRedeemerBudget.Memory, decoded.WitnessSet.Redeemers[0].ExUnits.Memory)

	// Re-encoding a decoded transaction gives the same bytes
	reencoded, err := decoded.MarshalCBOR()
	require.NoError(t, err)
	assert.Equal(t, txCbor, reencoded)

	origHash, err := tx.Body.Hash()
	require.NoError(t, err)
	decodedHash, err := decoded.Body.Hash()
	require.NoError(t, err)
	assert.Equal(t, origHash, decodedHash)
}

func TestTransactionParts(t *testing.T) {
	tx := testTransaction(t)
	tx.AuxiliaryData = cbor.RawMessage{0xa0}
	txCbor, err := tx.MarshalCBOR()
	require.NoError(t, err)
	parts, err := DecodeTransactionParts(txCbor)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xf5}, []byte(parts.IsValid))
	assert.Equal(t, []byte{0xa0}, []byte(parts.AuxiliaryData))
	assert.True(t, bytes.Equal(txCbor, parts.Encode()))

	bodyHash, err := parts.BodyHash()
	require.NoError(t, err)
	expectedHash, err := tx.Body.Hash()
	require.NoError(t, err)
	assert.Equal(t, expectedHash, bodyHash)

	// Pre-Alonzo transactions have no is_valid flag
	legacy := cbor.EncodeArrayRaw([]cbor.RawMessage{parts.Body, parts.WitnessSet, {0xf6}})
	legacyParts, err := DecodeTransactionParts(legacy)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xf5}, []byte(legacyParts.IsValid))

	_, err = DecodeTransactionParts([]byte{0x81, 0x01})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResolveTxHash(t *testing.T) {
	tx := testTransaction(t)
	bodyCbor, err := tx.Body.MarshalCBOR()
	require.NoError(t, err)
	txHash, err := ResolveTxHash(bodyCbor)
	require.NoError(t, err)
	assert.Equal(t, Blake2b256Hash(bodyCbor).String(), txHash)

	_, err = ResolveTxHash([]byte{0x01})
	assert.ErrorIs(t, err, ErrValidation)
}
