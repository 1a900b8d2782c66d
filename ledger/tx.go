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
	"errors"
	"fmt"

	"github.com/blinklabs-io/txcompose/cbor"
)

const (
	WitnessSetKeyVkeyWitnesses   = 0
	WitnessSetKeyPlutusV1Scripts = 3
	WitnessSetKeyPlutusData      = 4
	WitnessSetKeyRedeemers       = 5
	WitnessSetKeyPlutusV2Scripts = 6
	WitnessSetKeyPlutusV3Scripts = 7
)

type TransactionBody struct {
	cbor.DecodeStoreCbor
	Inputs          []TxInput     `cbor:"0,keyasint"`
	Outputs         []TxOutput    `cbor:"1,keyasint"`
	Fee             uint64        `cbor:"2,keyasint"`
	Ttl             *uint64       `cbor:"3,keyasint,omitempty"`
	AuxDataHash     *Blake2b256   `cbor:"7,keyasint,omitempty"`
	ScriptDataHash  *Blake2b256   `cbor:"11,keyasint,omitempty"`
	Collateral      []TxInput     `cbor:"13,keyasint,omitempty"`
	RequiredSigners []AddrKeyHash `cbor:"14,keyasint,omitempty"`
}

func (b *TransactionBody) UnmarshalCBOR(cborData []byte) error {
	type tTransactionBody TransactionBody
	var tmp tTransactionBody
	if _, err := cbor.Decode(cborData, &tmp); err != nil {
		return err
	}
	*b = TransactionBody(tmp)
	b.SetCbor(cborData)
	return nil
}

func (b *TransactionBody) MarshalCBOR() ([]byte, error) {
	if cborData := b.Cbor(); cborData != nil {
		return cborData, nil
	}
	type tTransactionBody TransactionBody
	tmp := tTransactionBody(*b)
	return cbor.Encode(&tmp)
}

// Hash returns the transaction ID, which is the Blake2b-256 hash of the body CBOR
func (b *TransactionBody) Hash() (Blake2b256, error) {
	cborData, err := b.MarshalCBOR()
	if err != nil {
		return Blake2b256{}, EncodingError{Entity: "transaction body", Err: err}
	}
	return Blake2b256Hash(cborData), nil
}

// VkeyWitness is a signature along with the verification key that produced it
type VkeyWitness struct {
	cbor.StructAsArray
	Vkey      []byte
	Signature []byte
}

type WitnessSet struct {
	VkeyWitnesses   []VkeyWitness `cbor:"0,keyasint,omitempty"`
	PlutusV1Scripts [][]byte      `cbor:"3,keyasint,omitempty"`
	PlutusData      []Datum       `cbor:"4,keyasint,omitempty"`
	Redeemers       []Redeemer    `cbor:"5,keyasint,omitempty"`
	PlutusV2Scripts [][]byte      `cbor:"6,keyasint,omitempty"`
	PlutusV3Scripts [][]byte      `cbor:"7,keyasint,omitempty"`
}

// AddScript adds a Plutus script to the witness set, skipping duplicates
func (w *WitnessSet) AddScript(script PlutusScript) {
	var target *[][]byte
	switch script.Version {
	case PlutusV1:
		target = &w.PlutusV1Scripts
	case PlutusV2:
		target = &w.PlutusV2Scripts
	default:
		target = &w.PlutusV3Scripts
	}
	for _, existing := range *target {
		if string(existing) == string(script.Bytes) {
			return
		}
	}
	*target = append(*target, script.Bytes)
}

// Transaction is a complete transaction. It's encoded as
// [body, witness_set, is_valid, auxiliary_data / null]
type Transaction struct {
	Body          TransactionBody
	WitnessSet    WitnessSet
	IsValid       bool
	AuxiliaryData cbor.RawMessage
}

func (t *Transaction) MarshalCBOR() ([]byte, error) {
	bodyCbor, err := t.Body.MarshalCBOR()
	if err != nil {
		return nil, EncodingError{Entity: "transaction body", Err: err}
	}
	wsCbor, err := cbor.Encode(&t.WitnessSet)
	if err != nil {
		return nil, EncodingError{Entity: "witness set", Err: err}
	}
	parts := TransactionParts{
		Body:          bodyCbor,
		WitnessSet:    wsCbor,
		IsValid:       cbor.RawMessage{0xf4},
		AuxiliaryData: t.AuxiliaryData,
	}
	if t.IsValid {
		parts.IsValid = cbor.RawMessage{0xf5}
	}
	return parts.Encode(), nil
}

func (t *Transaction) UnmarshalCBOR(cborData []byte) error {
	parts, err := DecodeTransactionParts(cborData)
	if err != nil {
		return err
	}
	if _, err := cbor.Decode(parts.Body, &t.Body); err != nil {
		return err
	}
	if _, err := cbor.Decode(parts.WitnessSet, &t.WitnessSet); err != nil {
		return err
	}
	if _, err := cbor.Decode(parts.IsValid, &t.IsValid); err != nil {
		return err
	}
	t.AuxiliaryData = nil
	if !cbor.IsNull(parts.AuxiliaryData) {
		t.AuxiliaryData = parts.AuxiliaryData
	}
	return nil
}

// TransactionParts holds the undecoded top-level items of a transaction, so that parts can
// be replaced without re-encoding the others
type TransactionParts struct {
	Body          cbor.RawMessage
	WitnessSet    cbor.RawMessage
	IsValid       cbor.RawMessage
	AuxiliaryData cbor.RawMessage
}

// DecodeTransactionParts splits a transaction into its top-level items. Pre-Alonzo
// transactions without the is_valid flag are accepted and reported as valid
func DecodeTransactionParts(cborData []byte) (TransactionParts, error) {
	var items []cbor.RawMessage
	if _, err := cbor.Decode(cborData, &items); err != nil {
		return TransactionParts{}, newValidationError("transaction", "", err)
	}
	switch len(items) {
	case 3:
		return TransactionParts{
			Body:          items[0],
			WitnessSet:    items[1],
			IsValid:       cbor.RawMessage{0xf5},
			AuxiliaryData: items[2],
		}, nil
	case 4:
		return TransactionParts{
			Body:          items[0],
			WitnessSet:    items[1],
			IsValid:       items[2],
			AuxiliaryData: items[3],
		}, nil
	default:
		return TransactionParts{}, newValidationError(
			"transaction",
			"",
			fmt.Errorf("unexpected item count: %d", len(items)),
		)
	}
}

// Encode reassembles the transaction from its parts
func (p TransactionParts) Encode() []byte {
	aux := p.AuxiliaryData
	if len(aux) == 0 {
		aux = cbor.RawMessage{cbor.CborNull}
	}
	return cbor.EncodeArrayRaw(
		[]cbor.RawMessage{p.Body, p.WitnessSet, p.IsValid, aux},
	)
}

// BodyHash returns the transaction ID for the raw body
func (p TransactionParts) BodyHash() (Blake2b256, error) {
	if len(p.Body) == 0 {
		return Blake2b256{}, errors.New("transaction has no body")
	}
	return Blake2b256Hash(p.Body), nil
}
