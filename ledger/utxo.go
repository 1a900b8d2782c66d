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
	"cmp"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/blinklabs-io/txcompose/cbor"
)

// TxInput references an output of a previous transaction
type TxInput struct {
	cbor.StructAsArray
	TxId        Blake2b256
	OutputIndex uint32
}

// NewTxInput returns a TxInput for the provided hex transaction ID and output index
func NewTxInput(txId string, outputIndex uint32) (TxInput, error) {
	txIdBytes, err := hex.DecodeString(txId)
	if err != nil {
		return TxInput{}, newValidationError("transaction ID", txId, err)
	}
	if len(txIdBytes) != Blake2b256Size {
		return TxInput{}, newValidationError(
			"transaction ID",
			txId,
			fmt.Errorf("expected %d bytes, got %d", Blake2b256Size, len(txIdBytes)),
		)
	}
	return TxInput{
		TxId:        NewBlake2b256(txIdBytes),
		OutputIndex: outputIndex,
	}, nil
}

func (i TxInput) String() string {
	return i.TxId.String() + "#" + strconv.FormatUint(uint64(i.OutputIndex), 10)
}

// Compare orders inputs by transaction ID and then output index, which is the order a
// transaction body lists them in
func (i TxInput) Compare(other TxInput) int {
	if c := bytes.Compare(i.TxId[:], other.TxId[:]); c != 0 {
		return c
	}
	return cmp.Compare(i.OutputIndex, other.OutputIndex)
}

// TxOutput is a transaction output. Outputs built locally use the legacy array encoding
// while decoded outputs keep the CBOR they were decoded from
type TxOutput struct {
	cbor.DecodeStoreCbor
	Address   Address
	Amount    Value
	DatumHash *DatumHash
	// Only populated for outputs decoded from the post-Alonzo map form
	InlineDatum cbor.RawMessage
	ScriptRef   cbor.RawMessage
}

type txOutputMap struct {
	Address     Address         `cbor:"0,keyasint"`
	Amount      Value           `cbor:"1,keyasint"`
	DatumOption cbor.RawMessage `cbor:"2,keyasint,omitempty"`
	ScriptRef   cbor.RawMessage `cbor:"3,keyasint,omitempty"`
}

type datumOption struct {
	cbor.StructAsArray
	Type    uint
	Content cbor.RawMessage
}

const (
	datumOptionTypeHash   = 0
	datumOptionTypeInline = 1
)

func (o *TxOutput) UnmarshalCBOR(data []byte) error {
	switch cbor.MajorType(data) {
	case cbor.CborTypeArray:
		var items []cbor.RawMessage
		if _, err := cbor.Decode(data, &items); err != nil {
			return err
		}
		if len(items) < 2 || len(items) > 3 {
			return fmt.Errorf("unexpected transaction output length: %d", len(items))
		}
		if _, err := cbor.Decode(items[0], &o.Address); err != nil {
			return err
		}
		if _, err := cbor.Decode(items[1], &o.Amount); err != nil {
			return err
		}
		if len(items) == 3 {
			var tmpHash DatumHash
			if _, err := cbor.Decode(items[2], &tmpHash); err != nil {
				return err
			}
			o.DatumHash = &tmpHash
		}
	case cbor.CborTypeMap:
		var tmp txOutputMap
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return err
		}
		o.Address = tmp.Address
		o.Amount = tmp.Amount
		o.ScriptRef = tmp.ScriptRef
		if len(tmp.DatumOption) > 0 {
			var opt datumOption
			if _, err := cbor.Decode(tmp.DatumOption, &opt); err != nil {
				return err
			}
			switch opt.Type {
			case datumOptionTypeHash:
				var tmpHash DatumHash
				if _, err := cbor.Decode(opt.Content, &tmpHash); err != nil {
					return err
				}
				o.DatumHash = &tmpHash
			case datumOptionTypeInline:
				o.InlineDatum = opt.Content
			default:
				return fmt.Errorf("unknown datum option type: %d", opt.Type)
			}
		}
	default:
		return errors.New("unexpected CBOR type for transaction output")
	}
	o.SetCbor(data)
	return nil
}

func (o TxOutput) MarshalCBOR() ([]byte, error) {
	if cborData := o.Cbor(); cborData != nil {
		return cborData, nil
	}
	if o.InlineDatum != nil || o.ScriptRef != nil {
		tmp := txOutputMap{
			Address:   o.Address,
			Amount:    o.Amount,
			ScriptRef: o.ScriptRef,
		}
		switch {
		case o.InlineDatum != nil:
			optCbor, err := cbor.Encode(&datumOption{Type: datumOptionTypeInline, Content: o.InlineDatum})
			if err != nil {
				return nil, err
			}
			tmp.DatumOption = optCbor
		case o.DatumHash != nil:
			hashCbor, err := o.DatumHash.MarshalCBOR()
			if err != nil {
				return nil, err
			}
			optCbor, err := cbor.Encode(&datumOption{Type: datumOptionTypeHash, Content: hashCbor})
			if err != nil {
				return nil, err
			}
			tmp.DatumOption = optCbor
		}
		return cbor.Encode(&tmp)
	}
	tmp := []any{o.Address, o.Amount}
	if o.DatumHash != nil {
		tmp = append(tmp, *o.DatumHash)
	}
	return cbor.Encode(tmp)
}

// Clone returns a copy of the output that does not share memory with the original
func (o TxOutput) Clone() TxOutput {
	ret := TxOutput{
		Address:     o.Address,
		Amount:      o.Amount.Clone(),
		InlineDatum: bytes.Clone(o.InlineDatum),
		ScriptRef:   bytes.Clone(o.ScriptRef),
	}
	if o.DatumHash != nil {
		tmpHash := *o.DatumHash
		ret.DatumHash = &tmpHash
	}
	ret.SetCbor(o.Cbor())
	return ret
}

// UTxO is an unspent transaction output along with its reference
type UTxO struct {
	cbor.StructAsArray
	Input  TxInput
	Output TxOutput
}

// NewUTxOFromCbor decodes a UTxO from its CBOR representation ([input, output])
func NewUTxOFromCbor(data []byte) (UTxO, error) {
	var ret UTxO
	if _, err := cbor.Decode(data, &ret); err != nil {
		return UTxO{}, newValidationError("UTxO", hex.EncodeToString(data), err)
	}
	return ret, nil
}

// Clone returns a copy of the UTxO that does not share memory with the original
func (u UTxO) Clone() UTxO {
	return UTxO{
		Input:  u.Input,
		Output: u.Output.Clone(),
	}
}

func (u UTxO) String() string {
	return u.Input.String()
}

// SumValue returns the total value of the provided UTxOs
func SumValue(utxos []UTxO) Value {
	var ret Value
	for _, utxo := range utxos {
		ret = ret.Add(utxo.Output.Amount)
	}
	return ret
}

// FormatInputs returns a compact representation of the inputs of the provided UTxOs
func FormatInputs(utxos []UTxO) string {
	tmp := make([]string, 0, len(utxos))
	for _, utxo := range utxos {
		tmp = append(tmp, utxo.Input.String())
	}
	return strings.Join(tmp, ",")
}
