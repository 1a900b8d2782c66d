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
	"encoding/hex"

	"github.com/blinklabs-io/plutigo/data"
	"github.com/blinklabs-io/txcompose/cbor"
)

// Datum represents a Plutus datum or redeemer payload
type Datum struct {
	cbor.DecodeStoreCbor
	Data data.PlutusData
}

// NewDatum wraps the provided Plutus data
func NewDatum(pd data.PlutusData) Datum {
	return Datum{Data: pd}
}

// DefaultDatum returns the empty constructor (Constr 0 []), which is used when no datum
// or redeemer data is provided
func DefaultDatum() Datum {
	return Datum{Data: data.NewConstr(0)}
}

// NewDatumFromCbor decodes a datum from its CBOR representation
func NewDatumFromCbor(cborData []byte) (Datum, error) {
	var ret Datum
	if err := ret.UnmarshalCBOR(cborData); err != nil {
		return Datum{}, newValidationError("datum", hex.EncodeToString(cborData), err)
	}
	return ret, nil
}

func (d *Datum) UnmarshalCBOR(cborData []byte) error {
	tmpData, err := data.Decode(cborData)
	if err != nil {
		return err
	}
	d.SetCbor(cborData)
	d.Data = tmpData
	return nil
}

func (d Datum) MarshalCBOR() ([]byte, error) {
	if cborData := d.Cbor(); cborData != nil {
		return cborData, nil
	}
	if d.Data == nil {
		return data.Encode(data.NewConstr(0))
	}
	return data.Encode(d.Data)
}

// Hash returns the Blake2b-256 hash of the datum CBOR
func (d Datum) Hash() (DatumHash, error) {
	cborData, err := d.MarshalCBOR()
	if err != nil {
		return DatumHash{}, EncodingError{Entity: "datum", Err: err}
	}
	return Blake2b256Hash(cborData), nil
}
