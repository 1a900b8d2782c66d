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
	"slices"

	"github.com/blinklabs-io/txcompose/cbor"
)

// EncodePlutusData encodes datums as the witness set array form
func EncodePlutusData(datums []Datum) ([]byte, error) {
	if datums == nil {
		datums = []Datum{}
	}
	return cbor.Encode(datums)
}

// ScriptDataHash computes the hash binding the redeemers, the datums and the cost models
// of the used Plutus versions into the transaction body. The datums are left out of the
// preimage when there are none
func ScriptDataHash(
	redeemers []Redeemer,
	datums []Datum,
	costModels map[PlutusVersion][]int64,
	versions []PlutusVersion,
) (Blake2b256, error) {
	redeemersCbor, err := EncodeRedeemers(redeemers)
	if err != nil {
		return Blake2b256{}, EncodingError{Entity: "redeemers", Err: err}
	}
	languageViews, err := encodeLanguageViews(costModels, versions)
	if err != nil {
		return Blake2b256{}, err
	}
	preimage := bytes.NewBuffer(nil)
	preimage.Write(redeemersCbor)
	if len(datums) > 0 {
		datumsCbor, err := EncodePlutusData(datums)
		if err != nil {
			return Blake2b256{}, EncodingError{Entity: "plutus data", Err: err}
		}
		preimage.Write(datumsCbor)
	}
	preimage.Write(languageViews)
	return Blake2b256Hash(preimage.Bytes()), nil
}

type languageView struct {
	key   []byte
	value []byte
}

func encodeLanguageViews(
	costModels map[PlutusVersion][]int64,
	versions []PlutusVersion,
) ([]byte, error) {
	views := make([]languageView, 0, len(versions))
	seen := map[PlutusVersion]bool{}
	for _, version := range versions {
		if seen[version] {
			continue
		}
		seen[version] = true
		costModel, ok := costModels[version]
		if !ok {
			return nil, MissingCostModelError{Version: version}
		}
		view, err := encodeLanguageView(version, costModel)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	// Canonical ordering: shorter keys first, then bytewise
	slices.SortFunc(views, func(a, b languageView) int {
		if c := cmp.Compare(len(a.key), len(b.key)); c != 0 {
			return c
		}
		return bytes.Compare(a.key, b.key)
	})
	keys := make([]cbor.RawMessage, 0, len(views))
	values := make([]cbor.RawMessage, 0, len(views))
	for _, view := range views {
		keys = append(keys, view.key)
		values = append(values, view.value)
	}
	return cbor.EncodeMapRaw(keys, values)
}

func encodeLanguageView(version PlutusVersion, costModel []int64) (languageView, error) {
	if version == PlutusV1 {
		// PlutusV1 keeps the original encoding quirks: the language ID is double
		// encoded and the cost model is an indefinite-length list wrapped in a bytestring
		keyCbor, err := cbor.Encode([]byte{0x00})
		if err != nil {
			return languageView{}, EncodingError{Entity: "language view", Err: err}
		}
		tmpList := make(cbor.IndefLengthList, 0, len(costModel))
		for _, v := range costModel {
			tmpList = append(tmpList, v)
		}
		listCbor, err := cbor.Encode(tmpList)
		if err != nil {
			return languageView{}, EncodingError{Entity: "language view", Err: err}
		}
		valueCbor, err := cbor.Encode(listCbor)
		if err != nil {
			return languageView{}, EncodingError{Entity: "language view", Err: err}
		}
		return languageView{key: keyCbor, value: valueCbor}, nil
	}
	keyCbor, err := cbor.Encode(version.LanguageId())
	if err != nil {
		return languageView{}, EncodingError{Entity: "language view", Err: err}
	}
	if costModel == nil {
		costModel = []int64{}
	}
	valueCbor, err := cbor.Encode(costModel)
	if err != nil {
		return languageView{}, EncodingError{Entity: "language view", Err: err}
	}
	return languageView{key: keyCbor, value: valueCbor}, nil
}
