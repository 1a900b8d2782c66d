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
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math/big"
	"slices"
	"strings"

	"github.com/blinklabs-io/txcompose/cbor"
)

// MaxMetadataStringLength is the maximum length of a metadata text or bytes value
const MaxMetadataStringLength = 64

type TransactionMetadatum interface {
	isTransactionMetadatum()
	TypeName() string
}

type MetaInt struct{ Value *big.Int }

type MetaBytes struct{ Value []byte }

type MetaText struct{ Value string }

type MetaList struct {
	Items []TransactionMetadatum
}

type MetaPair struct {
	Key   TransactionMetadatum
	Value TransactionMetadatum
}

type MetaMap struct {
	Pairs []MetaPair
}

func (MetaInt) isTransactionMetadatum()   {}
func (MetaBytes) isTransactionMetadatum() {}
func (MetaText) isTransactionMetadatum()  {}
func (MetaList) isTransactionMetadatum()  {}
func (MetaMap) isTransactionMetadatum()   {}

func (m MetaInt) TypeName() string   { return "int" }
func (m MetaBytes) TypeName() string { return "bytes" }
func (m MetaText) TypeName() string  { return "text" }
func (m MetaList) TypeName() string  { return "list" }
func (m MetaMap) TypeName() string   { return "map" }

// EncodeMetadatum encodes a metadatum to CBOR. Map entries are written in the order they
// were declared
func EncodeMetadatum(md TransactionMetadatum) ([]byte, error) {
	switch v := md.(type) {
	case MetaInt:
		if v.Value == nil {
			return nil, errors.New("metadata integer has no value")
		}
		return cbor.Encode(v.Value)
	case MetaText:
		return cbor.Encode(v.Value)
	case MetaBytes:
		return cbor.Encode(v.Value)
	case MetaList:
		items := make([]cbor.RawMessage, 0, len(v.Items))
		for _, item := range v.Items {
			itemCbor, err := EncodeMetadatum(item)
			if err != nil {
				return nil, err
			}
			items = append(items, itemCbor)
		}
		return cbor.EncodeArrayRaw(items), nil
	case MetaMap:
		keys := make([]cbor.RawMessage, 0, len(v.Pairs))
		values := make([]cbor.RawMessage, 0, len(v.Pairs))
		for _, pair := range v.Pairs {
			keyCbor, err := EncodeMetadatum(pair.Key)
			if err != nil {
				return nil, err
			}
			valueCbor, err := EncodeMetadatum(pair.Value)
			if err != nil {
				return nil, err
			}
			keys = append(keys, keyCbor)
			values = append(values, valueCbor)
		}
		return cbor.EncodeMapRaw(keys, values)
	default:
		return nil, fmt.Errorf("unsupported metadatum type: %T", md)
	}
}

// ParseMetadatumJSON parses a metadatum from JSON using the detailed schema, where every
// value is an object with exactly one of the keys "int", "string", "bytes", "list" or "map"
func ParseMetadatumJSON(jsonData string) (TransactionMetadatum, error) {
	dec := json.NewDecoder(strings.NewReader(jsonData))
	dec.UseNumber()
	var tmp any
	if err := dec.Decode(&tmp); err != nil {
		return nil, newValidationError("metadata", jsonData, err)
	}
	ret, err := metadatumFromJSON(tmp)
	if err != nil {
		return nil, newValidationError("metadata", jsonData, err)
	}
	return ret, nil
}

func metadatumFromJSON(value any) (TransactionMetadatum, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected object, got %T", value)
	}
	if len(obj) != 1 {
		return nil, fmt.Errorf("expected exactly one key, got %d", len(obj))
	}
	for key, inner := range obj {
		switch key {
		case "int":
			num, ok := inner.(json.Number)
			if !ok {
				return nil, fmt.Errorf("int value must be a number, got %T", inner)
			}
			n, ok := new(big.Int).SetString(num.String(), 10)
			if !ok {
				return nil, fmt.Errorf("invalid integer: %s", num.String())
			}
			return MetaInt{Value: n}, nil
		case "string":
			s, ok := inner.(string)
			if !ok {
				return nil, fmt.Errorf("string value must be a string, got %T", inner)
			}
			if len(s) > MaxMetadataStringLength {
				return nil, fmt.Errorf("string longer than %d bytes", MaxMetadataStringLength)
			}
			return MetaText{Value: s}, nil
		case "bytes":
			s, ok := inner.(string)
			if !ok {
				return nil, fmt.Errorf("bytes value must be a hex string, got %T", inner)
			}
			b, err := hex.DecodeString(s)
			if err != nil {
				return nil, err
			}
			if len(b) > MaxMetadataStringLength {
				return nil, fmt.Errorf("bytes longer than %d bytes", MaxMetadataStringLength)
			}
			return MetaBytes{Value: b}, nil
		case "list":
			items, ok := inner.([]any)
			if !ok {
				return nil, fmt.Errorf("list value must be an array, got %T", inner)
			}
			ret := MetaList{Items: make([]TransactionMetadatum, 0, len(items))}
			for _, item := range items {
				md, err := metadatumFromJSON(item)
				if err != nil {
					return nil, err
				}
				ret.Items = append(ret.Items, md)
			}
			return ret, nil
		case "map":
			entries, ok := inner.([]any)
			if !ok {
				return nil, fmt.Errorf("map value must be an array, got %T", inner)
			}
			ret := MetaMap{Pairs: make([]MetaPair, 0, len(entries))}
			for _, entry := range entries {
				entryObj, ok := entry.(map[string]any)
				if !ok || len(entryObj) != 2 {
					return nil, errors.New(`map entries must be objects with "k" and "v" keys`)
				}
				k, kOk := entryObj["k"]
				v, vOk := entryObj["v"]
				if !kOk || !vOk {
					return nil, errors.New(`map entries must be objects with "k" and "v" keys`)
				}
				keyMd, err := metadatumFromJSON(k)
				if err != nil {
					return nil, err
				}
				valueMd, err := metadatumFromJSON(v)
				if err != nil {
					return nil, err
				}
				ret.Pairs = append(ret.Pairs, MetaPair{Key: keyMd, Value: valueMd})
			}
			return ret, nil
		default:
			return nil, fmt.Errorf("unknown metadatum type: %s", key)
		}
	}
	// Not reachable, the map has exactly one key
	return nil, errors.New("empty metadatum")
}

// Metadata is a set of transaction metadata by label
type Metadata map[uint64]TransactionMetadatum

// MarshalCBOR encodes the metadata as a map ordered by label. This is also the auxiliary
// data encoding when a transaction carries nothing but metadata
func (m Metadata) MarshalCBOR() ([]byte, error) {
	labels := slices.Sorted(maps.Keys(m))
	keys := make([]cbor.RawMessage, 0, len(labels))
	values := make([]cbor.RawMessage, 0, len(labels))
	for _, label := range labels {
		keyCbor, err := cbor.Encode(label)
		if err != nil {
			return nil, err
		}
		valueCbor, err := EncodeMetadatum(m[label])
		if err != nil {
			return nil, fmt.Errorf("metadata label %d: %w", label, err)
		}
		keys = append(keys, keyCbor)
		values = append(values, valueCbor)
	}
	return cbor.EncodeMapRaw(keys, values)
}

// AuxiliaryDataHash returns the hash of the encoded auxiliary data
func AuxiliaryDataHash(auxCbor []byte) Blake2b256 {
	return Blake2b256Hash(auxCbor)
}
