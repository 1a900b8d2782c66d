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

package cbor

import (
	"bytes"
	"errors"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
)

var (
	cachedEncMode     _cbor.EncMode
	cachedEncModeErr  error
	cachedEncModeOnce sync.Once
)

func getEncMode() (_cbor.EncMode, error) {
	cachedEncModeOnce.Do(func() {
		opts := _cbor.EncOptions{
			// Make sure that maps have ordered keys
			Sort: _cbor.SortCoreDeterministic,
		}
		cachedEncMode, cachedEncModeErr = opts.EncMode()
	})
	return cachedEncMode, cachedEncModeErr
}

// Encode encodes the provided object to deterministic CBOR
func Encode(data any) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	em, err := getEncMode()
	if err != nil {
		return nil, err
	}
	enc := em.NewEncoder(buf)
	err = enc.Encode(data)
	return buf.Bytes(), err
}

// IndefLengthList is encoded as an indefinite-length CBOR array
type IndefLengthList []any

func (i IndefLengthList) MarshalCBOR() ([]byte, error) {
	ret := []byte{
		// Start indefinite-length list
		0x9f,
	}
	for _, item := range []any(i) {
		data, err := Encode(&item)
		if err != nil {
			return nil, err
		}
		ret = append(ret, data...)
	}
	ret = append(
		ret,
		// End indefinite length array
		byte(0xff),
	)
	return ret, nil
}

// EncodeMapRaw encodes a map whose keys and values are already CBOR encoded. Entries are
// written in the order given, so callers are responsible for key ordering
func EncodeMapRaw(keys []RawMessage, values []RawMessage) ([]byte, error) {
	if len(keys) != len(values) {
		return nil, errors.New("map key and value counts differ")
	}
	ret := encodeHead(CborTypeMap, uint64(len(keys)))
	for idx := range keys {
		ret = append(ret, keys[idx]...)
		ret = append(ret, values[idx]...)
	}
	return ret, nil
}

// EncodeArrayRaw encodes a definite-length array from already encoded items
func EncodeArrayRaw(items []RawMessage) []byte {
	ret := encodeHead(CborTypeArray, uint64(len(items)))
	for _, item := range items {
		ret = append(ret, item...)
	}
	return ret
}

func encodeHead(majorType uint8, length uint64) []byte {
	switch {
	case length <= uint64(CborMaxUintSimple):
		return []byte{majorType | uint8(length)}
	case length <= 0xff:
		return []byte{majorType | 24, uint8(length)}
	case length <= 0xffff:
		return []byte{majorType | 25, uint8(length >> 8), uint8(length)}
	case length <= 0xffffffff:
		return []byte{
			majorType | 26,
			uint8(length >> 24), uint8(length >> 16),
			uint8(length >> 8), uint8(length),
		}
	default:
		return []byte{
			majorType | 27,
			uint8(length >> 56), uint8(length >> 48),
			uint8(length >> 40), uint8(length >> 32),
			uint8(length >> 24), uint8(length >> 16),
			uint8(length >> 8), uint8(length),
		}
	}
}
