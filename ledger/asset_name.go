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
	"fmt"
	"strings"

	"github.com/blinklabs-io/txcompose/cbor"
)

// AssetName is the name of a non-native asset under its policy. It is backed by a
// string so it can key a MultiAsset
type AssetName struct {
	name string
}

func NewAssetName(name []byte) AssetName {
	return AssetName{name: string(name)}
}

func (n *AssetName) UnmarshalCBOR(data []byte) error {
	var tmpName []byte
	if _, err := cbor.Decode(data, &tmpName); err != nil {
		return err
	}
	if len(tmpName) > MaxAssetNameLength {
		return newValidationError(
			"asset name",
			hex.EncodeToString(tmpName),
			fmt.Errorf("asset name longer than %d bytes", MaxAssetNameLength),
		)
	}
	n.name = string(tmpName)
	return nil
}

func (n AssetName) MarshalCBOR() ([]byte, error) {
	return cbor.Encode([]byte(n.name))
}

func (n AssetName) Bytes() []byte {
	return []byte(n.name)
}

// String returns the hex encoded name
func (n AssetName) String() string {
	return hex.EncodeToString([]byte(n.name))
}

func (n AssetName) Compare(other AssetName) int {
	return strings.Compare(n.name, other.name)
}
