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
	"encoding/hex"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/blinklabs-io/txcompose/cbor"
)

const (
	// LovelaceUnit is the unit name used for the native currency
	LovelaceUnit = "lovelace"

	// MaxAssetNameLength is the maximum length of an asset name in bytes
	MaxAssetNameLength = 32
)

// ErrValueUnderflow is returned when subtracting a larger value from a smaller one
var ErrValueUnderflow = errors.New("value underflow")

// Asset is a quantity of a single unit. The unit is either LovelaceUnit or the
// hex-encoded policy ID followed by the hex-encoded asset name
type Asset struct {
	Unit     string `json:"unit"`
	Quantity uint64 `json:"quantity,string"`
}

// ParseUnit splits an asset unit into its policy ID and asset name
func ParseUnit(unit string) (PolicyId, []byte, error) {
	if unit == LovelaceUnit || unit == "" {
		return PolicyId{}, nil, newValidationError(
			"asset unit",
			unit,
			errors.New("native currency has no policy"),
		)
	}
	unitBytes, err := hex.DecodeString(unit)
	if err != nil {
		return PolicyId{}, nil, newValidationError("asset unit", unit, err)
	}
	if len(unitBytes) < Blake2b224Size {
		return PolicyId{}, nil, newValidationError(
			"asset unit",
			unit,
			errors.New("policy ID too short"),
		)
	}
	assetName := unitBytes[Blake2b224Size:]
	if len(assetName) > MaxAssetNameLength {
		return PolicyId{}, nil, newValidationError(
			"asset unit",
			unit,
			fmt.Errorf("asset name longer than %d bytes", MaxAssetNameLength),
		)
	}
	return NewBlake2b224(unitBytes[:Blake2b224Size]), assetName, nil
}

// AssetUnit builds the unit string for the provided policy ID and asset name
func AssetUnit(policyId PolicyId, assetName []byte) string {
	return policyId.String() + hex.EncodeToString(assetName)
}

// MultiAsset holds non-native asset quantities by policy ID and asset name
type MultiAsset map[PolicyId]map[AssetName]uint64

// Quantity returns the quantity of the specified asset
func (m MultiAsset) Quantity(policyId PolicyId, assetName []byte) uint64 {
	policy, ok := m[policyId]
	if !ok {
		return 0
	}
	return policy[NewAssetName(assetName)]
}

func (m MultiAsset) set(policyId PolicyId, assetName AssetName, quantity uint64) MultiAsset {
	if quantity == 0 {
		if policy, ok := m[policyId]; ok {
			delete(policy, assetName)
			if len(policy) == 0 {
				delete(m, policyId)
			}
		}
		return m
	}
	if m == nil {
		m = MultiAsset{}
	}
	if _, ok := m[policyId]; !ok {
		m[policyId] = make(map[AssetName]uint64)
	}
	m[policyId][assetName] = quantity
	return m
}

// Clone returns a deep copy of the multi-asset with zero quantities removed
func (m MultiAsset) Clone() MultiAsset {
	var ret MultiAsset
	for policyId, assets := range m {
		for assetName, quantity := range assets {
			ret = ret.set(policyId, assetName, quantity)
		}
	}
	return ret
}

// Policies returns the policy IDs in bytewise order
func (m MultiAsset) Policies() []PolicyId {
	ret := slices.Collect(maps.Keys(m))
	slices.SortFunc(
		ret,
		func(a, b PolicyId) int { return bytes.Compare(a.Bytes(), b.Bytes()) },
	)
	return ret
}

// AssetNames returns the names of the assets under a policy in bytewise order
func (m MultiAsset) AssetNames(policyId PolicyId) [][]byte {
	names := slices.Collect(maps.Keys(m[policyId]))
	slices.SortFunc(
		names,
		AssetName.Compare,
	)
	ret := make([][]byte, 0, len(names))
	for _, name := range names {
		ret = append(ret, name.Bytes())
	}
	return ret
}

// Value is an amount of lovelace with an optional bundle of non-native assets
type Value struct {
	Coin   uint64
	Assets MultiAsset
}

type valueArray struct {
	cbor.StructAsArray
	Coin   uint64
	Assets MultiAsset
}

func (v *Value) UnmarshalCBOR(data []byte) error {
	switch cbor.MajorType(data) {
	case cbor.CborTypeUnsigned:
		var coin uint64
		if _, err := cbor.Decode(data, &coin); err != nil {
			return err
		}
		v.Coin = coin
		v.Assets = nil
	case cbor.CborTypeArray:
		var tmp valueArray
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return err
		}
		v.Coin = tmp.Coin
		v.Assets = tmp.Assets.Clone()
	default:
		return fmt.Errorf("unexpected CBOR type for value: %#x", cbor.MajorType(data))
	}
	return nil
}

func (v Value) MarshalCBOR() ([]byte, error) {
	assets := v.Assets.Clone()
	if len(assets) == 0 {
		return cbor.Encode(v.Coin)
	}
	return cbor.Encode(&valueArray{Coin: v.Coin, Assets: assets})
}

// Clone returns a deep copy of the value
func (v Value) Clone() Value {
	return Value{Coin: v.Coin, Assets: v.Assets.Clone()}
}

// IsZero returns whether the value holds nothing at all
func (v Value) IsZero() bool {
	return v.Coin == 0 && !v.HasAssets()
}

// HasAssets returns whether the value holds any non-zero non-native asset
func (v Value) HasAssets() bool {
	return v.AssetCount() > 0
}

// AssetCount returns the number of distinct non-native assets with a non-zero quantity
func (v Value) AssetCount() int {
	ret := 0
	for _, assets := range v.Assets {
		for _, quantity := range assets {
			if quantity > 0 {
				ret++
			}
		}
	}
	return ret
}

// Add returns the sum of both values
func (v Value) Add(other Value) Value {
	ret := v.Clone()
	ret.Coin += other.Coin
	for policyId, assets := range other.Assets {
		for assetName, quantity := range assets {
			ret.Assets = ret.Assets.set(
				policyId,
				assetName,
				ret.Assets.Quantity(policyId, assetName.Bytes())+quantity,
			)
		}
	}
	return ret
}

// Sub returns the difference of both values. It fails with ErrValueUnderflow if any
// component of other is larger than the same component of v
func (v Value) Sub(other Value) (Value, error) {
	if !v.Covers(other) {
		return Value{}, ErrValueUnderflow
	}
	return v.SaturatingSub(other), nil
}

// SaturatingSub returns the difference of both values, clamping every component at zero
func (v Value) SaturatingSub(other Value) Value {
	ret := v.Clone()
	if other.Coin >= ret.Coin {
		ret.Coin = 0
	} else {
		ret.Coin -= other.Coin
	}
	for policyId, assets := range other.Assets {
		for assetName, quantity := range assets {
			existing := ret.Assets.Quantity(policyId, assetName.Bytes())
			if quantity >= existing {
				existing = 0
			} else {
				existing -= quantity
			}
			ret.Assets = ret.Assets.set(policyId, assetName, existing)
		}
	}
	return ret
}

// Covers returns whether every component of v is at least the same component of other
func (v Value) Covers(other Value) bool {
	if v.Coin < other.Coin {
		return false
	}
	for policyId, assets := range other.Assets {
		for assetName, quantity := range assets {
			if v.Assets.Quantity(policyId, assetName.Bytes()) < quantity {
				return false
			}
		}
	}
	return true
}

// Equal returns whether both values hold the same quantities
func (v Value) Equal(other Value) bool {
	return v.Covers(other) && other.Covers(v)
}

// ToAssets returns the value as a list of assets, starting with lovelace and followed by
// the non-native assets ordered by unit
func (v Value) ToAssets() []Asset {
	ret := []Asset{{Unit: LovelaceUnit, Quantity: v.Coin}}
	for _, policyId := range v.Assets.Policies() {
		for _, assetName := range v.Assets.AssetNames(policyId) {
			ret = append(
				ret,
				Asset{
					Unit:     AssetUnit(policyId, assetName),
					Quantity: v.Assets.Quantity(policyId, assetName),
				},
			)
		}
	}
	return ret
}

func (v Value) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d lovelace", v.Coin)
	for _, asset := range v.ToAssets()[1:] {
		fmt.Fprintf(&sb, " + %d %s", asset.Quantity, asset.Unit)
	}
	return sb.String()
}

// ValueFromAssets builds a value from a list of assets. Quantities for repeated units
// are summed
func ValueFromAssets(assets []Asset) (Value, error) {
	var ret Value
	for _, asset := range assets {
		if asset.Unit == LovelaceUnit {
			ret.Coin += asset.Quantity
			continue
		}
		policyId, assetName, err := ParseUnit(asset.Unit)
		if err != nil {
			return Value{}, err
		}
		ret.Assets = ret.Assets.set(
			policyId,
			NewAssetName(assetName),
			ret.Assets.Quantity(policyId, assetName)+asset.Quantity,
		)
	}
	return ret, nil
}
