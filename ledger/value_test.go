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
	"strings"
	"testing"

	"github.com/blinklabs-io/txcompose/cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPolicyId = NewBlake2b224([]byte(strings.Repeat("\x01", Blake2b224Size)))

func testAssetUnit(name string) string {
	return AssetUnit(testPolicyId, []byte(name))
}

func TestValueCbor(t *testing.T) {
	testDefs := []struct {
		value   Value
		cborHex string
	}{
		{
			value:   Value{Coin: 5},
			cborHex: "05",
		},
		// Zero-quantity assets are dropped
		{
			value: Value{
				Coin: 5,
				Assets: MultiAsset{
					testPolicyId: {NewAssetName([]byte("a")): 0},
				},
			},
			cborHex: "05",
		},
		{
			value: Value{
				Coin: 1000000,
				Assets: MultiAsset{
					testPolicyId: {NewAssetName([]byte("a")): 2},
				},
			},
			cborHex: "821a000f4240a1581c" + strings.Repeat("01", Blake2b224Size) + "a1416102",
		},
	}
	for _, testDef := range testDefs {
		cborData, err := cbor.Encode(testDef.value)
		require.NoError(t, err)
		assert.Equal(t, testDef.cborHex, hex.EncodeToString(cborData))
		var decoded Value
		_, err = cbor.Decode(cborData, &decoded)
		require.NoError(t, err)
		assert.True(t, decoded.Equal(testDef.value))
	}
}

func TestValueArithmetic(t *testing.T) {
	a, err := ValueFromAssets([]Asset{
		{Unit: LovelaceUnit, Quantity: 10},
		{Unit: testAssetUnit("a"), Quantity: 5},
	})
	require.NoError(t, err)
	b, err := ValueFromAssets([]Asset{
		{Unit: LovelaceUnit, Quantity: 4},
		{Unit: testAssetUnit("a"), Quantity: 2},
		{Unit: testAssetUnit("b"), Quantity: 1},
	})
	require.NoError(t, err)

	sum := a.Add(b)
	assert.Equal(t, uint64(14), sum.Coin)
	assert.Equal(t, uint64(7), sum.Assets.Quantity(testPolicyId, []byte("a")))
	assert.Equal(t, uint64(1), sum.Assets.Quantity(testPolicyId, []byte("b")))
	assert.Equal(t, 2, sum.AssetCount())
	// Add must not modify its operands
	assert.Equal(t, uint64(5), a.Assets.Quantity(testPolicyId, []byte("a")))

	assert.False(t, a.Covers(b))
	_, err = a.Sub(b)
	assert.ErrorIs(t, err, ErrValueUnderflow)

	diff, err := sum.Sub(b)
	require.NoError(t, err)
	assert.True(t, diff.Equal(a))
	assert.Equal(t, 1, diff.AssetCount())

	clamped := b.SaturatingSub(a)
	assert.Equal(t, uint64(0), clamped.Coin)
	assert.Equal(t, 1, clamped.AssetCount())
	assert.Equal(t, uint64(1), clamped.Assets.Quantity(testPolicyId, []byte("b")))

	assert.True(t, Value{}.IsZero())
	assert.False(t, a.IsZero())
}

func TestValueToAssets(t *testing.T) {
	assets := []Asset{
		{Unit: testAssetUnit("b"), Quantity: 1},
		{Unit: LovelaceUnit, Quantity: 3},
		{Unit: testAssetUnit("a"), Quantity: 2},
		{Unit: LovelaceUnit, Quantity: 4},
	}
	value, err := ValueFromAssets(assets)
	require.NoError(t, err)
	assert.Equal(
		t,
		[]Asset{
			{Unit: LovelaceUnit, Quantity: 7},
			{Unit: testAssetUnit("a"), Quantity: 2},
			{Unit: testAssetUnit("b"), Quantity: 1},
		},
		value.ToAssets(),
	)
}

func TestParseUnit(t *testing.T) {
	policyId, assetName, err := ParseUnit(testAssetUnit("token"))
	require.NoError(t, err)
	assert.Equal(t, testPolicyId, policyId)
	assert.Equal(t, []byte("token"), assetName)

	for _, unit := range []string{
		LovelaceUnit,
		"zz",
		"0101",
		testAssetUnit(strings.Repeat("x", MaxAssetNameLength+1)),
	} {
		_, _, err := ParseUnit(unit)
		assert.ErrorIs(t, err, ErrValidation, "unit %q", unit)
	}
	_, err = ValueFromAssets([]Asset{{Unit: "nothex", Quantity: 1}})
	assert.ErrorIs(t, err, ErrValidation)
}
