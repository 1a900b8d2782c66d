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
	"testing"

	"github.com/blinklabs-io/txcompose/cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetNameString(t *testing.T) {
	name := NewAssetName([]byte("blinklabs"))
	assert.Equal(t, "626c696e6b6c616273", name.String())
	assert.Equal(t, []byte("blinklabs"), name.Bytes())
}

func TestAssetNameMapKeyRoundTrip(t *testing.T) {
	src := map[AssetName]uint64{
		NewAssetName([]byte("b")): 2,
		NewAssetName([]byte("a")): 1,
	}
	cborData, err := cbor.Encode(src)
	require.NoError(t, err)
	// {h'61': 1, h'62': 2}
	assert.Equal(t, []byte("\xa2\x41\x61\x01\x41\x62\x02"), cborData)
	var dest map[AssetName]uint64
	_, err = cbor.Decode(cborData, &dest)
	require.NoError(t, err)
	assert.Equal(t, src, dest)
}

func TestAssetNameTooLong(t *testing.T) {
	cborData, err := cbor.Encode(make([]byte, MaxAssetNameLength+1))
	require.NoError(t, err)
	var name AssetName
	_, err = cbor.Decode(cborData, &name)
	assert.ErrorIs(t, err, ErrValidation)
}
