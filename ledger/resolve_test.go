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

	"github.com/blinklabs-io/txcompose/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFingerprint(t *testing.T) {
	testDefs := []struct {
		policyIdHex         string
		assetNameHex        string
		expectedFingerprint string
	}{
		// NOTE: these test defs were created from a random sampling of recent assets on cexplorer.io
		{
			policyIdHex:         "29a8fb8318718bd756124f0c144f56d4b4579dc5edf2dd42d669ac61",
			assetNameHex:        "6675726e697368613239686e",
			expectedFingerprint: "asset1jdu2xcrwlqsjqqjger6kj2szddz8dcpvcg4ksz",
		},
		{
			policyIdHex:         "eaf8042c1d8203b1c585822f54ec32c4c1bb4d3914603e2cca20bbd5",
			assetNameHex:        "426f7764757261436f6e63657074733638",
			expectedFingerprint: "asset1kp7hdhqc7chmyqvtqrsljfdrdt6jz8mg5culpe",
		},
		{
			policyIdHex:         "cf78aeb9736e8aa94ce8fab44da86b522fa9b1c56336b92a28420525",
			assetNameHex:        "363438346330393264363164373033656236333233346461",
			expectedFingerprint: "asset1rx3cnlsvh3udka56wyqyed3u695zd5q2jck2yd",
		},
	}
	for _, testDef := range testDefs {
		fp, err := ResolveFingerprint(testDef.policyIdHex, testDef.assetNameHex)
		require.NoError(t, err)
		if fp != testDef.expectedFingerprint {
			t.Fatalf(
				"asset fingerprint did not match expected value, got: %s, wanted: %s",
				fp,
				testDef.expectedFingerprint,
			)
		}
	}
	_, err := ResolveFingerprint("abcd", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResolveKeyHash(t *testing.T) {
	keyHash, err := ResolveKeyHash("addr1qyln2c2cx5jc4hw768pwz60n5245462dvp4auqcw09rl2xz07huw84puu6cea3qe0ce3apks7hjckqkh5ad4uax0l9ws0q9xty")
	require.NoError(t, err)
	assert.Equal(t, "3f35615835258addded1c2e169f3a2ab4ae94d606bde030e7947f518", keyHash)

	keyHash, err = ResolveKeyHash("addr1v887yfpftg5z660dmf063hj0zv0zh8xjrfkfyd2e07j076cecha5k")
	require.NoError(t, err)
	assert.Equal(t, "cfe224295a282d69edda5fa8de4f131e2b9cd21a6c9235597fa4ff6b", keyHash)

	// Stake addresses resolve to the stake key hash
	stakeAddr, err := ResolveStakeKey("addr1qyln2c2cx5jc4hw768pwz60n5245462dvp4auqcw09rl2xz07huw84puu6cea3qe0ce3apks7hjckqkh5ad4uax0l9ws0q9xty")
	require.NoError(t, err)
	keyHash, err = ResolveKeyHash(stakeAddr)
	require.NoError(t, err)
	assert.Equal(t, "4ff5f8e3d43ce6b19ec4197e331e86d0f5e58b02d7a75b5e74cff95d", keyHash)

	_, err = ResolveKeyHash("addr1wysmmrpwphe0h6fpxlmcmw46frmzxz89yvpsf8cdv29kcnqsw3vw6")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResolveScriptAddress(t *testing.T) {
	script, err := NewPlutusScript(PlutusV2, test.DecodeHexString("4e4d01000033222220051200120011"))
	require.NoError(t, err)
	scriptHash := script.Hash()
	expectedHash := Blake2b224Hash(append([]byte{0x02}, script.Bytes...))
	assert.Equal(t, expectedHash, scriptHash)

	addr, err := ResolveScriptAddress(NetworkPreprod, script)
	require.NoError(t, err)
	assert.Contains(t, addr, "addr_test1w")
	resolvedHash, err := ResolveScriptHash(addr)
	require.NoError(t, err)
	assert.Equal(t, scriptHash.String(), resolvedHash)

	mainnetAddr, err := ResolveScriptAddress(NetworkMainnet, script)
	require.NoError(t, err)
	assert.Contains(t, mainnetAddr, "addr1w")

	_, err = ResolveScriptHash("addr1v887yfpftg5z660dmf063hj0zv0zh8xjrfkfyd2e07j076cecha5k")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResolveStakeKey(t *testing.T) {
	stakeAddr, err := ResolveStakeKey("addr1q8fv95d4g2599v3gzq7wnva34ykt4d2zerl0wyke36zml0neqj84x95mgp694rv8gfqy6u67ms38lx30texma843yd5qmvkqcz")
	require.NoError(t, err)
	assert.Equal(t, "stake1u9usfr6nz6d5qaz63kr5yszdwd0dcgnlngh4und7n6cjx6qh02h9m", stakeAddr)

	_, err = ResolveStakeKey("addr1v887yfpftg5z660dmf063hj0zv0zh8xjrfkfyd2e07j076cecha5k")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResolveDataHash(t *testing.T) {
	datum, err := NewDatumFromCbor(test.DecodeHexString("d87980"))
	require.NoError(t, err)
	dataHash, err := ResolveDataHash(datum)
	require.NoError(t, err)
	assert.Equal(t, Blake2b256Hash(test.DecodeHexString("d87980")).String(), dataHash)

	_, err = NewDatumFromCbor([]byte{0xff})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewPlutusScript(t *testing.T) {
	_, err := NewPlutusScript(PlutusV2, nil)
	assert.ErrorIs(t, err, ErrValidation)
	// Not a CBOR bytestring
	_, err = NewPlutusScript(PlutusV2, []byte{0x01})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = NewPlutusScript(PlutusVersion(9), test.DecodeHexString("4101"))
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, uint(WitnessSetKeyPlutusV3Scripts), PlutusV3.WitnessKey())
	assert.Equal(t, uint(1), PlutusV2.LanguageId())
}
