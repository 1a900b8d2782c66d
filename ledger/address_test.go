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
	"errors"
	"testing"

	"github.com/blinklabs-io/txcompose/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressFromBytes(t *testing.T) {
	testDefs := []struct {
		addressBytesHex string
		expectedAddress string
	}{
		{
			addressBytesHex: "11e1317b152faac13426e6a83e06ff88a4d62cce3c1634ab0a5ec1330952563c5410bff6a0d43ccebb7c37e1f69f5eb260552521adff33b9c2",
			expectedAddress: "addr1z8snz7c4974vzdpxu65ruphl3zjdvtxw8strf2c2tmqnxz2j2c79gy9l76sdg0xwhd7r0c0kna0tycz4y5s6mlenh8pq0xmsha",
		},
		{
			addressBytesHex: "013f35615835258addded1c2e169f3a2ab4ae94d606bde030e7947f5184ff5f8e3d43ce6b19ec4197e331e86d0f5e58b02d7a75b5e74cff95d",
			expectedAddress: "addr1qyln2c2cx5jc4hw768pwz60n5245462dvp4auqcw09rl2xz07huw84puu6cea3qe0ce3apks7hjckqkh5ad4uax0l9ws0q9xty",
		},
		{
			addressBytesHex: "7121bd8c2e0df2fbe92137f78dbaba48f62308e52303049f0d628b6c4c",
			expectedAddress: "addr1wysmmrpwphe0h6fpxlmcmw46frmzxz89yvpsf8cdv29kcnqsw3vw6",
		},
		{
			addressBytesHex: "61cfe224295a282d69edda5fa8de4f131e2b9cd21a6c9235597fa4ff6b",
			expectedAddress: "addr1v887yfpftg5z660dmf063hj0zv0zh8xjrfkfyd2e07j076cecha5k",
		},
		// Long (but apparently valid) address from:
		// https://github.com/IntersectMBO/cardano-ledger/issues/2729
		{
			addressBytesHex: "015bad085057ac10ecc7060f7ac41edd6f63068d8963ef7d86ca58669e5ecf2d283418a60be5a848a2380eb721000da1e0bbf39733134beca4cb57afb0b35fc89c63061c9914e055001a518c7516",
			expectedAddress: "addr1q9d66zzs27kppmx8qc8h43q7m4hkxp5d39377lvxefvxd8j7eukjsdqc5c97t2zg5guqadepqqx6rc9m7wtnxy6tajjvk4a0kze4ljyuvvrpexg5up2sqxj33363v35gtew",
		},
		// Byron address, mainnet with derivation
		{
			addressBytesHex: "82d818584283581caf56de241bcca83d72c51e74d18487aa5bc68b45e2caa170fa329d3aa101581e581cea1425ccdd649b25af5deb7e6335da2eb8167353a55e77925122e95f001a3a858621",
			expectedAddress: "DdzFFzCqrht2ii4Vc7KRchSkVvQtCqdGkQt4nF4Yxg1NpsubFBity2Tpt2eSEGrxBH1eva8qCFKM2Y5QkwM1SFBizRwZgz1N452WYvgG",
		},
	}
	for _, testDef := range testDefs {
		addrBytes := test.DecodeHexString(testDef.addressBytesHex)
		addr, err := NewAddressFromBytes(addrBytes)
		if err != nil {
			t.Fatalf("failed to decode address: %s", err)
		}
		if addr.String() != testDef.expectedAddress {
			t.Fatalf(
				"address did not match expected value, got: %s, wanted: %s",
				addr.String(),
				testDef.expectedAddress,
			)
		}
		// Parsing the string form must give back the same bytes
		parsed, err := NewAddress(testDef.expectedAddress)
		require.NoError(t, err)
		assert.Equal(t, addrBytes, parsed.Bytes())
		assert.True(t, parsed.Equal(addr))
	}
}

func TestAddressPaymentKeyHash(t *testing.T) {
	testDefs := []struct {
		address         string
		expectedKeyHash string
		expectScript    bool
	}{
		{
			address:         "addr1qyln2c2cx5jc4hw768pwz60n5245462dvp4auqcw09rl2xz07huw84puu6cea3qe0ce3apks7hjckqkh5ad4uax0l9ws0q9xty",
			expectedKeyHash: "3f35615835258addded1c2e169f3a2ab4ae94d606bde030e7947f518",
		},
		{
			address:         "addr1v887yfpftg5z660dmf063hj0zv0zh8xjrfkfyd2e07j076cecha5k",
			expectedKeyHash: "cfe224295a282d69edda5fa8de4f131e2b9cd21a6c9235597fa4ff6b",
		},
		{
			address:         "DdzFFzCqrht2ii4Vc7KRchSkVvQtCqdGkQt4nF4Yxg1NpsubFBity2Tpt2eSEGrxBH1eva8qCFKM2Y5QkwM1SFBizRwZgz1N452WYvgG",
			expectedKeyHash: "af56de241bcca83d72c51e74d18487aa5bc68b45e2caa170fa329d3a",
		},
		{
			address:      "addr1wysmmrpwphe0h6fpxlmcmw46frmzxz89yvpsf8cdv29kcnqsw3vw6",
			expectScript: true,
		},
		{
			address:      "addr1z8snz7c4974vzdpxu65ruphl3zjdvtxw8strf2c2tmqnxz2j2c79gy9l76sdg0xwhd7r0c0kna0tycz4y5s6mlenh8pq0xmsha",
			expectScript: true,
		},
	}
	for _, testDef := range testDefs {
		addr, err := NewAddress(testDef.address)
		require.NoError(t, err)
		keyHash, err := addr.PaymentKeyHash()
		if testDef.expectScript {
			assert.True(t, addr.IsScript())
			assert.ErrorIs(t, err, ErrValidation)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, testDef.expectedKeyHash, keyHash.String())
	}
}

func TestAddressStakeAddress(t *testing.T) {
	testDefs := []struct {
		address              string
		expectedStakeAddress string
	}{
		{
			address:              "addr1q8fv95d4g2599v3gzq7wnva34ykt4d2zerl0wyke36zml0neqj84x95mgp694rv8gfqy6u67ms38lx30texma843yd5qmvkqcz",
			expectedStakeAddress: "stake1u9usfr6nz6d5qaz63kr5yszdwd0dcgnlngh4und7n6cjx6qh02h9m",
		},
		{
			address:              "addr1q8uas4shlrnxhd8dnqxesk9hlgmtx65xlmkq9c7acfa2ksvjn4k4w8d7lwnzkf3dkq26kxz3re50h89adduskx08rr6qq2g0f2",
			expectedStakeAddress: "stake1uxff6m2hrkl0hf3tyckmq9dtrpg3u68mnj7kk7gtr8n33aq5fqskz",
		},
		{
			address:              "addr1z8snz7c4974vzdpxu65ruphl3zjdvtxw8strf2c2tmqnxz2j2c79gy9l76sdg0xwhd7r0c0kna0tycz4y5s6mlenh8pq0xmsha",
			expectedStakeAddress: "stake1u9f9v0z5zzlldgx58n8tklphu8mf7h4jvp2j2gddluemnssjfnkzz",
		},
	}
	for _, testDef := range testDefs {
		addr, err := NewAddress(testDef.address)
		require.NoError(t, err)
		stakeAddr := addr.StakeAddress()
		require.NotNil(t, stakeAddr)
		assert.Equal(t, testDef.expectedStakeAddress, stakeAddr.String())
		// The payment part of a stake address can't be resolved
		_, err = stakeAddr.PaymentKeyHash()
		assert.ErrorIs(t, err, ErrValidation)
	}
	enterprise, err := NewAddress("addr1v887yfpftg5z660dmf063hj0zv0zh8xjrfkfyd2e07j076cecha5k")
	require.NoError(t, err)
	assert.Nil(t, enterprise.StakeAddress())
}

func TestAddressNetworkId(t *testing.T) {
	testDefs := []struct {
		address           string
		expectedNetworkId uint8
	}{
		{
			address:           "addr_test1wpvdxve27gk4ylwyf7t6xn3c7swrfzwz9uv0akwnpctkc4qdhgye0",
			expectedNetworkId: AddressNetworkTestnet,
		},
		{
			address:           "FHnt4NL7yPXsabNmoHMHCfzUVkAC1vSZKd3fgyPfvRGhoXdum5oadfcrADWF8Fc",
			expectedNetworkId: AddressNetworkTestnet,
		},
		{
			address:           "addr1q862w5ru0hpxl4r6vezgtegrfqve0dm2dp3yj2f7y4arrf223wd3fr6qcumc6873am478xnxmfp8lgpe6q6ju9ttjgns2xavze",
			expectedNetworkId: AddressNetworkMainnet,
		},
	}
	for _, testDef := range testDefs {
		addr, err := NewAddress(testDef.address)
		if err != nil {
			t.Fatalf("failed to decode address: %s", err)
		}
		if addr.NetworkId() != testDef.expectedNetworkId {
			t.Fatalf(
				"address did not return expected network ID, got: %d, wanted: %d",
				addr.NetworkId(),
				testDef.expectedNetworkId,
			)
		}
	}
}

func TestAddressInvalid(t *testing.T) {
	for _, addr := range []string{
		"",
		"addr1notvalidbech32",
		"not_an_address",
	} {
		_, err := NewAddress(addr)
		assert.Error(t, err, "address %q", addr)
		assert.True(t, errors.Is(err, ErrValidation), "address %q", addr)
	}
	// Header claims a key hash but the payload is too short
	_, err := NewAddressFromBytes(test.DecodeHexString("61cfe224"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddressCbor(t *testing.T) {
	addrBytes := test.DecodeHexString("61cfe224295a282d69edda5fa8de4f131e2b9cd21a6c9235597fa4ff6b")
	addr, err := NewAddressFromBytes(addrBytes)
	require.NoError(t, err)
	cborData, err := addr.MarshalCBOR()
	require.NoError(t, err)
	assert.Equal(t, "581d"+hex.EncodeToString(addrBytes), hex.EncodeToString(cborData))
	var decoded Address
	require.NoError(t, decoded.UnmarshalCBOR(cborData))
	assert.True(t, decoded.Equal(addr))
}
