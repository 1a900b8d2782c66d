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
package wallet_test

import (
	"context"
	"crypto/ed25519"
	"errors"
	"testing"

	test_ledger "github.com/blinklabs-io/txcompose/internal/test/ledger"
	test_wallet "github.com/blinklabs-io/txcompose/internal/test/wallet"
	"github.com/blinklabs-io/txcompose/ledger"
	"github.com/blinklabs-io/txcompose/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServiceWallet() *test_wallet.MockWallet {
	addr1, key1 := test_ledger.KeyAddress(1)
	addr2, _ := test_ledger.KeyAddress(2)
	tokens := test_ledger.Tokens(test_ledger.PolicyId(0x01), "token", 25)
	otherTokens := test_ledger.Tokens(test_ledger.PolicyId(0x02), "", 1)
	return &test_wallet.MockWallet{
		NetworkIdVal: ledger.AddressNetworkTestnet,
		UtxosVal: []ledger.UTxO{
			test_ledger.NewUTxO(0x01, 0, addr1, test_ledger.Lovelace(3_000_000)),
			test_ledger.NewUTxO(
				0x02,
				1,
				addr1,
				ledger.Value{Coin: 2_000_000, Assets: tokens},
			),
			test_ledger.NewUTxO(
				0x03,
				0,
				addr1,
				ledger.Value{Coin: 1_500_000, Assets: otherTokens},
			),
		},
		CollateralVal: []ledger.UTxO{
			test_ledger.NewUTxO(0x04, 0, addr1, test_ledger.Lovelace(5_000_000)),
			test_ledger.NewUTxO(0x05, 0, addr1, test_ledger.Lovelace(5_000_000)),
			test_ledger.NewUTxO(0x06, 0, addr1, test_ledger.Lovelace(5_000_000)),
			test_ledger.NewUTxO(0x07, 0, addr1, test_ledger.Lovelace(5_000_000)),
		},
		ChangeAddressVal:   addr1,
		UsedAddressesVal:   []ledger.Address{addr1},
		UnusedAddressesVal: []ledger.Address{addr2},
		SigningKeys:        []ed25519.PrivateKey{key1},
	}
}

func TestServiceGetUtxos(t *testing.T) {
	mock := testServiceWallet()
	svc := wallet.NewService(mock)
	utxos, err := svc.GetUtxos(context.Background())
	require.NoError(t, err)
	require.Len(t, utxos, len(mock.UtxosVal))
	for idx, utxo := range utxos {
		assert.Equal(t, mock.UtxosVal[idx].Input, utxo.Input)
		assert.True(t, mock.UtxosVal[idx].Output.Amount.Equal(utxo.Output.Amount))
		assert.True(t, mock.UtxosVal[idx].Output.Address.Equal(utxo.Output.Address))
	}
}

func TestServiceGetCollateral(t *testing.T) {
	svc := wallet.NewService(testServiceWallet())
	testDefs := []struct {
		limit    int
		expected int
	}{
		{limit: 0, expected: wallet.DefaultCollateralLimit},
		{limit: 1, expected: 1},
		{limit: 2, expected: 2},
		{limit: 10, expected: 4},
	}
	for _, testDef := range testDefs {
		collateral, err := svc.GetCollateral(context.Background(), testDef.limit)
		require.NoError(t, err)
		if len(collateral) != testDef.expected {
			t.Fatalf(
				"did not get expected collateral count for limit %d: got %d, wanted %d",
				testDef.limit,
				len(collateral),
				testDef.expected,
			)
		}
	}
}

func TestServiceAddresses(t *testing.T) {
	mock := testServiceWallet()
	svc := wallet.NewService(mock)
	changeAddr, err := svc.GetChangeAddress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mock.ChangeAddressVal.String(), changeAddr)
	assert.Regexp(t, "^addr_test1", changeAddr)
	used, err := svc.GetUsedAddresses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{mock.UsedAddressesVal[0].String()}, used)
	unused, err := svc.GetUnusedAddresses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{mock.UnusedAddressesVal[0].String()}, unused)
	rewards, err := svc.GetRewardAddresses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rewards)
	networkId, err := svc.GetNetworkId(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint8(ledger.AddressNetworkTestnet), networkId)
}

func TestServiceBalance(t *testing.T) {
	svc := wallet.NewService(testServiceWallet())
	balance, err := svc.GetBalance(context.Background())
	require.NoError(t, err)
	require.Len(t, balance, 3)
	assert.Equal(t, ledger.Asset{Unit: ledger.LovelaceUnit, Quantity: 6_500_000}, balance[0])
	lovelace, err := svc.GetLovelace(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(6_500_000), lovelace)
	policyIds, err := svc.GetPolicyIds(context.Background())
	require.NoError(t, err)
	assert.Equal(
		t,
		[]string{
			test_ledger.PolicyId(0x01).String(),
			test_ledger.PolicyId(0x02).String(),
		},
		policyIds,
	)
}

func TestServiceGetAssets(t *testing.T) {
	svc := wallet.NewService(testServiceWallet())
	assets, err := svc.GetAssets(context.Background())
	require.NoError(t, err)
	require.Len(t, assets, 2)
	policyId := test_ledger.PolicyId(0x01)
	assert.Equal(
		t,
		wallet.AssetExtended{
			Unit:        ledger.AssetUnit(policyId, []byte("token")),
			PolicyId:    policyId.String(),
			AssetName:   "token",
			Fingerprint: ledger.AssetFingerprint(policyId, []byte("token")),
			Quantity:    25,
		},
		assets[0],
	)
	assert.Regexp(t, "^asset1", assets[0].Fingerprint)
	policyAssets, err := svc.GetPolicyIdAssets(
		context.Background(),
		test_ledger.PolicyId(0x02).String(),
	)
	require.NoError(t, err)
	require.Len(t, policyAssets, 1)
	assert.Equal(t, uint64(1), policyAssets[0].Quantity)
	none, err := svc.GetPolicyIdAssets(context.Background(), "abcd")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestServiceSignData(t *testing.T) {
	mock := testServiceWallet()
	var signedAddr []byte
	mock.SignDataFunc = func(
		_ context.Context,
		addr []byte,
		payload []byte,
	) (wallet.DataSignature, error) {
		signedAddr = addr
		return wallet.DataSignature{Signature: payload}, nil
	}
	svc := wallet.NewService(mock)
	sig, err := svc.SignData(context.Background(), []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), sig.Signature)
	assert.Equal(t, mock.ChangeAddressVal.Bytes(), signedAddr)
	mock.SignDataFunc = func(context.Context, []byte, []byte) (wallet.DataSignature, error) {
		return wallet.DataSignature{}, wallet.TxSignError{
			Code: wallet.TxSignErrorUserDeclined,
			Info: "declined",
		}
	}
	_, err = svc.SignData(context.Background(), []byte("hello"))
	var signErr wallet.SigningError
	require.ErrorAs(t, err, &signErr)
	assert.Equal(t, wallet.SigningErrorUserRejected, signErr.Kind)
}

func TestServiceSubmitTx(t *testing.T) {
	mock := testServiceWallet()
	svc := wallet.NewService(mock)
	unsigned := testUnsignedTx(t, testWitnessSetPlutusData)
	signed, err := svc.SignTx(context.Background(), unsigned.Encode(), false)
	require.NoError(t, err)
	txHash, err := svc.SubmitTx(context.Background(), signed)
	require.NoError(t, err)
	bodyHash, err := unsigned.BodyHash()
	require.NoError(t, err)
	assert.Equal(t, bodyHash.String(), txHash)
	submitErr := errors.New("mempool full")
	mock.SubmitTxFunc = func(context.Context, []byte) (string, error) {
		return "", submitErr
	}
	_, err = svc.SubmitTx(context.Background(), signed)
	assert.ErrorIs(t, err, submitErr)
}

func TestServiceMissingChangeAddress(t *testing.T) {
	svc := wallet.NewService(&test_wallet.MockWallet{})
	_, err := svc.GetChangeAddress(context.Background())
	assert.Error(t, err)
}
