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
package wallet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/txcompose/ledger"
)

// DefaultCollateralLimit is the number of collateral UTxOs returned by GetCollateral
// when no limit is given
const DefaultCollateralLimit = 3

// AssetExtended is a non-native asset held by the wallet, with its unit broken out
// into policy ID and name
type AssetExtended struct {
	Unit        string `json:"unit"`
	PolicyId    string `json:"policyId"`
	AssetName   string `json:"assetName"`
	Fingerprint string `json:"fingerprint"`
	Quantity    uint64 `json:"quantity,string"`
}

// Service decodes the raw CBOR returned by a Wallet into ledger types and signs
// transactions through a SigningBridge
type Service struct {
	wallet Wallet
	bridge *SigningBridge
	logger *slog.Logger
}

// ServiceOptionFunc is a type that represents functions that modify the Service config
type ServiceOptionFunc func(*Service)

// WithLogger specifies the logger to use. This defaults to slog.Default()
func WithLogger(logger *slog.Logger) ServiceOptionFunc {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(w Wallet, opts ...ServiceOptionFunc) *Service {
	s := &Service{
		wallet: w,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.bridge = NewSigningBridge(w, WithBridgeLogger(s.logger))
	return s
}

func (s *Service) GetNetworkId(ctx context.Context) (uint8, error) {
	return s.wallet.GetNetworkId(ctx)
}

// GetUtxos returns all UTxOs controlled by the wallet
func (s *Service) GetUtxos(ctx context.Context) ([]ledger.UTxO, error) {
	raw, err := s.wallet.GetUtxos(ctx)
	if err != nil {
		return nil, fmt.Errorf("get wallet UTxOs: %w", err)
	}
	return decodeUtxos(raw)
}

// GetCollateral returns up to limit of the UTxOs the wallet set aside as collateral. A
// limit of zero or less uses DefaultCollateralLimit
func (s *Service) GetCollateral(ctx context.Context, limit int) ([]ledger.UTxO, error) {
	if limit <= 0 {
		limit = DefaultCollateralLimit
	}
	raw, err := s.wallet.GetCollateral(ctx)
	if err != nil {
		return nil, fmt.Errorf("get wallet collateral: %w", err)
	}
	if len(raw) > limit {
		raw = raw[:limit]
	}
	return decodeUtxos(raw)
}

// GetChangeAddress returns the wallet change address in bech32 form
func (s *Service) GetChangeAddress(ctx context.Context) (string, error) {
	addr, err := s.changeAddress(ctx)
	if err != nil {
		return "", err
	}
	return addr.String(), nil
}

func (s *Service) GetUsedAddresses(ctx context.Context) ([]string, error) {
	raw, err := s.wallet.GetUsedAddresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("get used addresses: %w", err)
	}
	return decodeAddresses(raw)
}

func (s *Service) GetUnusedAddresses(ctx context.Context) ([]string, error) {
	raw, err := s.wallet.GetUnusedAddresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("get unused addresses: %w", err)
	}
	return decodeAddresses(raw)
}

func (s *Service) GetRewardAddresses(ctx context.Context) ([]string, error) {
	raw, err := s.wallet.GetRewardAddresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("get reward addresses: %w", err)
	}
	return decodeAddresses(raw)
}

// GetBalance returns the total wallet balance, lovelace first
func (s *Service) GetBalance(ctx context.Context) ([]ledger.Asset, error) {
	value, err := s.balance(ctx)
	if err != nil {
		return nil, err
	}
	return value.ToAssets(), nil
}

// GetAssets returns the non-native assets held by the wallet
func (s *Service) GetAssets(ctx context.Context) ([]AssetExtended, error) {
	value, err := s.balance(ctx)
	if err != nil {
		return nil, err
	}
	ret := []AssetExtended{}
	for _, policyId := range value.Assets.Policies() {
		for _, assetName := range value.Assets.AssetNames(policyId) {
			ret = append(
				ret,
				AssetExtended{
					Unit:        ledger.AssetUnit(policyId, assetName),
					PolicyId:    policyId.String(),
					AssetName:   string(assetName),
					Fingerprint: ledger.AssetFingerprint(policyId, assetName),
					Quantity:    value.Assets.Quantity(policyId, assetName),
				},
			)
		}
	}
	return ret, nil
}

func (s *Service) GetLovelace(ctx context.Context) (uint64, error) {
	value, err := s.balance(ctx)
	if err != nil {
		return 0, err
	}
	return value.Coin, nil
}

// GetPolicyIds returns the policy IDs of all non-native assets held by the wallet
func (s *Service) GetPolicyIds(ctx context.Context) ([]string, error) {
	value, err := s.balance(ctx)
	if err != nil {
		return nil, err
	}
	ret := []string{}
	for _, policyId := range value.Assets.Policies() {
		ret = append(ret, policyId.String())
	}
	return ret, nil
}

// GetPolicyIdAssets returns the wallet assets minted under the specified policy
func (s *Service) GetPolicyIdAssets(
	ctx context.Context,
	policyId string,
) ([]AssetExtended, error) {
	assets, err := s.GetAssets(ctx)
	if err != nil {
		return nil, err
	}
	ret := []AssetExtended{}
	for _, asset := range assets {
		if asset.PolicyId == policyId {
			ret = append(ret, asset)
		}
	}
	return ret, nil
}

// SignTx signs the provided transaction and returns it with the new vkey witnesses
// merged in
func (s *Service) SignTx(
	ctx context.Context,
	unsigned []byte,
	partialSign bool,
) ([]byte, error) {
	return s.bridge.Sign(ctx, unsigned, partialSign)
}

// SignData signs the payload with the key behind the wallet change address
func (s *Service) SignData(ctx context.Context, payload []byte) (DataSignature, error) {
	addr, err := s.changeAddress(ctx)
	if err != nil {
		return DataSignature{}, err
	}
	sig, err := s.wallet.SignData(ctx, addr.Bytes(), payload)
	if err != nil {
		return DataSignature{}, signingErrorFrom(err)
	}
	return sig, nil
}

func (s *Service) SubmitTx(ctx context.Context, tx []byte) (string, error) {
	txHash, err := s.wallet.SubmitTx(ctx, tx)
	if err != nil {
		return "", err
	}
	s.logger.Debug(
		"submitted transaction",
		"tx_hash", txHash,
	)
	return txHash, nil
}

func (s *Service) changeAddress(ctx context.Context) (ledger.Address, error) {
	raw, err := s.wallet.GetChangeAddress(ctx)
	if err != nil {
		return ledger.Address{}, fmt.Errorf("get change address: %w", err)
	}
	return ledger.NewAddressFromBytes(raw)
}

func (s *Service) balance(ctx context.Context) (ledger.Value, error) {
	raw, err := s.wallet.GetBalance(ctx)
	if err != nil {
		return ledger.Value{}, fmt.Errorf("get balance: %w", err)
	}
	var ret ledger.Value
	if err := ret.UnmarshalCBOR(raw); err != nil {
		return ledger.Value{}, ledger.ValidationError{Entity: "balance", Err: err}
	}
	return ret, nil
}

func decodeUtxos(raw [][]byte) ([]ledger.UTxO, error) {
	ret := make([]ledger.UTxO, 0, len(raw))
	for _, utxoCbor := range raw {
		utxo, err := ledger.NewUTxOFromCbor(utxoCbor)
		if err != nil {
			return nil, err
		}
		ret = append(ret, utxo)
	}
	return ret, nil
}

func decodeAddresses(raw [][]byte) ([]string, error) {
	ret := make([]string, 0, len(raw))
	for _, addrBytes := range raw {
		addr, err := ledger.NewAddressFromBytes(addrBytes)
		if err != nil {
			return nil, err
		}
		ret = append(ret, addr.String())
	}
	return ret, nil
}
