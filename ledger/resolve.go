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
)

// ResolveDataHash returns the hex-encoded hash of a datum
func ResolveDataHash(datum Datum) (string, error) {
	hash, err := datum.Hash()
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}

// ResolveFingerprint returns the CIP-14 fingerprint of an asset from its hex-encoded
// policy ID and asset name
func ResolveFingerprint(policyId string, assetName string) (string, error) {
	policyBytes, err := hex.DecodeString(policyId)
	if err != nil || len(policyBytes) != Blake2b224Size {
		return "", newValidationError("policy ID", policyId, errors.New("expected 28 hex-encoded bytes"))
	}
	nameBytes, err := hex.DecodeString(assetName)
	if err != nil {
		return "", newValidationError("asset name", assetName, err)
	}
	return AssetFingerprint(NewBlake2b224(policyBytes), nameBytes), nil
}

// AssetFingerprint returns the CIP-14 fingerprint of an asset
func AssetFingerprint(policyId PolicyId, assetName []byte) string {
	tmp := make([]byte, 0, Blake2b224Size+len(assetName))
	tmp = append(tmp, policyId.Bytes()...)
	tmp = append(tmp, assetName...)
	hash := Blake2b160Hash(tmp)
	return bech32Encode("asset", hash[:])
}

// ResolveKeyHash returns the hex-encoded key hash of a base, enterprise or stake address.
// For stake addresses this is the stake key hash
func ResolveKeyHash(bech32Addr string) (string, error) {
	addr, err := NewAddress(bech32Addr)
	if err != nil {
		return "", err
	}
	switch addr.Type() {
	case AddressTypeKeyKey, AddressTypeKeyScript, AddressTypeKeyNone:
		keyHash, err := addr.PaymentKeyHash()
		if err != nil {
			return "", err
		}
		return keyHash.String(), nil
	case AddressTypeNoneKey:
		keyHash, _ := addr.StakeKeyHash()
		return keyHash.String(), nil
	}
	return "", newValidationError("address", bech32Addr, errors.New("address has no key hash"))
}

// ResolveScriptHash returns the hex-encoded script hash of an enterprise script address
func ResolveScriptHash(bech32Addr string) (string, error) {
	addr, err := NewAddress(bech32Addr)
	if err != nil {
		return "", err
	}
	if addr.Type() != AddressTypeScriptNone {
		return "", newValidationError("address", bech32Addr, errors.New("not an enterprise script address"))
	}
	scriptHash, _ := addr.PaymentHash()
	return scriptHash.String(), nil
}

// ResolveScriptAddress returns the bech32 enterprise address locked by the provided script
func ResolveScriptAddress(network Network, script PlutusScript) (string, error) {
	scriptHash := script.Hash()
	addr, err := NewAddressFromParts(AddressTypeScriptNone, network.Id, scriptHash.Bytes(), nil)
	if err != nil {
		return "", err
	}
	return addr.String(), nil
}

// ResolveStakeKey returns the bech32 stake address for the staking part of an address
func ResolveStakeKey(bech32Addr string) (string, error) {
	addr, err := NewAddress(bech32Addr)
	if err != nil {
		return "", err
	}
	stakeAddr := addr.StakeAddress()
	if stakeAddr == nil {
		return "", newValidationError("address", bech32Addr, errors.New("address has no staking part"))
	}
	return stakeAddr.String(), nil
}

// ResolveTxHash returns the hex-encoded transaction ID for a transaction body
func ResolveTxHash(txBodyCbor []byte) (string, error) {
	var body TransactionBody
	if err := body.UnmarshalCBOR(txBodyCbor); err != nil {
		return "", newValidationError("transaction body", hex.EncodeToString(txBodyCbor), err)
	}
	hash, err := body.Hash()
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}
