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

// Package signers keeps the set of key hashes that must sign a transaction
package signers

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/blinklabs-io/txcompose/ledger"
)

// ErrAddressResolution matches any AddressResolutionError via errors.Is
var ErrAddressResolution = errors.New("address resolution failed")

// AddressResolutionError indicates that a UTxO's owning address has no payment key hash
type AddressResolutionError struct {
	Input   ledger.TxInput
	Address string
	Err     error
}

func (e AddressResolutionError) Error() string {
	return fmt.Sprintf(
		"cannot resolve payment key hash for %s at %s: %v",
		e.Input.String(),
		e.Address,
		e.Err,
	)
}

func (e AddressResolutionError) Unwrap() error { return e.Err }

func (AddressResolutionError) Is(target error) bool {
	return target == ErrAddressResolution
}

// Registry is a deduplicated set of required signer key hashes. It's not safe for
// concurrent use
type Registry struct {
	keyHashes map[ledger.AddrKeyHash]struct{}
}

// NewRegistry returns an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		keyHashes: make(map[ledger.AddrKeyHash]struct{}),
	}
}

// AddFrom adds the payment key hash of the owning address of each UTxO. Nothing is added
// if any of the addresses can't be resolved
func (r *Registry) AddFrom(utxos []ledger.UTxO) error {
	tmpHashes := make([]ledger.AddrKeyHash, 0, len(utxos))
	for _, utxo := range utxos {
		keyHash, err := utxo.Output.Address.PaymentKeyHash()
		if err != nil {
			return AddressResolutionError{
				Input:   utxo.Input,
				Address: utxo.Output.Address.String(),
				Err:     err,
			}
		}
		tmpHashes = append(tmpHashes, keyHash)
	}
	if r.keyHashes == nil {
		r.keyHashes = make(map[ledger.AddrKeyHash]struct{})
	}
	for _, keyHash := range tmpHashes {
		r.keyHashes[keyHash] = struct{}{}
	}
	return nil
}

// ExportRequiredSigners returns the key hashes in bytewise order
func (r *Registry) ExportRequiredSigners() []ledger.AddrKeyHash {
	ret := slices.Collect(maps.Keys(r.keyHashes))
	slices.SortFunc(
		ret,
		func(a, b ledger.AddrKeyHash) int { return bytes.Compare(a.Bytes(), b.Bytes()) },
	)
	return ret
}

// Len returns the number of distinct key hashes
func (r *Registry) Len() int {
	return len(r.keyHashes)
}

// Clone returns a copy of the registry that can be added to without affecting the original
func (r *Registry) Clone() *Registry {
	return &Registry{
		keyHashes: maps.Clone(r.keyHashes),
	}
}
