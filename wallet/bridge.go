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
	"crypto/ed25519"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"filippo.io/edwards25519"
	"github.com/blinklabs-io/txcompose/cbor"
	"github.com/blinklabs-io/txcompose/ledger"
)

// SigningBridge hands unsigned transactions to an external signer and merges the
// returned vkey witnesses into the transaction. Only vkey witnesses are taken from
// the signer's response; every other witness set field comes from the original
// transaction untouched
type SigningBridge struct {
	signer Signer
	logger *slog.Logger
}

// SigningBridgeOptionFunc is a type that represents functions that modify the
// SigningBridge config
type SigningBridgeOptionFunc func(*SigningBridge)

// WithBridgeLogger specifies the logger to use. This defaults to slog.Default()
func WithBridgeLogger(logger *slog.Logger) SigningBridgeOptionFunc {
	return func(b *SigningBridge) {
		b.logger = logger
	}
}

// NewSigningBridge returns a SigningBridge that signs with the provided Signer
func NewSigningBridge(
	signer Signer,
	opts ...SigningBridgeOptionFunc,
) *SigningBridge {
	b := &SigningBridge{
		signer: signer,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Sign asks the signer for witnesses on the provided transaction and returns the
// transaction with the new vkey witnesses added. The body, is_valid flag and
// auxiliary data are carried over byte for byte
func (b *SigningBridge) Sign(
	ctx context.Context,
	unsigned []byte,
	partialSign bool,
) ([]byte, error) {
	if b.signer == nil {
		return nil, SigningError{
			Kind: SigningErrorProofGeneration,
			Err:  errors.New("no signer configured"),
		}
	}
	parts, err := ledger.DecodeTransactionParts(unsigned)
	if err != nil {
		return nil, err
	}
	bodyHash, err := parts.BodyHash()
	if err != nil {
		return nil, err
	}
	witnessFields, err := decodeWitnessFields(parts.WitnessSet)
	if err != nil {
		return nil, ledger.ValidationError{Entity: "witness set", Err: err}
	}
	existingRaw, hasExisting := witnessFields[ledger.WitnessSetKeyVkeyWitnesses]
	existing, err := decodeVkeyWitnesses(existingRaw)
	if err != nil {
		return nil, ledger.ValidationError{Entity: "vkey witnesses", Err: err}
	}
	respCbor, err := b.signer.SignTx(ctx, unsigned, partialSign)
	if err != nil {
		return nil, signingErrorFrom(err)
	}
	respFields, err := decodeWitnessFields(respCbor)
	if err != nil {
		return nil, SigningError{
			Kind: SigningErrorProofGeneration,
			Err:  fmt.Errorf("decode signer witness set: %w", err),
		}
	}
	respRaw := respFields[ledger.WitnessSetKeyVkeyWitnesses]
	added, err := decodeVkeyWitnesses(respRaw)
	if err != nil {
		return nil, SigningError{
			Kind: SigningErrorProofGeneration,
			Err:  fmt.Errorf("decode signer vkey witnesses: %w", err),
		}
	}
	for idx, witness := range added {
		if err := verifyVkeyWitness(witness, bodyHash); err != nil {
			return nil, SigningError{
				Kind: SigningErrorProofGeneration,
				Err:  fmt.Errorf("vkey witness %d: %w", idx, err),
			}
		}
	}
	merged, addedCount := mergeVkeyWitnesses(existing, added)
	if len(merged) > 0 {
		// Keep the set tag if the transaction already used it, otherwise follow the signer
		useSetTag := cbor.HasSetTag(respRaw)
		if hasExisting {
			useSetTag = cbor.HasSetTag(existingRaw)
		}
		var vkeyData any = merged
		if useSetTag {
			vkeyData = cbor.Tag{Number: cbor.CborTagSet, Content: merged}
		}
		vkeyCbor, err := cbor.Encode(vkeyData)
		if err != nil {
			return nil, ledger.EncodingError{Entity: "vkey witnesses", Err: err}
		}
		witnessFields[ledger.WitnessSetKeyVkeyWitnesses] = vkeyCbor
	}
	witnessSetCbor, err := encodeWitnessFields(witnessFields)
	if err != nil {
		return nil, ledger.EncodingError{Entity: "witness set", Err: err}
	}
	parts.WitnessSet = witnessSetCbor
	b.logger.Debug(
		"merged vkey witnesses",
		"tx_hash", bodyHash.String(),
		"existing", len(existing),
		"added", addedCount,
		"partial", partialSign,
	)
	return parts.Encode(), nil
}

func decodeWitnessFields(data []byte) (map[uint64]cbor.RawMessage, error) {
	ret := map[uint64]cbor.RawMessage{}
	if len(data) == 0 {
		return ret, nil
	}
	if _, err := cbor.Decode(data, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// encodeWitnessFields writes the witness set map with ascending keys, reusing the
// encoded value of each field as-is
func encodeWitnessFields(fields map[uint64]cbor.RawMessage) ([]byte, error) {
	fieldKeys := make([]uint64, 0, len(fields))
	for k := range fields {
		fieldKeys = append(fieldKeys, k)
	}
	slices.Sort(fieldKeys)
	keys := make([]cbor.RawMessage, 0, len(fieldKeys))
	values := make([]cbor.RawMessage, 0, len(fieldKeys))
	for _, k := range fieldKeys {
		keyCbor, err := cbor.Encode(k)
		if err != nil {
			return nil, err
		}
		keys = append(keys, keyCbor)
		values = append(values, fields[k])
	}
	return cbor.EncodeMapRaw(keys, values)
}

func decodeVkeyWitnesses(data []byte) ([]ledger.VkeyWitness, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var ret []ledger.VkeyWitness
	if _, err := cbor.Decode(cbor.UnwrapSetTag(data), &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func verifyVkeyWitness(witness ledger.VkeyWitness, bodyHash ledger.Blake2b256) error {
	if len(witness.Vkey) != ed25519.PublicKeySize {
		return fmt.Errorf("invalid vkey length: %d", len(witness.Vkey))
	}
	if _, err := new(edwards25519.Point).SetBytes(witness.Vkey); err != nil {
		return fmt.Errorf("invalid vkey: %w", err)
	}
	if len(witness.Signature) != ed25519.SignatureSize {
		return fmt.Errorf("invalid signature length: %d", len(witness.Signature))
	}
	if !ed25519.Verify(
		ed25519.PublicKey(witness.Vkey),
		bodyHash.Bytes(),
		witness.Signature,
	) {
		return errors.New("signature does not verify against transaction body")
	}
	return nil
}

// mergeVkeyWitnesses returns the existing witnesses followed by any new witness with a
// vkey not already present, along with the number of witnesses added
func mergeVkeyWitnesses(
	existing []ledger.VkeyWitness,
	added []ledger.VkeyWitness,
) ([]ledger.VkeyWitness, int) {
	ret := make([]ledger.VkeyWitness, 0, len(existing)+len(added))
	seen := make(map[string]struct{}, len(existing)+len(added))
	for _, witness := range existing {
		ret = append(ret, witness)
		seen[string(witness.Vkey)] = struct{}{}
	}
	addedCount := 0
	for _, witness := range added {
		if _, ok := seen[string(witness.Vkey)]; ok {
			continue
		}
		seen[string(witness.Vkey)] = struct{}{}
		ret = append(ret, witness)
		addedCount++
	}
	return ret, addedCount
}
