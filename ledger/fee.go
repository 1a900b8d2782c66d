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
	"errors"
	"math/big"
)

const (
	// Constant overhead added to the output size when computing the minimum output value
	utxoEntryOverhead = 160

	fakeVkeySize      = 32
	fakeSignatureSize = 64

	maxMinOutputIterations = 10
)

// ScriptFee returns the fee for the provided execution budgets, rounded up
func ScriptFee(pparams ProtocolParameters, exUnits []ExUnits) uint64 {
	priceMem := priceRat(pparams.PriceMem)
	priceStep := priceRat(pparams.PriceStep)
	total := new(big.Rat)
	for _, units := range exUnits {
		memFee := new(big.Rat).Mul(priceMem, new(big.Rat).SetUint64(units.Memory))
		stepFee := new(big.Rat).Mul(priceStep, new(big.Rat).SetUint64(units.Steps))
		total.Add(total, memFee)
		total.Add(total, stepFee)
	}
	// Round up
	num := total.Num()
	denom := total.Denom()
	quo, rem := new(big.Int).QuoRem(num, denom, new(big.Int))
	if rem.Sign() != 0 {
		quo.Add(quo, big.NewInt(1))
	}
	return quo.Uint64()
}

// MinFee returns the minimum fee for a transaction of the provided size with the provided
// script execution budgets
func MinFee(pparams ProtocolParameters, txSize uint64, exUnits []ExUnits) uint64 {
	return pparams.MinFeeA*txSize + pparams.MinFeeB + ScriptFee(pparams, exUnits)
}

// MinOutputCoin returns the minimum lovelace the output must hold. The lovelace amount is
// part of the output size, so the value is iterated until it no longer changes
func MinOutputCoin(output TxOutput, coinsPerByte uint64) (uint64, error) {
	if coinsPerByte == 0 {
		return 0, nil
	}
	tmpOutput := output.Clone()
	tmpOutput.SetCbor(nil)
	var coin uint64
	for range maxMinOutputIterations {
		tmpOutput.Amount.Coin = coin
		outputCbor, err := tmpOutput.MarshalCBOR()
		if err != nil {
			return 0, EncodingError{Entity: "transaction output", Err: err}
		}
		required := (utxoEntryOverhead + uint64(len(outputCbor))) * coinsPerByte
		if required == coin {
			return coin, nil
		}
		coin = required
	}
	return 0, errors.New("minimum output value did not converge")
}

// FakeVkeyWitnesses returns placeholder witnesses with the size of real ones, which are
// used to size a transaction before it's signed
func FakeVkeyWitnesses(count int) []VkeyWitness {
	ret := make([]VkeyWitness, 0, count)
	for range count {
		ret = append(
			ret,
			VkeyWitness{
				Vkey:      make([]byte, fakeVkeySize),
				Signature: make([]byte, fakeSignatureSize),
			},
		)
	}
	return ret
}
