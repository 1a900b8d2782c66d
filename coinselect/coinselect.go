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
// Package coinselect picks wallet UTxOs to cover a required value
package coinselect

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/blinklabs-io/txcompose/ledger"
)

type Strategy int

const (
	// LargestFirst orders candidates by lovelace, largest first
	LargestFirst Strategy = iota
	// LargestFirstMultiAsset orders candidates by the number of distinct non-native
	// assets they hold and then by lovelace, largest first
	LargestFirstMultiAsset
)

func (s Strategy) String() string {
	switch s {
	case LargestFirst:
		return "LargestFirst"
	case LargestFirstMultiAsset:
		return "LargestFirstMultiAsset"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ErrInsufficientFunds matches any InsufficientFundsError via errors.Is
var ErrInsufficientFunds = errors.New("insufficient funds")

// InsufficientFundsError indicates that the available UTxOs can't cover the required value
type InsufficientFundsError struct {
	Required  ledger.Value
	Available ledger.Value
}

func (e InsufficientFundsError) Error() string {
	return fmt.Sprintf(
		"insufficient funds: required %s, available %s",
		e.Required.String(),
		e.Available.String(),
	)
}

func (InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// Selection is the result of a coin selection. Leftover is the value of the selected
// UTxOs beyond the required value, and always includes the fee buffer
type Selection struct {
	Selected []ledger.UTxO
	Leftover ledger.Value
}

// StrategyFor returns LargestFirstMultiAsset if any of the outputs carries a non-native
// asset, and LargestFirst otherwise
func StrategyFor(outputs []ledger.TxOutput) Strategy {
	for _, output := range outputs {
		if output.Amount.HasAssets() {
			return LargestFirstMultiAsset
		}
	}
	return LargestFirst
}

// Select picks UTxOs from available until they cover the required value plus feeBuffer
// lovelace. Candidates that don't reduce what is still outstanding are skipped, and
// candidates that compare equal keep their order from available. The available slice is
// not modified
func Select(
	available []ledger.UTxO,
	required ledger.Value,
	strategy Strategy,
	feeBuffer uint64,
) (Selection, error) {
	candidates := slices.Clone(available)
	switch strategy {
	case LargestFirst:
		slices.SortStableFunc(candidates, compareLovelace)
	case LargestFirstMultiAsset:
		slices.SortStableFunc(
			candidates,
			func(a, b ledger.UTxO) int {
				if c := cmp.Compare(
					b.Output.Amount.AssetCount(),
					a.Output.Amount.AssetCount(),
				); c != 0 {
					return c
				}
				return compareLovelace(a, b)
			},
		)
	default:
		return Selection{}, fmt.Errorf("unknown coin selection strategy: %s", strategy)
	}
	target := required.Clone()
	if feeBuffer > math.MaxUint64-target.Coin {
		target.Coin = math.MaxUint64
	} else {
		target.Coin += feeBuffer
	}
	outstanding := target
	selected := []ledger.UTxO{}
	for _, candidate := range candidates {
		if outstanding.IsZero() {
			break
		}
		if !reduces(outstanding, candidate.Output.Amount) {
			continue
		}
		selected = append(selected, candidate)
		outstanding = outstanding.SaturatingSub(candidate.Output.Amount)
	}
	if !outstanding.IsZero() {
		return Selection{}, InsufficientFundsError{
			Required:  target,
			Available: ledger.SumValue(available),
		}
	}
	leftover, err := ledger.SumValue(selected).Sub(required)
	if err != nil {
		return Selection{}, err
	}
	return Selection{
		Selected: selected,
		Leftover: leftover,
	}, nil
}

// compareLovelace orders UTxOs by lovelace, largest first
func compareLovelace(a, b ledger.UTxO) int {
	return cmp.Compare(b.Output.Amount.Coin, a.Output.Amount.Coin)
}

// reduces returns whether adding the candidate value lowers any outstanding component
func reduces(outstanding ledger.Value, candidate ledger.Value) bool {
	if outstanding.Coin > 0 && candidate.Coin > 0 {
		return true
	}
	for _, policyId := range outstanding.Assets.Policies() {
		for _, assetName := range outstanding.Assets.AssetNames(policyId) {
			if candidate.Assets.Quantity(policyId, assetName) > 0 {
				return true
			}
		}
	}
	return false
}
