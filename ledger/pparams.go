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
	"fmt"
	"math/big"
	"strconv"

	"github.com/jinzhu/copier"
)

// ProtocolParameters holds the protocol values needed to size fees, minimum output
// values and collateral
type ProtocolParameters struct {
	Epoch               uint64
	MinFeeA             uint64
	MinFeeB             uint64
	MaxTxSize           uint64
	MaxValSize          uint64
	CoinsPerUTxOByte    uint64
	KeyDeposit          uint64
	PoolDeposit         uint64
	PriceMem            float64
	PriceStep           float64
	MaxTxExMem          uint64
	MaxTxExSteps        uint64
	CollateralPercent   uint64
	MaxCollateralInputs uint64
	CostModels          map[PlutusVersion][]int64
}

// DefaultProtocolParameters returns the parameters used when none are supplied
func DefaultProtocolParameters() ProtocolParameters {
	return ProtocolParameters{
		Epoch:               0,
		MinFeeA:             44,
		MinFeeB:             155381,
		MaxTxSize:           16384,
		MaxValSize:          5000,
		CoinsPerUTxOByte:    4310,
		KeyDeposit:          2000000,
		PoolDeposit:         500000000,
		PriceMem:            0.0577,
		PriceStep:           0.0000721,
		MaxTxExMem:          16000000,
		MaxTxExSteps:        10000000000,
		CollateralPercent:   150,
		MaxCollateralInputs: 3,
	}
}

// Clone returns a deep copy of the protocol parameters
func (p ProtocolParameters) Clone() (ProtocolParameters, error) {
	var ret ProtocolParameters
	if err := copier.CopyWithOption(&ret, &p, copier.Option{DeepCopy: true}); err != nil {
		return ProtocolParameters{}, fmt.Errorf("copy protocol parameters: %w", err)
	}
	return ret, nil
}

// priceRat converts an execution unit price to an exact rational using its shortest
// decimal representation
func priceRat(price float64) *big.Rat {
	ret, ok := new(big.Rat).SetString(strconv.FormatFloat(price, 'f', -1, 64))
	if !ok {
		return new(big.Rat)
	}
	return ret
}
