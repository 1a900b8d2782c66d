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
package blockfrost

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/blinklabs-io/txcompose/ledger"
)

// quantity accepts both JSON numbers and numeric strings, since the API returns large
// values as strings
type quantity uint64

func (q *quantity) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*q = 0
		return nil
	}
	tmp := string(bytes.Trim(data, `"`))
	val, err := strconv.ParseUint(tmp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid quantity %s: %w", string(data), err)
	}
	*q = quantity(val)
	return nil
}

type protocolParametersResponse struct {
	Epoch               quantity           `json:"epoch"`
	MinFeeA             quantity           `json:"min_fee_a"`
	MinFeeB             quantity           `json:"min_fee_b"`
	MaxTxSize           quantity           `json:"max_tx_size"`
	MaxValSize          quantity           `json:"max_val_size"`
	KeyDeposit          quantity           `json:"key_deposit"`
	PoolDeposit         quantity           `json:"pool_deposit"`
	PriceMem            float64            `json:"price_mem"`
	PriceStep           float64            `json:"price_step"`
	MaxTxExMem          quantity           `json:"max_tx_ex_mem"`
	MaxTxExSteps        quantity           `json:"max_tx_ex_steps"`
	CoinsPerUtxoSize    quantity           `json:"coins_per_utxo_size"`
	CoinsPerUtxoWord    quantity           `json:"coins_per_utxo_word"`
	CollateralPercent   quantity           `json:"collateral_percent"`
	MaxCollateralInputs quantity           `json:"max_collateral_inputs"`
	CostModelsRaw       map[string][]int64 `json:"cost_models_raw"`
}

var costModelVersions = map[string]ledger.PlutusVersion{
	"PlutusV1": ledger.PlutusV1,
	"PlutusV2": ledger.PlutusV2,
	"PlutusV3": ledger.PlutusV3,
}

func (r protocolParametersResponse) toLedger() ledger.ProtocolParameters {
	ret := ledger.ProtocolParameters{
		Epoch:               uint64(r.Epoch),
		MinFeeA:             uint64(r.MinFeeA),
		MinFeeB:             uint64(r.MinFeeB),
		MaxTxSize:           uint64(r.MaxTxSize),
		MaxValSize:          uint64(r.MaxValSize),
		CoinsPerUTxOByte:    uint64(r.CoinsPerUtxoSize),
		KeyDeposit:          uint64(r.KeyDeposit),
		PoolDeposit:         uint64(r.PoolDeposit),
		PriceMem:            r.PriceMem,
		PriceStep:           r.PriceStep,
		MaxTxExMem:          uint64(r.MaxTxExMem),
		MaxTxExSteps:        uint64(r.MaxTxExSteps),
		CollateralPercent:   uint64(r.CollateralPercent),
		MaxCollateralInputs: uint64(r.MaxCollateralInputs),
	}
	// Older epochs only report the cost per 8-byte word
	if ret.CoinsPerUTxOByte == 0 {
		ret.CoinsPerUTxOByte = uint64(r.CoinsPerUtxoWord) / 8
	}
	if len(r.CostModelsRaw) > 0 {
		ret.CostModels = make(map[ledger.PlutusVersion][]int64, len(r.CostModelsRaw))
		for name, costModel := range r.CostModelsRaw {
			version, ok := costModelVersions[name]
			if !ok {
				continue
			}
			ret.CostModels[version] = costModel
		}
	}
	return ret
}

type utxoAmount struct {
	Unit     string   `json:"unit"`
	Quantity quantity `json:"quantity"`
}

type utxoResponse struct {
	Address     string       `json:"address"`
	TxHash      string       `json:"tx_hash"`
	OutputIndex uint32       `json:"output_index"`
	Amount      []utxoAmount `json:"amount"`
	DataHash    *string      `json:"data_hash"`
	InlineDatum *string      `json:"inline_datum"`
}

func (r utxoResponse) toLedger(address string) (ledger.UTxO, error) {
	if r.Address != "" {
		address = r.Address
	}
	addr, err := ledger.NewAddress(address)
	if err != nil {
		return ledger.UTxO{}, err
	}
	input, err := ledger.NewTxInput(r.TxHash, r.OutputIndex)
	if err != nil {
		return ledger.UTxO{}, err
	}
	assets := make([]ledger.Asset, 0, len(r.Amount))
	for _, amount := range r.Amount {
		assets = append(
			assets,
			ledger.Asset{Unit: amount.Unit, Quantity: uint64(amount.Quantity)},
		)
	}
	value, err := ledger.ValueFromAssets(assets)
	if err != nil {
		return ledger.UTxO{}, err
	}
	output := ledger.TxOutput{
		Address: addr,
		Amount:  value,
	}
	if r.DataHash != nil && *r.DataHash != "" {
		hashBytes, err := hex.DecodeString(*r.DataHash)
		if err != nil {
			return ledger.UTxO{}, fmt.Errorf("invalid data hash: %w", err)
		}
		if len(hashBytes) != ledger.Blake2b256Size {
			return ledger.UTxO{}, fmt.Errorf("invalid data hash length: %d", len(hashBytes))
		}
		datumHash := ledger.NewBlake2b256(hashBytes)
		output.DatumHash = &datumHash
	}
	if r.InlineDatum != nil && *r.InlineDatum != "" {
		datumBytes, err := hex.DecodeString(*r.InlineDatum)
		if err != nil {
			return ledger.UTxO{}, fmt.Errorf("invalid inline datum: %w", err)
		}
		output.InlineDatum = datumBytes
	}
	return ledger.UTxO{Input: input, Output: output}, nil
}

type errorResponse struct {
	StatusCode int             `json:"status_code"`
	Error      string          `json:"error"`
	Message    json.RawMessage `json:"message"`
}

// errorMessage extracts the message from an error response body. Submission failures
// carry a nested object instead of a string, which is returned as-is
func errorMessage(body []byte) string {
	var tmp errorResponse
	if err := json.Unmarshal(body, &tmp); err != nil || len(tmp.Message) == 0 {
		return string(bytes.TrimSpace(body))
	}
	var msg string
	if err := json.Unmarshal(tmp.Message, &msg); err == nil {
		return msg
	}
	return string(tmp.Message)
}

var errEmptyHash = errors.New("empty transaction hash in response")
