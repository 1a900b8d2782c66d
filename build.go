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
package txcompose

import (
	"context"
	"fmt"
	"slices"

	"github.com/blinklabs-io/txcompose/checkpoint"
	"github.com/blinklabs-io/txcompose/coinselect"
	"github.com/blinklabs-io/txcompose/ledger"
)

const maxFeeIterations = 10

// buildState holds what Build resolves before settling the fee
type buildState struct {
	scriptMode    bool
	collateral    []ledger.UTxO
	changeAddress *ledger.Address
	outputsTotal  ledger.Value
	scriptValue   ledger.Value
	exUnits       []ledger.ExUnits
	auxCbor       []byte
	auxHash       *ledger.Blake2b256
}

// Build resolves collateral, inputs and change and returns the unsigned transaction.
// Build can only be called once per Composer
func (c *Composer) Build(ctx context.Context) ([]byte, error) {
	if c.built {
		return nil, ErrAlreadyBuilt
	}
	c.built = true
	if c.err != nil {
		return nil, c.err
	}
	d := &c.draft
	st := &buildState{
		scriptMode:   d.checkpoints.WasInvoked(checkpoint.RedeemFromScript),
		outputsTotal: sumOutputs(d.outputs),
	}
	for _, input := range d.scriptInputs {
		st.scriptValue = st.scriptValue.Add(input.utxo.Output.Amount)
		st.exUnits = append(st.exUnits, input.redeemer.ExUnits)
	}
	if err := c.checkExUnits(st.exUnits); err != nil {
		return nil, err
	}
	// Collateral and required signers
	if st.scriptMode {
		collateral, err := c.resolveCollateral(ctx)
		if err != nil {
			return nil, err
		}
		st.collateral = collateral
	}
	// Inputs
	explicitInputs := d.checkpoints.WasInvoked(checkpoint.SetTxInputs)
	candidates := d.inputs
	if !explicitInputs {
		walletUtxos, err := c.walletUtxos(ctx)
		if err != nil {
			return nil, err
		}
		candidates = walletUtxos
	}
	candidates = spendableCandidates(candidates, d.scriptInputs)
	strategy := coinselect.StrategyFor(d.outputs)
	if d.checkpoints.WasInvoked(checkpoint.SendAssets) ||
		d.checkpoints.WasInvoked(checkpoint.SendValue) {
		strategy = coinselect.LargestFirstMultiAsset
	}
	c.logger.Debug(
		"resolved input candidates",
		"explicit", explicitInputs,
		"candidates", len(candidates),
		"script_inputs", len(d.scriptInputs),
		"strategy", strategy.String(),
	)
	// Change address
	changeAddress, err := c.resolveChangeAddress(ctx)
	if err != nil {
		return nil, err
	}
	st.changeAddress = changeAddress
	// Metadata
	if len(d.metadata) > 0 {
		auxCbor, err := d.metadata.MarshalCBOR()
		if err != nil {
			return nil, ledger.EncodingError{Entity: "metadata", Err: err}
		}
		auxHash := ledger.AuxiliaryDataHash(auxCbor)
		st.auxCbor = auxCbor
		st.auxHash = &auxHash
	}
	// Fee and change
	tx, selected, err := c.settleFee(st, candidates, explicitInputs, strategy)
	if err != nil {
		return nil, err
	}
	if st.scriptMode && !explicitInputs {
		if err := d.signers.AddFrom(selected); err != nil {
			return nil, SigningPrerequisiteError{Reason: "required signers", Err: err}
		}
	}
	txCbor, err := tx.MarshalCBOR()
	if err != nil {
		return nil, err
	}
	txHash, err := tx.Body.Hash()
	if err != nil {
		return nil, err
	}
	c.logger.Debug(
		"built transaction",
		"tx_hash", txHash.String(),
		"size", len(txCbor),
		"inputs", len(tx.Body.Inputs),
		"outputs", len(tx.Body.Outputs),
		"fee", tx.Body.Fee,
	)
	return txCbor, nil
}

// settleFee selects inputs and sizes the change until the fee covers the transaction
// it's part of. It returns the transaction along with the inputs selected from the
// candidates
func (c *Composer) settleFee(
	st *buildState,
	candidates []ledger.UTxO,
	explicitInputs bool,
	strategy coinselect.Strategy,
) (*ledger.Transaction, []ledger.UTxO, error) {
	fee := ledger.MinFee(c.pparams, 0, st.exUnits)
	for iteration := range maxFeeIterations {
		inputs := candidates
		if !explicitInputs {
			selection, err := coinselect.Select(
				candidates,
				st.outputsTotal.SaturatingSub(st.scriptValue),
				strategy,
				feeBuffer(st, fee),
			)
			if err != nil {
				return nil, nil, err
			}
			inputs = selection.Selected
		}
		total := ledger.SumValue(inputs).Add(st.scriptValue)
		required := st.outputsTotal.Clone()
		required.Coin += fee
		change, err := total.Sub(required)
		if err != nil {
			return nil, nil, coinselect.InsufficientFundsError{
				Required:  required,
				Available: total,
			}
		}
		if !change.IsZero() {
			if st.changeAddress == nil {
				return nil, nil, ErrNoChangeAddress
			}
			minChange, err := ledger.MinOutputCoin(
				ledger.TxOutput{Address: *st.changeAddress, Amount: change},
				c.pparams.CoinsPerUTxOByte,
			)
			if err != nil {
				return nil, nil, err
			}
			if change.Coin < minChange {
				if change.HasAssets() {
					required.Coin += minChange - change.Coin
					return nil, nil, coinselect.InsufficientFundsError{
						Required:  required,
						Available: total,
					}
				}
				// A lovelace-only remainder too small for an output goes to the fee
				fee += change.Coin
				change = ledger.Value{}
			}
		}
		tx, err := c.assemble(st, inputs, change, fee)
		if err != nil {
			return nil, nil, err
		}
		txSize, err := estimateSize(tx, inputs, st.collateral)
		if err != nil {
			return nil, nil, err
		}
		minFee := ledger.MinFee(c.pparams, txSize, st.exUnits)
		if minFee <= fee {
			if txSize > c.pparams.MaxTxSize {
				return nil, nil, ledger.ValidationError{
					Entity: "transaction",
					Err: fmt.Errorf(
						"size %d exceeds maximum %d",
						txSize,
						c.pparams.MaxTxSize,
					),
				}
			}
			c.logger.Debug(
				"settled fee",
				"fee", fee,
				"change", change.String(),
				"iterations", iteration+1,
				"selected", len(inputs),
			)
			return tx, inputs, nil
		}
		fee = minFee
	}
	return nil, nil, ErrFeeNotSettled
}

// feeBuffer returns the part of the fee that the selected inputs must cover, after any
// lovelace the script inputs carry beyond the outputs
func feeBuffer(st *buildState, fee uint64) uint64 {
	if st.scriptValue.Coin <= st.outputsTotal.Coin {
		return fee
	}
	surplus := st.scriptValue.Coin - st.outputsTotal.Coin
	if surplus >= fee {
		return 0
	}
	return fee - surplus
}

// assemble builds the transaction body and witness set for the provided inputs, change
// and fee. Vkey witnesses are left out
func (c *Composer) assemble(
	st *buildState,
	inputs []ledger.UTxO,
	change ledger.Value,
	fee uint64,
) (*ledger.Transaction, error) {
	d := &c.draft
	allInputs := make([]ledger.TxInput, 0, len(inputs)+len(d.scriptInputs))
	for _, utxo := range inputs {
		allInputs = append(allInputs, utxo.Input)
	}
	for _, input := range d.scriptInputs {
		allInputs = append(allInputs, input.utxo.Input)
	}
	slices.SortFunc(allInputs, ledger.TxInput.Compare)
	outputs := make([]ledger.TxOutput, 0, len(d.outputs)+1)
	for _, output := range d.outputs {
		outputs = append(outputs, output.Clone())
	}
	if !change.IsZero() {
		outputs = append(
			outputs,
			ledger.TxOutput{Address: *st.changeAddress, Amount: change},
		)
	}
	tx := &ledger.Transaction{
		Body: ledger.TransactionBody{
			Inputs:      allInputs,
			Outputs:     outputs,
			Fee:         fee,
			Ttl:         d.ttl,
			AuxDataHash: st.auxHash,
		},
		IsValid:       true,
		AuxiliaryData: st.auxCbor,
	}
	if !st.scriptMode {
		return tx, nil
	}
	collateralInputs := make([]ledger.TxInput, 0, len(st.collateral))
	for _, utxo := range st.collateral {
		collateralInputs = append(collateralInputs, utxo.Input)
	}
	slices.SortFunc(collateralInputs, ledger.TxInput.Compare)
	tx.Body.Collateral = collateralInputs
	requiredSigners := d.signers.Clone()
	if err := requiredSigners.AddFrom(inputs); err != nil {
		return nil, SigningPrerequisiteError{Reason: "required signers", Err: err}
	}
	tx.Body.RequiredSigners = requiredSigners.ExportRequiredSigners()
	if err := c.addScriptWitnesses(tx, allInputs); err != nil {
		return nil, err
	}
	return tx, nil
}

// addScriptWitnesses adds the scripts, datums and redeemers of the script inputs to the
// witness set along with the script data hash
func (c *Composer) addScriptWitnesses(
	tx *ledger.Transaction,
	sortedInputs []ledger.TxInput,
) error {
	d := &c.draft
	if len(d.scriptInputs) == 0 {
		return nil
	}
	ws := &tx.WitnessSet
	versions := make([]ledger.PlutusVersion, 0, len(d.scriptInputs))
	seenDatums := map[ledger.DatumHash]struct{}{}
	for _, input := range d.scriptInputs {
		ws.AddScript(input.script)
		versions = append(versions, input.script.Version)
		datumHash, err := input.datum.Hash()
		if err != nil {
			return err
		}
		if _, ok := seenDatums[datumHash]; !ok {
			seenDatums[datumHash] = struct{}{}
			ws.PlutusData = append(ws.PlutusData, input.datum)
		}
		redeemer := input.redeemer
		if redeemer.Tag == ledger.RedeemerTagSpend {
			idx := slices.IndexFunc(
				sortedInputs,
				func(i ledger.TxInput) bool { return i.Compare(input.utxo.Input) == 0 },
			)
			// #nosec G115 -- input count is bounded by the maximum transaction size
			redeemer.Index = uint32(idx)
		}
		ws.Redeemers = append(ws.Redeemers, redeemer)
	}
	scriptDataHash, err := ledger.ScriptDataHash(
		ws.Redeemers,
		ws.PlutusData,
		c.pparams.CostModels,
		versions,
	)
	if err != nil {
		return err
	}
	tx.Body.ScriptDataHash = &scriptDataHash
	return nil
}

// estimateSize returns the size of the transaction once signed, using placeholder vkey
// witnesses for every key expected to sign
func estimateSize(
	tx *ledger.Transaction,
	inputs []ledger.UTxO,
	collateral []ledger.UTxO,
) (uint64, error) {
	keyHashes := map[ledger.AddrKeyHash]struct{}{}
	for _, keyHash := range tx.Body.RequiredSigners {
		keyHashes[keyHash] = struct{}{}
	}
	for _, utxos := range [][]ledger.UTxO{inputs, collateral} {
		for _, utxo := range utxos {
			keyHash, err := utxo.Output.Address.PaymentKeyHash()
			if err != nil {
				// Script inputs need no vkey witness
				continue
			}
			keyHashes[keyHash] = struct{}{}
		}
	}
	tmpTx := *tx
	tmpTx.WitnessSet.VkeyWitnesses = ledger.FakeVkeyWitnesses(max(len(keyHashes), 1))
	txCbor, err := tmpTx.MarshalCBOR()
	if err != nil {
		return 0, err
	}
	return uint64(len(txCbor)), nil
}

// spendableCandidates drops repeated UTxOs and the script inputs from the candidates,
// so every input the body spends is counted once
func spendableCandidates(
	candidates []ledger.UTxO,
	scriptInputs []scriptInput,
) []ledger.UTxO {
	seen := make(map[ledger.TxInput]struct{}, len(candidates)+len(scriptInputs))
	for _, input := range scriptInputs {
		seen[input.utxo.Input] = struct{}{}
	}
	ret := make([]ledger.UTxO, 0, len(candidates))
	for _, utxo := range candidates {
		if _, ok := seen[utxo.Input]; ok {
			continue
		}
		seen[utxo.Input] = struct{}{}
		ret = append(ret, utxo)
	}
	return ret
}

func sumOutputs(outputs []ledger.TxOutput) ledger.Value {
	var ret ledger.Value
	for _, output := range outputs {
		ret = ret.Add(output.Amount)
	}
	return ret
}

// resolveCollateral returns the explicit collateral, or the wallet collateral when none
// was set. The owning key hashes are added to the required signers
func (c *Composer) resolveCollateral(ctx context.Context) ([]ledger.UTxO, error) {
	d := &c.draft
	if d.checkpoints.WasInvoked(checkpoint.SetCollateral) {
		if len(d.collateral) == 0 {
			return nil, SigningPrerequisiteError{Reason: "collateral set is empty"}
		}
		c.logger.Debug(
			"using explicit collateral",
			"collateral", ledger.FormatInputs(d.collateral),
		)
		return d.collateral, nil
	}
	if c.wallet == nil {
		return nil, SigningPrerequisiteError{
			Reason: "no collateral set and no wallet available",
		}
	}
	// #nosec G115 -- protocol limit on collateral inputs is small
	collateral, err := c.wallet.GetCollateral(ctx, int(c.pparams.MaxCollateralInputs))
	if err != nil {
		return nil, SigningPrerequisiteError{Reason: "wallet collateral", Err: err}
	}
	if len(collateral) == 0 {
		return nil, SigningPrerequisiteError{Reason: "wallet has no collateral"}
	}
	if err := d.signers.AddFrom(collateral); err != nil {
		return nil, SigningPrerequisiteError{Reason: "collateral", Err: err}
	}
	c.logger.Debug(
		"using wallet collateral",
		"collateral", ledger.FormatInputs(collateral),
	)
	return collateral, nil
}

func (c *Composer) walletUtxos(ctx context.Context) ([]ledger.UTxO, error) {
	if c.wallet == nil {
		return nil, nil
	}
	return c.wallet.GetUtxos(ctx)
}

// resolveChangeAddress returns the explicit change address or the wallet change
// address. It returns nil if neither is available
func (c *Composer) resolveChangeAddress(ctx context.Context) (*ledger.Address, error) {
	if c.draft.changeAddress != nil {
		return c.draft.changeAddress, nil
	}
	if c.wallet == nil {
		return nil, nil
	}
	changeAddress, err := c.wallet.GetChangeAddress(ctx)
	if err != nil {
		return nil, err
	}
	addr, err := c.parseAddress(changeAddress)
	if err != nil {
		return nil, err
	}
	c.logger.Debug(
		"using wallet change address",
		"address", changeAddress,
	)
	return &addr, nil
}

// checkExUnits verifies that the script budgets fit in the per-transaction limits
func (c *Composer) checkExUnits(exUnits []ledger.ExUnits) error {
	var mem, steps uint64
	for _, units := range exUnits {
		mem += units.Memory
		steps += units.Steps
	}
	if mem > c.pparams.MaxTxExMem || steps > c.pparams.MaxTxExSteps {
		return ledger.ValidationError{
			Entity: "execution budget",
			Err: fmt.Errorf(
				"total budget (%d mem, %d steps) exceeds limit (%d mem, %d steps)",
				mem,
				steps,
				c.pparams.MaxTxExMem,
				c.pparams.MaxTxExSteps,
			),
		}
	}
	return nil
}
