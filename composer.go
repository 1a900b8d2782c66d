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
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/blinklabs-io/txcompose/checkpoint"
	"github.com/blinklabs-io/txcompose/ledger"
	"github.com/blinklabs-io/txcompose/signers"
	"github.com/blinklabs-io/txcompose/wallet"
)

// SendOptions holds the optional settings for an output
type SendOptions struct {
	// Datum is attached to the output by hash. There is no datum by default
	Datum *ledger.Datum
	// CoinsPerByte is the cost per output byte used to compute the minimum lovelace of
	// an asset output. Zero means the protocol parameter value
	CoinsPerByte uint64
}

// RedeemOptions holds the optional settings for a script spend
type RedeemOptions struct {
	// Datum is the datum of the locked UTxO. This defaults to ledger.DefaultDatum()
	Datum *ledger.Datum
	// Redeemer is the redeemer payload. This defaults to ledger.DefaultDatum()
	Redeemer *ledger.Datum
	// Tag is the redeemer tag. This defaults to ledger.RedeemerTagSpend
	Tag ledger.RedeemerTag
	// Budget is the execution budget. This defaults to ledger.DefaultRedeemerBudget
	Budget *ledger.ExUnits
	// Version is the Plutus version of the script. This defaults to ledger.PlutusV2
	Version ledger.PlutusVersion
}

type scriptInput struct {
	utxo     ledger.UTxO
	script   ledger.PlutusScript
	datum    ledger.Datum
	redeemer ledger.Redeemer
}

// draft holds the intents accumulated by a Composer
type draft struct {
	outputs       []ledger.TxOutput
	inputs        []ledger.UTxO
	scriptInputs  []scriptInput
	collateral    []ledger.UTxO
	changeAddress *ledger.Address
	ttl           *uint64
	metadata      ledger.Metadata
	checkpoints   *checkpoint.Tracker
	signers       *signers.Registry
}

// Composer accumulates transaction intents and assembles them into an unsigned
// transaction with Build. Intent methods return the Composer for chaining. The first
// failing intent is kept and returned by Build.
//
// A Composer builds a single transaction and is not safe for concurrent use
type Composer struct {
	pparams        ledger.ProtocolParameters
	walletProvider wallet.Wallet
	wallet         *wallet.Service
	logger         *slog.Logger
	network        *ledger.Network
	draft          draft
	err            error
	built          bool
}

// NewComposer returns a Composer with the provided options applied
func NewComposer(opts ...ComposerOptionFunc) *Composer {
	c := &Composer{
		pparams: ledger.DefaultProtocolParameters(),
		draft: draft{
			metadata:    ledger.Metadata{},
			checkpoints: checkpoint.NewTracker(),
			signers:     signers.NewRegistry(),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	pparams, err := c.pparams.Clone()
	if err != nil {
		c.err = err
	}
	c.pparams = pparams
	if c.walletProvider != nil {
		c.wallet = wallet.NewService(c.walletProvider, wallet.WithLogger(c.logger))
	}
	return c
}

// Err returns the first error raised by an intent, if any
func (c *Composer) Err() error {
	return c.err
}

// Checkpoints returns the names of the invoked operations in the order they were first
// invoked
func (c *Composer) Checkpoints() []string {
	return c.draft.checkpoints.Names()
}

// SendLovelace adds an output paying exactly the provided amount of lovelace
func (c *Composer) SendLovelace(
	address string,
	lovelace uint64,
	opts ...SendOptions,
) *Composer {
	if !c.begin(checkpoint.SendLovelace) {
		return c
	}
	output, err := c.newOutput(address, ledger.Value{Coin: lovelace}, opts)
	if err != nil {
		return c.fail(err)
	}
	c.draft.outputs = append(c.draft.outputs, output)
	return c
}

// SendAssets adds an output carrying the non-native assets in the provided list along
// with the minimum lovelace required for it. Lovelace entries are ignored. Nothing is
// added when no non-native asset has a non-zero quantity
func (c *Composer) SendAssets(
	address string,
	assets []ledger.Asset,
	opts ...SendOptions,
) *Composer {
	if !c.begin(checkpoint.SendAssets) {
		return c
	}
	value, err := ledger.ValueFromAssets(assets)
	if err != nil {
		return c.fail(err)
	}
	if !value.HasAssets() {
		return c
	}
	output, err := c.newOutput(address, ledger.Value{Assets: value.Assets}, opts)
	if err != nil {
		return c.fail(err)
	}
	coinsPerByte := c.pparams.CoinsPerUTxOByte
	if len(opts) > 0 && opts[0].CoinsPerByte > 0 {
		coinsPerByte = opts[0].CoinsPerByte
	}
	minCoin, err := ledger.MinOutputCoin(output, coinsPerByte)
	if err != nil {
		return c.fail(err)
	}
	output.Amount.Coin = minCoin
	c.draft.outputs = append(c.draft.outputs, output)
	return c
}

// SendValue adds an output carrying the full value of the provided UTxO
func (c *Composer) SendValue(
	address string,
	source ledger.UTxO,
	opts ...SendOptions,
) *Composer {
	if !c.begin(checkpoint.SendValue) {
		return c
	}
	output, err := c.newOutput(address, source.Output.Amount.Clone(), opts)
	if err != nil {
		return c.fail(err)
	}
	c.draft.outputs = append(c.draft.outputs, output)
	return c
}

// RedeemFromScript spends a UTxO locked by the provided Plutus script. The script bytes
// are the CBOR-wrapped program. Collateral and required signers are resolved by Build
func (c *Composer) RedeemFromScript(
	utxo ledger.UTxO,
	scriptBytes []byte,
	opts ...RedeemOptions,
) *Composer {
	if !c.begin(checkpoint.RedeemFromScript) {
		return c
	}
	var opt RedeemOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	version := opt.Version
	if version == 0 {
		version = ledger.PlutusV2
	}
	script, err := ledger.NewPlutusScript(version, scriptBytes)
	if err != nil {
		return c.fail(err)
	}
	addr := utxo.Output.Address
	paymentHash, ok := addr.PaymentHash()
	if !ok || !addr.IsScript() || paymentHash != script.Hash() {
		return c.fail(
			ledger.ValidationError{
				Entity: "script input",
				Value:  utxo.String(),
				Err:    errors.New("UTxO is not locked by the provided script"),
			},
		)
	}
	if slices.ContainsFunc(
		c.draft.scriptInputs,
		func(s scriptInput) bool { return s.utxo.Input.Compare(utxo.Input) == 0 },
	) {
		return c.fail(
			ledger.ValidationError{
				Entity: "script input",
				Value:  utxo.String(),
				Err:    errors.New("UTxO is already redeemed"),
			},
		)
	}
	datum := ledger.DefaultDatum()
	if opt.Datum != nil {
		datum = *opt.Datum
	}
	redeemerData := ledger.DefaultDatum()
	if opt.Redeemer != nil {
		redeemerData = *opt.Redeemer
	}
	budget := ledger.DefaultRedeemerBudget
	if opt.Budget != nil {
		budget = *opt.Budget
	}
	c.draft.scriptInputs = append(
		c.draft.scriptInputs,
		scriptInput{
			utxo:   utxo.Clone(),
			script: script,
			datum:  datum,
			redeemer: ledger.Redeemer{
				Tag:     opt.Tag,
				Index:   utxo.Input.OutputIndex,
				Data:    redeemerData,
				ExUnits: budget,
			},
		},
	)
	return c
}

// SetChangeAddress specifies where the change is sent. This defaults to the wallet
// change address
func (c *Composer) SetChangeAddress(address string) *Composer {
	if !c.begin(checkpoint.SetChangeAddress) {
		return c
	}
	addr, err := c.parseAddress(address)
	if err != nil {
		return c.fail(err)
	}
	c.draft.changeAddress = &addr
	return c
}

// SetCollateral specifies the collateral for script spends. The owning key hashes become
// required signers
func (c *Composer) SetCollateral(utxos []ledger.UTxO) *Composer {
	if !c.begin(checkpoint.SetCollateral) {
		return c
	}
	if err := c.draft.signers.AddFrom(utxos); err != nil {
		return c.fail(SigningPrerequisiteError{Reason: "collateral", Err: err})
	}
	c.draft.collateral = cloneUtxos(utxos)
	return c
}

// SetTxInputs specifies the inputs to spend, which disables coin selection. Calls
// accumulate and a UTxO given more than once is spent once. The owning key hashes
// become required signers
func (c *Composer) SetTxInputs(utxos []ledger.UTxO) *Composer {
	if !c.begin(checkpoint.SetTxInputs) {
		return c
	}
	if err := c.draft.signers.AddFrom(utxos); err != nil {
		return c.fail(err)
	}
	c.draft.inputs = appendUnique(c.draft.inputs, utxos)
	return c
}

// SetMetadata adds a metadata entry under the provided label. The value uses the
// detailed JSON schema
func (c *Composer) SetMetadata(label uint64, jsonData string) *Composer {
	if !c.begin(checkpoint.SetMetadata) {
		return c
	}
	md, err := ledger.ParseMetadatumJSON(jsonData)
	if err != nil {
		return c.fail(err)
	}
	c.draft.metadata[label] = md
	return c
}

// SetTimeToLive specifies the slot after which the transaction is no longer valid
func (c *Composer) SetTimeToLive(slot uint64) *Composer {
	if !c.begin(checkpoint.SetTimeToLive) {
		return c
	}
	c.draft.ttl = &slot
	return c
}

// begin records the operation and reports whether the intent should be applied
func (c *Composer) begin(name string) bool {
	if c.built {
		if c.err == nil {
			c.err = ErrAlreadyBuilt
		}
		return false
	}
	c.draft.checkpoints.Record(name)
	return c.err == nil
}

func (c *Composer) fail(err error) *Composer {
	if c.err == nil {
		c.err = err
	}
	return c
}

func (c *Composer) parseAddress(address string) (ledger.Address, error) {
	addr, err := ledger.NewAddress(address)
	if err != nil {
		return ledger.Address{}, err
	}
	if c.network != nil && addr.NetworkId() != c.network.Id {
		return ledger.Address{}, ledger.ValidationError{
			Entity: "address",
			Value:  address,
			Err: fmt.Errorf(
				"address network ID %d does not match network %s",
				addr.NetworkId(),
				c.network.Name,
			),
		}
	}
	return addr, nil
}

func (c *Composer) newOutput(
	address string,
	value ledger.Value,
	opts []SendOptions,
) (ledger.TxOutput, error) {
	addr, err := c.parseAddress(address)
	if err != nil {
		return ledger.TxOutput{}, err
	}
	output := ledger.TxOutput{
		Address: addr,
		Amount:  value,
	}
	if len(opts) > 0 && opts[0].Datum != nil {
		datumHash, err := opts[0].Datum.Hash()
		if err != nil {
			return ledger.TxOutput{}, err
		}
		output.DatumHash = &datumHash
	}
	return output, nil
}

// appendUnique appends copies of the UTxOs whose inputs aren't already in dest
func appendUnique(dest []ledger.UTxO, utxos []ledger.UTxO) []ledger.UTxO {
	for _, utxo := range utxos {
		if containsInput(dest, utxo.Input) {
			continue
		}
		dest = append(dest, utxo.Clone())
	}
	return dest
}

func containsInput(utxos []ledger.UTxO, input ledger.TxInput) bool {
	return slices.ContainsFunc(
		utxos,
		func(u ledger.UTxO) bool { return u.Input.Compare(input) == 0 },
	)
}

func cloneUtxos(utxos []ledger.UTxO) []ledger.UTxO {
	ret := make([]ledger.UTxO, 0, len(utxos))
	for _, utxo := range utxos {
		ret = append(ret, utxo.Clone())
	}
	return ret
}
