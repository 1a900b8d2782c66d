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
	"log/slog"

	"github.com/blinklabs-io/txcompose/ledger"
	"github.com/blinklabs-io/txcompose/wallet"
)

// ComposerOptionFunc is a type that represents functions that modify the Composer config
type ComposerOptionFunc func(*Composer)

// WithProtocolParameters specifies the protocol parameters used for fees, minimum output
// values and collateral. A deep copy is kept. This defaults to
// ledger.DefaultProtocolParameters()
func WithProtocolParameters(pparams ledger.ProtocolParameters) ComposerOptionFunc {
	return func(c *Composer) {
		c.pparams = pparams
	}
}

// WithWallet specifies the wallet that supplies UTxOs, collateral and the change address
// when they aren't set explicitly. There is no wallet by default
func WithWallet(w wallet.Wallet) ComposerOptionFunc {
	return func(c *Composer) {
		c.walletProvider = w
	}
}

// WithLogger specifies the logger to use. This defaults to slog.Default()
func WithLogger(logger *slog.Logger) ComposerOptionFunc {
	return func(c *Composer) {
		c.logger = logger
	}
}

// WithNetwork specifies the network. When set, every address passed to the composer must
// belong to it
func WithNetwork(network ledger.Network) ComposerOptionFunc {
	return func(c *Composer) {
		c.network = &network
	}
}
