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
// Package bench holds benchmarks for transaction composition
package bench

import (
	"github.com/blinklabs-io/txcompose/ledger"

	test_ledger "github.com/blinklabs-io/txcompose/internal/test/ledger"
)

// WalletUtxos returns count UTxOs at addr with varying lovelace. Every fourth UTxO also
// carries tokens under one of four policies
func WalletUtxos(addr ledger.Address, count int) []ledger.UTxO {
	ret := make([]ledger.UTxO, 0, count)
	for idx := range count {
		value := ledger.Value{
			// #nosec G115 -- fixture sizes are small
			Coin: 1_000_000 + uint64(idx%50)*250_000,
		}
		if idx%4 == 0 {
			// #nosec G115 -- fixture sizes are small
			value.Assets = test_ledger.Tokens(
				test_ledger.PolicyId(byte(idx%4+1)),
				"token",
				uint64(idx+1),
			)
		}
		// #nosec G115 -- fixture sizes are small
		ret = append(ret, test_ledger.NewUTxO(byte(idx), uint32(idx), addr, value))
	}
	return ret
}
