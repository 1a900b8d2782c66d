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
// Package txcompose assembles Cardano transactions from declarative intents.
//
// A Composer collects intents such as payments, script spends, collateral, metadata
// and a time to live. Build then resolves whatever was left open (collateral and
// inputs from the connected wallet, the change address and the fee) and returns the
// unsigned transaction CBOR. The wallet package signs the result and merges the
// returned vkey witnesses without touching the script witnesses placed by Build.
//
//	composer := txcompose.NewComposer(
//		txcompose.WithWallet(w),
//		txcompose.WithProtocolParameters(pparams),
//	)
//	unsigned, err := composer.
//		SendLovelace(recipient, 2_000_000).
//		SetChangeAddress(changeAddr).
//		Build(ctx)
package txcompose
