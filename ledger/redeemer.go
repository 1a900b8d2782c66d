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
	"github.com/blinklabs-io/txcompose/cbor"
)

type RedeemerTag uint8

const (
	RedeemerTagSpend  RedeemerTag = 0
	RedeemerTagMint   RedeemerTag = 1
	RedeemerTagCert   RedeemerTag = 2
	RedeemerTagReward RedeemerTag = 3
)

func (t RedeemerTag) String() string {
	switch t {
	case RedeemerTagSpend:
		return "SPEND"
	case RedeemerTagMint:
		return "MINT"
	case RedeemerTagCert:
		return "CERT"
	case RedeemerTagReward:
		return "REWARD"
	}
	return "UNKNOWN"
}

// ExUnits is an execution budget
type ExUnits struct {
	cbor.StructAsArray
	Memory uint64
	Steps  uint64
}

// DefaultRedeemerBudget is the execution budget assigned to a redeemer when none is provided
var DefaultRedeemerBudget = ExUnits{
	Memory: 7_000_000,
	Steps:  3_000_000_000,
}

// Redeemer is a script action. For SPEND redeemers, the index is the position of the
// redeemed input among the sorted transaction inputs
type Redeemer struct {
	cbor.StructAsArray
	Tag     RedeemerTag
	Index   uint32
	Data    Datum
	ExUnits ExUnits
}

// EncodeRedeemers encodes redeemers as the witness set array form
func EncodeRedeemers(redeemers []Redeemer) ([]byte, error) {
	if redeemers == nil {
		redeemers = []Redeemer{}
	}
	return cbor.Encode(redeemers)
}
