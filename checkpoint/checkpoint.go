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

// Package checkpoint records which composer operations were invoked, so that the build
// step can branch on them
package checkpoint

import "slices"

// Names of the recorded composer operations
const (
	SendLovelace     = "sendLovelace"
	SendAssets       = "sendAssets"
	SendValue        = "sendValue"
	RedeemFromScript = "redeemFromScript"
	SetChangeAddress = "setChangeAddress"
	SetCollateral    = "setCollateral"
	SetTxInputs      = "setTxInputs"
	SetMetadata      = "setMetadata"
	SetTimeToLive    = "setTimeToLive"
)

// Tracker is an append-only log of operation names. It's not safe for concurrent use
type Tracker struct {
	names []string
	seen  map[string]struct{}
}

// NewTracker returns an empty Tracker
func NewTracker() *Tracker {
	return &Tracker{
		seen: make(map[string]struct{}),
	}
}

// Record adds an operation name to the log. Recording a name more than once is harmless
func (t *Tracker) Record(name string) {
	if t.seen == nil {
		t.seen = make(map[string]struct{})
	}
	if _, ok := t.seen[name]; ok {
		return
	}
	t.seen[name] = struct{}{}
	t.names = append(t.names, name)
}

// WasInvoked returns whether the operation name was ever recorded
func (t *Tracker) WasInvoked(name string) bool {
	_, ok := t.seen[name]
	return ok
}

// Names returns the recorded operation names in the order they were first seen
func (t *Tracker) Names() []string {
	return slices.Clone(t.names)
}
