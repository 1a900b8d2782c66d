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

package checkpoint_test

import (
	"testing"

	"github.com/blinklabs-io/txcompose/checkpoint"
	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	tracker := checkpoint.NewTracker()
	assert.False(t, tracker.WasInvoked(checkpoint.RedeemFromScript))
	assert.Empty(t, tracker.Names())

	tracker.Record(checkpoint.SendLovelace)
	tracker.Record(checkpoint.RedeemFromScript)
	tracker.Record(checkpoint.SendLovelace)

	assert.True(t, tracker.WasInvoked(checkpoint.SendLovelace))
	assert.True(t, tracker.WasInvoked(checkpoint.RedeemFromScript))
	assert.False(t, tracker.WasInvoked(checkpoint.SendAssets))
	assert.Equal(
		t,
		[]string{checkpoint.SendLovelace, checkpoint.RedeemFromScript},
		tracker.Names(),
	)
}

func TestTrackerNamesIsACopy(t *testing.T) {
	tracker := checkpoint.NewTracker()
	tracker.Record(checkpoint.SetCollateral)
	names := tracker.Names()
	names[0] = "mutated"
	assert.True(t, tracker.WasInvoked(checkpoint.SetCollateral))
	assert.Equal(t, []string{checkpoint.SetCollateral}, tracker.Names())
}

func TestTrackerZeroValue(t *testing.T) {
	var tracker checkpoint.Tracker
	assert.False(t, tracker.WasInvoked(checkpoint.SetMetadata))
	tracker.Record(checkpoint.SetMetadata)
	assert.True(t, tracker.WasInvoked(checkpoint.SetMetadata))
}
