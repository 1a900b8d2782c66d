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
)

var (
	// ErrSigningPrerequisite matches any SigningPrerequisiteError via errors.Is
	ErrSigningPrerequisite = errors.New("signing prerequisite not met")
	// ErrAlreadyBuilt is returned when a Composer is used after Build
	ErrAlreadyBuilt = errors.New("transaction already built")
	// ErrNoChangeAddress is returned when a transaction has change but neither an
	// explicit change address nor a wallet
	ErrNoChangeAddress = errors.New("no change address available")
	// ErrFeeNotSettled is returned when the fee does not reach a fixed point
	ErrFeeNotSettled = errors.New("transaction fee did not settle")
)

// SigningPrerequisiteError indicates that the collateral or required signers for a
// script spend could not be resolved
type SigningPrerequisiteError struct {
	Reason string
	Err    error
}

func (e SigningPrerequisiteError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("signing prerequisite not met: %s", e.Reason)
	}
	return fmt.Sprintf("signing prerequisite not met: %s: %v", e.Reason, e.Err)
}

func (e SigningPrerequisiteError) Unwrap() error { return e.Err }

func (SigningPrerequisiteError) Is(target error) bool {
	return target == ErrSigningPrerequisite
}
