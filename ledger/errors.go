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
	"errors"
	"fmt"
)

var (
	// ErrValidation matches any ValidationError via errors.Is
	ErrValidation = errors.New("validation failed")
	// ErrEncoding matches any EncodingError via errors.Is
	ErrEncoding = errors.New("encoding failed")
)

// ValidationError indicates a malformed domain entity, such as an address, script,
// datum, asset unit, or metadata document
type ValidationError struct {
	Entity string
	Value  string
	Err    error
}

func (e ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %v", e.Entity, e.Err)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Entity, e.Value, e.Err)
}

func (e ValidationError) Unwrap() error { return e.Err }

func (ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// EncodingError indicates a failure at the serialization boundary
type EncodingError struct {
	Entity string
	Err    error
}

func (e EncodingError) Error() string {
	return fmt.Sprintf("failed to encode %s: %v", e.Entity, e.Err)
}

func (e EncodingError) Unwrap() error { return e.Err }

func (EncodingError) Is(target error) bool {
	return target == ErrEncoding
}

// MissingCostModelError indicates a missing cost model for a Plutus version
type MissingCostModelError struct {
	Version PlutusVersion
}

func (e MissingCostModelError) Error() string {
	return fmt.Sprintf("missing cost model for Plutus %s", e.Version)
}

func newValidationError(entity string, value string, err error) ValidationError {
	return ValidationError{Entity: entity, Value: value, Err: err}
}
