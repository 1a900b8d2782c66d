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

package wallet

import (
	"errors"
	"fmt"
)

// ErrSigning matches any SigningError via errors.Is
var ErrSigning = errors.New("signing failed")

type SigningErrorKind int

const (
	SigningErrorProofGeneration SigningErrorKind = iota + 1
	SigningErrorUserRejected
)

func (k SigningErrorKind) String() string {
	switch k {
	case SigningErrorProofGeneration:
		return "proof generation failed"
	case SigningErrorUserRejected:
		return "user rejected"
	}
	return "unknown"
}

// SigningError indicates that the external signer refused to sign or produced witnesses
// that can't be used
type SigningError struct {
	Kind SigningErrorKind
	Err  error
}

func (e SigningError) Error() string {
	return fmt.Sprintf("signing failed (%s): %v", e.Kind, e.Err)
}

func (e SigningError) Unwrap() error { return e.Err }

func (SigningError) Is(target error) bool {
	return target == ErrSigning
}

// TxSignErrorCode is a CIP-30 TxSignError code
type TxSignErrorCode int

const (
	TxSignErrorProofGeneration TxSignErrorCode = 1
	TxSignErrorUserDeclined    TxSignErrorCode = 2
)

// TxSignError is the error a wallet returns from SignTx
type TxSignError struct {
	Code TxSignErrorCode
	Info string
}

func (e TxSignError) Error() string {
	return fmt.Sprintf("wallet sign error %d: %s", e.Code, e.Info)
}

// signingErrorFrom classifies an error returned by a signer. Anything other than an
// explicit user refusal is reported as a proof generation failure
func signingErrorFrom(err error) SigningError {
	var signErr TxSignError
	if errors.As(err, &signErr) && signErr.Code == TxSignErrorUserDeclined {
		return SigningError{Kind: SigningErrorUserRejected, Err: err}
	}
	return SigningError{Kind: SigningErrorProofGeneration, Err: err}
}
