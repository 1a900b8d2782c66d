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
package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrSubmission matches any SubmissionError via errors.Is
	ErrSubmission = errors.New("transaction submission failed")
	// ErrHTTP matches any HTTPError via errors.Is
	ErrHTTP = errors.New("provider request failed")
)

// SubmissionError is returned when the provider rejects a transaction. Message holds the
// reason given by the upstream service
type SubmissionError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e SubmissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transaction submission failed: %v", e.Err)
	}
	return fmt.Sprintf(
		"transaction submission failed (status %d): %s",
		e.StatusCode,
		e.Message,
	)
}

func (e SubmissionError) Unwrap() error { return e.Err }

func (SubmissionError) Is(target error) bool {
	return target == ErrSubmission
}

// HTTPError is returned when a provider request fails or returns an unexpected status
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e HTTPError) Unwrap() error { return e.Err }

func (HTTPError) Is(target error) bool {
	return target == ErrHTTP
}
