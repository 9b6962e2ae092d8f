// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package verify

import (
	"fmt"
	"time"

	"github.com/sravinet/aisp-open-core-sub005/pkg/verdict"
)

// StatusKind classifies the overall outcome of a batch.
type StatusKind uint8

const (
	// VERIFIED indicates every property was proven.
	VERIFIED StatusKind = iota
	// PARTIALLY_VERIFIED indicates some (but not all) properties were proven.
	PARTIALLY_VERIFIED
	// FAILED indicates no property was proven.
	FAILED
	// INCOMPLETE indicates the time or memory budget ran out before every
	// property was attempted.
	INCOMPLETE
	// ERROR indicates an environment or input fault prevented verification.
	ERROR
)

func (k StatusKind) String() string {
	switch k {
	case VERIFIED:
		return "Verified"
	case PARTIALLY_VERIFIED:
		return "PartiallyVerified"
	case FAILED:
		return "Failed"
	case INCOMPLETE:
		return "Incomplete"
	case ERROR:
		return "Error"
	}
	//
	return "???"
}

// FailureReason classifies why a property was not verified.
type FailureReason uint8

const (
	// COUNTEREXAMPLE means the property was disproven.
	COUNTEREXAMPLE FailureReason = iota
	// TIMEOUT means the time budget ran out.
	TIMEOUT
	// RESOURCE_EXHAUSTED means a depth or step budget ran out.
	RESOURCE_EXHAUSTED
	// UNSUPPORTED means no method could decide the property.
	UNSUPPORTED
	// INVALID means the property (or its encoding) was malformed.
	INVALID
	// SOLVER_ERROR means the solver failed.
	SOLVER_ERROR
	// PROOF_FAILED means proof search completed without finding a proof.
	PROOF_FAILED
)

func (r FailureReason) String() string {
	switch r {
	case COUNTEREXAMPLE:
		return "counterexample"
	case TIMEOUT:
		return "timeout"
	case RESOURCE_EXHAUSTED:
		return "resource exhausted"
	case UNSUPPORTED:
		return "unsupported"
	case INVALID:
		return "invalid"
	case SOLVER_ERROR:
		return "solver error"
	case PROOF_FAILED:
		return "proof failed"
	}
	//
	return "???"
}

// Failure records a property which was not verified.
type Failure struct {
	Property string
	Reason   FailureReason
	Detail   string
}

func (f Failure) String() string {
	if f.Detail == "" {
		return fmt.Sprintf("%s: %s", f.Property, f.Reason)
	}
	//
	return fmt.Sprintf("%s: %s (%s)", f.Property, f.Reason, f.Detail)
}

// Status is the overall outcome of a batch.
type Status struct {
	Kind StatusKind
	// Number of properties verified.
	Verified uint
	// Number of properties in the batch.
	Total uint
	// Properties which were not verified.
	Failures []Failure
	// Explanation for an error status.
	Reason string
}

func (s Status) String() string {
	switch s.Kind {
	case PARTIALLY_VERIFIED, INCOMPLETE:
		return fmt.Sprintf("%s(%d/%d)", s.Kind, s.Verified, s.Total)
	case ERROR:
		return fmt.Sprintf("%s(%s)", s.Kind, s.Reason)
	}
	//
	return s.Kind.String()
}

// Attempt records the use of a single method on a single property.
type Attempt struct {
	Method  Method
	Verdict verdict.Verdict
	Time    time.Duration
	// Whether the verdict was taken from the cache.
	Cached bool
}

// PropertyResult is the outcome for a single property.
type PropertyResult struct {
	Name string
	// Final verdict for this property.
	Verdict verdict.Verdict
	// Method which decided the property (meaningful only if decided).
	Method Method
	// Every method attempted, in order.
	Attempts []Attempt
	// Reason the property was not verified (meaningful only if unverified).
	Reason FailureReason
	// Whether this property was attempted at all.
	Attempted bool
	Time      time.Duration
}

// Result is the outcome of a batch.
type Result struct {
	Status     Status
	Properties []PropertyResult
	Statistics Statistics
}
