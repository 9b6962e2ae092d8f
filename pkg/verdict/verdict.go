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
package verdict

// Kind identifies the classification of a verdict.
type Kind uint8

const (
	// PROVEN indicates the property provably holds.
	PROVEN Kind = iota
	// DISPROVEN indicates the property provably does not hold.
	DISPROVEN
	// UNKNOWN indicates no decision was reached, for example because a
	// resource budget was exhausted or no rule applied.
	UNKNOWN
	// ERROR indicates malformed input which never reached a decision
	// procedure.
	ERROR
)

func (k Kind) String() string {
	switch k {
	case PROVEN:
		return "proven"
	case DISPROVEN:
		return "disproven"
	case UNKNOWN:
		return "unknown"
	case ERROR:
		return "error"
	}
	//
	return "???"
}

// Verdict is the terminal classification of a single property.  Only an ERROR
// verdict carries a reason.
type Verdict struct {
	kind   Kind
	reason string
}

// Proven constructs a verdict indicating the property holds.
func Proven() Verdict { return Verdict{PROVEN, ""} }

// Disproven constructs a verdict indicating the property does not hold.
func Disproven() Verdict { return Verdict{DISPROVEN, ""} }

// Unknown constructs a verdict indicating that no decision was reached.
func Unknown() Verdict { return Verdict{UNKNOWN, ""} }

// Error constructs a verdict indicating that the property could not be
// checked, along with the reason why.
func Error(reason string) Verdict { return Verdict{ERROR, reason} }

// Kind returns the classification of this verdict.
func (v Verdict) Kind() Kind { return v.kind }

// Reason returns the reason associated with an ERROR verdict, or "" otherwise.
func (v Verdict) Reason() string { return v.reason }

// IsDecided checks whether this verdict is one of PROVEN or DISPROVEN.
func (v Verdict) IsDecided() bool {
	return v.kind == PROVEN || v.kind == DISPROVEN
}

func (v Verdict) String() string {
	if v.kind == ERROR {
		return "error(" + v.reason + ")"
	}
	//
	return v.kind.String()
}
