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
	"strings"
)

// Method identifies a means of verifying a single property.
type Method uint8

const (
	// DIRECT_PROOF attempts natural deduction.
	DIRECT_PROOF Method = iota
	// SMT_SOLVER compiles the property and dispatches it to a solver.
	SMT_SOLVER
	// AUTOMATED_PROOF attempts backward chaining.
	AUTOMATED_PROOF
	// PROOF_BY_CONTRADICTION attempts resolution refutation.
	PROOF_BY_CONTRADICTION
	// FORWARD_CHAINING attempts forward chaining.
	FORWARD_CHAINING
)

// Methods lists every method, in declaration order.
var Methods = []Method{DIRECT_PROOF, SMT_SOLVER, AUTOMATED_PROOF, PROOF_BY_CONTRADICTION, FORWARD_CHAINING}

var methodNames = []string{"direct", "smt", "automated", "contradiction", "forward"}

func (m Method) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}
	//
	return "???"
}

// ParseMethod parses a method from its name, ignoring case.
func ParseMethod(name string) (Method, error) {
	for i, n := range methodNames {
		if strings.EqualFold(n, name) {
			return Method(i), nil
		}
	}
	//
	return 0, fmt.Errorf("unknown method \"%s\" (expected one of %s)", name, strings.Join(methodNames, ", "))
}

// ParseMethods parses a list of method names.
func ParseMethods(names []string) ([]Method, error) {
	methods := make([]Method, len(names))
	//
	for i, name := range names {
		m, err := ParseMethod(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		//
		methods[i] = m
	}
	//
	return methods, nil
}
