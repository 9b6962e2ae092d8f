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
package prover

import (
	"strings"

	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
)

// AxiomType classifies axioms by their origin.
type AxiomType uint8

const (
	// LOGICAL axioms of propositional or predicate logic.
	LOGICAL AxiomType = iota
	// ARITHMETIC axioms.
	ARITHMETIC
	// TYPE_THEORY axioms.
	TYPE_THEORY
	// TEMPORAL logic axioms.
	TEMPORAL
	// AISP_SPECIFIC axioms about AISP documents themselves.
	AISP_SPECIFIC
	// DOMAIN axioms supplied by a particular document.
	DOMAIN
)

// RuleType classifies inference rules.
type RuleType uint8

const (
	// INTRODUCTION rules introduce a connective.
	INTRODUCTION RuleType = iota
	// ELIMINATION rules eliminate a connective.
	ELIMINATION
	// STRUCTURAL rules manipulate the context.
	STRUCTURAL
	// DERIVED rules are admissible shortcuts.
	DERIVED
)

// Axiom is a formula assumed to hold unconditionally.  Any pattern holes
// within the formula make it an axiom schema, where each hole can be
// instantiated arbitrarily.
type Axiom struct {
	Name     string
	Formula  formula.Formula
	Type     AxiomType
	Priority uint
}

// NewAxiom constructs a domain axiom with default priority.
func NewAxiom(name string, f formula.Formula) Axiom {
	return Axiom{name, f, DOMAIN, 5}
}

func (p Axiom) String() string {
	return p.Name + ": " + p.Formula.String()
}

// InferenceRule allows a conclusion to be derived from a number of premises.
// Premises and conclusion are patterns whose holes are shared, such that
// matching the conclusion against a goal determines (some of) the premises.
type InferenceRule struct {
	Name       string
	Premises   []formula.Formula
	Conclusion formula.Formula
	Type       RuleType
	Priority   uint
	// Side conditions, recorded for reporting only.
	Conditions []string
}

// NewInferenceRule constructs a derived rule with default priority.
func NewInferenceRule(name string, conclusion formula.Formula, premises ...formula.Formula) InferenceRule {
	return InferenceRule{name, premises, conclusion, DERIVED, 5, nil}
}

func (p InferenceRule) String() string {
	var builder strings.Builder
	//
	builder.WriteString(p.Name)
	builder.WriteString(": ")
	//
	for i, premise := range p.Premises {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(premise.String())
	}
	//
	builder.WriteString(" ⊢ ")
	builder.WriteString(p.Conclusion.String())
	//
	return builder.String()
}
