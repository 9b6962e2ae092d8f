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
	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
)

// AxiomSystemBuilder accumulates axioms and inference rules, from which an
// engine can then be constructed.
type AxiomSystemBuilder struct {
	axioms []Axiom
	rules  []InferenceRule
}

// NewAxiomSystemBuilder constructs an empty builder.
func NewAxiomSystemBuilder() *AxiomSystemBuilder {
	return &AxiomSystemBuilder{}
}

// StandardAxiomSystem constructs a builder populated with all standard axioms
// and rules.
func StandardAxiomSystem() *AxiomSystemBuilder {
	return NewAxiomSystemBuilder().
		AddPropositionalAxioms().
		AddPredicateAxioms().
		AddTemporalAxioms().
		AddAispAxioms().
		AddStandardRules()
}

// AddAxiom adds a single axiom.
func (p *AxiomSystemBuilder) AddAxiom(axiom Axiom) *AxiomSystemBuilder {
	p.axioms = append(p.axioms, axiom)
	return p
}

// AddRule adds a single inference rule.
func (p *AxiomSystemBuilder) AddRule(rule InferenceRule) *AxiomSystemBuilder {
	p.rules = append(p.rules, rule)
	return p
}

// AddPropositionalAxioms adds modus ponens, excluded middle and double
// negation elimination.
func (p *AxiomSystemBuilder) AddPropositionalAxioms() *AxiomSystemBuilder {
	P, Q := formula.NewHole("P"), formula.NewHole("Q")
	//
	p.AddAxiom(Axiom{"modus_ponens",
		formula.NewImplication(formula.NewConjunction(formula.NewImplication(P, Q), P), Q), LOGICAL, 10})
	p.AddAxiom(Axiom{"excluded_middle",
		formula.MustDisjunction(P, formula.NewNegation(P)), LOGICAL, 8})
	p.AddAxiom(Axiom{"double_negation",
		formula.NewImplication(formula.NewNegation(formula.NewNegation(P)), P), LOGICAL, 7})
	//
	return p
}

// AddPredicateAxioms adds universal instantiation and existential
// generalisation, where the instantiating term is a hole.
func (p *AxiomSystemBuilder) AddPredicateAxioms() *AxiomSystemBuilder {
	var (
		t  = formula.NewHole("t")
		x  = formula.NewVariable("x", "T")
		qx = formula.NewQuantifier("x", "T")
	)
	//
	p.AddAxiom(Axiom{"universal_instantiation",
		formula.NewImplication(formula.NewUniversal(qx, formula.NewAtomic("P", x)), formula.NewAtomic("P", t)),
		LOGICAL, 9})
	p.AddAxiom(Axiom{"existential_generalization",
		formula.NewImplication(formula.NewAtomic("P", t), formula.NewExistential(qx, formula.NewAtomic("P", x))),
		LOGICAL, 8})
	//
	return p
}

// AddTemporalAxioms adds the distribution of always over implication, and the
// duality of eventually and always.
func (p *AxiomSystemBuilder) AddTemporalAxioms() *AxiomSystemBuilder {
	P, Q := formula.NewHole("P"), formula.NewHole("Q")
	//
	p.AddAxiom(Axiom{"always_distribution",
		formula.NewImplication(formula.NewAlways(formula.NewImplication(P, Q)),
			formula.NewImplication(formula.NewAlways(P), formula.NewAlways(Q))), TEMPORAL, 6})
	p.AddAxiom(Axiom{"eventually_always_duality",
		formula.NewBiconditional(formula.NewEventually(P),
			formula.NewNegation(formula.NewAlways(formula.NewNegation(P)))), TEMPORAL, 5})
	//
	return p
}

// AddAispAxioms adds the type safety and structural validity axioms of the
// specification language.
func (p *AxiomSystemBuilder) AddAispAxioms() *AxiomSystemBuilder {
	var (
		x  = formula.NewVariable("x", "Any")
		qx = formula.NewQuantifier("x", "Any")
	)
	//
	p.AddAxiom(Axiom{"type_safety",
		formula.NewUniversal(qx, formula.NewImplication(
			formula.NewFunctionApplication("hasType", x, formula.NewHole("T")),
			formula.NewFunctionApplication("typeSafe", x))), AISP_SPECIFIC, 9})
	p.AddAxiom(Axiom{"structural_validity",
		formula.NewUniversal(qx, formula.NewImplication(
			formula.NewFunctionApplication("wellFormed", x),
			formula.NewFunctionApplication("structurallyValid", x))), AISP_SPECIFIC, 8})
	//
	return p
}

// AddStandardRules adds conjunction introduction, modus ponens, universal
// generalisation and always introduction.
func (p *AxiomSystemBuilder) AddStandardRules() *AxiomSystemBuilder {
	P, Q := formula.NewHole("P"), formula.NewHole("Q")
	//
	p.AddRule(InferenceRule{"and_intro", []formula.Formula{P, Q}, formula.NewConjunction(P, Q),
		INTRODUCTION, 8, nil})
	p.AddRule(InferenceRule{"modus_ponens", []formula.Formula{P, formula.NewImplication(P, Q)}, Q,
		ELIMINATION, 9, nil})
	p.AddRule(InferenceRule{"universal_gen", []formula.Formula{P},
		formula.NewUniversal(formula.NewQuantifier("x", ""), P), INTRODUCTION, 7, []string{"fresh x"}})
	p.AddRule(InferenceRule{"always_intro", []formula.Formula{P}, formula.NewAlways(P),
		INTRODUCTION, 6, nil})
	//
	return p
}

// Axioms returns the axioms accumulated so far.
func (p *AxiomSystemBuilder) Axioms() []Axiom {
	return p.axioms
}

// Rules returns the rules accumulated so far.
func (p *AxiomSystemBuilder) Rules() []InferenceRule {
	return p.rules
}

// Build an engine from the accumulated axioms and rules.
func (p *AxiomSystemBuilder) Build(config SearchConfig) *Engine {
	return NewEngine(p.axioms, p.rules, config)
}
