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
package formula

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyDisjunction is returned when attempting to construct a disjunction
// without any disjuncts.
var ErrEmptyDisjunction = errors.New("disjunction requires at least one disjunct")

// Formula represents a logical statement as a tree of connectives, quantifiers,
// temporal operators and atomic predicates.  Formulas are immutable once
// constructed, and transformations always build new trees.  Every formula is
// one of the node types declared in this file, or a pattern Hole.
type Formula interface {
	fmt.Stringer
	// Marker to prevent arbitrary types being used as formulas.
	isFormula()
}

// Quantifier describes the variable bound by a universal or existential
// formula, along with an optional type annotation and an optional domain
// restriction (e.g. "x ∈ S").
type Quantifier struct {
	Variable string
	Type     string
	Domain   Term
}

// NewQuantifier constructs a quantifier with an optional type and no domain.
func NewQuantifier(variable string, typ string) Quantifier {
	return Quantifier{variable, typ, nil}
}

func (q Quantifier) String() string {
	var builder strings.Builder
	//
	builder.WriteString(q.Variable)
	//
	if q.Type != "" {
		builder.WriteString(":")
		builder.WriteString(q.Type)
	}
	//
	if q.Domain != nil {
		builder.WriteString(" ∈ ")
		builder.WriteString(q.Domain.String())
	}
	//
	return builder.String()
}

// ===================================================================
// Atomic
// ===================================================================

// Atomic represents a predicate applied to zero or more terms.
type Atomic struct {
	Predicate string
	Args      []Term
}

// NewAtomic constructs a new atomic formula.
func NewAtomic(predicate string, args ...Term) *Atomic {
	return &Atomic{predicate, cloneTerms(args)}
}

func (p *Atomic) isFormula() {}

func (p *Atomic) String() string {
	if len(p.Args) == 0 {
		return p.Predicate
	}
	//
	return fmt.Sprintf("%s(%s)", p.Predicate, joinTerms(p.Args))
}

// ===================================================================
// Connectives
// ===================================================================

// Negation represents the logical negation of a formula.
type Negation struct {
	Inner Formula
}

// NewNegation constructs a new negation.
func NewNegation(inner Formula) *Negation {
	return &Negation{inner}
}

func (p *Negation) isFormula() {}

func (p *Negation) String() string {
	return "¬" + p.Inner.String()
}

// Conjunction represents the logical conjunction of zero or more formulas.
type Conjunction struct {
	Conjuncts []Formula
}

// NewConjunction constructs a new conjunction.
func NewConjunction(conjuncts ...Formula) *Conjunction {
	return &Conjunction{cloneFormulas(conjuncts)}
}

func (p *Conjunction) isFormula() {}

func (p *Conjunction) String() string {
	return joinFormulas("(", p.Conjuncts, " ∧ ", ")")
}

// Disjunction represents the logical disjunction of one or more formulas.
type Disjunction struct {
	Disjuncts []Formula
}

// NewDisjunction constructs a new disjunction, or returns an error if no
// disjuncts are given.
func NewDisjunction(disjuncts ...Formula) (*Disjunction, error) {
	if len(disjuncts) == 0 {
		return nil, ErrEmptyDisjunction
	}
	//
	return &Disjunction{cloneFormulas(disjuncts)}, nil
}

// MustDisjunction constructs a new disjunction, and panics if no disjuncts are
// given.
func MustDisjunction(disjuncts ...Formula) *Disjunction {
	d, err := NewDisjunction(disjuncts...)
	if err != nil {
		panic(err)
	}
	//
	return d
}

func (p *Disjunction) isFormula() {}

func (p *Disjunction) String() string {
	return joinFormulas("(", p.Disjuncts, " ∨ ", ")")
}

// Implication represents "antecedent implies consequent".
type Implication struct {
	Antecedent Formula
	Consequent Formula
}

// NewImplication constructs a new implication.
func NewImplication(antecedent Formula, consequent Formula) *Implication {
	return &Implication{antecedent, consequent}
}

func (p *Implication) isFormula() {}

func (p *Implication) String() string {
	return fmt.Sprintf("(%s → %s)", p.Antecedent, p.Consequent)
}

// Biconditional represents "left if and only if right".
type Biconditional struct {
	Left  Formula
	Right Formula
}

// NewBiconditional constructs a new biconditional.
func NewBiconditional(left Formula, right Formula) *Biconditional {
	return &Biconditional{left, right}
}

func (p *Biconditional) isFormula() {}

func (p *Biconditional) String() string {
	return fmt.Sprintf("(%s ↔ %s)", p.Left, p.Right)
}

// ===================================================================
// Quantifiers
// ===================================================================

// Universal represents a universally quantified formula.
type Universal struct {
	Quantifier Quantifier
	Body       Formula
}

// NewUniversal constructs a new universally quantified formula.
func NewUniversal(q Quantifier, body Formula) *Universal {
	return &Universal{q, body}
}

func (p *Universal) isFormula() {}

func (p *Universal) String() string {
	return fmt.Sprintf("∀%s. %s", p.Quantifier, p.Body)
}

// Existential represents an existentially quantified formula.
type Existential struct {
	Quantifier Quantifier
	Body       Formula
}

// NewExistential constructs a new existentially quantified formula.
func NewExistential(q Quantifier, body Formula) *Existential {
	return &Existential{q, body}
}

func (p *Existential) isFormula() {}

func (p *Existential) String() string {
	return fmt.Sprintf("∃%s. %s", p.Quantifier, p.Body)
}

// ===================================================================
// Temporal
// ===================================================================

// Always represents the temporal formula "inner holds at every point in time".
type Always struct {
	Inner Formula
}

// NewAlways constructs a new temporal always formula.
func NewAlways(inner Formula) *Always {
	return &Always{inner}
}

func (p *Always) isFormula() {}

func (p *Always) String() string {
	return "□" + p.Inner.String()
}

// Eventually represents the temporal formula "inner holds at some point in time".
type Eventually struct {
	Inner Formula
}

// NewEventually constructs a new temporal eventually formula.
func NewEventually(inner Formula) *Eventually {
	return &Eventually{inner}
}

func (p *Eventually) isFormula() {}

func (p *Eventually) String() string {
	return "◇" + p.Inner.String()
}

// Until represents the temporal formula "left holds until right holds".  That
// is, right holds at some future point and left holds at every earlier point.
type Until struct {
	Left  Formula
	Right Formula
}

// NewUntil constructs a new temporal until formula.
func NewUntil(left Formula, right Formula) *Until {
	return &Until{left, right}
}

func (p *Until) isFormula() {}

func (p *Until) String() string {
	return fmt.Sprintf("(%s U %s)", p.Left, p.Right)
}

// ===================================================================
// Arithmetic & Sets
// ===================================================================

// ArithEqual represents the equality of two terms.
type ArithEqual struct {
	Left  Term
	Right Term
}

// NewArithEqual constructs a new equality formula.
func NewArithEqual(left Term, right Term) *ArithEqual {
	return &ArithEqual{left, right}
}

func (p *ArithEqual) isFormula() {}

func (p *ArithEqual) String() string {
	return fmt.Sprintf("%s = %s", p.Left, p.Right)
}

// ArithLessEqual represents that one term is less than or equal to another.
type ArithLessEqual struct {
	Left  Term
	Right Term
}

// NewArithLessEqual constructs a new less-than-or-equal formula.
func NewArithLessEqual(left Term, right Term) *ArithLessEqual {
	return &ArithLessEqual{left, right}
}

func (p *ArithLessEqual) isFormula() {}

func (p *ArithLessEqual) String() string {
	return fmt.Sprintf("%s ≤ %s", p.Left, p.Right)
}

// SetMembership represents that an element term is contained in a set term.
type SetMembership struct {
	Element Term
	Set     Term
}

// NewSetMembership constructs a new set membership formula.
func NewSetMembership(element Term, set Term) *SetMembership {
	return &SetMembership{element, set}
}

func (p *SetMembership) isFormula() {}

func (p *SetMembership) String() string {
	return fmt.Sprintf("%s ∈ %s", p.Element, p.Set)
}

// FunctionApplication represents a boolean-valued function applied to zero or
// more terms.
type FunctionApplication struct {
	Function string
	Args     []Term
}

// NewFunctionApplication constructs a new function application formula.
func NewFunctionApplication(function string, args ...Term) *FunctionApplication {
	return &FunctionApplication{function, cloneTerms(args)}
}

func (p *FunctionApplication) isFormula() {}

func (p *FunctionApplication) String() string {
	return fmt.Sprintf("%s(%s)", p.Function, joinTerms(p.Args))
}

// ===================================================================
// Helpers
// ===================================================================

// Negate returns the negation of a given formula, removing a double negation
// where one would arise.
func Negate(f Formula) Formula {
	if n, ok := f.(*Negation); ok {
		return n.Inner
	}
	//
	return NewNegation(f)
}

func cloneFormulas(formulas []Formula) []Formula {
	if len(formulas) == 0 {
		return nil
	}
	//
	nformulas := make([]Formula, len(formulas))
	copy(nformulas, formulas)
	//
	return nformulas
}

func joinFormulas(start string, formulas []Formula, sep string, end string) string {
	var builder strings.Builder
	//
	builder.WriteString(start)
	//
	for i, f := range formulas {
		if i != 0 {
			builder.WriteString(sep)
		}
		//
		builder.WriteString(f.String())
	}
	//
	builder.WriteString(end)
	//
	return builder.String()
}
