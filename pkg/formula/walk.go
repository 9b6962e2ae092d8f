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

import "fmt"

// Inspect traverses a formula in depth-first order, calling visit for every
// formula and term node encountered.  A node is either a Formula or a Term.
// If visit returns false, the children of that node are not visited.  Holes
// are visited once, as a Formula when in formula position and as a Term
// otherwise.
func Inspect(f Formula, visit func(node any) bool) {
	if !visit(f) {
		return
	}
	//
	switch f := f.(type) {
	case *Atomic:
		inspectTerms(f.Args, visit)
	case *Negation:
		Inspect(f.Inner, visit)
	case *Conjunction:
		for _, c := range f.Conjuncts {
			Inspect(c, visit)
		}
	case *Disjunction:
		for _, d := range f.Disjuncts {
			Inspect(d, visit)
		}
	case *Implication:
		Inspect(f.Antecedent, visit)
		Inspect(f.Consequent, visit)
	case *Biconditional:
		Inspect(f.Left, visit)
		Inspect(f.Right, visit)
	case *Universal:
		inspectQuantifier(f.Quantifier, visit)
		Inspect(f.Body, visit)
	case *Existential:
		inspectQuantifier(f.Quantifier, visit)
		Inspect(f.Body, visit)
	case *Always:
		Inspect(f.Inner, visit)
	case *Eventually:
		Inspect(f.Inner, visit)
	case *Until:
		Inspect(f.Left, visit)
		Inspect(f.Right, visit)
	case *ArithEqual:
		InspectTerm(f.Left, visit)
		InspectTerm(f.Right, visit)
	case *ArithLessEqual:
		InspectTerm(f.Left, visit)
		InspectTerm(f.Right, visit)
	case *SetMembership:
		InspectTerm(f.Element, visit)
		InspectTerm(f.Set, visit)
	case *FunctionApplication:
		inspectTerms(f.Args, visit)
	case *Hole:
		// leaf
	default:
		panic(fmt.Sprintf("unknown formula encountered (%T)", f))
	}
}

// InspectTerm traverses a term in depth-first order, calling visit for every
// term node encountered.
func InspectTerm(t Term, visit func(node any) bool) {
	if !visit(t) {
		return
	}
	//
	switch t := t.(type) {
	case *Function:
		inspectTerms(t.Args, visit)
	case *Arithmetic:
		InspectTerm(t.Left, visit)
		InspectTerm(t.Right, visit)
	case *Set:
		inspectTerms(t.Elements, visit)
	case *ArrayAccess:
		InspectTerm(t.Array, visit)
		InspectTerm(t.Index, visit)
	}
}

func inspectTerms(terms []Term, visit func(node any) bool) {
	for _, t := range terms {
		InspectTerm(t, visit)
	}
}

func inspectQuantifier(q Quantifier, visit func(node any) bool) {
	if q.Domain != nil {
		InspectTerm(q.Domain, visit)
	}
}

// Complexity returns the number of formula and term nodes in a given formula.
// This is used to guide the order in which proof search attempts things.
func Complexity(f Formula) uint {
	count := uint(0)
	//
	Inspect(f, func(any) bool {
		count++
		return true
	})
	//
	return count
}

// Holes returns the names of all pattern holes occurring in a formula, in order
// of first appearance.
func Holes(f Formula) []string {
	var (
		names []string
		seen  = make(map[string]bool)
	)
	//
	Inspect(f, func(node any) bool {
		if h, ok := node.(*Hole); ok && !seen[h.Name] {
			seen[h.Name] = true
			names = append(names, h.Name)
		}
		//
		return true
	})
	//
	return names
}

// IsGround checks whether a formula contains no pattern holes.
func IsGround(f Formula) bool {
	ground := true
	//
	Inspect(f, func(node any) bool {
		if _, ok := node.(*Hole); ok {
			ground = false
		}
		//
		return ground
	})
	//
	return ground
}

// ===================================================================
// Rewriting
// ===================================================================

// Rewriter rebuilds formulas by applying replacement functions in pre-order.
// When a replacement function returns true, its result is used in place of the
// original node and the children of that node are not visited.  Either
// function may be nil.  Nodes which are not affected by rewriting are shared
// with the original tree.
type Rewriter struct {
	Formula func(Formula) (Formula, bool)
	Term    func(Term) (Term, bool)
}

// Apply this rewriter to a given formula.
//
//nolint:revive
func (p Rewriter) Apply(f Formula) Formula {
	if p.Formula != nil {
		if nf, ok := p.Formula(f); ok {
			return nf
		}
	}
	//
	switch f := f.(type) {
	case *Atomic:
		return &Atomic{f.Predicate, p.applyTerms(f.Args)}
	case *Negation:
		return &Negation{p.Apply(f.Inner)}
	case *Conjunction:
		return &Conjunction{p.applyFormulas(f.Conjuncts)}
	case *Disjunction:
		return &Disjunction{p.applyFormulas(f.Disjuncts)}
	case *Implication:
		return &Implication{p.Apply(f.Antecedent), p.Apply(f.Consequent)}
	case *Biconditional:
		return &Biconditional{p.Apply(f.Left), p.Apply(f.Right)}
	case *Universal:
		return &Universal{p.ApplyQuantifier(f.Quantifier), p.Apply(f.Body)}
	case *Existential:
		return &Existential{p.ApplyQuantifier(f.Quantifier), p.Apply(f.Body)}
	case *Always:
		return &Always{p.Apply(f.Inner)}
	case *Eventually:
		return &Eventually{p.Apply(f.Inner)}
	case *Until:
		return &Until{p.Apply(f.Left), p.Apply(f.Right)}
	case *ArithEqual:
		return &ArithEqual{p.ApplyTerm(f.Left), p.ApplyTerm(f.Right)}
	case *ArithLessEqual:
		return &ArithLessEqual{p.ApplyTerm(f.Left), p.ApplyTerm(f.Right)}
	case *SetMembership:
		return &SetMembership{p.ApplyTerm(f.Element), p.ApplyTerm(f.Set)}
	case *FunctionApplication:
		return &FunctionApplication{f.Function, p.applyTerms(f.Args)}
	case *Hole:
		return f
	default:
		panic(fmt.Sprintf("unknown formula encountered (%T)", f))
	}
}

// ApplyTerm applies this rewriter to a given term.
//
//nolint:revive
func (p Rewriter) ApplyTerm(t Term) Term {
	if p.Term != nil {
		if nt, ok := p.Term(t); ok {
			return nt
		}
	}
	//
	switch t := t.(type) {
	case *Function:
		return &Function{t.Name, p.applyTerms(t.Args)}
	case *Arithmetic:
		return &Arithmetic{t.Op, p.ApplyTerm(t.Left), p.ApplyTerm(t.Right)}
	case *Set:
		return &Set{p.applyTerms(t.Elements)}
	case *ArrayAccess:
		return &ArrayAccess{p.ApplyTerm(t.Array), p.ApplyTerm(t.Index)}
	default:
		// Variables, constants and holes are leaves
		return t
	}
}

// ApplyQuantifier applies this rewriter to the domain of a quantifier.
//
//nolint:revive
func (p Rewriter) ApplyQuantifier(q Quantifier) Quantifier {
	if q.Domain != nil {
		q.Domain = p.ApplyTerm(q.Domain)
	}
	//
	return q
}

func (p Rewriter) applyTerms(terms []Term) []Term {
	if len(terms) == 0 {
		return nil
	}
	//
	nterms := make([]Term, len(terms))
	//
	for i, t := range terms {
		nterms[i] = p.ApplyTerm(t)
	}
	//
	return nterms
}

func (p Rewriter) applyFormulas(formulas []Formula) []Formula {
	if len(formulas) == 0 {
		return nil
	}
	//
	nformulas := make([]Formula, len(formulas))
	//
	for i, f := range formulas {
		nformulas[i] = p.Apply(f)
	}
	//
	return nformulas
}

// Instantiate replaces all free occurrences of a given variable within a
// formula by a given term.  Occurrences shadowed by an inner quantifier binding
// the same name are left untouched.
func Instantiate(f Formula, variable string, replacement Term) Formula {
	var rw Rewriter
	//
	rw.Term = func(t Term) (Term, bool) {
		if v, ok := t.(*Variable); ok && v.Name == variable {
			return replacement, true
		}
		//
		return nil, false
	}
	rw.Formula = func(f Formula) (Formula, bool) {
		switch f := f.(type) {
		case *Universal:
			if f.Quantifier.Variable == variable {
				return &Universal{rw.ApplyQuantifier(f.Quantifier), f.Body}, true
			}
		case *Existential:
			if f.Quantifier.Variable == variable {
				return &Existential{rw.ApplyQuantifier(f.Quantifier), f.Body}, true
			}
		}
		//
		return nil, false
	}
	//
	return rw.Apply(f)
}
