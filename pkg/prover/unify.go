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
	"errors"
	"fmt"
	"slices"

	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
)

// ErrUnification is returned when two formulas (or terms) cannot be unified.
// This is a local failure, causing the candidate rule or axiom to be skipped.
var ErrUnification = errors.New("unification failure")

// Unify attempts to find an extension of a given substitution under which two
// formulas become equal (modulo the naming of bound variables).  Only holes can
// be bound, and a hole is never bound to a formula containing itself, nor to
// one which mentions a variable bound by an enclosing quantifier.  The given
// substitution is not modified.
func Unify(lhs formula.Formula, rhs formula.Formula, subst Substitution) (Substitution, error) {
	u := unifier{subst: subst.Clone()}
	//
	if err := u.formula(lhs, rhs); err != nil {
		return nil, err
	}
	//
	return u.subst, nil
}

// UnifyTerms attempts to unify two terms under a given substitution.
func UnifyTerms(lhs formula.Term, rhs formula.Term, subst Substitution) (Substitution, error) {
	u := unifier{subst: subst.Clone()}
	//
	if err := u.term(lhs, rhs); err != nil {
		return nil, err
	}
	//
	return u.subst, nil
}

type unifier struct {
	subst Substitution
	// Variables bound by enclosing quantifiers on either side, innermost last.
	left, right []string
}

func (p *unifier) fail(lhs fmt.Stringer, rhs fmt.Stringer) error {
	return fmt.Errorf("%w: %s and %s", ErrUnification, lhs, rhs)
}

//nolint:revive
func (p *unifier) formula(lhs formula.Formula, rhs formula.Formula) error {
	lhs, rhs = p.resolve(lhs), p.resolve(rhs)
	//
	if lh, ok := lhs.(*formula.Hole); ok {
		if rh, ok := rhs.(*formula.Hole); ok && lh.Name == rh.Name {
			return nil
		}
		//
		return p.bind(lh, Binding{Formula: rhs}, p.right)
	} else if rh, ok := rhs.(*formula.Hole); ok {
		return p.bind(rh, Binding{Formula: lhs}, p.left)
	}
	//
	switch l := lhs.(type) {
	case *formula.Atomic:
		if r, ok := rhs.(*formula.Atomic); ok && l.Predicate == r.Predicate {
			return p.terms(l.Args, r.Args, lhs, rhs)
		}
	case *formula.Negation:
		if r, ok := rhs.(*formula.Negation); ok {
			return p.formula(l.Inner, r.Inner)
		}
	case *formula.Conjunction:
		if r, ok := rhs.(*formula.Conjunction); ok {
			return p.formulas(l.Conjuncts, r.Conjuncts, lhs, rhs)
		}
	case *formula.Disjunction:
		if r, ok := rhs.(*formula.Disjunction); ok {
			return p.formulas(l.Disjuncts, r.Disjuncts, lhs, rhs)
		}
	case *formula.Implication:
		if r, ok := rhs.(*formula.Implication); ok {
			return p.formulas([]formula.Formula{l.Antecedent, l.Consequent},
				[]formula.Formula{r.Antecedent, r.Consequent}, lhs, rhs)
		}
	case *formula.Biconditional:
		if r, ok := rhs.(*formula.Biconditional); ok {
			return p.formulas([]formula.Formula{l.Left, l.Right}, []formula.Formula{r.Left, r.Right}, lhs, rhs)
		}
	case *formula.Universal:
		if r, ok := rhs.(*formula.Universal); ok {
			return p.quantified(l.Quantifier, l.Body, r.Quantifier, r.Body, lhs, rhs)
		}
	case *formula.Existential:
		if r, ok := rhs.(*formula.Existential); ok {
			return p.quantified(l.Quantifier, l.Body, r.Quantifier, r.Body, lhs, rhs)
		}
	case *formula.Always:
		if r, ok := rhs.(*formula.Always); ok {
			return p.formula(l.Inner, r.Inner)
		}
	case *formula.Eventually:
		if r, ok := rhs.(*formula.Eventually); ok {
			return p.formula(l.Inner, r.Inner)
		}
	case *formula.Until:
		if r, ok := rhs.(*formula.Until); ok {
			return p.formulas([]formula.Formula{l.Left, l.Right}, []formula.Formula{r.Left, r.Right}, lhs, rhs)
		}
	case *formula.ArithEqual:
		if r, ok := rhs.(*formula.ArithEqual); ok {
			return p.terms([]formula.Term{l.Left, l.Right}, []formula.Term{r.Left, r.Right}, lhs, rhs)
		}
	case *formula.ArithLessEqual:
		if r, ok := rhs.(*formula.ArithLessEqual); ok {
			return p.terms([]formula.Term{l.Left, l.Right}, []formula.Term{r.Left, r.Right}, lhs, rhs)
		}
	case *formula.SetMembership:
		if r, ok := rhs.(*formula.SetMembership); ok {
			return p.terms([]formula.Term{l.Element, l.Set}, []formula.Term{r.Element, r.Set}, lhs, rhs)
		}
	case *formula.FunctionApplication:
		if r, ok := rhs.(*formula.FunctionApplication); ok && l.Function == r.Function {
			return p.terms(l.Args, r.Args, lhs, rhs)
		}
	}
	//
	return p.fail(lhs, rhs)
}

func (p *unifier) formulas(lhs []formula.Formula, rhs []formula.Formula, l, r formula.Formula) error {
	if len(lhs) != len(rhs) {
		return p.fail(l, r)
	}
	//
	for i := range lhs {
		if err := p.formula(lhs[i], rhs[i]); err != nil {
			return err
		}
	}
	//
	return nil
}

func (p *unifier) quantified(lq formula.Quantifier, lbody formula.Formula, rq formula.Quantifier,
	rbody formula.Formula, l, r formula.Formula) error {
	if lq.Type != rq.Type || (lq.Domain == nil) != (rq.Domain == nil) {
		return p.fail(l, r)
	} else if lq.Domain != nil {
		// Domains lie outside the scope of the bound variable
		if err := p.term(lq.Domain, rq.Domain); err != nil {
			return err
		}
	}
	//
	p.left = append(p.left, lq.Variable)
	p.right = append(p.right, rq.Variable)
	err := p.formula(lbody, rbody)
	p.left = p.left[:len(p.left)-1]
	p.right = p.right[:len(p.right)-1]
	//
	return err
}

func (p *unifier) terms(lhs []formula.Term, rhs []formula.Term, l, r formula.Formula) error {
	if len(lhs) != len(rhs) {
		return p.fail(l, r)
	}
	//
	for i := range lhs {
		if err := p.term(lhs[i], rhs[i]); err != nil {
			return err
		}
	}
	//
	return nil
}

//nolint:revive
func (p *unifier) term(lhs formula.Term, rhs formula.Term) error {
	lhs, rhs = p.resolveTerm(lhs), p.resolveTerm(rhs)
	//
	if lh, ok := lhs.(*formula.Hole); ok {
		if rh, ok := rhs.(*formula.Hole); ok && lh.Name == rh.Name {
			return nil
		}
		//
		return p.bind(lh, Binding{Term: rhs}, p.right)
	} else if rh, ok := rhs.(*formula.Hole); ok {
		return p.bind(rh, Binding{Term: lhs}, p.left)
	}
	//
	switch l := lhs.(type) {
	case *formula.Variable:
		if r, ok := rhs.(*formula.Variable); ok {
			li, ri := boundIndex(p.left, l.Name), boundIndex(p.right, r.Name)
			// Bound variables match by binder, free variables by name
			if li == ri && (li >= 0 || l.Name == r.Name) {
				return nil
			}
		}
	case *formula.Constant:
		if r, ok := rhs.(*formula.Constant); ok && l.Value == r.Value && l.Type == r.Type {
			return nil
		}
	case *formula.Function:
		if r, ok := rhs.(*formula.Function); ok && l.Name == r.Name && len(l.Args) == len(r.Args) {
			return p.termList(l.Args, r.Args)
		}
	case *formula.Arithmetic:
		if r, ok := rhs.(*formula.Arithmetic); ok && l.Op == r.Op {
			return p.termList([]formula.Term{l.Left, l.Right}, []formula.Term{r.Left, r.Right})
		}
	case *formula.Set:
		if r, ok := rhs.(*formula.Set); ok && len(l.Elements) == len(r.Elements) {
			return p.termList(l.Elements, r.Elements)
		}
	case *formula.ArrayAccess:
		if r, ok := rhs.(*formula.ArrayAccess); ok {
			return p.termList([]formula.Term{l.Array, l.Index}, []formula.Term{r.Array, r.Index})
		}
	}
	//
	return p.fail(lhs, rhs)
}

func (p *unifier) termList(lhs []formula.Term, rhs []formula.Term) error {
	for i := range lhs {
		if err := p.term(lhs[i], rhs[i]); err != nil {
			return err
		}
	}
	//
	return nil
}

// Bind a hole, where scope holds the variables bound by quantifiers enclosing
// the value on its own side.
func (p *unifier) bind(hole *formula.Hole, value Binding, scope []string) error {
	if existing, ok := p.subst[hole.Name]; ok {
		// Bound in the other position (formula versus term)
		return p.fail(hole, existing)
	}
	//
	var (
		occurs   bool
		captured bool
		visit    = func(node any) bool {
			switch n := node.(type) {
			case *formula.Hole:
				occurs = occurs || n.Name == hole.Name
			case *formula.Variable:
				captured = captured || slices.Contains(scope, n.Name)
			}
			//
			return !occurs && !captured
		}
	)
	//
	if value.Formula != nil {
		formula.Inspect(p.subst.Apply(value.Formula), visit)
	} else {
		formula.InspectTerm(p.subst.ApplyTerm(value.Term), visit)
	}
	//
	if occurs || captured {
		return p.fail(hole, value)
	}
	//
	p.subst[hole.Name] = value
	//
	return nil
}

// Follow the binding of a hole in formula position (if any).
func (p *unifier) resolve(f formula.Formula) formula.Formula {
	for {
		h, ok := f.(*formula.Hole)
		if !ok {
			return f
		}
		//
		b, ok := p.subst[h.Name]
		if !ok || b.Formula == nil {
			return f
		}
		//
		f = b.Formula
	}
}

// Follow the binding of a hole in term position (if any).
func (p *unifier) resolveTerm(t formula.Term) formula.Term {
	for {
		h, ok := t.(*formula.Hole)
		if !ok {
			return t
		}
		//
		b, ok := p.subst[h.Name]
		if !ok || b.Term == nil {
			return t
		}
		//
		t = b.Term
	}
}

// Determine the de Bruijn index of a variable within a binder stack, or -1 if
// it is free.
func boundIndex(stack []string, name string) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == name {
			return len(stack) - 1 - i
		}
	}
	//
	return -1
}
