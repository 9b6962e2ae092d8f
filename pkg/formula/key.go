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
	"fmt"
	"strings"
)

// Key returns a stable textual key for a given formula.  Bound variables are
// replaced by de Bruijn indices (e.g. "#0" refers to the innermost enclosing
// binder), such that two formulas which differ only in the naming of bound
// variables have the same key.  Variable type annotations are not part of the
// key, whilst quantifier annotations are.
func Key(f Formula) string {
	var k keyBuilder
	//
	k.formula(f)
	//
	return k.String()
}

// CanonicalKey is like Key, except that pattern holes are additionally renamed
// in order of first appearance (i.e. "?0", "?1", etc).  Thus, two patterns
// which differ only in the naming of their holes have the same canonical key.
func CanonicalKey(f Formula) string {
	k := keyBuilder{holes: make(map[string]int)}
	//
	k.formula(f)
	//
	return k.String()
}

// TermKey returns a stable textual key for a given term.  Since a term on its
// own has no enclosing binders, all variables are rendered as free.
func TermKey(t Term) string {
	var k keyBuilder
	//
	k.term(t)
	//
	return k.String()
}

// Equal determines whether two formulas are structurally equal, modulo the
// naming of bound variables.
func Equal(lhs Formula, rhs Formula) bool {
	return Key(lhs) == Key(rhs)
}

type keyBuilder struct {
	strings.Builder
	// Stack of names for variables bound by enclosing quantifiers.
	bound []string
	// Canonical hole numbering (or nil when holes retain their names).
	holes map[string]int
}

func (p *keyBuilder) formula(f Formula) {
	switch f := f.(type) {
	case *Atomic:
		p.WriteString("(")
		p.WriteString(f.Predicate)
		p.terms(f.Args)
		p.WriteString(")")
	case *Negation:
		p.nary("not", f.Inner)
	case *Conjunction:
		p.nary("and", f.Conjuncts...)
	case *Disjunction:
		p.nary("or", f.Disjuncts...)
	case *Implication:
		p.nary("=>", f.Antecedent, f.Consequent)
	case *Biconditional:
		p.nary("iff", f.Left, f.Right)
	case *Universal:
		p.quantified("forall", f.Quantifier, f.Body)
	case *Existential:
		p.quantified("exists", f.Quantifier, f.Body)
	case *Always:
		p.nary("always", f.Inner)
	case *Eventually:
		p.nary("eventually", f.Inner)
	case *Until:
		p.nary("until", f.Left, f.Right)
	case *ArithEqual:
		p.WriteString("(=")
		p.terms([]Term{f.Left, f.Right})
		p.WriteString(")")
	case *ArithLessEqual:
		p.WriteString("(<=")
		p.terms([]Term{f.Left, f.Right})
		p.WriteString(")")
	case *SetMembership:
		p.WriteString("(member")
		p.terms([]Term{f.Element, f.Set})
		p.WriteString(")")
	case *FunctionApplication:
		p.WriteString("(apply ")
		p.WriteString(f.Function)
		p.terms(f.Args)
		p.WriteString(")")
	case *Hole:
		p.hole(f)
	default:
		panic(fmt.Sprintf("unknown formula encountered (%T)", f))
	}
}

func (p *keyBuilder) nary(op string, children ...Formula) {
	p.WriteString("(")
	p.WriteString(op)
	//
	for _, c := range children {
		p.WriteString(" ")
		p.formula(c)
	}
	//
	p.WriteString(")")
}

func (p *keyBuilder) quantified(op string, q Quantifier, body Formula) {
	p.WriteString("(")
	p.WriteString(op)
	p.WriteString(" ")
	//
	if q.Type != "" {
		p.WriteString(q.Type)
	} else {
		p.WriteString("_")
	}
	// Domain is outside the scope of the bound variable
	if q.Domain != nil {
		p.WriteString(" (in ")
		p.term(q.Domain)
		p.WriteString(")")
	}
	//
	p.WriteString(" ")
	p.bound = append(p.bound, q.Variable)
	p.formula(body)
	p.bound = p.bound[:len(p.bound)-1]
	p.WriteString(")")
}

func (p *keyBuilder) terms(terms []Term) {
	for _, t := range terms {
		p.WriteString(" ")
		p.term(t)
	}
}

func (p *keyBuilder) term(t Term) {
	switch t := t.(type) {
	case *Variable:
		for i := len(p.bound) - 1; i >= 0; i-- {
			if p.bound[i] == t.Name {
				p.WriteString(fmt.Sprintf("#%d", len(p.bound)-1-i))
				return
			}
		}
		//
		p.WriteString(t.Name)
	case *Constant:
		p.WriteString(t.Value)
		p.WriteString(":")
		p.WriteString(t.Type)
	case *Function:
		p.WriteString("(fn ")
		p.WriteString(t.Name)
		p.terms(t.Args)
		p.WriteString(")")
	case *Arithmetic:
		p.WriteString("(")
		p.WriteString(t.Op.String())
		p.terms([]Term{t.Left, t.Right})
		p.WriteString(")")
	case *Set:
		p.WriteString("(set")
		p.terms(t.Elements)
		p.WriteString(")")
	case *ArrayAccess:
		p.WriteString("(select")
		p.terms([]Term{t.Array, t.Index})
		p.WriteString(")")
	case *Hole:
		p.hole(t)
	default:
		panic(fmt.Sprintf("unknown term encountered (%T)", t))
	}
}

func (p *keyBuilder) hole(h *Hole) {
	if p.holes == nil {
		p.WriteString(h.String())
		return
	}
	//
	index, ok := p.holes[h.Name]
	if !ok {
		index = len(p.holes)
		p.holes[h.Name] = index
	}
	//
	p.WriteString(fmt.Sprintf("?%d", index))
}
