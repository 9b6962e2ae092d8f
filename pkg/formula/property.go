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
	"maps"
	"slices"
)

// Property is a formula together with the symbols it uses.  The derived symbol
// tables always cover every symbol occurring in the structure, such that
// exporters can enumerate declarations without re-walking the tree.
type Property struct {
	// Name of this property (for reporting).
	Name string
	// Structure is the underlying formula tree.
	Structure Formula
	// Quantifiers occurring at the top level, outermost first.
	Quantifiers []Quantifier
	// FreeVariables maps each free variable to its type annotation (or "" if
	// none was given).
	FreeVariables map[string]string
	// Predicates maps each predicate name (including those of boolean-valued
	// function applications) to its arity.
	Predicates map[string]int
	// Functions maps each (value-producing) function name to its arity.
	Functions map[string]int
	// Constants maps each literal constant to its type tag.
	Constants map[string]string
	// Holes maps each pattern hole to whether it occurs in formula position
	// (true) or term position (false).
	Holes map[string]bool
}

// NewProperty constructs a property from a given formula, computing the derived
// symbol tables.
func NewProperty(name string, structure Formula) *Property {
	p := &Property{
		Name:          name,
		Structure:     structure,
		FreeVariables: make(map[string]string),
		Predicates:    make(map[string]int),
		Functions:     make(map[string]int),
		Constants:     make(map[string]string),
		Holes:         make(map[string]bool),
	}
	// Top-level quantifiers
	for f := structure; ; {
		if u, ok := f.(*Universal); ok {
			p.Quantifiers = append(p.Quantifiers, u.Quantifier)
			f = u.Body
		} else if e, ok := f.(*Existential); ok {
			p.Quantifiers = append(p.Quantifiers, e.Quantifier)
			f = e.Body
		} else {
			break
		}
	}
	//
	c := symbolCollector{p, nil}
	c.formula(structure)
	//
	return p
}

// SortedKeys returns the keys of a symbol table in sorted order, which is
// useful for producing deterministic output.
func SortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

type symbolCollector struct {
	property *Property
	bound    []string
}

func (p *symbolCollector) formula(f Formula) {
	switch f := f.(type) {
	case *Atomic:
		p.symbol(p.property.Predicates, f.Predicate, len(f.Args))
		p.terms(f.Args...)
	case *Negation:
		p.formula(f.Inner)
	case *Conjunction:
		for _, c := range f.Conjuncts {
			p.formula(c)
		}
	case *Disjunction:
		for _, d := range f.Disjuncts {
			p.formula(d)
		}
	case *Implication:
		p.formula(f.Antecedent)
		p.formula(f.Consequent)
	case *Biconditional:
		p.formula(f.Left)
		p.formula(f.Right)
	case *Universal:
		p.quantified(f.Quantifier, f.Body)
	case *Existential:
		p.quantified(f.Quantifier, f.Body)
	case *Always:
		p.formula(f.Inner)
	case *Eventually:
		p.formula(f.Inner)
	case *Until:
		p.formula(f.Left)
		p.formula(f.Right)
	case *ArithEqual:
		p.terms(f.Left, f.Right)
	case *ArithLessEqual:
		p.terms(f.Left, f.Right)
	case *SetMembership:
		p.terms(f.Element, f.Set)
	case *FunctionApplication:
		p.symbol(p.property.Predicates, f.Function, len(f.Args))
		p.terms(f.Args...)
	case *Hole:
		p.property.Holes[f.Name] = true
	}
}

func (p *symbolCollector) quantified(q Quantifier, body Formula) {
	if q.Domain != nil {
		p.terms(q.Domain)
	}
	//
	p.bound = append(p.bound, q.Variable)
	p.formula(body)
	p.bound = p.bound[:len(p.bound)-1]
}

func (p *symbolCollector) terms(terms ...Term) {
	for _, t := range terms {
		p.term(t)
	}
}

func (p *symbolCollector) term(t Term) {
	switch t := t.(type) {
	case *Variable:
		if !slices.Contains(p.bound, t.Name) {
			// Retain the first type annotation seen
			if typ, ok := p.property.FreeVariables[t.Name]; !ok || typ == "" {
				p.property.FreeVariables[t.Name] = t.Type
			}
		}
	case *Constant:
		p.property.Constants[t.Value] = t.Type
	case *Function:
		p.symbol(p.property.Functions, t.Name, len(t.Args))
		p.terms(t.Args...)
	case *Arithmetic:
		p.terms(t.Left, t.Right)
	case *Set:
		p.terms(t.Elements...)
	case *ArrayAccess:
		p.terms(t.Array, t.Index)
	case *Hole:
		if _, ok := p.property.Holes[t.Name]; !ok {
			p.property.Holes[t.Name] = false
		}
	}
}

func (p *symbolCollector) symbol(table map[string]int, name string, arity int) {
	if _, ok := table[name]; !ok {
		table[name] = arity
	}
}
