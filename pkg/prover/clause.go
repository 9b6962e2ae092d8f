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
	"hash/fnv"
	"slices"
	"strings"

	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
	"github.com/sravinet/aisp-open-core-sub005/pkg/util/collection/hash"
)

// Predicate used to represent the empty clause within a proof.
const falsum = "⊥"

// Literal is an atom, or its negation.  Any formula other than a connective or
// quantifier is treated as an atom.
type Literal struct {
	Atom    formula.Formula
	Negated bool
}

// Formula returns the formula represented by this literal.
func (l Literal) Formula() formula.Formula {
	if l.Negated {
		return formula.NewNegation(l.Atom)
	}
	//
	return l.Atom
}

func (l Literal) key() string {
	return formula.Key(l.Formula())
}

// Clause is a disjunction of literals.  Clauses are compared by a canonical key
// which is insensitive to literal order, duplicate literals and hole naming.
type Clause struct {
	Literals []Literal
	key      string
	hash     uint64
	// Step establishing this clause.
	step uint
}

var _ hash.Hasher[Clause] = Clause{}

// NewClause constructs a clause from a given set of literals, removing
// duplicates.  This returns false if the clause is a tautology (i.e. contains
// some literal and its negation).
func NewClause(literals []Literal) (Clause, bool) {
	var (
		keys  = make(map[string]Literal)
		atoms = make(map[string]bool)
	)
	//
	for _, l := range literals {
		atom := formula.Key(l.Atom)
		//
		if negated, ok := atoms[atom]; ok && negated != l.Negated {
			return Clause{}, false
		}
		//
		atoms[atom] = l.Negated
		keys[l.key()] = l
	}
	//
	// Literals are ordered by their canonical keys, so that hole naming does
	// not affect the order.
	var (
		sorted    = formula.SortedKeys(keys)
		canonical = make(map[string]string, len(sorted))
		lits      = make([]Literal, len(sorted))
		fs        = make([]formula.Formula, len(sorted))
	)
	//
	for _, k := range sorted {
		canonical[k] = formula.CanonicalKey(keys[k].Formula())
	}
	//
	slices.SortStableFunc(sorted, func(a, b string) int {
		return strings.Compare(canonical[a], canonical[b])
	})
	//
	for i, k := range sorted {
		lits[i] = keys[k]
		fs[i] = lits[i].Formula()
	}
	//
	key := formula.CanonicalKey(formula.NewConjunction(fs...))
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(key))
	//
	return Clause{lits, key, hasher.Sum64(), 0}, true
}

// IsEmpty determines whether this is the empty clause.
func (c Clause) IsEmpty() bool {
	return len(c.Literals) == 0
}

// IsGround determines whether this clause contains no holes.
func (c Clause) IsGround() bool {
	for _, l := range c.Literals {
		if !formula.IsGround(l.Atom) {
			return false
		}
	}
	//
	return true
}

// Equals implements hash.Hasher.
func (c Clause) Equals(other Clause) bool {
	return c.key == other.key
}

// Hash implements hash.Hasher.
func (c Clause) Hash() uint64 {
	return c.hash
}

// Formula returns the disjunction represented by this clause.
func (c Clause) Formula() formula.Formula {
	switch len(c.Literals) {
	case 0:
		return formula.NewAtomic(falsum)
	case 1:
		return c.Literals[0].Formula()
	}
	//
	disjuncts := make([]formula.Formula, len(c.Literals))
	//
	for i, l := range c.Literals {
		disjuncts[i] = l.Formula()
	}
	//
	return formula.MustDisjunction(disjuncts...)
}

func (c Clause) String() string {
	return c.Formula().String()
}

func isEmptyClause(f formula.Formula) bool {
	a, ok := f.(*formula.Atomic)
	return ok && a.Predicate == falsum && len(a.Args) == 0
}

// ===================================================================
// Clausification
// ===================================================================

// Clausify converts a formula into an equivalent (or, in the presence of
// existentials, equisatisfiable) set of clauses.  Universally quantified
// variables become holes, whilst existentially quantified variables become
// skolem functions of the enclosing universals.  Names are drawn from the given
// context, such that clauses from different formulas never share holes.
func (p *SearchContext) clausify(f formula.Formula) []Clause {
	var clauses []Clause
	//
	for _, lits := range cnf(p.nnf(f, false, nil)) {
		if c, ok := NewClause(lits); ok {
			clauses = append(clauses, c)
		}
	}
	//
	return clauses
}

// Convert a formula into negation normal form, where only conjunction,
// disjunction and negated atoms remain.
//
//nolint:revive
func (p *SearchContext) nnf(f formula.Formula, negated bool, universals []formula.Term) formula.Formula {
	switch f := f.(type) {
	case *formula.Negation:
		return p.nnf(f.Inner, !negated, universals)
	case *formula.Conjunction:
		return p.junction(f.Conjuncts, negated, !negated, universals)
	case *formula.Disjunction:
		return p.junction(f.Disjuncts, negated, negated, universals)
	case *formula.Implication:
		return p.junction([]formula.Formula{formula.NewNegation(f.Antecedent), f.Consequent}, negated, negated,
			universals)
	case *formula.Biconditional:
		both := formula.NewConjunction(formula.NewImplication(f.Left, f.Right),
			formula.NewImplication(f.Right, f.Left))
		//
		return p.nnf(both, negated, universals)
	case *formula.Universal:
		body := relativise(f.Quantifier, f.Body, true)
		//
		if negated {
			return p.skolemise(f.Quantifier.Variable, body, negated, universals)
		}
		//
		return p.generalise(f.Quantifier.Variable, body, negated, universals)
	case *formula.Existential:
		body := relativise(f.Quantifier, f.Body, false)
		//
		if negated {
			return p.generalise(f.Quantifier.Variable, body, negated, universals)
		}
		//
		return p.skolemise(f.Quantifier.Variable, body, negated, universals)
	default:
		if negated {
			return formula.NewNegation(f)
		}
		//
		return f
	}
}

// Convert a conjunction (or disjunction) of formulas, where negation swaps one
// for the other.
func (p *SearchContext) junction(fs []formula.Formula, negated bool, conjunction bool,
	universals []formula.Term) formula.Formula {
	nfs := make([]formula.Formula, len(fs))
	//
	for i, f := range fs {
		nfs[i] = p.nnf(f, negated, universals)
	}
	//
	if conjunction {
		return &formula.Conjunction{Conjuncts: nfs}
	}
	//
	return &formula.Disjunction{Disjuncts: nfs}
}

// Replace a universally quantified variable by a fresh hole.
func (p *SearchContext) generalise(variable string, body formula.Formula, negated bool,
	universals []formula.Term) formula.Formula {
	hole := formula.NewHole(p.freshName(variable))
	//
	return p.nnf(formula.Instantiate(body, variable, hole), negated, append(slices.Clone(universals), hole))
}

// Replace an existentially quantified variable by a fresh skolem function.
func (p *SearchContext) skolemise(variable string, body formula.Formula, negated bool,
	universals []formula.Term) formula.Formula {
	skolem := formula.NewFunction(p.freshName("sk"), universals...)
	//
	return p.nnf(formula.Instantiate(body, variable, skolem), negated, universals)
}

// Make the domain of a quantifier (if any) explicit in its body.
func relativise(q formula.Quantifier, body formula.Formula, universal bool) formula.Formula {
	if q.Domain == nil {
		return body
	}
	//
	member := formula.NewSetMembership(formula.NewVariable(q.Variable, q.Type), q.Domain)
	//
	if universal {
		return formula.NewImplication(member, body)
	}
	//
	return formula.NewConjunction(member, body)
}

// Convert a formula in negation normal form into conjunctive normal form,
// represented as a list of clauses (each a list of literals).
func cnf(f formula.Formula) [][]Literal {
	switch f := f.(type) {
	case *formula.Conjunction:
		var clauses [][]Literal
		//
		for _, c := range f.Conjuncts {
			clauses = append(clauses, cnf(c)...)
		}
		//
		return clauses
	case *formula.Disjunction:
		clauses := [][]Literal{nil}
		//
		for _, d := range f.Disjuncts {
			var product [][]Literal
			//
			for _, lhs := range clauses {
				for _, rhs := range cnf(d) {
					product = append(product, append(slices.Clone(lhs), rhs...))
				}
			}
			//
			clauses = product
		}
		//
		return clauses
	case *formula.Negation:
		return [][]Literal{{Literal{f.Inner, true}}}
	default:
		return [][]Literal{{Literal{f, false}}}
	}
}
