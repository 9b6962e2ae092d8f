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
	"github.com/sravinet/aisp-open-core-sub005/pkg/util/collection/hash"
)

// Resolution search state.
type resolution struct {
	*SearchContext
	// Every clause retained so far, in the order it was obtained.
	clauses []Clause
	// Canonical set of retained clauses.
	seen *hash.Set[Clause]
}

// Refute the negation of the goal, together with the axioms and hypotheses.
// Each round resolves every pair of clauses involving at least one clause
// obtained in the previous round, and the search stops once a round produces
// nothing new.  The number of completed rounds is reported as the peak depth.
func searchResolution(sc *SearchContext) (*Proof, error) {
	r := resolution{SearchContext: sc, seen: hash.NewSet[Clause](64)}
	//
	for _, axiom := range sc.engine.axioms {
		if root, ok := r.input(axiom.Formula, AXIOM, axiom.Name); ok {
			return sc.proof(RESOLUTION, root), nil
		}
	}
	//
	for _, h := range sc.hypotheses {
		if root, ok := r.input(h.formula, ASSUMPTION, hypothesisName); ok {
			return sc.proof(RESOLUTION, root), nil
		}
	}
	//
	if root, ok := r.input(formula.NewNegation(sc.goal), ASSUMPTION, negatedGoal); ok {
		return sc.proof(RESOLUTION, root), nil
	}
	//
	for start, round := 0, uint(1); ; round++ {
		if err := sc.check(); err != nil {
			return nil, err
		}
		//
		sc.reach(round)
		//
		var (
			end   = len(r.clauses)
			fresh []Clause
		)
		//
		for j := start; j < end; j++ {
			for i := 0; i <= j; i++ {
				root, ok, err := r.resolveAll(r.clauses[i], r.clauses[j], &fresh)
				//
				if err != nil {
					return nil, err
				} else if ok {
					return sc.proof(RESOLUTION, root), nil
				}
			}
		}
		//
		if len(fresh) == 0 {
			return nil, nil
		}
		//
		start = end
		r.clauses = append(r.clauses, fresh...)
	}
}

// Add the clauses of an input formula, each justified in the same way as the
// formula itself.  This returns true if one of them is the empty clause.
func (p *resolution) input(f formula.Formula, kind JustificationKind, name string) (uint, bool) {
	for _, c := range p.clausify(f) {
		c.step = p.push(c.Formula(), kind, name)
		//
		if c.IsEmpty() {
			return c.step, true
		} else if p.seen.Insert(c) {
			p.clauses = append(p.clauses, c)
		}
	}
	//
	return 0, false
}

// Resolve two clauses in every possible way, retaining any new resolvents.
// This returns true if the empty clause is obtained.
func (p *resolution) resolveAll(lhs Clause, rhs Clause, fresh *[]Clause) (uint, bool, error) {
	// Rename apart, since both may share holes (or even be the same clause)
	if !rhs.IsGround() {
		suffix := p.freshSuffix()
		renamed := make([]Literal, len(rhs.Literals))
		//
		for i, l := range rhs.Literals {
			renamed[i] = Literal{renameHoles(l.Atom, suffix), l.Negated}
		}
		//
		rhs.Literals = renamed
	}
	//
	for i, l := range lhs.Literals {
		for j, r := range rhs.Literals {
			if l.Negated == r.Negated {
				continue
			}
			//
			subst, err := Unify(l.Atom, r.Atom, nil)
			if err != nil {
				continue
			}
			//
			if err := p.check(); err != nil {
				return 0, false, err
			}
			//
			p.stats.StepsExplored++
			//
			resolvent, ok := NewClause(append(remaining(lhs, i, subst), remaining(rhs, j, subst)...))
			//
			if !ok {
				// Tautology
				continue
			} else if resolvent.IsEmpty() {
				return p.push(resolvent.Formula(), RULE, resolutionRule, lhs.step, rhs.step), true, nil
			} else if p.seen.Insert(resolvent) {
				p.stats.RulesApplied++
				resolvent.step = p.push(resolvent.Formula(), RULE, resolutionRule, lhs.step, rhs.step)
				*fresh = append(*fresh, resolvent)
			}
		}
	}
	//
	return 0, false, nil
}

// Instantiate every literal of a clause except one.
func remaining(c Clause, except int, subst Substitution) []Literal {
	var lits []Literal
	//
	for i, l := range c.Literals {
		if i != except {
			lits = append(lits, Literal{subst.Apply(l.Atom), l.Negated})
		}
	}
	//
	return lits
}
