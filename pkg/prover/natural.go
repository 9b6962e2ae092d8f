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

func searchNatural(sc *SearchContext) (*Proof, error) {
	id, ok, err := sc.natural(sc.goal, 0, 0)
	//
	if err != nil || !ok {
		return nil, err
	}
	//
	return sc.proof(NATURAL_DEDUCTION, id), nil
}

// Attempt to establish a goal at a given depth, where level is the number of
// enclosing assumptions.  On success, this returns the step concluding the
// goal.  An error is returned only when the search must be abandoned
// altogether.
func (p *SearchContext) natural(goal formula.Formula, depth uint, level uint) (uint, bool, error) {
	if err := p.check(); err != nil {
		return 0, false, err
	}
	//
	p.stats.StepsExplored++
	p.reach(depth)
	goal = p.subst.Apply(goal)
	// Hypotheses close goals immediately
	for i := len(p.hypotheses) - 1; i >= 0; i-- {
		h := p.hypotheses[i]
		//
		if subst, err := Unify(h.formula, goal, p.subst); err == nil {
			p.subst = subst
			return h.step, true, nil
		}
	}
	//
	if depth >= p.config.MaxDepth {
		p.cut = true
		return 0, false, nil
	}
	// Cycle check over the active path
	key := formula.CanonicalKey(goal)
	//
	if p.visited[key] {
		return 0, false, nil
	}
	//
	p.visited[key] = true
	defer delete(p.visited, key)
	// Holes can be closed only by hypotheses or axioms
	if _, ok := goal.(*formula.Hole); !ok {
		if formula.IsGround(goal) {
			if id, ok, err := p.introduce(goal, depth, level); ok || err != nil {
				return id, ok, err
			}
		}
		//
		if id, ok, err := p.naturalRules(goal, depth, level); ok || err != nil {
			return id, ok, err
		}
	}
	//
	return p.naturalAxioms(goal)
}

// Apply the introduction rule for the outermost connective of a ground goal.
func (p *SearchContext) introduce(goal formula.Formula, depth uint, level uint) (uint, bool, error) {
	var (
		height = p.steps.Len()
		subst  = p.subst
		nhyps  = len(p.hypotheses)
		id     uint
		ok     bool
		err    error
	)
	//
	switch g := goal.(type) {
	case *formula.Implication:
		id, ok, err = p.introduceImplication(g, depth, level)
	case *formula.Conjunction:
		var deps []uint
		//
		if deps, ok, err = p.all(g.Conjuncts, depth+1, level); ok {
			id = p.push(goal, RULE, conjunctionIntro, deps...)
		}
	case *formula.Biconditional:
		var deps []uint
		//
		directions := []formula.Formula{formula.NewImplication(g.Left, g.Right),
			formula.NewImplication(g.Right, g.Left)}
		//
		if deps, ok, err = p.all(directions, depth+1, level); ok {
			id = p.push(goal, RULE, biconditionalIntro, deps...)
		}
	case *formula.Universal:
		id, ok, err = p.introduceUniversal(g, depth, level)
	default:
		return 0, false, nil
	}
	//
	p.hypotheses = p.hypotheses[:nhyps]
	//
	if !ok {
		p.restore(height, subst)
		//
		if err == nil {
			p.stats.Backtracks++
		}
	}
	//
	return id, ok, err
}

// Assume the antecedent and establish the consequent.  The conjuncts of a
// conjunctive antecedent are additionally made available as hypotheses.
func (p *SearchContext) introduceImplication(goal *formula.Implication, depth uint, level uint) (uint, bool,
	error) {
	aid := p.assume(goal.Antecedent, assumptionName, level+1)
	//
	if c, ok := goal.Antecedent.(*formula.Conjunction); ok {
		for _, conjunct := range c.Conjuncts {
			p.hypotheses = append(p.hypotheses, hypothesis{conjunct, aid})
		}
	}
	//
	cid, ok, err := p.natural(goal.Consequent, depth+1, level+1)
	//
	if !ok {
		return 0, false, err
	}
	//
	return p.push(goal, RULE, implicationIntro, aid, cid), true, nil
}

// Establish the body for a fresh eigenvariable.  When the quantifier has a
// domain, membership of that domain is assumed.
func (p *SearchContext) introduceUniversal(goal *formula.Universal, depth uint, level uint) (uint, bool, error) {
	var (
		q    = goal.Quantifier
		v    = formula.NewVariable(p.freshName(q.Variable), q.Type)
		body = formula.Instantiate(goal.Body, q.Variable, v)
		deps []uint
	)
	//
	if q.Domain != nil {
		deps = append(deps, p.assume(formula.NewSetMembership(v, q.Domain), assumptionName, level+1))
		level++
	}
	//
	id, ok, err := p.natural(body, depth+1, level)
	//
	if !ok {
		return 0, false, err
	}
	//
	return p.push(goal, RULE, universalIntro, append(deps, id)...), true, nil
}

// Attempt every rule whose conclusion unifies with the goal.
func (p *SearchContext) naturalRules(goal formula.Formula, depth uint, level uint) (uint, bool, error) {
	for _, c := range sortCandidates(p.engine.comparator, goal, p.engine.ruleCandidates) {
		rule := p.engine.rules[c.Index]
		//
		if !applicable(rule, goal) {
			continue
		}
		//
		premises, conclusion := p.instantiateRule(rule)
		//
		subst, err := Unify(conclusion, goal, p.subst)
		if err != nil {
			continue
		}
		//
		p.stats.RulesApplied++
		height, saved := p.steps.Len(), p.subst
		p.subst = subst
		//
		deps, ok, err := p.all(premises, depth+1, level)
		//
		if ok {
			return p.push(goal, RULE, rule.Name, deps...), true, nil
		}
		//
		p.restore(height, saved)
		//
		if err != nil {
			return 0, false, err
		}
		//
		p.stats.Backtracks++
	}
	//
	return 0, false, nil
}

// Close the goal with the first axiom which unifies with it.
func (p *SearchContext) naturalAxioms(goal formula.Formula) (uint, bool, error) {
	for _, c := range sortCandidates(p.engine.comparator, goal, p.engine.axiomCandidates) {
		axiom := p.engine.axioms[c.Index]
		//
		if subst, err := Unify(p.instantiateAxiom(axiom), goal, p.subst); err == nil {
			p.subst = subst
			return p.push(goal, AXIOM, axiom.Name), true, nil
		}
	}
	//
	return 0, false, nil
}

// Establish all of a set of subgoals, returning their steps in the given
// order.  Subgoals are attempted most constrained first, such that holes shared
// between them are bound by the subgoal most likely to determine them.
func (p *SearchContext) all(goals []formula.Formula, depth uint, level uint) ([]uint, bool, error) {
	var (
		deps = make([]uint, len(goals))
		done = make([]bool, len(goals))
	)
	//
	for range goals {
		next := p.nextSubgoal(goals, done)
		id, ok, err := p.natural(goals[next], depth, level)
		//
		if !ok {
			return nil, false, err
		}
		//
		deps[next], done[next] = id, true
	}
	//
	return deps, true, nil
}

// Select the outstanding subgoal with the fewest unbound holes, preferring the
// more complex on a tie.
func (p *SearchContext) nextSubgoal(goals []formula.Formula, done []bool) int {
	var (
		best       = -1
		bestHoles  int
		bestWeight uint
	)
	//
	for i, g := range goals {
		if done[i] {
			continue
		}
		//
		g = p.subst.Apply(g)
		holes, weight := len(formula.Holes(g)), formula.Complexity(g)
		//
		if best < 0 || holes < bestHoles || (holes == bestHoles && weight > bestWeight) {
			best, bestHoles, bestWeight = i, holes, weight
		}
	}
	//
	return best
}
