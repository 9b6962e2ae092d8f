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
	"slices"

	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
)

// Continuation invoked when a goal has been established by a given step.  This
// returns true when the overall search has succeeded.
type continuation func(step uint) (bool, error)

// Backward chaining search with a fixed depth limit.
type backward struct {
	*SearchContext
	limit uint
	// Largest remaining depth at which each ground goal is known to fail.
	failed map[string]uint
	// Set when a goal was pruned for being on the active path.  A failure
	// which depends on the active path is not recorded in failed.
	cycled bool
}

// Backward chaining is performed with iterative deepening, such that a proof
// found under some depth limit is also found under any larger limit.
func searchBackward(sc *SearchContext) (*Proof, error) {
	var (
		b      = backward{sc, 0, make(map[string]uint), false}
		height = sc.steps.Len()
		root   uint
	)
	//
	for b.limit = 1; b.limit <= max(1, sc.config.MaxDepth); b.limit++ {
		sc.cut, b.cycled = false, false
		sc.steps.Truncate(height)
		//
		ok, err := b.prove(sc.goal, 0, func(step uint) (bool, error) {
			root = step
			return true, nil
		})
		//
		if err != nil {
			return nil, err
		} else if ok {
			return sc.proof(BACKWARD_CHAINING, root), nil
		} else if !sc.cut {
			// Search space exhausted without reaching the limit
			break
		}
	}
	//
	return nil, nil
}

func (p *backward) prove(goal formula.Formula, depth uint, k continuation) (bool, error) {
	if err := p.check(); err != nil {
		return false, err
	}
	//
	p.stats.StepsExplored++
	p.reach(depth)
	goal = p.subst.Apply(goal)
	//
	for i := len(p.hypotheses) - 1; i >= 0; i-- {
		h := p.hypotheses[i]
		//
		if subst, err := Unify(h.formula, goal, p.subst); err == nil {
			saved := p.subst
			p.subst = subst
			//
			if ok, err := k(h.step); ok || err != nil {
				return ok, err
			}
			//
			p.subst = saved
		}
	}
	//
	if depth >= p.limit {
		p.cut = true
		return false, nil
	}
	//
	key := formula.CanonicalKey(goal)
	//
	if p.visited[key] {
		p.cycled = true
		return false, nil
	} else if !formula.IsGround(goal) {
		return p.expand(goal, key, depth, k)
	}
	// A ground goal binds no holes of its own, hence its first proof is as good
	// as any other.
	remaining := p.limit - depth
	//
	if r, ok := p.failed[key]; ok && p.config.EnableCaching && remaining <= r {
		return false, nil
	}
	//
	var (
		found  uint
		cycled = p.cycled
	)
	//
	p.cycled = false
	ok, err := p.expand(goal, key, depth, func(step uint) (bool, error) {
		found = step
		return true, nil
	})
	//
	cycled, p.cycled = p.cycled, cycled || p.cycled
	//
	if err != nil {
		return false, err
	} else if !ok {
		if p.config.EnableCaching && !cycled {
			p.failed[key] = max(p.failed[key], remaining)
		}
		//
		return false, nil
	}
	//
	return k(found)
}

// Expand a goal by matching it against axioms, followed by rules.  The goal is
// on the active path only until it has been established.
func (p *backward) expand(goal formula.Formula, key string, depth uint, k continuation) (bool, error) {
	p.visited[key] = true
	//
	established := func(step uint) (bool, error) {
		delete(p.visited, key)
		ok, err := k(step)
		p.visited[key] = true
		//
		return ok, err
	}
	//
	defer delete(p.visited, key)
	//
	for _, c := range sortCandidates(p.engine.comparator, goal, p.engine.axiomCandidates) {
		axiom := p.engine.axioms[c.Index]
		subst, err := Unify(p.instantiateAxiom(axiom), goal, p.subst)
		//
		if err != nil {
			continue
		}
		//
		height, saved := p.steps.Len(), p.subst
		p.subst = subst
		//
		if ok, err := established(p.push(goal, AXIOM, axiom.Name)); ok || err != nil {
			return ok, err
		}
		//
		p.restore(height, saved)
		p.stats.Backtracks++
	}
	//
	if _, ok := goal.(*formula.Hole); ok {
		return false, nil
	}
	//
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
		ok, err := p.premises(premises, nil, depth+1, func(deps []uint) (bool, error) {
			return established(p.push(goal, RULE, rule.Name, deps...))
		})
		//
		if ok || err != nil {
			return ok, err
		}
		//
		p.restore(height, saved)
		p.stats.Backtracks++
	}
	//
	return false, nil
}

// Establish every premise in turn (an AND node), passing the steps of all
// premises to the final continuation.
func (p *backward) premises(premises []formula.Formula, deps []uint, depth uint,
	k func([]uint) (bool, error)) (bool, error) {
	if len(premises) == 0 {
		return k(deps)
	}
	//
	return p.prove(premises[0], depth, func(step uint) (bool, error) {
		return p.premises(premises[1:], append(slices.Clone(deps), step), depth, k)
	})
}
