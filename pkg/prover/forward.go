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

// A formula known to hold, along with the step establishing it and the length
// of its derivation.
type fact struct {
	formula formula.Formula
	step    uint
	depth   uint
}

// Forward chaining search state.
type forward struct {
	*SearchContext
	// Structural keys of every formula ever enqueued.
	derived *hash.Set[hash.StringKey]
	// Facts awaiting processing.
	queue []fact
	// Ground facts already processed, which can serve as premises.
	facts []fact
}

func searchForward(sc *SearchContext) (*Proof, error) {
	f := forward{SearchContext: sc, derived: hash.NewSet[hash.StringKey](64)}
	//
	for _, h := range sc.hypotheses {
		f.enqueue(h.formula, 0, func() uint { return h.step })
	}
	//
	for _, axiom := range sc.engine.axioms {
		instance := sc.instantiateAxiom(axiom)
		f.enqueue(instance, 0, func() uint { return sc.push(instance, AXIOM, axiom.Name) })
	}
	//
	for _, rule := range sc.engine.rules {
		if len(rule.Premises) == 0 && formula.IsGround(rule.Conclusion) {
			f.enqueue(rule.Conclusion, 1, func() uint { return sc.push(rule.Conclusion, RULE, rule.Name) })
		}
	}
	//
	for len(f.queue) > 0 {
		if err := sc.check(); err != nil {
			return nil, err
		}
		//
		next := f.queue[0]
		f.queue = f.queue[1:]
		sc.stats.StepsExplored++
		sc.reach(next.depth)
		//
		if subst, err := Unify(next.formula, sc.goal, sc.subst); err == nil {
			sc.subst = subst
			return sc.proof(FORWARD_CHAINING, next.step), nil
		} else if !formula.IsGround(next.formula) {
			// Schemas are matched against the goal, but are never premises
			continue
		}
		//
		f.facts = append(f.facts, next)
		//
		if next.depth >= sc.config.MaxDepth {
			sc.cut = true
			continue
		}
		//
		f.fire(next)
	}
	//
	return nil, nil
}

// Enqueue a formula unless it has been seen before, in which case step is never
// invoked.
func (p *forward) enqueue(f formula.Formula, depth uint, step func() uint) {
	key := hash.NewStringKey(formula.Key(f))
	//
	if !p.derived.Contains(key) {
		p.derived.Insert(key)
		p.queue = append(p.queue, fact{f, step(), depth})
	}
}

// Apply every rule for which the given fact matches at least one premise, with
// the remaining premises matched against facts already processed.
func (p *forward) fire(next fact) {
	for _, c := range sortCandidates(p.engine.comparator, p.goal, p.engine.ruleCandidates) {
		rule := p.engine.rules[c.Index]
		//
		for i := range rule.Premises {
			premises, conclusion := p.instantiateRule(rule)
			//
			if subst, err := Unify(premises[i], next.formula, nil); err == nil {
				used := make([]fact, len(premises))
				used[i] = next
				p.match(rule, premises, conclusion, used, i, 0, subst)
			}
		}
	}
}

// Match the premises from a given index onwards (skipping the one matched by
// the new fact), deriving the conclusion for each complete match.
func (p *forward) match(rule InferenceRule, premises []formula.Formula, conclusion formula.Formula, used []fact,
	fixed int, index int, subst Substitution) {
	if index == fixed {
		index++
	}
	//
	if index < len(premises) {
		for _, f := range p.facts {
			if s, err := Unify(premises[index], f.formula, subst); err == nil {
				used[index] = f
				p.match(rule, premises, conclusion, used, fixed, index+1, s)
			}
		}
		//
		return
	}
	//
	derived := subst.Apply(conclusion)
	//
	if !formula.IsGround(derived) {
		return
	}
	//
	var (
		deps  = make([]uint, len(used))
		depth uint
	)
	//
	for i, f := range used {
		deps[i] = f.step
		depth = max(depth, f.depth+1)
	}
	//
	p.enqueue(derived, depth, func() uint {
		p.stats.RulesApplied++
		return p.push(derived, RULE, rule.Name, deps...)
	})
}
