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
	"context"
	"errors"
	"fmt"

	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
	"github.com/sravinet/aisp-open-core-sub005/pkg/util/collection/stack"
)

// ErrResourceExhausted indicates that a search ran out of steps or depth
// before it could complete.  This reflects incompleteness of the search, and
// is reported as an unknown verdict rather than an error.
var ErrResourceExhausted = errors.New("resource exhausted")

// A hypothesis available to the current goal, along with the step which
// introduced it.
type hypothesis struct {
	formula formula.Formula
	step    uint
}

// SearchContext holds the mutable state of a single proof attempt.  A context
// is owned by exactly one attempt and is never shared.
type SearchContext struct {
	ctx    context.Context
	engine *Engine
	config SearchConfig
	goal   formula.Formula
	// Hypotheses in scope, most recent last.
	hypotheses []hypothesis
	// Current substitution.
	subst Substitution
	// Canonical keys of the goals on the active path.
	visited map[string]bool
	// Steps of the partial proof.
	steps *stack.Stack[ProofStep]
	// Work done so far.
	stats Stats
	// Counter for fresh names.
	fresh uint
	// Set when some branch was pruned by the depth limit.
	cut bool
}

func newSearchContext(ctx context.Context, engine *Engine, goal formula.Formula) *SearchContext {
	return &SearchContext{
		ctx:     ctx,
		engine:  engine,
		config:  engine.config,
		goal:    goal,
		subst:   make(Substitution),
		visited: make(map[string]bool),
		steps:   stack.NewStack[ProofStep](),
	}
}

// Check whether the search should continue, returning an error when the
// deadline has passed or the step budget is spent.
func (p *SearchContext) check() error {
	if err := p.ctx.Err(); err != nil {
		return err
	} else if p.config.MaxSteps > 0 && p.stats.StepsExplored >= p.config.MaxSteps {
		return fmt.Errorf("%w: step limit %d reached", ErrResourceExhausted, p.config.MaxSteps)
	}
	//
	return nil
}

// Record a given depth as reached.
func (p *SearchContext) reach(depth uint) {
	p.stats.PeakDepth = max(p.stats.PeakDepth, depth)
}

// Push a new step onto the partial proof, returning its identifier.
func (p *SearchContext) push(f formula.Formula, kind JustificationKind, name string, deps ...uint) uint {
	id := p.steps.Len()
	p.steps.Push(ProofStep{id, f, Justification{kind, name}, deps, 0})
	//
	return id
}

// Add a hypothesis, introducing an assumption step for it.
func (p *SearchContext) assume(f formula.Formula, name string, level uint) uint {
	id := p.steps.Len()
	p.steps.Push(ProofStep{id, f, Justification{ASSUMPTION, name}, nil, level})
	p.hypotheses = append(p.hypotheses, hypothesis{f, id})
	//
	return id
}

// Generate a fresh suffix for renaming the holes of an axiom or rule apart.
func (p *SearchContext) freshSuffix() string {
	p.fresh++
	return fmt.Sprintf(".%d", p.fresh)
}

// Generate a fresh name with a given prefix.
func (p *SearchContext) freshName(prefix string) string {
	p.fresh++
	return fmt.Sprintf("%s'%d", prefix, p.fresh)
}

// Obtain a renamed copy of a given axiom.
func (p *SearchContext) instantiateAxiom(axiom Axiom) formula.Formula {
	if formula.IsGround(axiom.Formula) {
		return axiom.Formula
	}
	//
	return renameHoles(axiom.Formula, p.freshSuffix())
}

// Obtain a renamed copy of a given rule, returning its premises and conclusion.
func (p *SearchContext) instantiateRule(rule InferenceRule) ([]formula.Formula, formula.Formula) {
	rw := holeRenamer(p.freshSuffix())
	premises := make([]formula.Formula, len(rule.Premises))
	//
	for i, premise := range rule.Premises {
		premises[i] = rw.Apply(premise)
	}
	//
	return premises, rw.Apply(rule.Conclusion)
}

// Extract the proof which establishes a given root step.
func (p *SearchContext) proof(strategy Strategy, root uint) *Proof {
	return extractProof(p.goal, strategy, p.steps.Items(), root, p.subst)
}

// Undo all progress made since a given point, by truncating the partial proof
// and reinstating an earlier substitution.
func (p *SearchContext) restore(height uint, subst Substitution) {
	p.steps.Truncate(height)
	p.subst = subst
}

// Determine whether a rule may be applied to a given goal.  Rules concluding an
// arbitrary formula (e.g. modus ponens) are applied to ground goals only, since
// otherwise they apply to their own premises indefinitely.
func applicable(rule InferenceRule, goal formula.Formula) bool {
	_, open := rule.Conclusion.(*formula.Hole)
	return !open || formula.IsGround(goal)
}
