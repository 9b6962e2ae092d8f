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
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
	"github.com/sravinet/aisp-open-core-sub005/pkg/verdict"
)

// Outcome is the result of a single proof attempt.
type Outcome struct {
	// Verdict reached, which is never Disproven since proof search cannot
	// produce counterexamples.
	Verdict verdict.Verdict
	// Proof found (or nil if the verdict is not Proven).
	Proof *Proof
	// Work done during the attempt.
	Stats Stats
	// Reason the search stopped before completing (or nil if it completed).
	// This wraps either ErrResourceExhausted or a context error.
	Exhausted error
	// Cause of an error verdict (or nil otherwise).  A proof which failed its
	// re-check is reported with ErrProofInconsistency.
	Err error
}

// Engine performs proof search over a fixed set of axioms and rules.  These are
// never modified during proving, hence a single engine can be used by multiple
// goroutines concurrently.
type Engine struct {
	axioms     []Axiom
	rules      []InferenceRule
	config     SearchConfig
	comparator Comparator
	// Candidates in declaration order
	axiomCandidates []Candidate
	ruleCandidates  []Candidate
	// Names for proof validation
	axiomNames []string
	ruleNames  []string
}

type searchFn func(*SearchContext) (*Proof, error)

// NewEngine constructs an engine for a given set of axioms and rules, using the
// weighted comparator for the configured heuristic weights.
func NewEngine(axioms []Axiom, rules []InferenceRule, config SearchConfig) *Engine {
	engine := &Engine{
		axioms:     axioms,
		rules:      rules,
		config:     config,
		comparator: NewWeightedComparator(config.Weights),
	}
	//
	for i, axiom := range axioms {
		engine.axiomCandidates = append(engine.axiomCandidates,
			Candidate{axiom.Name, axiom.Formula, axiom.Priority, false, i})
		engine.axiomNames = append(engine.axiomNames, axiom.Name)
	}
	//
	for i, rule := range rules {
		engine.ruleCandidates = append(engine.ruleCandidates,
			Candidate{rule.Name, rule.Conclusion, rule.Priority, true, i})
		engine.ruleNames = append(engine.ruleNames, rule.Name)
	}
	//
	return engine
}

// WithComparator replaces the comparator used to order candidates.
func (p *Engine) WithComparator(comparator Comparator) *Engine {
	p.comparator = comparator
	return p
}

// Config returns the search configuration of this engine.
func (p *Engine) Config() SearchConfig {
	return p.config
}

// Axioms returns the axioms of this engine.
func (p *Engine) Axioms() []Axiom {
	return p.axioms
}

// Rules returns the inference rules of this engine.
func (p *Engine) Rules() []InferenceRule {
	return p.rules
}

// Prove a goal using a given strategy, under zero or more hypotheses.
func (p *Engine) Prove(ctx context.Context, strategy Strategy, goal formula.Formula,
	hypotheses ...formula.Formula) Outcome {
	switch strategy {
	case NATURAL_DEDUCTION:
		return p.NaturalDeduction(ctx, goal, hypotheses...)
	case BACKWARD_CHAINING:
		return p.BackwardChaining(ctx, goal, hypotheses...)
	case FORWARD_CHAINING:
		return p.ForwardChaining(ctx, goal, hypotheses...)
	case RESOLUTION:
		return p.Resolution(ctx, goal, hypotheses...)
	}
	//
	err := fmt.Errorf("unknown strategy %d", strategy)
	//
	return Outcome{Verdict: verdict.Error(err.Error()), Err: err}
}

// NaturalDeduction attempts to prove a goal by recursive backtracking search
// over introduction rules, inference rules and axioms.
func (p *Engine) NaturalDeduction(ctx context.Context, goal formula.Formula,
	hypotheses ...formula.Formula) Outcome {
	return p.run(ctx, NATURAL_DEDUCTION, goal, hypotheses, searchNatural)
}

// BackwardChaining attempts to prove a goal by goal-directed search, reducing
// the goal to the premises of a matching rule.
func (p *Engine) BackwardChaining(ctx context.Context, goal formula.Formula,
	hypotheses ...formula.Formula) Outcome {
	return p.run(ctx, BACKWARD_CHAINING, goal, hypotheses, searchBackward)
}

// ForwardChaining attempts to prove a goal by computing the closure of the
// axioms under the rules, breadth first.
func (p *Engine) ForwardChaining(ctx context.Context, goal formula.Formula,
	hypotheses ...formula.Formula) Outcome {
	return p.run(ctx, FORWARD_CHAINING, goal, hypotheses, searchForward)
}

// Resolution attempts to prove a goal by refuting its negation.
func (p *Engine) Resolution(ctx context.Context, goal formula.Formula, hypotheses ...formula.Formula) Outcome {
	return p.run(ctx, RESOLUTION, goal, hypotheses, searchResolution)
}

func (p *Engine) run(ctx context.Context, strategy Strategy, goal formula.Formula, hypotheses []formula.Formula,
	search searchFn) Outcome {
	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		//
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}
	//
	var (
		sc    = newSearchContext(ctx, p, goal)
		start = time.Now()
	)
	//
	for _, h := range hypotheses {
		sc.assume(h, hypothesisName, 0)
	}
	//
	log.Debugf("%s: proving %s", strategy, goal)
	//
	proof, err := search(sc)
	//
	sc.stats.SearchTime = time.Since(start)
	log.Debugf("%s: finished with %s", strategy, sc.stats)
	//
	switch {
	case proof != nil:
		if verr := proof.Validate(p.axiomNames, p.ruleNames); verr != nil {
			log.Debugf("%s: %s", strategy, verr)
			//
			return Outcome{Verdict: verdict.Error(verr.Error()), Proof: proof, Stats: sc.stats, Err: verr}
		}
		//
		return Outcome{Verdict: verdict.Proven(), Proof: proof, Stats: sc.stats}
	case err != nil && !isExhaustion(err):
		return Outcome{Verdict: verdict.Error(err.Error()), Stats: sc.stats, Err: err}
	case err == nil && sc.cut:
		err = fmt.Errorf("%w: depth limit %d reached", ErrResourceExhausted, p.config.MaxDepth)
	}
	//
	return Outcome{Verdict: verdict.Unknown(), Stats: sc.stats, Exhausted: err}
}

func isExhaustion(err error) bool {
	return errors.Is(err, ErrResourceExhausted) || errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}
