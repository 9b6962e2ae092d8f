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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
	"github.com/sravinet/aisp-open-core-sub005/pkg/verdict"
)

var (
	atomP = formula.NewAtomic("P")
	atomQ = formula.NewAtomic("Q")
)

func Test_DirectAxiom_01(t *testing.T) {
	engine := NewEngine([]Axiom{NewAxiom("p", atomP)}, nil, DefaultSearchConfig())
	//
	for _, strategy := range []Strategy{NATURAL_DEDUCTION, BACKWARD_CHAINING, FORWARD_CHAINING} {
		outcome := checkOutcome(t, engine, strategy, atomP, verdict.PROVEN)
		//
		if outcome.Stats.Backtracks != 0 {
			t.Errorf("%s: expected zero backtracks, got %d", strategy, outcome.Stats.Backtracks)
		}
	}
}

func Test_NoProof_01(t *testing.T) {
	engine := NewEngine([]Axiom{NewAxiom("p", atomP)}, nil, DefaultSearchConfig())
	//
	for _, strategy := range Strategies {
		outcome := checkOutcome(t, engine, strategy, atomQ, verdict.UNKNOWN)
		//
		if outcome.Exhausted != nil {
			t.Errorf("%s: search should have completed, got %s", strategy, outcome.Exhausted)
		}
	}
}

func Test_NaturalDeduction_01(t *testing.T) {
	// Goals which are hypotheses are accepted immediately
	engine := NewEngine(nil, nil, DefaultSearchConfig())
	outcome := checkOutcome(t, engine, NATURAL_DEDUCTION, atomP, verdict.PROVEN, atomP)
	checkProofLength(t, outcome, 1)
}

func Test_NaturalDeduction_02(t *testing.T) {
	engine := NewEngine(nil, nil, DefaultSearchConfig())
	outcome := checkOutcome(t, engine, NATURAL_DEDUCTION, formula.NewImplication(atomP, atomP), verdict.PROVEN)
	checkProofLength(t, outcome, 2)
	checkRulesUsed(t, outcome, implicationIntro)
}

func Test_NaturalDeduction_03(t *testing.T) {
	var (
		x      = formula.NewVariable("x", "Int")
		px     = formula.NewAtomic("P", x)
		goal   = formula.NewUniversal(formula.NewQuantifier("x", "Int"), formula.NewImplication(px, px))
		engine = NewEngine(nil, nil, DefaultSearchConfig())
	)
	//
	outcome := checkOutcome(t, engine, NATURAL_DEDUCTION, goal, verdict.PROVEN)
	checkRulesUsed(t, outcome, implicationIntro, universalIntro)
}

func Test_NaturalDeduction_04(t *testing.T) {
	// (P ∧ Q) → (Q ∧ P) via a conjunctive assumption
	goal := formula.NewImplication(formula.NewConjunction(atomP, atomQ), formula.NewConjunction(atomQ, atomP))
	engine := NewEngine(nil, nil, DefaultSearchConfig())
	outcome := checkOutcome(t, engine, NATURAL_DEDUCTION, goal, verdict.PROVEN)
	checkRulesUsed(t, outcome, conjunctionIntro, implicationIntro)
}

func Test_NaturalDeduction_05(t *testing.T) {
	// Modus ponens with a hole shared between premises
	axioms := []Axiom{NewAxiom("p", atomP), NewAxiom("pq", formula.NewImplication(atomP, atomQ))}
	engine := NewEngine(axioms, mpRules(), DefaultSearchConfig())
	outcome := checkOutcome(t, engine, NATURAL_DEDUCTION, atomQ, verdict.PROVEN)
	checkProofLength(t, outcome, 3)
	checkRulesUsed(t, outcome, "modus_ponens")
}

func Test_BackwardChaining_01(t *testing.T) {
	// And introduction
	axioms := []Axiom{NewAxiom("p", atomP), NewAxiom("q", atomQ)}
	engine := StandardAxiomSystem().AddAxiom(axioms[0]).AddAxiom(axioms[1]).Build(DefaultSearchConfig())
	outcome := checkOutcome(t, engine, BACKWARD_CHAINING, formula.NewConjunction(atomP, atomQ), verdict.PROVEN)
	checkRulesUsed(t, outcome, "and_intro")
}

func Test_BackwardChaining_02(t *testing.T) {
	// Increasing the depth limit never loses a proof
	axioms, rules, goal := chain(5)
	proven := false
	//
	for depth := uint(1); depth <= 8; depth++ {
		config := DefaultSearchConfig()
		config.MaxDepth = depth
		outcome := NewEngine(axioms, rules, config).BackwardChaining(context.Background(), goal)
		//
		switch {
		case proven && outcome.Verdict.Kind() != verdict.PROVEN:
			t.Fatalf("depth %d lost proof found at smaller depth", depth)
		case outcome.Verdict.Kind() == verdict.PROVEN:
			proven = true
		case !errors.Is(outcome.Exhausted, ErrResourceExhausted):
			t.Errorf("depth %d: expected depth exhaustion, got %v", depth, outcome.Exhausted)
		}
		//
		if expected := depth >= 6; proven != expected {
			t.Errorf("depth %d: expected proven=%t", depth, expected)
		}
	}
}

func Test_BackwardChaining_03(t *testing.T) {
	// Schema axioms are instantiated
	engine := StandardAxiomSystem().Build(DefaultSearchConfig())
	goal := formula.MustDisjunction(atomQ, formula.NewNegation(atomQ))
	outcome := checkOutcome(t, engine, BACKWARD_CHAINING, goal, verdict.PROVEN)
	checkProofLength(t, outcome, 1)
}

func Test_BackwardChaining_04(t *testing.T) {
	// A goal pruned by a cycle on one path remains provable on another
	atom := func(name string) formula.Formula { return formula.NewAtomic(name) }
	rules := []InferenceRule{
		NewInferenceRule("x", atom("X"), atom("A"), atom("E")),
		NewInferenceRule("a1", atom("A"), atom("G")),
		NewInferenceRule("a2", atom("A"), atom("C")),
		NewInferenceRule("e", atom("E"), atom("F")),
		NewInferenceRule("f", atom("F"), atom("G")),
		NewInferenceRule("g", atom("G"), atom("A")),
	}
	//
	for _, caching := range []bool{true, false} {
		config := DefaultSearchConfig()
		config.EnableCaching = caching
		engine := NewEngine([]Axiom{NewAxiom("c", atom("C"))}, rules, config)
		//
		for _, strategy := range []Strategy{NATURAL_DEDUCTION, BACKWARD_CHAINING, FORWARD_CHAINING} {
			checkOutcome(t, engine, strategy, atom("X"), verdict.PROVEN)
		}
	}
}

func Test_ForwardChaining_01(t *testing.T) {
	// Closed axiom set, hence the queue empties
	rules := []InferenceRule{NewInferenceRule("qr", formula.NewAtomic("R"), atomQ)}
	engine := NewEngine([]Axiom{NewAxiom("p", atomP)}, rules, DefaultSearchConfig())
	outcome := checkOutcome(t, engine, FORWARD_CHAINING, formula.NewAtomic("S"), verdict.UNKNOWN)
	//
	if outcome.Stats.StepsExplored != 1 {
		t.Errorf("expected one step, got %d", outcome.Stats.StepsExplored)
	}
}

func Test_ForwardChaining_02(t *testing.T) {
	axioms := []Axiom{NewAxiom("p", atomP), NewAxiom("pq", formula.NewImplication(atomP, atomQ))}
	engine := NewEngine(axioms, mpRules(), DefaultSearchConfig())
	outcome := checkOutcome(t, engine, FORWARD_CHAINING, atomQ, verdict.PROVEN)
	checkProofLength(t, outcome, 3)
}

func Test_ForwardChaining_03(t *testing.T) {
	// Derivations are bounded by depth
	axioms, rules, goal := chain(5)
	config := DefaultSearchConfig()
	config.MaxDepth = 3
	outcome := NewEngine(axioms, rules, config).ForwardChaining(context.Background(), goal)
	//
	if outcome.Verdict.Kind() != verdict.UNKNOWN || !errors.Is(outcome.Exhausted, ErrResourceExhausted) {
		t.Errorf("expected depth exhaustion, got %s (%v)", outcome.Verdict, outcome.Exhausted)
	}
}

func Test_Resolution_01(t *testing.T) {
	// {P} and {¬P} resolve to the empty clause immediately
	engine := NewEngine([]Axiom{NewAxiom("p", atomP)}, nil, DefaultSearchConfig())
	outcome := checkOutcome(t, engine, RESOLUTION, atomP, verdict.PROVEN)
	//
	if outcome.Stats.PeakDepth > 1 {
		t.Errorf("expected at most one round, got %d", outcome.Stats.PeakDepth)
	}
	//
	checkProofLength(t, outcome, 3)
}

func Test_Resolution_02(t *testing.T) {
	axioms := []Axiom{NewAxiom("p", atomP), NewAxiom("pq", formula.NewImplication(atomP, atomQ))}
	engine := NewEngine(axioms, nil, DefaultSearchConfig())
	checkOutcome(t, engine, RESOLUTION, atomQ, verdict.PROVEN)
}

func Test_Resolution_03(t *testing.T) {
	// All humans are mortal, socrates is human
	var (
		x        = formula.NewVariable("x", "")
		socrates = formula.NewConstant("socrates", "Person")
		mortal   = formula.NewUniversal(formula.NewQuantifier("x", ""),
			formula.NewImplication(formula.NewAtomic("Human", x), formula.NewAtomic("Mortal", x)))
		axioms = []Axiom{NewAxiom("mortal", mortal), NewAxiom("human", formula.NewAtomic("Human", socrates))}
	)
	//
	engine := NewEngine(axioms, nil, DefaultSearchConfig())
	checkOutcome(t, engine, RESOLUTION, formula.NewAtomic("Mortal", socrates), verdict.PROVEN)
}

func Test_Resolution_04(t *testing.T) {
	// Existentials in the goal are refuted via skolemisation of the negation
	var (
		x     = formula.NewVariable("x", "")
		a     = formula.NewConstant("a", "")
		goal  = formula.NewExistential(formula.NewQuantifier("x", ""), formula.NewAtomic("P", x))
		axiom = NewAxiom("pa", formula.NewAtomic("P", a))
	)
	//
	checkOutcome(t, NewEngine([]Axiom{axiom}, nil, DefaultSearchConfig()), RESOLUTION, goal, verdict.PROVEN)
}

func Test_Resolution_05(t *testing.T) {
	// Hypotheses contribute clauses
	engine := NewEngine(nil, nil, DefaultSearchConfig())
	checkOutcome(t, engine, RESOLUTION, atomQ, verdict.PROVEN, atomP, formula.NewImplication(atomP, atomQ))
}

func Test_Clause_01(t *testing.T) {
	// Clauses differing only in hole naming share a key, regardless of
	// literal order.
	lit := func(hole string, arg string) Literal {
		return Literal{formula.NewAtomic("P", formula.NewHole(hole), formula.NewConstant(arg, "Person")), false}
	}
	//
	lhs, _ := NewClause([]Literal{lit("a", "c"), lit("b", "d")})
	rhs, _ := NewClause([]Literal{lit("b", "c"), lit("a", "d")})
	//
	if lhs.key != rhs.key {
		t.Errorf("expected equal keys, got %s and %s", lhs.key, rhs.key)
	}
	//
	other, _ := NewClause([]Literal{lit("a", "c"), lit("b", "c")})
	//
	if lhs.key == other.key {
		t.Errorf("expected distinct keys, got %s", lhs.key)
	}
}

func Test_Cancelled_01(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	//
	engine := NewEngine([]Axiom{NewAxiom("p", atomP)}, nil, DefaultSearchConfig())
	//
	for _, strategy := range Strategies {
		outcome := engine.Prove(ctx, strategy, atomQ)
		//
		if outcome.Verdict.Kind() != verdict.UNKNOWN || !errors.Is(outcome.Exhausted, context.Canceled) {
			t.Errorf("%s: expected cancellation, got %s (%v)", strategy, outcome.Verdict, outcome.Exhausted)
		}
	}
}

func Test_StepLimit_01(t *testing.T) {
	axioms, rules, goal := chain(20)
	config := DefaultSearchConfig()
	config.MaxSteps = 5
	//
	for _, strategy := range Strategies {
		outcome := NewEngine(axioms, rules, config).Prove(context.Background(), strategy, goal)
		//
		if outcome.Verdict.Kind() != verdict.UNKNOWN || !errors.Is(outcome.Exhausted, ErrResourceExhausted) {
			t.Errorf("%s: expected step exhaustion, got %s (%v)", strategy, outcome.Verdict, outcome.Exhausted)
		}
	}
}

func Test_Unify_01(t *testing.T) {
	pattern := formula.NewConjunction(formula.NewHole("A"), atomQ)
	subst := checkUnify(t, pattern, formula.NewConjunction(formula.NewAtomic("R"), atomQ))
	//
	if got := subst.Apply(pattern).String(); got != "(R ∧ Q)" {
		t.Errorf("unexpected instance %s", got)
	}
}

func Test_Unify_02(t *testing.T) {
	// Occurs check
	h := formula.NewHole("x")
	checkNotUnify(t, formula.NewAtomic("P", h), formula.NewAtomic("P", formula.NewFunction("f", h)))
}

func Test_Unify_03(t *testing.T) {
	// Bound variables match up to renaming
	var (
		x, y, z = formula.NewVariable("x", ""), formula.NewVariable("y", ""), formula.NewVariable("z", "")
		qx, qy  = formula.NewQuantifier("x", ""), formula.NewQuantifier("y", "")
	)
	//
	checkUnify(t, formula.NewUniversal(qx, formula.NewAtomic("P", x)),
		formula.NewUniversal(qy, formula.NewAtomic("P", y)))
	checkNotUnify(t, formula.NewUniversal(qx, formula.NewAtomic("P", x)),
		formula.NewUniversal(qy, formula.NewAtomic("P", z)))
}

func Test_Unify_04(t *testing.T) {
	// Holes never capture bound variables
	var (
		y      = formula.NewVariable("y", "")
		qx, qy = formula.NewQuantifier("x", ""), formula.NewQuantifier("y", "")
	)
	//
	checkNotUnify(t, formula.NewUniversal(qx, formula.NewAtomic("P", formula.NewHole("t"))),
		formula.NewUniversal(qy, formula.NewAtomic("P", y)))
}

func Test_Unify_05(t *testing.T) {
	// Holes shared across positions must agree
	h := formula.NewHole("t")
	a, b := formula.NewConstant("a", ""), formula.NewConstant("b", "")
	//
	checkUnify(t, formula.NewAtomic("R", h, h), formula.NewAtomic("R", a, a))
	checkNotUnify(t, formula.NewAtomic("R", h, h), formula.NewAtomic("R", a, b))
	checkNotUnify(t, formula.NewConjunction(h, formula.NewAtomic("P", h)),
		formula.NewConjunction(atomQ, formula.NewAtomic("P", a)))
}

func Test_Proof_01(t *testing.T) {
	proof := &Proof{atomP, NATURAL_DEDUCTION, []ProofStep{
		{0, atomP, Justification{AXIOM, "p"}, nil, 0},
		{1, atomP, Justification{RULE, "r"}, []uint{1}, 0},
	}}
	//
	checkInconsistent(t, proof, []string{"p"}, []string{"r"})
	// Unknown axiom
	proof.Steps[1].Dependencies = []uint{0}
	checkInconsistent(t, proof, []string{"q"}, []string{"r"})
	// Final step does not establish goal
	proof.Goal = atomQ
	checkInconsistent(t, proof, []string{"p"}, []string{"r"})
	//
	proof.Goal = atomP
	if err := proof.Validate([]string{"p"}, []string{"r"}); err != nil {
		t.Errorf("unexpected error %s", err)
	} else if proof.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", proof.Depth())
	}
}

func Test_Library_01(t *testing.T) {
	builder := StandardAxiomSystem()
	//
	var axioms, rules []string
	//
	for _, a := range builder.Axioms() {
		axioms = append(axioms, a.Name)
	}
	//
	for _, r := range builder.Rules() {
		rules = append(rules, r.Name)
	}
	//
	expectedAxioms := []string{"modus_ponens", "excluded_middle", "double_negation", "universal_instantiation",
		"existential_generalization", "always_distribution", "eventually_always_duality", "type_safety",
		"structural_validity"}
	expectedRules := []string{"and_intro", "modus_ponens", "universal_gen", "always_intro"}
	//
	if diff := cmp.Diff(expectedAxioms, axioms); diff != "" {
		t.Errorf("unexpected axioms (-want +got):\n%s", diff)
	}
	//
	if diff := cmp.Diff(expectedRules, rules); diff != "" {
		t.Errorf("unexpected rules (-want +got):\n%s", diff)
	}
}

func Test_Comparator_01(t *testing.T) {
	candidates := []Candidate{
		{"low", atomP, 1, false, 0},
		{"high", atomP, 9, false, 1},
		{"far", atomQ, 9, false, 2},
		{"high2", atomP, 9, false, 3},
	}
	//
	checkOrder(t, NewWeightedComparator(DefaultWeights()), candidates, "high", "high2", "far", "low")
	checkOrder(t, DeclarationOrder{}, candidates, "low", "high", "far", "high2")
}

func Test_Strategy_01(t *testing.T) {
	for _, s := range Strategies {
		if parsed, err := ParseStrategy(s.String()); err != nil || parsed != s {
			t.Errorf("failed to round trip %s", s)
		}
	}
	//
	if s, err := ParseStrategy("res"); err != nil || s != RESOLUTION {
		t.Errorf("failed to parse short name")
	} else if _, err := ParseStrategy("tableaux"); err == nil {
		t.Errorf("expected error for unknown strategy")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

// Axiom A0 with rules Ai-1 ⊢ Ai, with goal An.
func chain(n int) ([]Axiom, []InferenceRule, formula.Formula) {
	var rules []InferenceRule
	//
	atom := func(i int) formula.Formula { return formula.NewAtomic(fmt.Sprintf("A%d", i)) }
	//
	for i := 1; i <= n; i++ {
		rules = append(rules, NewInferenceRule(fmt.Sprintf("r%d", i), atom(i), atom(i-1)))
	}
	//
	return []Axiom{NewAxiom("a0", atom(0))}, rules, atom(n)
}

func mpRules() []InferenceRule {
	P, Q := formula.NewHole("P"), formula.NewHole("Q")
	return []InferenceRule{NewInferenceRule("modus_ponens", Q, P, formula.NewImplication(P, Q))}
}

func checkOutcome(t *testing.T, engine *Engine, strategy Strategy, goal formula.Formula, expected verdict.Kind,
	hypotheses ...formula.Formula) Outcome {
	t.Helper()
	//
	outcome := engine.Prove(context.Background(), strategy, goal, hypotheses...)
	//
	if outcome.Verdict.Kind() != expected {
		t.Errorf("%s: expected %s for %s, got %s", strategy, expected, goal, outcome.Verdict)
	} else if expected == verdict.PROVEN && outcome.Proof == nil {
		t.Errorf("%s: missing proof", strategy)
	} else if expected != verdict.PROVEN && outcome.Proof != nil {
		t.Errorf("%s: unexpected proof", strategy)
	}
	//
	return outcome
}

func checkProofLength(t *testing.T, outcome Outcome, expected uint) {
	t.Helper()
	//
	if outcome.Proof == nil {
		return
	} else if outcome.Proof.Length() != expected {
		t.Errorf("expected proof of length %d, got:\n%s", expected, outcome.Proof)
	}
}

func checkRulesUsed(t *testing.T, outcome Outcome, expected ...string) {
	t.Helper()
	//
	if outcome.Proof == nil {
		return
	} else if diff := cmp.Diff(expected, outcome.Proof.RulesUsed()); diff != "" {
		t.Errorf("unexpected rules (-want +got):\n%s", diff)
	}
}

func checkUnify(t *testing.T, lhs formula.Formula, rhs formula.Formula) Substitution {
	t.Helper()
	//
	subst, err := Unify(lhs, rhs, nil)
	//
	if err != nil {
		t.Errorf("failed to unify %s and %s: %s", lhs, rhs, err)
	}
	//
	return subst
}

func checkNotUnify(t *testing.T, lhs formula.Formula, rhs formula.Formula) {
	t.Helper()
	//
	if _, err := Unify(lhs, rhs, nil); !errors.Is(err, ErrUnification) {
		t.Errorf("expected unification of %s and %s to fail", lhs, rhs)
	}
}

func checkInconsistent(t *testing.T, proof *Proof, axioms []string, rules []string) {
	t.Helper()
	//
	if err := proof.Validate(axioms, rules); !errors.Is(err, ErrProofInconsistency) {
		t.Errorf("expected inconsistency, got %v", err)
	}
}

func checkOrder(t *testing.T, c Comparator, candidates []Candidate, expected ...string) {
	t.Helper()
	//
	var names []string
	//
	for _, c := range sortCandidates(c, atomP, candidates) {
		names = append(names, c.Name)
	}
	//
	if diff := cmp.Diff(expected, names); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
}
