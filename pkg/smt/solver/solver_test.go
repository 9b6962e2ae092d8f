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
package solver

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
	"github.com/sravinet/aisp-open-core-sub005/pkg/smt"
	"github.com/sravinet/aisp-open-core-sub005/pkg/verdict"
)

const validScript = "(declare-const x Real)\n(assert (> x 0.0))\n(check-sat)"

func Test_Verify_01(t *testing.T) {
	// Syntax errors never reach the backend
	backend := &fixedBackend{result: UNSAT}
	iface := New(backend, DefaultConfig())
	v, err := iface.Verify(context.Background(), "(assert (> y 0.0))\n(check-sat)")
	//
	if err != nil {
		t.Fatal(err)
	} else if v.Kind() != verdict.ERROR || !strings.Contains(v.Reason(), "Undeclared symbol: y") {
		t.Errorf("unexpected verdict %s", v)
	} else if backend.calls != 0 {
		t.Errorf("backend was invoked")
	}
	//
	checkStats(t, iface, Stats{Queries: 1, SyntaxErrors: 1})
}

func Test_Verify_02(t *testing.T) {
	// Missing backend is fatal when required
	iface := New(nil, Config{Timeout: time.Second, RequireSolver: true})
	_, err := iface.Verify(context.Background(), validScript)
	//
	if !errors.Is(err, ErrSolverUnavailable) {
		t.Errorf("expected solver unavailable, got %v", err)
	}
}

func Test_Verify_03(t *testing.T) {
	// Missing backend yields unknown when not required
	iface := New(Disabled{}, DefaultConfig())
	checkVerdict(t, iface, validScript, verdict.UNKNOWN)
}

func Test_Verify_04(t *testing.T) {
	iface := New(&fixedBackend{result: UNSAT}, DefaultConfig())
	checkVerdict(t, iface, validScript, verdict.PROVEN)
	//
	iface.backend = &fixedBackend{result: SAT}
	checkVerdict(t, iface, validScript, verdict.DISPROVEN)
	//
	iface.backend = &fixedBackend{result: UNKNOWN}
	checkVerdict(t, iface, validScript, verdict.UNKNOWN)
	//
	checkStats(t, iface, Stats{Queries: 3, Proven: 1, Disproven: 1, Unknown: 1})
}

func Test_Verify_05(t *testing.T) {
	// Backend failures become error verdicts
	iface := New(&fixedBackend{err: errors.New("crashed")}, DefaultConfig())
	checkVerdict(t, iface, validScript, verdict.ERROR)
}

func Test_Verify_06(t *testing.T) {
	// Timeouts are unknown, not errors
	iface := New(&fixedBackend{block: true}, Config{Timeout: 10 * time.Millisecond})
	checkVerdict(t, iface, validScript, verdict.UNKNOWN)
}

func Test_Gini_01(t *testing.T) {
	// P → P is a tautology, hence its negation is unsatisfiable
	checkGini(t, formula.NewImplication(formula.NewAtomic("P"), formula.NewAtomic("P")), verdict.PROVEN)
}

func Test_Gini_02(t *testing.T) {
	// P ∨ ¬P
	checkGini(t, formula.MustDisjunction(formula.NewAtomic("P"), formula.NewNegation(formula.NewAtomic("P"))),
		verdict.PROVEN)
}

func Test_Gini_03(t *testing.T) {
	// P → Q is not valid
	checkGini(t, formula.NewImplication(formula.NewAtomic("P"), formula.NewAtomic("Q")), verdict.DISPROVEN)
}

func Test_Gini_04(t *testing.T) {
	// (P ↔ Q) → (Q ↔ P)
	p, q := formula.NewAtomic("P"), formula.NewAtomic("Q")
	checkGini(t, formula.NewImplication(formula.NewBiconditional(p, q), formula.NewBiconditional(q, p)),
		verdict.PROVEN)
}

func Test_Gini_05(t *testing.T) {
	// Arithmetic is beyond the propositional fragment
	f := formula.NewArithLessEqual(formula.NewVariable("x", ""), formula.NewConstant("1", "Int"))
	checkGini(t, f, verdict.UNKNOWN)
}

func Test_Gini_06(t *testing.T) {
	// Hypotheses are respected: {P, P → Q} entails Q
	p, q := formula.NewAtomic("P"), formula.NewAtomic("Q")
	script := smt.NewScript(formula.NewProperty("goal", q), formula.NewProperty("h1", p),
		formula.NewProperty("h2", formula.NewImplication(p, q))).String()
	checkVerdict(t, New(NewGini(), DefaultConfig()), script, verdict.PROVEN)
}

func Test_Gini_07(t *testing.T) {
	// Cancellation is honoured without a deadline
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	//
	script := smt.NewScript(formula.NewProperty("goal", formula.NewAtomic("P"))).String()
	result, err := NewGini().Check(ctx, script)
	//
	if result != UNKNOWN || !errors.Is(err, context.Canceled) {
		t.Errorf("expected unknown after cancellation, got %s (%v)", result, err)
	}
}

func Test_Select_01(t *testing.T) {
	for _, name := range Backends {
		if _, err := Select(name, ""); err != nil {
			t.Errorf("backend %s: %s", name, err)
		}
	}
	//
	if _, err := Select("cvc5", ""); err == nil {
		t.Errorf("expected unknown backend error")
	}
}

func Test_ParseZ3Output_01(t *testing.T) {
	checkZ3Output(t, "unsat\n", UNSAT, true)
	checkZ3Output(t, "sat\n(model)\n", SAT, true)
	checkZ3Output(t, "timeout\n", UNKNOWN, true)
	checkZ3Output(t, "(error \"line 1 column 2: unknown constant y\")\n", UNKNOWN, false)
}

// ===================================================================
// Test Helpers
// ===================================================================

// Backend which always reports a fixed outcome.
type fixedBackend struct {
	result Result
	err    error
	block  bool
	calls  int
}

func (p *fixedBackend) Name() string    { return "fixed" }
func (p *fixedBackend) Available() bool { return true }

func (p *fixedBackend) Check(ctx context.Context, _ string) (Result, error) {
	p.calls++
	//
	if p.block {
		<-ctx.Done()
		return UNKNOWN, ctx.Err()
	}
	//
	return p.result, p.err
}

func checkVerdict(t *testing.T, iface *Interface, script string, expected verdict.Kind) {
	t.Helper()
	//
	v, err := iface.Verify(context.Background(), script)
	//
	if err != nil {
		t.Errorf("unexpected error %s", err)
	} else if v.Kind() != expected {
		t.Errorf("expected %s, got %s", expected, v)
	}
}

func checkStats(t *testing.T, iface *Interface, expected Stats) {
	t.Helper()
	//
	if diff := cmp.Diff(expected, iface.Stats()); diff != "" {
		t.Errorf("unexpected stats (-want +got):\n%s", diff)
	}
}

func checkGini(t *testing.T, f formula.Formula, expected verdict.Kind) {
	t.Helper()
	//
	script := smt.NewScript(formula.NewProperty("goal", f)).String()
	checkVerdict(t, New(NewGini(), DefaultConfig()), script, expected)
}

func checkZ3Output(t *testing.T, out string, expected Result, ok bool) {
	t.Helper()
	//
	if result, valid := parseZ3Output(out); result != expected || valid != ok {
		t.Errorf("output %q: expected %s/%t, got %s/%t", out, expected, ok, result, valid)
	}
}
