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
package verify

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
	"github.com/sravinet/aisp-open-core-sub005/pkg/prover"
	"github.com/sravinet/aisp-open-core-sub005/pkg/smt/solver"
	"github.com/sravinet/aisp-open-core-sub005/pkg/verdict"
)

func Test_Orchestrator_01(t *testing.T) {
	// Three proven and two unknown
	o := New(testEngine("P", "Q", "R"), nil, testConfig(DIRECT_PROOF))
	result := o.VerifyAll(context.Background(), testTasks("P", "Q", "R", "S", "T"))
	//
	checkStatus(t, result, PARTIALLY_VERIFIED, 3, 5)
	checkFailures(t, result, Failure{"S", PROOF_FAILED, ""}, Failure{"T", PROOF_FAILED, ""})
	//
	expected := MethodStats{Attempts: 5, Successes: 3}
	actual := result.Statistics.Methods[DIRECT_PROOF]
	actual.TotalTime = 0
	//
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("unexpected method stats (-want +got):\n%s", diff)
	} else if result.Statistics.Verified != 3 || result.Statistics.Unknown != 2 {
		t.Errorf("unexpected statistics %+v", result.Statistics)
	}
}

func Test_Orchestrator_02(t *testing.T) {
	config := testConfig(AUTOMATED_PROOF)
	config.Parallel = false
	o := New(testEngine("P", "Q"), nil, config)
	result := o.VerifyAll(context.Background(), testTasks("P", "Q"))
	//
	checkStatus(t, result, VERIFIED, 2, 2)
	checkFailures(t, result)
}

func Test_Orchestrator_03(t *testing.T) {
	// Counterexamples from the solver
	var (
		p, q  = formula.NewAtomic("P"), formula.NewAtomic("Q")
		valid = formula.MustDisjunction(p, formula.NewNegation(p))
		iface = solver.New(solver.NewGini(), solver.DefaultConfig())
		o     = New(nil, iface, testConfig(SMT_SOLVER))
	)
	//
	result := o.VerifyAll(context.Background(), []Task{
		NewTask(formula.NewProperty("valid", valid)),
		NewTask(formula.NewProperty("invalid", formula.NewImplication(p, q))),
	})
	//
	checkStatus(t, result, PARTIALLY_VERIFIED, 1, 2)
	checkFailures(t, result, Failure{"invalid", COUNTEREXAMPLE, ""})
}

func Test_Orchestrator_04(t *testing.T) {
	// Unknown falls through to the next method
	o := New(testEngine("P"), solver.New(solver.Disabled{}, solver.DefaultConfig()),
		testConfig(SMT_SOLVER, AUTOMATED_PROOF))
	result := o.VerifyAll(context.Background(), testTasks("P"))
	//
	checkStatus(t, result, VERIFIED, 1, 1)
	//
	if r := result.Properties[0]; len(r.Attempts) != 2 || r.Method != AUTOMATED_PROOF {
		t.Errorf("unexpected attempts %v", r.Attempts)
	}
}

func Test_Orchestrator_05(t *testing.T) {
	// A required solver which is missing is an error, though every property
	// is still reported.
	config := testConfig(SMT_SOLVER)
	config.RequireSolver = true
	o := New(nil, nil, config)
	result := o.VerifyAll(context.Background(), testTasks("P", "Q"))
	//
	checkStatus(t, result, ERROR, 0, 2)
	//
	if len(result.Properties) != 2 {
		t.Errorf("expected two properties, got %d", len(result.Properties))
	}
	//
	for _, r := range result.Properties {
		if r.Verdict.Kind() != verdict.ERROR {
			t.Errorf("%s: expected error verdict, got %s", r.Name, r.Verdict)
		}
	}
}

func Test_Orchestrator_06(t *testing.T) {
	o := New(testEngine(), nil, DefaultConfig())
	checkStatus(t, o.VerifyAll(context.Background(), nil), ERROR, 0, 0)
}

func Test_Orchestrator_07(t *testing.T) {
	// Decided verdicts are cached between batches
	o := New(testEngine("P"), nil, testConfig(DIRECT_PROOF))
	o.VerifyAll(context.Background(), testTasks("P", "Q"))
	result := o.VerifyAll(context.Background(), testTasks("P", "Q"))
	//
	checkStatus(t, result, PARTIALLY_VERIFIED, 1, 2)
	//
	if !result.Properties[0].Attempts[0].Cached {
		t.Errorf("expected cached verdict for P")
	} else if result.Properties[1].Attempts[0].Cached {
		t.Errorf("unexpected cached verdict for Q")
	}
	//
	if diff := cmp.Diff(CacheStats{Hits: 1, Misses: 3, Size: 1}, result.Statistics.Cache); diff != "" {
		t.Errorf("unexpected cache stats (-want +got):\n%s", diff)
	}
}

func Test_Orchestrator_08(t *testing.T) {
	// Nothing runs once the batch deadline has passed
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	//
	o := New(testEngine("P"), nil, testConfig(DIRECT_PROOF))
	result := o.VerifyAll(ctx, testTasks("P", "Q"))
	//
	checkStatus(t, result, INCOMPLETE, 0, 2)
	checkFailures(t, result, Failure{"P", TIMEOUT, ""}, Failure{"Q", TIMEOUT, ""})
}

func Test_Orchestrator_09(t *testing.T) {
	// Hypotheses are passed to proof search
	var (
		p, q = formula.NewAtomic("P"), formula.NewAtomic("Q")
		task = NewTask(formula.NewProperty("q", q), formula.NewProperty("p", p),
			formula.NewProperty("pq", formula.NewImplication(p, q)))
		o = New(testEngine(), nil, testConfig(PROOF_BY_CONTRADICTION))
	)
	//
	checkStatus(t, o.VerifyAll(context.Background(), []Task{task}), VERIFIED, 1, 1)
}

func Test_Orchestrator_10(t *testing.T) {
	// The batch deadline passing whilst a task is running leaves the batch
	// incomplete, even though every task started.
	config := testConfig(SMT_SOLVER)
	config.TotalTimeout = 50 * time.Millisecond
	//
	iface := solver.New(blockingBackend{}, solver.Config{Timeout: time.Minute})
	o := New(testEngine(), iface, config)
	result := o.VerifyAll(context.Background(), testTasks("P"))
	//
	checkStatus(t, result, INCOMPLETE, 0, 1)
	checkFailures(t, result, Failure{"P", TIMEOUT, ""})
}

func Test_Orchestrator_11(t *testing.T) {
	// A task timing out on its own budget is a failure
	config := testConfig(SMT_SOLVER)
	config.PerPropertyTimeout = 50 * time.Millisecond
	//
	iface := solver.New(blockingBackend{}, solver.Config{Timeout: time.Minute})
	o := New(testEngine(), iface, config)
	result := o.VerifyAll(context.Background(), testTasks("P"))
	//
	checkStatus(t, result, FAILED, 0, 1)
	checkFailures(t, result, Failure{"P", TIMEOUT, ""})
}

func Test_Method_01(t *testing.T) {
	for _, m := range Methods {
		if parsed, err := ParseMethod(m.String()); err != nil || parsed != m {
			t.Errorf("failed to round trip %s", m)
		}
	}
	//
	if _, err := ParseMethods([]string{"smt", "oracle"}); err == nil {
		t.Errorf("expected unknown method error")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

// Backend which never answers before its context is done.
type blockingBackend struct{}

func (blockingBackend) Name() string    { return "blocking" }
func (blockingBackend) Available() bool { return true }

func (blockingBackend) Check(ctx context.Context, _ string) (solver.Result, error) {
	<-ctx.Done()
	return solver.UNKNOWN, ctx.Err()
}

// Engine with one axiom per named atom.
func testEngine(atoms ...string) *prover.Engine {
	var axioms []prover.Axiom
	//
	for _, name := range atoms {
		axioms = append(axioms, prover.NewAxiom(name, formula.NewAtomic(name)))
	}
	//
	return prover.NewEngine(axioms, nil, prover.DefaultSearchConfig())
}

// One task per named atom, using the default methods.
func testTasks(atoms ...string) []Task {
	var tasks []Task
	//
	for _, name := range atoms {
		tasks = append(tasks, NewTask(formula.NewProperty(name, formula.NewAtomic(name))))
	}
	//
	return tasks
}

func testConfig(methods ...Method) Config {
	config := DefaultConfig()
	config.Methods = methods
	config.Workers = 4
	//
	return config
}

func checkStatus(t *testing.T, result Result, kind StatusKind, verified uint, total uint) {
	t.Helper()
	//
	if s := result.Status; s.Kind != kind || s.Verified != verified || s.Total != total {
		t.Errorf("expected %s with %d/%d verified, got %s (%d/%d)", kind, verified, total, s, s.Verified, s.Total)
	}
}

func checkFailures(t *testing.T, result Result, expected ...Failure) {
	t.Helper()
	//
	if diff := cmp.Diff(expected, result.Status.Failures); diff != "" {
		t.Errorf("unexpected failures (-want +got):\n%s", diff)
	}
}
