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
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sravinet/aisp-open-core-sub005/pkg/prover"
)

func Test_Settings_01(t *testing.T) {
	// Absent fields retain their defaults
	settings := checkSettings(t, "search:\n  max_depth: 10\n")
	expected := DefaultSettings()
	expected.Search.MaxDepth = 10
	//
	if diff := cmp.Diff(expected, settings); diff != "" {
		t.Errorf("unexpected settings (-want +got):\n%s", diff)
	}
}

func Test_Settings_02(t *testing.T) {
	settings := checkSettings(t, `
verification:
  per_property_timeout: 5s
  total_timeout: 1m
  methods: [direct, contradiction]
  parallel: false
  workers: 2
  require_solver: true
  cache:
    enabled: false
    ttl: 10m
search:
  timeout: 2s
  max_steps: 500
  weights:
    complexity: 0.5
    axiom_priority: 2.0
    rule_priority: 1.0
    goal_distance: 3.0
solver:
  backend: gini
  timeout: 250ms
`)
	//
	expected := DefaultSettings()
	v := &expected.Verification
	v.PerPropertyTimeout, v.TotalTimeout = 5*time.Second, time.Minute
	v.Methods = []Method{DIRECT_PROOF, PROOF_BY_CONTRADICTION}
	v.Parallel, v.Workers, v.RequireSolver = false, 2, true
	v.Cache.Enabled, v.Cache.TTL = false, 10*time.Minute
	expected.Search.Timeout, expected.Search.MaxSteps = 2*time.Second, 500
	expected.Search.Weights = prover.HeuristicWeights{Complexity: 0.5, AxiomPriority: 2.0, RulePriority: 1.0,
		GoalDistance: 3.0}
	expected.Solver.Timeout, expected.Solver.RequireSolver = 250*time.Millisecond, true
	expected.Backend = "gini"
	//
	if diff := cmp.Diff(expected, settings); diff != "" {
		t.Errorf("unexpected settings (-want +got):\n%s", diff)
	}
}

func Test_Settings_03(t *testing.T) {
	checkBadSettings(t, "verification:\n  total_timeout: forever\n")
}

func Test_Settings_04(t *testing.T) {
	checkBadSettings(t, "verification:\n  methods: [smt, oracle]\n")
}

func Test_Settings_05(t *testing.T) {
	checkBadSettings(t, "search:\n  depth: 10\n")
}

// ===================================================================
// Test Helpers
// ===================================================================

func checkSettings(t *testing.T, text string) Settings {
	t.Helper()
	//
	settings, err := ParseSettings([]byte(text))
	if err != nil {
		t.Fatal(err)
	}
	//
	return settings
}

func checkBadSettings(t *testing.T, text string) {
	t.Helper()
	//
	if _, err := ParseSettings([]byte(text)); err == nil {
		t.Errorf("expected error for:\n%s", text)
	}
}
