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
package cmd

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/sravinet/aisp-open-core-sub005/pkg/property"
	"github.com/sravinet/aisp-open-core-sub005/pkg/prover"
	"github.com/sravinet/aisp-open-core-sub005/pkg/util/source"
	"github.com/sravinet/aisp-open-core-sub005/pkg/verify"
)

const socrates = `
(axiom human (Human socrates))
(axiom mortal (forall (x) (=> (Human x) (Mortal x))))
(hypothesis greek (Greek socrates))
(property dies (Mortal socrates))
(property greek_or_not (or (Greek socrates) (not (Greek socrates))))
`

func Test_VerifierStack_01(t *testing.T) {
	stack := checkStack(t, socrates, true)
	// Standard axioms come first
	standard := prover.StandardAxiomSystem().Axioms()
	//
	if n := len(stack.Engine().Axioms()); n != len(standard)+2 {
		t.Errorf("expected %d axioms, got %d", len(standard)+2, n)
	}
	//
	tasks := stack.Tasks()
	//
	if len(tasks) != 2 || len(tasks[0].Hypotheses) != 1 || tasks[1].Name != "greek_or_not" {
		t.Errorf("unexpected tasks %v", tasks)
	}
}

func Test_VerifierStack_02(t *testing.T) {
	stack := checkStack(t, socrates, false)
	//
	if n := len(stack.Engine().Axioms()); n != 2 {
		t.Errorf("expected 2 axioms, got %d", n)
	}
	//
	result := stack.Orchestrator().VerifyAll(context.Background(), stack.Tasks())
	//
	if result.Status.Kind != verify.VERIFIED {
		t.Errorf("expected verified, got %s", result.Status)
	}
}

func Test_ExpandSourceFiles_01(t *testing.T) {
	dir := t.TempDir()
	//
	for _, name := range []string{"a.aisp", "b.txt", filepath.Join("sub", "c.aisp")} {
		filename := filepath.Join(dir, name)
		//
		if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
			t.Fatal(err)
		} else if err := os.WriteFile(filename, []byte("(property p P)"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	//
	filenames, err := expandSourceFiles([]string{dir})
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	slices.Sort(filenames)
	//
	if !slices.Equal(filenames, []string{filepath.Join(dir, "a.aisp"), filepath.Join(dir, "sub", "c.aisp")}) {
		t.Errorf("unexpected files %v", filenames)
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func checkStack(t *testing.T, text string, stdlib bool) VerifierStack {
	t.Helper()
	//
	theory, errs := property.ParseSourceFile(source.NewSourceFile("socrates.aisp", []byte(text)))
	//
	for _, err := range errs {
		t.Fatalf("unexpected error: %s", err.Message())
	}
	//
	settings := verify.DefaultSettings()
	settings.Backend = "gini"
	settings.Verification.Methods = []verify.Method{verify.SMT_SOLVER, verify.PROOF_BY_CONTRADICTION}
	//
	return NewVerifierStack().WithSettings(settings).WithStandardLibrary(stdlib).WithTheory(theory).Build()
}
