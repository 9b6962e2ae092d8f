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
package property

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
	"github.com/sravinet/aisp-open-core-sub005/pkg/util/source"
)

var (
	x   = formula.NewVariable("x", "")
	one = formula.NewConstant("1", "Int")
)

func Test_Parser_01(t *testing.T) {
	checkProperty(t, "(property p (=> (P x) (not (Q x 1))))",
		formula.NewImplication(formula.NewAtomic("P", x), formula.NewNegation(formula.NewAtomic("Q", x, one))))
}

func Test_Parser_02(t *testing.T) {
	// Connectives
	p, q := formula.NewAtomic("P"), formula.NewAtomic("Q")
	checkProperty(t, "(property p (iff (and P Q) (or Q P)))",
		formula.NewBiconditional(formula.NewConjunction(p, q), formula.MustDisjunction(q, p)))
}

func Test_Parser_03(t *testing.T) {
	// Quantifiers, with optional sorts and domains
	var (
		s = formula.NewVariable("S", "")
		q = formula.Quantifier{Variable: "x", Type: "Int", Domain: s}
	)
	//
	checkProperty(t, "(property p (forall (x Int S) (>= x 0)))",
		formula.NewUniversal(q, formula.NewArithLessEqual(formula.NewConstant("0", "Int"), x)))
	checkProperty(t, "(property p (exists (x) (P x)))",
		formula.NewExistential(formula.NewQuantifier("x", ""), formula.NewAtomic("P", x)))
	checkProperty(t, "(property p (exists (x _ S) (P x)))",
		formula.NewExistential(formula.Quantifier{Variable: "x", Domain: s}, formula.NewAtomic("P", x)))
}

func Test_Parser_04(t *testing.T) {
	// Terms
	var (
		sum  = formula.NewArithmetic(formula.ADD, formula.NewArithmetic(formula.ADD, x, one), formula.NewConstant("2", "Int"))
		arr  = formula.NewArrayAccess(formula.NewVariable("a", ""), formula.NewConstant("0", "Int"))
		set  = formula.NewSet(one, formula.NewConstant("2", "Int"))
		str  = formula.NewConstant("s", "String")
		dec  = formula.NewConstant("1.5", "Real")
		y    = formula.NewVariable("y", "Real")
	)
	//
	checkProperty(t, "(property p (= (+ x 1 2) (f (select a 0) (set 1 2) \"s\" 1.5 (as y Real))))",
		formula.NewArithEqual(sum, formula.NewFunction("f", arr, set, str, dec, y)))
	checkProperty(t, "(property p (member x (set)))", formula.NewSetMembership(x, formula.NewSet()))
	checkProperty(t, "(property p (< x (- x 1)))",
		formula.NewNegation(formula.NewArithLessEqual(formula.NewArithmetic(formula.SUB, x, one), x)))
}

func Test_Parser_05(t *testing.T) {
	// Temporal operators and function applications
	p, q := formula.NewAtomic("P"), formula.NewAtomic("Q")
	checkProperty(t, "(property p (always (until P (eventually Q))))",
		formula.NewAlways(formula.NewUntil(p, formula.NewEventually(q))))
	checkProperty(t, "(property p (apply valid x 1))", formula.NewFunctionApplication("valid", x, one))
}

func Test_Parser_06(t *testing.T) {
	text := `
; declarations of every kind
(axiom socrates (Human socrates))
(axiom mortal (forall (x) (=> (Human x) (Mortal x))))
(rule mp (premises ?P (=> ?P ?Q)) (conclusion ?Q))
(hypothesis h (Greek socrates))
(property goal (Mortal socrates))
`
	theory := checkTheory(t, text)
	//
	if diff := cmp.Diff([]string{"socrates", "mortal", "mp", "h", "goal"}, theory.Names()); diff != "" {
		t.Errorf("unexpected declarations (-want +got):\n%s", diff)
	}
	//
	var (
		p, q = formula.NewHole("P"), formula.NewHole("Q")
		rule = theory.Rules[0]
	)
	//
	if len(rule.Premises) != 2 || !formula.Equal(rule.Premises[1], formula.NewImplication(p, q)) ||
		!formula.Equal(rule.Conclusion, q) {
		t.Errorf("unexpected rule %s", rule)
	}
}

func Test_Parser_07(t *testing.T) {
	checkErrors(t, "(property p)", "malformed declaration")
	checkErrors(t, "(property p (or))", "expected at least one argument for \"or\"")
	checkErrors(t, "(property p (not P Q))", "expected one argument for \"not\"")
	checkErrors(t, "(property p (forall x (P x)))", "malformed binder")
	checkErrors(t, "(property p (P #))", "unknown symbol \"#\"")
	checkErrors(t, "(property p (select a))", "expected (select array index)")
	checkErrors(t, "property", "unexpected or malformed declaration")
	checkErrors(t, "(rule r (P) (conclusion Q))", "expected (premises ...)")
}

func Test_Parser_08(t *testing.T) {
	// Errors are accumulated across declarations
	checkErrors(t, "(property p (P #))\n(property p Q)\n(axiom a (and))",
		"unknown symbol \"#\"", "duplicate declaration \"p\"", "expected at least one argument for \"and\"")
}

func Test_Parser_09(t *testing.T) {
	// Errors report the enclosing line
	_, errs := ParseSourceFile(source.NewSourceFile("test", []byte("(axiom a P)\n\n(property p (not))")))
	//
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %d", len(errs))
	} else if line := errs[0].FirstEnclosingLine(); line.Number() != 3 {
		t.Errorf("expected error on line 3, got line %d", line.Number())
	}
}

func Test_Parser_10(t *testing.T) {
	// Names are unique across files
	files := []source.File{
		*source.NewSourceFile("a", []byte("(axiom a P)")),
		*source.NewSourceFile("b", []byte("(property a P)")),
	}
	//
	if _, errs := ParseSourceFiles(files); len(errs) != 1 || errs[0].SourceFile().Filename() != "b" {
		t.Errorf("expected duplicate declaration in b, got %v", errs)
	}
}

func Test_Parser_11(t *testing.T) {
	// Malformed S-Expressions
	if _, errs := ParseSourceFile(source.NewSourceFile("test", []byte("(property p (P x)"))); len(errs) != 1 {
		t.Errorf("expected one error, got %v", errs)
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func checkTheory(t *testing.T, text string) Theory {
	t.Helper()
	//
	theory, errs := ParseSourceFile(source.NewSourceFile("test", []byte(text)))
	//
	for _, err := range errs {
		t.Errorf("unexpected error: %s", err.Message())
	}
	//
	return theory
}

func checkProperty(t *testing.T, text string, expected formula.Formula) {
	t.Helper()
	//
	theory := checkTheory(t, text)
	//
	if len(theory.Properties) != 1 {
		t.Fatalf("expected one property, got %d", len(theory.Properties))
	} else if actual := theory.Properties[0].Structure; !formula.Equal(expected, actual) {
		t.Errorf("expected %s, got %s", expected, actual)
	}
}

func checkErrors(t *testing.T, text string, expected ...string) {
	t.Helper()
	//
	var (
		_, errs = ParseSourceFile(source.NewSourceFile("test", []byte(text)))
		actual  []string
	)
	//
	for _, err := range errs {
		actual = append(actual, err.Message())
	}
	//
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("unexpected errors for %s (-want +got):\n%s", text, diff)
	}
}
