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
package smt

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
)

func Test_Compile_01(t *testing.T) {
	checkFormula(t, formula.NewAtomic("P"), "(P)")
}

func Test_Compile_02(t *testing.T) {
	f := formula.NewImplication(formula.NewAtomic("P", formula.NewVariable("x", "")),
		formula.NewNegation(formula.NewAtomic("Q", formula.NewConstant("1", "Int"))))
	checkFormula(t, f, "(=> (P x) (not (Q 1)))")
}

func Test_Compile_03(t *testing.T) {
	f := formula.NewConjunction(formula.NewAtomic("A"),
		formula.MustDisjunction(formula.NewAtomic("B"), formula.NewAtomic("C"), formula.NewAtomic("D")))
	checkFormula(t, f, "(and (A) (or (B) (C) (D)))")
}

func Test_Compile_04(t *testing.T) {
	f := formula.NewBiconditional(formula.NewAtomic("A"), formula.NewAtomic("B"))
	checkFormula(t, f, "(= (A) (B))")
}

func Test_Compile_05(t *testing.T) {
	// Sort defaults to Int
	f := formula.NewUniversal(formula.NewQuantifier("x", ""), formula.NewAtomic("P", formula.NewVariable("x", "")))
	checkFormula(t, f, "(forall ((x Int)) (P x))")
	//
	g := formula.NewExistential(formula.NewQuantifier("y", "ℝ"), formula.NewAtomic("P", formula.NewVariable("y", "")))
	checkFormula(t, g, "(exists ((y Real)) (P y))")
}

func Test_Compile_06(t *testing.T) {
	q := formula.Quantifier{Variable: "x", Type: "Int", Domain: formula.NewVariable("S", "")}
	checkFormula(t, formula.NewUniversal(q, formula.NewAtomic("P", formula.NewVariable("x", ""))),
		"(forall ((x Int)) (=> (member x S) (P x)))")
	checkFormula(t, formula.NewExistential(q, formula.NewAtomic("P", formula.NewVariable("x", ""))),
		"(exists ((x Int)) (and (member x S) (P x)))")
}

func Test_Compile_07(t *testing.T) {
	checkFormula(t, formula.NewAlways(formula.NewAtomic("P")), "(forall ((t_0 Int)) (=> (>= t_0 0) (P)))")
	checkFormula(t, formula.NewEventually(formula.NewAtomic("P")), "(exists ((t_0 Int)) (and (>= t_0 0) (P)))")
	checkFormula(t, formula.NewUntil(formula.NewAtomic("A"), formula.NewAtomic("B")),
		"(exists ((t_0 Int)) (and (>= t_0 0) (B) (forall ((s_0 Int)) (=> (and (>= s_0 0) (< s_0 t_0)) (A)))))")
}

func Test_Compile_08(t *testing.T) {
	// Fresh variables are never reused within a compiler instance
	c := NewCompiler()
	f := formula.NewConjunction(formula.NewAlways(formula.NewAtomic("P")), formula.NewEventually(formula.NewAtomic("Q")),
		formula.NewUntil(formula.NewAtomic("A"), formula.NewAtomic("B")))
	text := c.CompileFormula(f)
	//
	for _, name := range []string{"t_0", "t_1", "t_2", "s_0"} {
		if strings.Count(text, "(("+name+" Int))") != 1 {
			t.Errorf("expected exactly one binding of %s in %s", name, text)
		}
	}
	// Counter continues across calls, until reset
	if text := c.CompileFormula(formula.NewAlways(formula.NewAtomic("P"))); !strings.Contains(text, "t_3") {
		t.Errorf("expected t_3 in %s", text)
	}
	//
	c.Reset()
	//
	if text := c.CompileFormula(formula.NewAlways(formula.NewAtomic("P"))); !strings.Contains(text, "t_0") {
		t.Errorf("expected t_0 in %s", text)
	}
}

func Test_Compile_09(t *testing.T) {
	checkTerm(t, formula.NewConstant("42", "ℕ"), "42")
	checkTerm(t, formula.NewConstant("1.5", "ℝ"), "1.5")
	checkTerm(t, formula.NewConstant("true", "Bool"), "true")
	checkTerm(t, formula.NewConstant("yes", "𝔹"), "false")
	checkTerm(t, formula.NewConstant("hello", "String"), "\"hello\"")
	checkTerm(t, formula.NewConstant("\"hi\"", "𝕊"), "\"hi\"")
	checkTerm(t, formula.NewConstant("alice", "Person"), "alice")
	checkTerm(t, formula.NewConstant("a\"b", "String"), "\"a\"\"b\"")
	checkTerm(t, formula.NewConstant("my value", "Tag"), "|my value|")
	checkTerm(t, formula.NewConstant("a|(b", "Tag"), "|a(b|")
}

func Test_Compile_10(t *testing.T) {
	x, y := formula.NewVariable("x", ""), formula.NewVariable("y", "")
	one, two := formula.NewConstant("1", "Int"), formula.NewConstant("2", "Int")
	//
	checkTerm(t, formula.NewFunction("f"), "f")
	checkTerm(t, formula.NewFunction("f", x, two), "(f x 2)")
	checkTerm(t, formula.NewArithmetic(formula.ADD, x, one), "(+ x 1)")
	checkTerm(t, formula.NewArithmetic(formula.DIV, x, y), "(div x y)")
	checkTerm(t, formula.NewArithmetic(formula.MOD, x, y), "(mod x y)")
	checkTerm(t, formula.NewArithmetic(formula.POW, x, y), "(^ x y)")
	checkTerm(t, formula.NewSet(one, two), "(set 1 2)")
	checkTerm(t, formula.NewArrayAccess(formula.NewVariable("a", ""), formula.NewConstant("0", "Int")), "(select a 0)")
	checkTerm(t, formula.NewHole("x"), "?x")
}

func Test_Compile_11(t *testing.T) {
	f := formula.NewConjunction(
		formula.NewArithEqual(formula.NewVariable("x", ""), formula.NewVariable("y", "")),
		formula.NewArithLessEqual(formula.NewVariable("x", ""), formula.NewConstant("3", "Int")),
		formula.NewSetMembership(formula.NewVariable("x", ""), formula.NewVariable("S", "")),
		formula.NewFunctionApplication("valid", formula.NewVariable("x", "")))
	checkFormula(t, f, "(and (= x y) (<= x 3) (member x S) (valid x))")
}

func Test_Script_01(t *testing.T) {
	goal := formula.NewProperty("p", formula.NewAtomic("P", formula.NewVariable("x", "Real")))
	hyp := formula.NewProperty("h", formula.NewAtomic("Q"))
	text := NewScript(goal, hyp).String()
	expected := []string{
		";; Property: p",
		";; Formula: P(x)",
		"(declare-const x Real)",
		"(declare-fun Q () Bool)",
		"(declare-fun P (Real) Bool)",
		"(assert (Q))",
		"(assert (not (P x)))",
		"(check-sat)",
		"",
	}
	//
	if diff := cmp.Diff(expected, strings.Split(text, "\n")); diff != "" {
		t.Errorf("unexpected script (-want +got):\n%s", diff)
	}
	//
	checkValid(t, text)
}

func Test_Script_02(t *testing.T) {
	goal := formula.NewProperty("p", formula.NewAtomic("P"))
	text := NewScript(goal).WithModel().String()
	//
	if !strings.HasSuffix(text, "(check-sat)\n(get-model)\n") {
		t.Errorf("missing get-model in %s", text)
	}
	//
	checkValid(t, text)
}

func Test_Script_03(t *testing.T) {
	// Custom sorts and symbolic constants are declared
	f := formula.NewUniversal(formula.NewQuantifier("p", "Person"),
		formula.NewAtomic("Knows", formula.NewVariable("p", ""), formula.NewConstant("alice", "Person")))
	text := NewScript(formula.NewProperty("p", f)).String()
	//
	for _, decl := range []string{"(declare-sort Person 0)", "(declare-const alice Person)",
		"(declare-fun Knows (Person Person) Bool)"} {
		if !strings.Contains(text, decl) {
			t.Errorf("missing %s in:\n%s", decl, text)
		}
	}
	//
	checkValid(t, text)
}

func Test_Script_04(t *testing.T) {
	// Every kind of formula and term compiles to valid text
	x := formula.NewVariable("x", "")
	y := formula.NewVariable("y", "ℕ")
	body := formula.NewConjunction(
		formula.NewAtomic("P", x),
		formula.NewNegation(formula.NewAtomic("Q")),
		formula.MustDisjunction(formula.NewAtomic("R", y), formula.NewHole("A")),
		formula.NewImplication(formula.NewAtomic("S"),
			formula.NewBiconditional(formula.NewAtomic("T"), formula.NewAtomic("U"))),
		formula.NewAlways(formula.NewEventually(formula.NewAtomic("V", x))),
		formula.NewUntil(formula.NewAtomic("W"), formula.NewAtomic("Z")),
		formula.NewArithEqual(formula.NewArithmetic(formula.MUL, x, y),
			formula.NewFunction("f", x, formula.NewConstant("2", "Int"))),
		formula.NewArithLessEqual(formula.NewArithmetic(formula.POW, x, formula.NewConstant("2", "Int")),
			formula.NewArithmetic(formula.SUB, y, formula.NewHole("k"))),
		formula.NewSetMembership(x, formula.NewSet(formula.NewConstant("1", "Int"), formula.NewConstant("2", "Int"))),
		formula.NewArithEqual(formula.NewArrayAccess(formula.NewVariable("arr", ""), x), formula.NewConstant("0.5", "Real")),
		formula.NewFunctionApplication("valid", formula.NewConstant("ok", "String"), formula.NewConstant("true", "Bool")),
		formula.NewFunctionApplication("says", formula.NewConstant("a\"b", "String"),
			formula.NewConstant("my value", "Tag")),
		formula.NewExistential(formula.Quantifier{Variable: "z", Domain: formula.NewVariable("D", "")},
			formula.NewAtomic("P", formula.NewVariable("z", ""))),
	)
	f := formula.NewUniversal(formula.NewQuantifier("x", "Int"), body)
	//
	checkValid(t, NewScript(formula.NewProperty("all", f)).String())
}

// ===================================================================
// Test Helpers
// ===================================================================

func checkFormula(t *testing.T, f formula.Formula, expected string) {
	t.Helper()
	//
	if actual := NewCompiler().CompileFormula(f); actual != expected {
		t.Errorf("expected %s, got %s", expected, actual)
	}
}

func checkTerm(t *testing.T, term formula.Term, expected string) {
	t.Helper()
	//
	if actual := NewCompiler().CompileTerm(term); actual != expected {
		t.Errorf("expected %s, got %s", expected, actual)
	}
}

func checkValid(t *testing.T, text string) {
	t.Helper()
	//
	if err := Validate(text); err != nil {
		t.Errorf("validation failed (%s) for:\n%s", err, text)
	}
}
