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
package sexp

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/sravinet/aisp-open-core-sub005/pkg/util/source"
)

func TestSexp_0(t *testing.T) {
	CheckOk(t, nil, "")
}

func TestSexp_1(t *testing.T) {
	e1 := List{nil}
	CheckOk(t, &e1, "()")
}

func TestSexp_2(t *testing.T) {
	e1 := List{nil}
	e2 := List{[]SExp{&e1}}
	CheckOk(t, &e2, "(())")
}

func TestSexp_3(t *testing.T) {
	e1 := Symbol{"symbol"}
	CheckOk(t, &e1, "symbol")
}

func TestSexp_4(t *testing.T) {
	e1 := Symbol{"0.0"}
	CheckOk(t, &e1, "0.0")
}

func TestSexp_5(t *testing.T) {
	e1 := Symbol{"check-sat"}
	e2 := List{[]SExp{&e1}}
	CheckOk(t, &e2, "(check-sat)")
}

func TestSexp_6(t *testing.T) {
	e1 := Symbol{">"}
	e2 := Symbol{"x"}
	e3 := Symbol{"0.0"}
	e4 := List{[]SExp{&e1, &e2, &e3}}
	e5 := Symbol{"assert"}
	e6 := List{[]SExp{&e5, &e4}}
	CheckOk(t, &e6, "(assert (> x 0.0))")
}

func TestSexp_7(t *testing.T) {
	e1 := Symbol{"P"}
	e2 := List{[]SExp{&e1}}
	CheckOk(t, &e2, "(P) ; trailing comment")
}

func TestSexp_8(t *testing.T) {
	e1 := Symbol{"name"}
	e2 := Symbol{"\"hello world\""}
	e3 := List{[]SExp{&e1, &e2}}
	CheckOk(t, &e3, "(name \"hello world\")")
}

func TestSexp_9(t *testing.T) {
	e1 := Symbol{"x"}
	e2 := List{[]SExp{&e1}}
	CheckOk(t, &e2, ";; header\n(\n  x ; inline\n)")
}

func TestSexp_10(t *testing.T) {
	terms, _, err := ParseString("test", "(declare-const x Int)\n(assert (> x 0))\n(check-sat)")
	//
	if err != nil {
		t.Fatal(err)
	} else if len(terms) != 3 {
		t.Fatalf("expected 3 terms, got %d", len(terms))
	} else if h := terms[2].AsList().Head(); h != "check-sat" {
		t.Errorf("expected check-sat, got %s", h)
	}
}

func TestSexp_11(t *testing.T) {
	e1 := Symbol{"forall"}
	e2 := Symbol{"x"}
	e3 := Symbol{"Int"}
	e4 := List{[]SExp{&e2, &e3}}
	e5 := List{[]SExp{&e4}}
	e6 := Symbol{"true"}
	e7 := List{[]SExp{&e1, &e5, &e6}}
	//
	if s := e7.String(); s != "(forall ((x Int)) true)" {
		t.Errorf("unexpected rendering %s", s)
	}
}

func TestSexp_12(t *testing.T) {
	// Doubled quotes are escaped within strings, and bars quote symbols
	terms, _, err := ParseString("test", "(f \"a\"\"b\" |my (value| c)")
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	l := terms[0].AsList()
	//
	if l.Len() != 4 {
		t.Fatalf("expected 4 elements, got %d", l.Len())
	} else if s := l.Get(1).String(); s != "\"a\"\"b\"" {
		t.Errorf("unexpected string %s", s)
	} else if s := l.Get(2).String(); s != "|my (value|" {
		t.Errorf("unexpected symbol %s", s)
	}
}

// ============================================================================
// Negative Tests
// ============================================================================

func TestSexp_Err1(t *testing.T) {
	CheckErr(t, ")")
}

func TestSexp_Err2(t *testing.T) {
	CheckErr(t, "())")
}

func TestSexp_Err3(t *testing.T) {
	CheckErr(t, "(string))")
}

func TestSexp_Err4(t *testing.T) {
	CheckErr(t, "(unclosed")
}

func TestSexp_Err5(t *testing.T) {
	CheckErr(t, "(name \"unterminated)")
}

func TestSexp_Err6(t *testing.T) {
	CheckErr(t, "(name |unterminated)")
}

// ============================================================================
// Translator
// ============================================================================

// Simple integer expressions used to exercise the translator.
type expr interface{ eval() int }

type num struct{ value int }

type add struct{ args []expr }

func (p *num) eval() int { return p.value }

func (p *add) eval() int {
	sum := 0
	for _, a := range p.args {
		sum += a.eval()
	}
	//
	return sum
}

func newExprTranslator(input string) (*Translator[expr], SExp) {
	srcfile := source.NewSourceFile("test", []byte(input))
	term, srcmap, err := Parse(srcfile)
	//
	if err != nil {
		panic(err)
	}
	//
	p := NewTranslator[expr](srcfile, srcmap)
	p.AddSymbolRule(func(s string) (expr, bool, error) {
		var n int
		if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
			return nil, false, nil
		}
		//
		return &num{n}, true, nil
	})
	p.AddRecursiveListRule("+", func(_ string, args []expr) (expr, error) {
		if len(args) == 0 {
			return nil, errors.New("empty sum")
		}
		//
		return &add{args}, nil
	})
	//
	return p, term
}

func TestTranslator_01(t *testing.T) {
	p, term := newExprTranslator("(+ 1 (+ 2 3) 4)")
	e, errs := p.Translate(term)
	//
	if len(errs) != 0 {
		t.Fatal(errs[0].Error())
	} else if e.eval() != 10 {
		t.Errorf("expected 10, got %d", e.eval())
	} else if !p.SourceMap().Has(e) {
		t.Errorf("translated term missing from source map")
	}
}

func TestTranslator_02(t *testing.T) {
	p, term := newExprTranslator("(+ 1 (+) x)")
	_, errs := p.Translate(term)
	// Both the empty sum and the unknown symbol are reported.
	if len(errs) != 2 {
		t.Errorf("expected 2 errors, got %d", len(errs))
	}
}

func TestTranslator_03(t *testing.T) {
	p, term := newExprTranslator("(* 1 2)")
	//
	if _, errs := p.Translate(term); len(errs) != 1 {
		t.Errorf("expected unknown list error")
	}
}

// ============================================================================
// Helpers
// ============================================================================

func CheckOk(t *testing.T, sexp1 SExp, input string) {
	sexp2, _, err := Parse(source.NewSourceFile("test", []byte(input)))
	//
	if err != nil {
		t.Error(err)
	} else if !reflect.DeepEqual(sexp1, sexp2) {
		t.Errorf("%v != %v", sexp1, sexp2)
	}
}

func CheckErr(t *testing.T, input string) {
	_, _, err := Parse(source.NewSourceFile("test", []byte(input)))
	//
	if err == nil {
		t.Errorf("input should not have parsed!")
	}
}
