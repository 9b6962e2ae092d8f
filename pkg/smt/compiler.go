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
	"fmt"
	"strings"
	"unicode"

	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
	"github.com/sravinet/aisp-open-core-sub005/pkg/util/source/sexp"
)

// Compiler translates formulas and terms into SMT-LIB text.  Temporal
// operators have no native solver primitive, and are encoded using explicit
// quantification over freshly generated integer time variables.  Fresh names
// are never reused within a compiler instance, unless Reset is called.
type Compiler struct {
	// Next index to use for each fresh variable prefix.
	counters map[string]uint
}

// NewCompiler constructs a new compiler whose fresh variable counters are all
// zero.
func NewCompiler() *Compiler {
	return &Compiler{make(map[string]uint)}
}

// Reset clears the fresh variable counters of this compiler.  After a reset,
// previously generated names may be generated again.
func (p *Compiler) Reset() {
	p.counters = make(map[string]uint)
}

// CompileFormula translates a formula into SMT-LIB text.
func (p *Compiler) CompileFormula(f formula.Formula) string {
	return p.Formula(f).String()
}

// CompileTerm translates a term into SMT-LIB text.
func (p *Compiler) CompileTerm(t formula.Term) string {
	return p.Term(t).String()
}

// Formula translates a formula into an SMT-LIB S-Expression.
func (p *Compiler) Formula(f formula.Formula) sexp.SExp {
	switch f := f.(type) {
	case *formula.Atomic:
		return apply(f.Predicate, p.terms(f.Args)...)
	case *formula.Negation:
		return apply("not", p.Formula(f.Inner))
	case *formula.Conjunction:
		return apply("and", p.formulas(f.Conjuncts)...)
	case *formula.Disjunction:
		return apply("or", p.formulas(f.Disjuncts)...)
	case *formula.Implication:
		return apply("=>", p.Formula(f.Antecedent), p.Formula(f.Consequent))
	case *formula.Biconditional:
		return apply("=", p.Formula(f.Left), p.Formula(f.Right))
	case *formula.Universal:
		return p.quantified("forall", "=>", f.Quantifier, f.Body)
	case *formula.Existential:
		return p.quantified("exists", "and", f.Quantifier, f.Body)
	case *formula.Always:
		// forall ((t Int)) (=> (>= t 0) φ)
		t := p.fresh("t")
		return binder("forall", t, "Int", apply("=>", nonNegative(t), p.Formula(f.Inner)))
	case *formula.Eventually:
		// exists ((t Int)) (and (>= t 0) φ)
		t := p.fresh("t")
		return binder("exists", t, "Int", apply("and", nonNegative(t), p.Formula(f.Inner)))
	case *formula.Until:
		// exists ((t Int)) (and (>= t 0) φ (forall ((s Int)) (=> (and (>= s 0) (< s t)) ψ)))
		t := p.fresh("t")
		s := p.fresh("s")
		earlier := apply("and", nonNegative(s), apply("<", sexp.NewSymbol(s), sexp.NewSymbol(t)))
		left := binder("forall", s, "Int", apply("=>", earlier, p.Formula(f.Left)))
		//
		return binder("exists", t, "Int", apply("and", nonNegative(t), p.Formula(f.Right), left))
	case *formula.ArithEqual:
		return apply("=", p.Term(f.Left), p.Term(f.Right))
	case *formula.ArithLessEqual:
		return apply("<=", p.Term(f.Left), p.Term(f.Right))
	case *formula.SetMembership:
		return apply("member", p.Term(f.Element), p.Term(f.Set))
	case *formula.FunctionApplication:
		return apply(f.Function, p.terms(f.Args)...)
	case *formula.Hole:
		return sexp.NewSymbol(f.String())
	default:
		panic(fmt.Sprintf("unknown formula encountered (%T)", f))
	}
}

// Term translates a term into an SMT-LIB S-Expression.
func (p *Compiler) Term(t formula.Term) sexp.SExp {
	switch t := t.(type) {
	case *formula.Variable:
		return sexp.NewSymbol(t.Name)
	case *formula.Constant:
		return sexp.NewSymbol(constant(t))
	case *formula.Function:
		if len(t.Args) == 0 {
			return sexp.NewSymbol(t.Name)
		}
		//
		return apply(t.Name, p.terms(t.Args)...)
	case *formula.Arithmetic:
		return apply(arithmetic(t.Op), p.Term(t.Left), p.Term(t.Right))
	case *formula.Set:
		return apply("set", p.terms(t.Elements)...)
	case *formula.ArrayAccess:
		return apply("select", p.Term(t.Array), p.Term(t.Index))
	case *formula.Hole:
		return sexp.NewSymbol(t.String())
	default:
		panic(fmt.Sprintf("unknown term encountered (%T)", t))
	}
}

// Generate a fresh variable name for a given prefix, such as "t_0".
func (p *Compiler) fresh(prefix string) string {
	index := p.counters[prefix]
	p.counters[prefix] = index + 1
	//
	return fmt.Sprintf("%s_%d", prefix, index)
}

// Compile a quantified formula, where any domain restriction becomes a guard
// on the body.
func (p *Compiler) quantified(kind string, guard string, q formula.Quantifier, body formula.Formula) sexp.SExp {
	inner := p.Formula(body)
	//
	if q.Domain != nil {
		member := apply("member", sexp.NewSymbol(q.Variable), p.Term(q.Domain))
		inner = apply(guard, member, inner)
	}
	//
	return binder(kind, q.Variable, Sort(q.Type), inner)
}

func (p *Compiler) formulas(formulas []formula.Formula) []sexp.SExp {
	elements := make([]sexp.SExp, len(formulas))
	//
	for i, f := range formulas {
		elements[i] = p.Formula(f)
	}
	//
	return elements
}

func (p *Compiler) terms(terms []formula.Term) []sexp.SExp {
	elements := make([]sexp.SExp, len(terms))
	//
	for i, t := range terms {
		elements[i] = p.Term(t)
	}
	//
	return elements
}

// Sort determines the SMT-LIB sort corresponding to a given type annotation.
// A missing annotation defaults to Int, and unrecognised annotations are
// treated as (uninterpreted) sort names.
func Sort(typ string) string {
	switch typ {
	case "", "Int", "ℤ", "ℕ":
		return "Int"
	case "Real", "ℝ":
		return "Real"
	case "Bool", "𝔹":
		return "Bool"
	case "String", "𝕊":
		return "String"
	}
	//
	return typ
}

// IsBuiltinSort checks whether a given sort is predefined by SMT-LIB, and
// hence requires no declaration.
func IsBuiltinSort(sort string) bool {
	switch sort {
	case "Int", "Real", "Bool", "String":
		return true
	}
	//
	return false
}

// Render a constant according to its type tag.  Unrecognised type tags pass
// the literal through unchanged, unless it is not a valid simple symbol, in
// which case it becomes a quoted symbol.
func constant(c *formula.Constant) string {
	switch c.Type {
	case "Bool", "𝔹":
		if c.Value == "true" {
			return "true"
		}
		//
		return "false"
	case "String", "𝕊":
		if isStringLiteral(c.Value) {
			return c.Value
		}
		// Quotes are escaped by doubling them
		return fmt.Sprintf("\"%s\"", strings.ReplaceAll(c.Value, "\"", "\"\""))
	}
	// Int, ℤ, ℕ, Real, ℝ and anything else
	if c.Value == "" || strings.ContainsFunc(c.Value, isReserved) {
		return quoteSymbol(c.Value)
	}
	//
	return c.Value
}

// Check whether some text is already a string literal, where every quote
// within it is escaped.
func isStringLiteral(text string) bool {
	n := len(text)
	//
	return n >= 2 && text[0] == '"' && text[n-1] == '"' &&
		!strings.Contains(strings.ReplaceAll(text[1:n-1], "\"\"", ""), "\"")
}

// Characters which cannot appear in a simple symbol.
func isReserved(c rune) bool {
	return unicode.IsSpace(c) || strings.ContainsRune("()\";|\\", c)
}

// Construct a quoted symbol, such as |my value|.  Neither '|' nor '\' may
// appear within a quoted symbol, hence both are dropped.
func quoteSymbol(text string) string {
	return "|" + strings.Map(func(c rune) rune {
		if c == '|' || c == '\\' {
			return -1
		}
		//
		return c
	}, text) + "|"
}

func arithmetic(op formula.ArithOp) string {
	switch op {
	case formula.ADD:
		return "+"
	case formula.SUB:
		return "-"
	case formula.MUL:
		return "*"
	case formula.DIV:
		return "div"
	case formula.MOD:
		return "mod"
	case formula.POW:
		return "^"
	}
	//
	panic(fmt.Sprintf("unknown arithmetic operator (%d)", op))
}

// Construct the list (head args...).  Observe that, when there are no
// arguments, this produces "(head)" rather than "(head )".
func apply(head string, args ...sexp.SExp) *sexp.List {
	elements := make([]sexp.SExp, 0, len(args)+1)
	elements = append(elements, sexp.NewSymbol(head))
	elements = append(elements, args...)
	//
	return sexp.NewList(elements)
}

// Construct (kind ((name sort)) body)
func binder(kind string, name string, sort string, body sexp.SExp) *sexp.List {
	decl := sexp.NewList([]sexp.SExp{sexp.NewSymbol(name), sexp.NewSymbol(sort)})
	return apply(kind, sexp.NewList([]sexp.SExp{decl}), body)
}

// Construct (>= name 0)
func nonNegative(name string) *sexp.List {
	return apply(">=", sexp.NewSymbol(name), sexp.NewSymbol("0"))
}
