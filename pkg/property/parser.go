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
	"fmt"
	"strconv"
	"strings"

	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
	"github.com/sravinet/aisp-open-core-sub005/pkg/prover"
	"github.com/sravinet/aisp-open-core-sub005/pkg/util/source"
	"github.com/sravinet/aisp-open-core-sub005/pkg/util/source/sexp"
)

// ParseSourceFiles parses zero or more property files into a single theory.
// Declaration names must be unique across all files.
func ParseSourceFiles(files []source.File) (Theory, []source.SyntaxError) {
	var (
		theory Theory
		errors []source.SyntaxError
		names  = make(map[string]bool)
	)
	//
	for i := range files {
		t, errs := parseSourceFile(&files[i], names)
		// Continue with remaining files, so as to report as many errors as
		// possible.
		errors = append(errors, errs...)
		//
		theory.Append(t)
	}
	//
	if len(errors) > 0 {
		return theory, errors
	}
	//
	return theory, nil
}

// ParseSourceFile parses the contents of a single property file.
func ParseSourceFile(srcfile *source.File) (Theory, []source.SyntaxError) {
	return parseSourceFile(srcfile, make(map[string]bool))
}

func parseSourceFile(srcfile *source.File, names map[string]bool) (Theory, []source.SyntaxError) {
	var (
		theory Theory
		errors []source.SyntaxError
	)
	// Parse bytes into S-Expressions
	terms, srcmap, err := sexp.ParseAll(srcfile)
	// Check file parsed ok
	if err != nil {
		return theory, []source.SyntaxError{*err}
	}
	//
	p := NewParser(srcfile, srcmap)
	//
	for _, s := range terms {
		l := s.AsList()
		//
		if l == nil {
			errors = append(errors, *p.srcmap.SyntaxError(s, "unexpected or malformed declaration"))
		} else if errs := p.parseDeclaration(l, names, &theory); len(errs) > 0 {
			errors = append(errors, errs...)
		}
	}
	//
	return theory, errors
}

// Parser translates the S-Expressions of a property file into declarations.
// Terms are handled by a generic translator, whilst formulas are handled
// directly since quantifiers bind variables.
type Parser struct {
	// Translator used for terms.
	translator *sexp.Translator[formula.Term]
	// Mapping from S-Expressions to their spans in the original text.
	srcmap *source.Map[sexp.SExp]
}

// NewParser constructs a new parser using a given mapping from S-Expressions to
// spans in the underlying source file.
func NewParser(srcfile *source.File, srcmap *source.Map[sexp.SExp]) *Parser {
	t := sexp.NewTranslator[formula.Term](srcfile, srcmap)
	// Configure term translator
	t.AddSymbolRule(holeRule)
	t.AddSymbolRule(constantRule)
	t.AddSymbolRule(variableRule)
	t.AddRecursiveListRule("+", arithmeticRule(formula.ADD))
	t.AddRecursiveListRule("-", arithmeticRule(formula.SUB))
	t.AddRecursiveListRule("*", arithmeticRule(formula.MUL))
	t.AddRecursiveListRule("/", arithmeticRule(formula.DIV))
	t.AddRecursiveListRule("mod", arithmeticRule(formula.MOD))
	t.AddRecursiveListRule("^", arithmeticRule(formula.POW))
	t.AddRecursiveListRule("set", setRule)
	t.AddRecursiveListRule("select", selectRule)
	t.AddListRule("as", annotationRule(t))
	t.AddDefaultListRule(functionRule(t))
	//
	return &Parser{t, srcmap}
}

func (p *Parser) parseDeclaration(l *sexp.List, names map[string]bool, theory *Theory) []source.SyntaxError {
	if l.Len() < 2 || !isSymbols(l.Elements[:2]) {
		return p.errors(l, "malformed declaration")
	}
	//
	name := l.Get(1).AsSymbol().Value
	//
	if names[name] {
		return p.errors(l.Get(1), fmt.Sprintf("duplicate declaration \"%s\"", name))
	}
	//
	var errors []source.SyntaxError
	//
	switch {
	case l.Len() == 3 && l.Head() == "axiom":
		var f formula.Formula
		//
		if f, errors = p.Formula(l.Get(2)); len(errors) == 0 {
			theory.Axioms = append(theory.Axioms, prover.NewAxiom(name, f))
		}
	case l.Len() == 4 && l.Head() == "rule":
		var rule prover.InferenceRule
		//
		if rule, errors = p.parseRule(name, l.Get(2), l.Get(3)); len(errors) == 0 {
			theory.Rules = append(theory.Rules, rule)
		}
	case l.Len() == 3 && l.Head() == "hypothesis":
		var f formula.Formula
		//
		if f, errors = p.Formula(l.Get(2)); len(errors) == 0 {
			theory.Hypotheses = append(theory.Hypotheses, formula.NewProperty(name, f))
		}
	case l.Len() == 3 && l.Head() == "property":
		var f formula.Formula
		//
		if f, errors = p.Formula(l.Get(2)); len(errors) == 0 {
			theory.Properties = append(theory.Properties, formula.NewProperty(name, f))
		}
	default:
		return p.errors(l, "malformed declaration")
	}
	//
	names[name] = true
	//
	return errors
}

// Parse a rule of the form "(rule name (premises F...) (conclusion F))".
func (p *Parser) parseRule(name string, premises sexp.SExp, conclusion sexp.SExp) (prover.InferenceRule,
	[]source.SyntaxError) {
	var (
		pl     = premises.AsList()
		cl     = conclusion.AsList()
		errors []source.SyntaxError
	)
	//
	if pl == nil || !pl.MatchSymbols(1, "premises") {
		return prover.InferenceRule{}, p.errors(premises, "expected (premises ...)")
	} else if cl == nil || cl.Len() != 2 || !cl.MatchSymbols(1, "conclusion") {
		return prover.InferenceRule{}, p.errors(conclusion, "expected (conclusion ...)")
	}
	//
	fs, errs := p.Formulas(pl.Elements[1:])
	errors = append(errors, errs...)
	c, errs := p.Formula(cl.Get(1))
	errors = append(errors, errs...)
	//
	if len(errors) > 0 {
		return prover.InferenceRule{}, errors
	}
	//
	return prover.NewInferenceRule(name, c, fs...), nil
}

// Formula translates a given S-Expression into a formula.
func (p *Parser) Formula(s sexp.SExp) (formula.Formula, []source.SyntaxError) {
	if sym := s.AsSymbol(); sym != nil {
		return p.parseFormulaSymbol(sym)
	}
	//
	l := s.AsList()
	//
	if l.Len() == 0 || l.Get(0).AsSymbol() == nil {
		return nil, p.errors(l, "invalid formula")
	}
	//
	switch l.Head() {
	case "not":
		return p.unary(l, func(f formula.Formula) formula.Formula { return formula.NewNegation(f) })
	case "always":
		return p.unary(l, func(f formula.Formula) formula.Formula { return formula.NewAlways(f) })
	case "eventually":
		return p.unary(l, func(f formula.Formula) formula.Formula { return formula.NewEventually(f) })
	case "and":
		return p.nary(l, func(fs []formula.Formula) (formula.Formula, error) {
			return formula.NewConjunction(fs...), nil
		})
	case "or":
		return p.nary(l, func(fs []formula.Formula) (formula.Formula, error) {
			return formula.NewDisjunction(fs...)
		})
	case "=>":
		return p.binary(l, func(a, b formula.Formula) formula.Formula { return formula.NewImplication(a, b) })
	case "iff":
		return p.binary(l, func(a, b formula.Formula) formula.Formula { return formula.NewBiconditional(a, b) })
	case "until":
		return p.binary(l, func(a, b formula.Formula) formula.Formula { return formula.NewUntil(a, b) })
	case "forall", "exists":
		return p.parseQuantified(l)
	case "=":
		return p.relation(l, func(a, b formula.Term) formula.Formula { return formula.NewArithEqual(a, b) })
	case "<=":
		return p.relation(l, func(a, b formula.Term) formula.Formula { return formula.NewArithLessEqual(a, b) })
	case ">=":
		return p.relation(l, func(a, b formula.Term) formula.Formula { return formula.NewArithLessEqual(b, a) })
	case "<":
		return p.relation(l, func(a, b formula.Term) formula.Formula {
			return formula.NewNegation(formula.NewArithLessEqual(b, a))
		})
	case ">":
		return p.relation(l, func(a, b formula.Term) formula.Formula {
			return formula.NewNegation(formula.NewArithLessEqual(a, b))
		})
	case "member":
		return p.relation(l, func(a, b formula.Term) formula.Formula { return formula.NewSetMembership(a, b) })
	case "apply":
		if l.Len() < 2 || l.Get(1).AsSymbol() == nil {
			return nil, p.errors(l, "expected (apply f t...)")
		}
		//
		args, errs := p.Terms(l.Elements[2:])
		//
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return formula.NewFunctionApplication(l.Get(1).AsSymbol().Value, args...), nil
	}
	// Predicate
	if name := l.Head(); !isIdentifier(name) {
		return nil, p.errors(l.Get(0), fmt.Sprintf("invalid predicate \"%s\"", name))
	}
	//
	args, errs := p.Terms(l.Elements[1:])
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return formula.NewAtomic(l.Head(), args...), nil
}

// Formulas translates each of a given list of S-Expressions into formulas,
// accumulating errors as it goes.
func (p *Parser) Formulas(sexps []sexp.SExp) ([]formula.Formula, []source.SyntaxError) {
	var (
		fs     = make([]formula.Formula, len(sexps))
		errors []source.SyntaxError
	)
	//
	for i, s := range sexps {
		var errs []source.SyntaxError
		fs[i], errs = p.Formula(s)
		errors = append(errors, errs...)
	}
	//
	return fs, errors
}

// Term translates a given S-Expression into a term.
func (p *Parser) Term(s sexp.SExp) (formula.Term, []source.SyntaxError) {
	return p.translator.Translate(s)
}

// Terms translates each of a given list of S-Expressions into terms.
func (p *Parser) Terms(sexps []sexp.SExp) ([]formula.Term, []source.SyntaxError) {
	return p.translator.TranslateAll(sexps)
}

func (p *Parser) parseFormulaSymbol(s *sexp.Symbol) (formula.Formula, []source.SyntaxError) {
	switch {
	case isHole(s.Value):
		return formula.NewHole(s.Value[1:]), nil
	case isIdentifier(s.Value):
		// Nullary predicate
		return formula.NewAtomic(s.Value), nil
	}
	//
	return nil, p.errors(s, fmt.Sprintf("invalid formula \"%s\"", s.Value))
}

// Parse a quantified formula "(forall (x [Sort [Domain]]) F)", where a sort of
// "_" indicates no annotation.
func (p *Parser) parseQuantified(l *sexp.List) (formula.Formula, []source.SyntaxError) {
	if l.Len() != 3 {
		return nil, p.errors(l, fmt.Sprintf("expected (%s (x [Sort [Domain]]) F)", l.Head()))
	}
	//
	q, errors := p.parseBinder(l.Get(1))
	body, errs := p.Formula(l.Get(2))
	errors = append(errors, errs...)
	//
	if len(errors) > 0 {
		return nil, errors
	} else if l.Head() == "forall" {
		return formula.NewUniversal(q, body), nil
	}
	//
	return formula.NewExistential(q, body), nil
}

func (p *Parser) parseBinder(s sexp.SExp) (formula.Quantifier, []source.SyntaxError) {
	l := s.AsList()
	//
	if l == nil || l.Len() == 0 || l.Len() > 3 || !isSymbols(l.Elements[:min(2, l.Len())]) {
		return formula.Quantifier{}, p.errors(s, "malformed binder")
	} else if name := l.Get(0).AsSymbol().Value; !isIdentifier(name) {
		return formula.Quantifier{}, p.errors(l.Get(0), fmt.Sprintf("invalid variable \"%s\"", name))
	}
	//
	q := formula.NewQuantifier(l.Get(0).AsSymbol().Value, "")
	//
	if l.Len() > 1 && l.Get(1).AsSymbol().Value != "_" {
		q.Type = l.Get(1).AsSymbol().Value
	}
	//
	if l.Len() == 3 {
		domain, errs := p.Term(l.Get(2))
		//
		if len(errs) > 0 {
			return q, errs
		}
		//
		q.Domain = domain
	}
	//
	return q, nil
}

func (p *Parser) unary(l *sexp.List, constructor func(formula.Formula) formula.Formula) (formula.Formula,
	[]source.SyntaxError) {
	if l.Len() != 2 {
		return nil, p.errors(l, fmt.Sprintf("expected one argument for \"%s\"", l.Head()))
	}
	//
	f, errs := p.Formula(l.Get(1))
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return constructor(f), nil
}

func (p *Parser) binary(l *sexp.List, constructor func(formula.Formula, formula.Formula) formula.Formula) (
	formula.Formula, []source.SyntaxError) {
	if l.Len() != 3 {
		return nil, p.errors(l, fmt.Sprintf("expected two arguments for \"%s\"", l.Head()))
	}
	//
	fs, errs := p.Formulas(l.Elements[1:])
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return constructor(fs[0], fs[1]), nil
}

func (p *Parser) nary(l *sexp.List, constructor func([]formula.Formula) (formula.Formula, error)) (
	formula.Formula, []source.SyntaxError) {
	if l.Len() < 2 {
		return nil, p.errors(l, fmt.Sprintf("expected at least one argument for \"%s\"", l.Head()))
	}
	//
	fs, errs := p.Formulas(l.Elements[1:])
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	f, err := constructor(fs)
	//
	if err != nil {
		return nil, p.errors(l, err.Error())
	}
	//
	return f, nil
}

func (p *Parser) relation(l *sexp.List, constructor func(formula.Term, formula.Term) formula.Formula) (
	formula.Formula, []source.SyntaxError) {
	if l.Len() != 3 {
		return nil, p.errors(l, fmt.Sprintf("expected two arguments for \"%s\"", l.Head()))
	}
	//
	ts, errs := p.Terms(l.Elements[1:])
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return constructor(ts[0], ts[1]), nil
}

func (p *Parser) errors(s sexp.SExp, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcmap.SyntaxError(s, msg)}
}

// ===================================================================
// Term Rules
// ===================================================================

func holeRule(symbol string) (formula.Term, bool, error) {
	if !strings.HasPrefix(symbol, "?") {
		return nil, false, nil
	} else if !isHole(symbol) {
		return nil, true, fmt.Errorf("invalid hole \"%s\"", symbol)
	}
	//
	return formula.NewHole(symbol[1:]), true, nil
}

func constantRule(symbol string) (formula.Term, bool, error) {
	switch {
	case symbol == "true" || symbol == "false":
		return formula.NewConstant(symbol, "Bool"), true, nil
	case len(symbol) >= 2 && symbol[0] == '"' && symbol[len(symbol)-1] == '"':
		return formula.NewConstant(strings.ReplaceAll(symbol[1:len(symbol)-1], "\"\"", "\""), "String"), true, nil
	case isInteger(symbol):
		return formula.NewConstant(symbol, "Int"), true, nil
	case isReal(symbol):
		return formula.NewConstant(symbol, "Real"), true, nil
	}
	//
	return nil, false, nil
}

func variableRule(symbol string) (formula.Term, bool, error) {
	if !isIdentifier(symbol) {
		return nil, false, nil
	}
	//
	return formula.NewVariable(symbol, ""), true, nil
}

func arithmeticRule(op formula.ArithOp) sexp.RecursiveRule[formula.Term] {
	return func(_ string, args []formula.Term) (formula.Term, error) {
		switch {
		case len(args) == 2:
			return formula.NewArithmetic(op, args[0], args[1]), nil
		case len(args) > 2 && (op == formula.ADD || op == formula.MUL):
			// Associative, hence fold from the left
			t := args[0]
			//
			for _, arg := range args[1:] {
				t = formula.NewArithmetic(op, t, arg)
			}
			//
			return t, nil
		}
		//
		return nil, fmt.Errorf("expected two arguments for \"%s\"", op)
	}
}

func setRule(_ string, args []formula.Term) (formula.Term, error) {
	return formula.NewSet(args...), nil
}

func selectRule(_ string, args []formula.Term) (formula.Term, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("expected (select array index)")
	}
	//
	return formula.NewArrayAccess(args[0], args[1]), nil
}

// Annotate a variable or constant with a sort, as in "(as x Int)".
func annotationRule(t *sexp.Translator[formula.Term]) sexp.ListRule[formula.Term] {
	return func(l *sexp.List) (formula.Term, []source.SyntaxError) {
		if l.Len() != 3 || !isSymbols(l.Elements[1:]) {
			return nil, t.SyntaxErrors(l, "expected (as symbol Sort)")
		}
		//
		var (
			value = l.Get(1).AsSymbol().Value
			sort  = l.Get(2).AsSymbol().Value
		)
		//
		switch term, ok, _ := constantRule(value); {
		case ok:
			return formula.NewConstant(term.(*formula.Constant).Value, sort), nil
		case isIdentifier(value):
			return formula.NewVariable(value, sort), nil
		}
		//
		return nil, t.SyntaxErrors(l.Get(1), fmt.Sprintf("invalid symbol \"%s\"", value))
	}
}

func functionRule(t *sexp.Translator[formula.Term]) sexp.ListRule[formula.Term] {
	return func(l *sexp.List) (formula.Term, []source.SyntaxError) {
		if name := l.Head(); !isIdentifier(name) {
			return nil, t.SyntaxErrors(l, fmt.Sprintf("invalid function \"%s\"", name))
		}
		//
		args, errs := t.TranslateAll(l.Elements[1:])
		//
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return formula.NewFunction(l.Head(), args...), nil
	}
}

// ===================================================================
// Helpers
// ===================================================================

func isSymbols(sexps []sexp.SExp) bool {
	for _, s := range sexps {
		if s.AsSymbol() == nil {
			return false
		}
	}
	//
	return true
}

func isHole(symbol string) bool {
	return len(symbol) > 1 && symbol[0] == '?' && isIdentifier(symbol[1:])
}

func isInteger(symbol string) bool {
	_, err := strconv.ParseInt(symbol, 10, 64)
	return err == nil
}

func isReal(symbol string) bool {
	_, err := strconv.ParseFloat(symbol, 64)
	return err == nil && strings.ContainsAny(symbol, "0123456789")
}

// An identifier starts with a letter or underscore, and contains no characters
// reserved for holes or strings.
func isIdentifier(symbol string) bool {
	if symbol == "" || symbol == "true" || symbol == "false" {
		return false
	}
	//
	for i, c := range symbol {
		switch {
		case c == '_' || c == '\'' || c == '.':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c > 127:
		case c >= '0' && c <= '9' || c == '-':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	//
	return true
}
