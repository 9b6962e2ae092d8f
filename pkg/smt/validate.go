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

	"github.com/sravinet/aisp-open-core-sub005/pkg/util/source/sexp"
)

// ErrorKind classifies the structural problem found by Validate.
type ErrorKind uint8

const (
	// UNMATCHED_PAREN indicates a closing parenthesis without a matching
	// opening parenthesis.
	UNMATCHED_PAREN ErrorKind = iota
	// UNBALANCED indicates one or more parentheses were left unclosed.
	UNBALANCED
	// MISSING_CHECK_SAT indicates the script never asks for a result.
	MISSING_CHECK_SAT
	// UNDECLARED indicates an assertion refers to an undeclared symbol.
	UNDECLARED
	// MALFORMED indicates the script could not otherwise be parsed.
	MALFORMED
)

// SyntaxError describes a structural problem with a solver script, found
// before any solver is invoked.
type SyntaxError struct {
	// Kind of problem identified.
	Kind ErrorKind
	// Line (starting from 1) where the problem was found, or 0 if the problem
	// has no specific location.
	Line int
	// Msg is a human-readable description.
	Msg string
}

func (p *SyntaxError) Error() string {
	return p.Msg
}

// Builtin symbols which never require a declaration.
var builtins = map[string]bool{
	// commands
	"assert": true, "check-sat": true, "get-model": true, "declare-const": true, "declare-fun": true,
	"declare-sort": true,
	// sorts
	"Real": true, "Int": true, "Bool": true, "String": true, "Array": true,
	// arithmetic
	"+": true, "-": true, "*": true, "/": true, "^": true, "div": true, "mod": true, "abs": true,
	"to_real": true, "to_int": true,
	// comparison
	"=": true, "<": true, ">": true, "<=": true, ">=": true, "distinct": true,
	// logic
	"and": true, "or": true, "not": true, "=>": true, "iff": true, "xor": true, "ite": true,
	"forall": true, "exists": true, "let": true, "_": true,
	// arrays and sets
	"select": true, "store": true, "member": true, "set": true,
	// literals and results
	"true": true, "false": true, "sat": true, "unsat": true, "unknown": true,
}

// IsBuiltin checks whether a given symbol is predefined, and hence requires no
// declaration.
func IsBuiltin(symbol string) bool {
	return builtins[symbol]
}

// Validate performs a structural check of a solver script.  Specifically, the
// parentheses must be balanced, a check-sat command must be present, and every
// symbol used within an assertion must have been declared earlier in the
// script (or bound by an enclosing quantifier).  This is not a complete
// SMT-LIB grammar check.
func Validate(text string) error {
	if err := checkBalance(text); err != nil {
		return err
	}
	//
	commands, _, perr := sexp.ParseString("script", text)
	//
	if perr != nil {
		line := perr.FirstEnclosingLine()
		return &SyntaxError{MALFORMED, line.Number(), fmt.Sprintf("Line %d: %s", line.Number(), perr.Message())}
	}
	// Pass 1
	if !hasCheckSat(commands) {
		return &SyntaxError{MISSING_CHECK_SAT, 0, "Missing (check-sat) command"}
	}
	// Pass 2
	v := validator{declared: make(map[string]bool)}
	//
	return v.commands(commands)
}

// Check parentheses balance, ignoring those within string literals, quoted
// symbols or comments.
func checkBalance(text string) *SyntaxError {
	var (
		depth     = 0
		line      = 1
		inString  = false
		inSymbol  = false
		inComment = false
	)
	//
	for _, c := range text {
		switch {
		case c == '\n':
			line++
			inComment = false
		case inComment:
			// skip
		case inString:
			inString = c != '"'
		case inSymbol:
			inSymbol = c != '|'
		case c == '"':
			inString = true
		case c == '|':
			inSymbol = true
		case c == ';':
			inComment = true
		case c == '(':
			depth++
		case c == ')':
			depth--
			//
			if depth < 0 {
				return &SyntaxError{UNMATCHED_PAREN, line, fmt.Sprintf("Line %d: Unmatched closing parenthesis", line)}
			}
		}
	}
	//
	if depth != 0 {
		return &SyntaxError{UNBALANCED, 0, fmt.Sprintf("Unbalanced parentheses: %d unclosed", depth)}
	}
	//
	return nil
}

func hasCheckSat(commands []sexp.SExp) bool {
	for _, c := range commands {
		if l := c.AsList(); l != nil && l.MatchSymbols(1, "check-sat") {
			return true
		}
	}
	//
	return false
}

type validator struct {
	declared map[string]bool
	// Names bound by enclosing binders.
	scope []string
}

func (p *validator) commands(commands []sexp.SExp) error {
	for _, c := range commands {
		l := c.AsList()
		//
		if l == nil || l.Len() == 0 {
			continue
		}
		//
		switch l.Head() {
		case "declare-const", "declare-fun", "declare-sort":
			if l.Len() >= 2 && l.Get(1).AsSymbol() != nil {
				p.declared[l.Get(1).AsSymbol().Value] = true
			}
		case "assert":
			for _, e := range l.Elements[1:] {
				if err := p.expr(e); err != nil {
					return err
				}
			}
		}
	}
	//
	return nil
}

func (p *validator) expr(e sexp.SExp) error {
	if s := e.AsSymbol(); s != nil {
		return p.symbol(s.Value)
	}
	//
	l := e.AsList()
	//
	if l.Len() == 3 && (l.Head() == "forall" || l.Head() == "exists" || l.Head() == "let") {
		return p.binder(l)
	}
	//
	for _, child := range l.Elements {
		if err := p.expr(child); err != nil {
			return err
		}
	}
	//
	return nil
}

// Check a binder such as (forall ((x Int) (y Real)) body) or (let ((x e))
// body).  For quantifiers, the second element of each binding is a sort,
// whilst for let it is an expression in the enclosing scope.  Either way, it
// is checked before the bound names come into scope.
func (p *validator) binder(l *sexp.List) error {
	bindings := l.Get(1).AsList()
	height := len(p.scope)
	//
	if bindings == nil {
		return &SyntaxError{MALFORMED, 0, fmt.Sprintf("Malformed binder: %s", l.String())}
	}
	//
	for _, b := range bindings.Elements {
		bl := b.AsList()
		//
		if bl == nil || bl.Len() != 2 || bl.Get(0).AsSymbol() == nil {
			return &SyntaxError{MALFORMED, 0, fmt.Sprintf("Malformed binding: %s", b.String())}
		} else if err := p.expr(bl.Get(1)); err != nil {
			return err
		}
	}
	// Bring names into scope
	for _, b := range bindings.Elements {
		p.scope = append(p.scope, b.AsList().Get(0).AsSymbol().Value)
	}
	//
	err := p.expr(l.Get(2))
	p.scope = p.scope[:height]
	//
	return err
}

func (p *validator) symbol(name string) error {
	if builtins[name] || p.declared[name] || isLiteral(name) {
		return nil
	}
	//
	for _, bound := range p.scope {
		if bound == name {
			return nil
		}
	}
	//
	return &SyntaxError{UNDECLARED, 0, fmt.Sprintf("Undeclared symbol: %s", name)}
}

// Check whether a symbol is a literal of some kind, such as a numeral, decimal,
// hexadecimal, binary or string literal, or a keyword.
func isLiteral(name string) bool {
	switch {
	case strings.HasPrefix(name, "\""), strings.HasPrefix(name, ":"):
		return true
	case strings.HasPrefix(name, "#x"), strings.HasPrefix(name, "#b"):
		return len(name) > 2
	}
	//
	digits, dots := 0, 0
	//
	for i, c := range name {
		switch {
		case c == '-' && i == 0:
			continue
		case c == '.':
			dots++
		case unicode.IsDigit(c):
			digits++
		default:
			return false
		}
	}
	//
	return digits > 0 && dots <= 1
}
