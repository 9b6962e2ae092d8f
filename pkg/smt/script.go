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
	"io"
	"slices"
	"strings"

	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
	"github.com/sravinet/aisp-open-core-sub005/pkg/util/source/sexp"
)

// Script is a complete solver query which asks whether a goal follows from a
// set of hypotheses.  The goal is asserted negated, hence an "unsat" result
// means the goal holds.
type Script struct {
	// Comment lines emitted at the start of the script.
	header []string
	// Declarations, followed by assertions.
	commands []sexp.SExp
	// Determines whether a model is requested after check-sat.
	model bool
}

// NewScript compiles a query asking whether a given goal follows from zero or
// more hypotheses.  Declarations are generated for every symbol used by the
// goal or any hypothesis.  Each script is compiled using a fresh compiler, so
// time variables are numbered from zero.
func NewScript(goal *formula.Property, hypotheses ...*formula.Property) *Script {
	var (
		compiler = NewCompiler()
		decls    = newDeclarations()
		script   = &Script{}
	)
	//
	script.header = append(script.header, fmt.Sprintf("Property: %s", goal.Name))
	script.header = append(script.header, fmt.Sprintf("Formula: %s", goal.Structure.String()))
	//
	for _, p := range append(slices.Clone(hypotheses), goal) {
		decls.add(p)
	}
	//
	script.commands = decls.commands()
	//
	for _, h := range hypotheses {
		script.commands = append(script.commands, apply("assert", compiler.Formula(h.Structure)))
	}
	//
	negated := apply("not", compiler.Formula(goal.Structure))
	script.commands = append(script.commands, apply("assert", negated))
	//
	return script
}

// WithModel requests that a satisfying assignment is reported by the solver,
// which represents a counterexample to the goal.
func (p *Script) WithModel() *Script {
	p.model = true
	return p
}

// Commands returns the declaration and assertion commands of this script,
// excluding check-sat and get-model.
func (p *Script) Commands() []sexp.SExp {
	return p.commands
}

// WriteTo implements io.WriterTo for Script, emitting one command per line and
// returning the number of bytes written.
func (p *Script) WriteTo(w io.Writer) (int64, error) {
	var total int64
	//
	for _, line := range p.header {
		n, err := fmt.Fprintf(w, ";; %s\n", strings.ReplaceAll(line, "\n", " "))
		total += int64(n)
		//
		if err != nil {
			return total, err
		}
	}
	//
	for _, c := range p.commands {
		n, err := fmt.Fprintf(w, "%s\n", c.String())
		total += int64(n)
		//
		if err != nil {
			return total, err
		}
	}
	//
	n, err := io.WriteString(w, "(check-sat)\n")
	total += int64(n)
	//
	if err == nil && p.model {
		n, err = io.WriteString(w, "(get-model)\n")
		total += int64(n)
	}
	//
	return total, err
}

// String uses WriteTo.
func (p *Script) String() string {
	var b strings.Builder
	_, _ = p.WriteTo(&b)
	//
	return b.String()
}

// ===================================================================
// Declarations
// ===================================================================

type function struct {
	args   []string
	result string
}

// Collects the declarations required for a set of properties.  Lists are
// maintained in order of first use, so the output is deterministic.
type declarations struct {
	sorts     []string
	constants []string
	functions []string
	// Sort of each constant
	constSorts map[string]string
	// Signature of each function (or predicate)
	signatures map[string]function
}

func newDeclarations() *declarations {
	return &declarations{
		constSorts: make(map[string]string),
		signatures: make(map[string]function),
	}
}

func (p *declarations) add(prop *formula.Property) {
	// Free variables, in sorted order
	for _, name := range formula.SortedKeys(prop.FreeVariables) {
		p.constant(name, Sort(prop.FreeVariables[name]))
	}
	// Pattern holes
	for _, name := range formula.SortedKeys(prop.Holes) {
		if prop.Holes[name] {
			p.constant("?"+name, "Bool")
		} else {
			p.constant("?"+name, "Int")
		}
	}
	//
	w := sortWalker{p, make(map[string]string), prop.FreeVariables}
	w.formula(prop.Structure)
}

func (p *declarations) sort(sort string) {
	if !IsBuiltinSort(sort) && !slices.Contains(p.sorts, sort) {
		p.sorts = append(p.sorts, sort)
	}
}

func (p *declarations) constant(name string, sort string) {
	if _, ok := p.constSorts[name]; ok || IsBuiltin(name) {
		return
	}
	//
	p.sort(sort)
	p.constants = append(p.constants, name)
	p.constSorts[name] = sort
}

func (p *declarations) function(name string, args []string, result string) {
	if _, ok := p.signatures[name]; ok || IsBuiltin(name) {
		return
	}
	//
	p.functions = append(p.functions, name)
	p.signatures[name] = function{args, result}
}

func (p *declarations) commands() []sexp.SExp {
	var commands []sexp.SExp
	//
	for _, s := range p.sorts {
		commands = append(commands, apply("declare-sort", sexp.NewSymbol(s), sexp.NewSymbol("0")))
	}
	//
	for _, c := range p.constants {
		commands = append(commands, apply("declare-const", sexp.NewSymbol(c), sexp.NewSymbol(p.constSorts[c])))
	}
	//
	for _, f := range p.functions {
		var (
			sig  = p.signatures[f]
			args = make([]sexp.SExp, len(sig.args))
		)
		//
		for i, a := range sig.args {
			args[i] = sexp.NewSymbol(a)
		}
		//
		commands = append(commands, apply("declare-fun", sexp.NewSymbol(f), sexp.NewList(args),
			sexp.NewSymbol(sig.result)))
	}
	//
	return commands
}

// Walks a formula inferring the sorts of function arguments, and identifying
// any symbolic constants or custom sorts.
type sortWalker struct {
	decls *declarations
	// Sorts of variables currently in scope
	bound map[string]string
	// Free variable annotations
	free map[string]string
}

func (p *sortWalker) formula(f formula.Formula) {
	switch f := f.(type) {
	case *formula.Atomic:
		p.decls.function(f.Predicate, p.terms(f.Args), "Bool")
	case *formula.FunctionApplication:
		p.decls.function(f.Function, p.terms(f.Args), "Bool")
	case *formula.Universal:
		p.quantified(f.Quantifier, f.Body)
	case *formula.Existential:
		p.quantified(f.Quantifier, f.Body)
	default:
		// Visit immediate children only, since quantifiers must be handled
		// here to maintain scoping.
		formula.Inspect(f, func(node any) bool {
			switch n := node.(type) {
			case formula.Formula:
				if n == f {
					return true
				}
				//
				p.formula(n)
			case formula.Term:
				p.sortOf(n)
			}
			//
			return false
		})
	}
}

func (p *sortWalker) quantified(q formula.Quantifier, body formula.Formula) {
	sort := Sort(q.Type)
	p.decls.sort(sort)
	//
	if q.Domain != nil {
		p.sortOf(q.Domain)
	}
	//
	outer, ok := p.bound[q.Variable]
	p.bound[q.Variable] = sort
	p.formula(body)
	//
	if ok {
		p.bound[q.Variable] = outer
	} else {
		delete(p.bound, q.Variable)
	}
}

func (p *sortWalker) terms(terms []formula.Term) []string {
	sorts := make([]string, len(terms))
	//
	for i, t := range terms {
		sorts[i] = p.sortOf(t)
	}
	//
	return sorts
}

// Determine the sort of a given term, registering any declarations it needs
// along the way.
func (p *sortWalker) sortOf(t formula.Term) string {
	switch t := t.(type) {
	case *formula.Variable:
		if t.Type != "" {
			return Sort(t.Type)
		} else if s, ok := p.bound[t.Name]; ok {
			return s
		}
		//
		return Sort(p.free[t.Name])
	case *formula.Constant:
		sort := Sort(t.Type)
		// Symbolic constants must be declared
		if text := constant(t); !isLiteral(text) && !IsBuiltin(text) {
			p.decls.constant(text, sort)
		}
		//
		p.decls.sort(sort)
		//
		return sort
	case *formula.Function:
		p.decls.function(t.Name, p.terms(t.Args), "Int")
		return "Int"
	case *formula.Arithmetic:
		lhs, rhs := p.sortOf(t.Left), p.sortOf(t.Right)
		//
		if lhs == "Real" || rhs == "Real" {
			return "Real"
		}
		//
		return "Int"
	case *formula.Set:
		p.terms(t.Elements)
		return "Int"
	case *formula.ArrayAccess:
		p.sortOf(t.Array)
		p.sortOf(t.Index)
		//
		return "Int"
	}
	// Holes
	return "Int"
}
