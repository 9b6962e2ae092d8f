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
	"fmt"
	"reflect"

	"github.com/sravinet/aisp-open-core-sub005/pkg/util/source"
)

// SymbolRule is responsible for converting a terminating expression (i.e. a
// symbol) into an expression type T.  For example, a variable or a numeric
// constant.  The boolean indicates whether or not the rule applied.
type SymbolRule[T comparable] func(string) (T, bool, error)

// ListRule is responsible for converting a list with a given sequence of zero
// or more arguments into an expression type T.
type ListRule[T comparable] func(*List) (T, []source.SyntaxError)

// RecursiveRule is a wrapper for translating lists whose elements can be built
// by recursively reusing the enclosing translator.  Observe that the arguments
// are already translated into the correct form.
type RecursiveRule[T comparable] func(string, []T) (T, error)

// ===================================================================
// Translator
// ===================================================================

// Translator is a generic mechanism for translating S-Expressions into a
// structured form.
type Translator[T comparable] struct {
	srcfile *source.File
	// Rules for parsing lists
	lists map[string]ListRule[T]
	// Fallback rule for generic lists.
	listDefault ListRule[T]
	// Rules for parsing symbols
	symbols []SymbolRule[T]
	// Maps S-Expressions to their spans in the original source file.
	oldSrcmap *source.Map[SExp]
	// Maps translated expressions to their spans in the original source file.
	newSrcmap *source.Map[T]
}

// NewTranslator constructs a new Translator instance.
func NewTranslator[T comparable](srcfile *source.File, srcmap *source.Map[SExp]) *Translator[T] {
	return &Translator[T]{
		srcfile:     srcfile,
		lists:       make(map[string]ListRule[T]),
		listDefault: nil,
		symbols:     make([]SymbolRule[T], 0),
		oldSrcmap:   srcmap,
		newSrcmap:   source.NewSourceMap[T](srcmap.Source()),
	}
}

// SourceMap returns the source map maintained for terms constructed by this
// translator.
func (p *Translator[T]) SourceMap() *source.Map[T] {
	return p.newSrcmap
}

// Translate a given S-Expression into the structured representation T.
func (p *Translator[T]) Translate(sexp SExp) (T, []source.SyntaxError) {
	return translateSExp(p, sexp)
}

// TranslateAll translates each of a given list of S-Expressions, accumulating
// errors as it goes.
func (p *Translator[T]) TranslateAll(sexps []SExp) ([]T, []source.SyntaxError) {
	var (
		items  = make([]T, len(sexps))
		errors []source.SyntaxError
	)
	//
	for i, s := range sexps {
		var errs []source.SyntaxError
		items[i], errs = translateSExp(p, s)
		errors = append(errors, errs...)
	}
	//
	return items, errors
}

// AddListRule adds a raw list rule to this translator.
func (p *Translator[T]) AddListRule(name string, rule ListRule[T]) {
	p.lists[name] = rule
}

// AddRecursiveListRule adds a new list rule whose arguments are translated
// recursively before the rule is applied.
func (p *Translator[T]) AddRecursiveListRule(name string, t RecursiveRule[T]) {
	p.lists[name] = p.createRecursiveListRule(t)
}

// AddDefaultListRule adds a default rule to be applied when no other list
// rules apply.
func (p *Translator[T]) AddDefaultListRule(rule ListRule[T]) {
	p.listDefault = rule
}

// AddSymbolRule adds a new symbol rule to this translator.  Symbol rules are
// tried in the order they were added.
func (p *Translator[T]) AddSymbolRule(t SymbolRule[T]) {
	p.symbols = append(p.symbols, t)
}

func (p *Translator[T]) createRecursiveListRule(t RecursiveRule[T]) ListRule[T] {
	return func(l *List) (T, []source.SyntaxError) {
		var empty T
		// Extract the "head" of the list.
		if len(l.Elements) == 0 || l.Elements[0].AsSymbol() == nil {
			return empty, p.SyntaxErrors(l, "invalid list")
		}
		// Translate arguments
		args, errors := p.TranslateAll(l.Elements[1:])
		// Apply constructor
		if len(errors) == 0 {
			term, err := t(l.Head(), args)
			// Check error
			if err == nil {
				return term, nil
			}
			//
			errors = append(errors, *p.SyntaxError(l, err.Error()))
		}
		// Error case
		return empty, errors
	}
}

// SyntaxError constructs a suitable syntax error for a given S-Expression.
//
//nolint:revive
func (p *Translator[T]) SyntaxError(s SExp, msg string) *source.SyntaxError {
	return p.oldSrcmap.SyntaxError(s, msg)
}

// SyntaxErrors constructs a suitable syntax error for a given S-Expression.
//
//nolint:revive
func (p *Translator[T]) SyntaxErrors(s SExp, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.SyntaxError(s, msg)}
}

// ===================================================================
// Private
// ===================================================================

func translateSExp[T comparable](p *Translator[T], s SExp) (T, []source.SyntaxError) {
	var empty T

	switch e := s.(type) {
	case *List:
		return translateSExpList(p, e)
	case *Symbol:
		for i := 0; i != len(p.symbols); i++ {
			node, ok, err := (p.symbols[i])(e.Value)
			if ok && err != nil {
				// Transform into syntax error
				return empty, p.SyntaxErrors(s, err.Error())
			} else if ok {
				map2sexp(p, node, s)
				// Done
				return node, nil
			}
		}
		//
		return empty, p.SyntaxErrors(s, fmt.Sprintf("unknown symbol \"%s\"", e.Value))
	}
	// Should be unreachable.
	typeof := reflect.TypeOf(s)
	//
	return empty, p.SyntaxErrors(s, fmt.Sprintf("invalid s-expression (%s)", typeof))
}

// Translate a list of S-Expressions into some kind of expression.  The type of
// expression is determined by the first element of the list.
func translateSExpList[T comparable](p *Translator[T], l *List) (T, []source.SyntaxError) {
	var (
		empty  T
		node   T
		errors []source.SyntaxError
	)
	// Sanity check this list makes sense
	if len(l.Elements) == 0 || l.Elements[0].AsSymbol() == nil {
		return empty, p.SyntaxErrors(l, "invalid list")
	}
	// Lookup appropriate translator
	if t := p.lists[l.Head()]; t != nil {
		node, errors = t(l)
	} else if p.listDefault != nil {
		node, errors = p.listDefault(l)
	} else {
		return empty, p.SyntaxErrors(l, fmt.Sprintf("unknown list \"%s\"", l.Head()))
	}
	// Map source node
	if len(errors) == 0 {
		map2sexp(p, node, l)
	}
	// Done
	return node, errors
}

// Add a mapping from a given item to the S-expression from which it was
// generated.  Items which are already mapped (e.g. because a rule returned a
// shared node) retain their original mapping.
func map2sexp[T comparable](p *Translator[T], item T, sexp SExp) {
	if p.newSrcmap.Has(item) || !p.oldSrcmap.Has(sexp) {
		return
	}
	//
	p.newSrcmap.Put(item, p.oldSrcmap.Get(sexp))
}
