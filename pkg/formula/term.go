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
package formula

import (
	"fmt"
	"strings"
)

// Term represents a value-producing expression which is used as an argument
// within a formula.  Every term is one of Variable, Constant, Function,
// Arithmetic, Set, ArrayAccess or Hole.  Terms are immutable once
// constructed.
type Term interface {
	fmt.Stringer
	// Marker to prevent arbitrary types being used as terms.
	isTerm()
}

// ArithOp identifies an arithmetic operator.
type ArithOp uint8

const (
	// ADD represents addition.
	ADD ArithOp = iota
	// SUB represents subtraction.
	SUB
	// MUL represents multiplication.
	MUL
	// DIV represents (integer) division.
	DIV
	// MOD represents the remainder of division.
	MOD
	// POW represents exponentiation.
	POW
)

func (op ArithOp) String() string {
	switch op {
	case ADD:
		return "+"
	case SUB:
		return "-"
	case MUL:
		return "*"
	case DIV:
		return "/"
	case MOD:
		return "%"
	case POW:
		return "^"
	}
	//
	return "?"
}

// ===================================================================
// Variable
// ===================================================================

// Variable represents a (possibly bound) variable with an optional type
// annotation.  An empty type indicates no annotation was given.
type Variable struct {
	Name string
	Type string
}

var _ Term = (*Variable)(nil)

// NewVariable constructs a new variable with an optional type.
func NewVariable(name string, typ string) *Variable {
	return &Variable{name, typ}
}

func (p *Variable) isTerm() {}

func (p *Variable) String() string {
	return p.Name
}

// ===================================================================
// Constant
// ===================================================================

// Constant represents a literal value with a given type tag, such as "Int",
// "ℕ", "Bool" or "String".
type Constant struct {
	Value string
	Type  string
}

var _ Term = (*Constant)(nil)

// NewConstant constructs a new constant for a given literal and type tag.
func NewConstant(value string, typ string) *Constant {
	return &Constant{value, typ}
}

func (p *Constant) isTerm() {}

func (p *Constant) String() string {
	return p.Value
}

// ===================================================================
// Function
// ===================================================================

// Function represents the application of a (value-producing) function to zero
// or more arguments.
type Function struct {
	Name string
	Args []Term
}

var _ Term = (*Function)(nil)

// NewFunction constructs a new function application term.
func NewFunction(name string, args ...Term) *Function {
	return &Function{name, cloneTerms(args)}
}

func (p *Function) isTerm() {}

func (p *Function) String() string {
	return fmt.Sprintf("%s(%s)", p.Name, joinTerms(p.Args))
}

// ===================================================================
// Arithmetic
// ===================================================================

// Arithmetic represents a binary arithmetic operation.
type Arithmetic struct {
	Op    ArithOp
	Left  Term
	Right Term
}

var _ Term = (*Arithmetic)(nil)

// NewArithmetic constructs a new arithmetic term.
func NewArithmetic(op ArithOp, left Term, right Term) *Arithmetic {
	return &Arithmetic{op, left, right}
}

func (p *Arithmetic) isTerm() {}

func (p *Arithmetic) String() string {
	return fmt.Sprintf("(%s %s %s)", p.Left, p.Op, p.Right)
}

// ===================================================================
// Set
// ===================================================================

// Set represents a literal set of zero or more elements.
type Set struct {
	Elements []Term
}

var _ Term = (*Set)(nil)

// NewSet constructs a new set literal.
func NewSet(elements ...Term) *Set {
	return &Set{cloneTerms(elements)}
}

func (p *Set) isTerm() {}

func (p *Set) String() string {
	return fmt.Sprintf("{%s}", joinTerms(p.Elements))
}

// ===================================================================
// ArrayAccess
// ===================================================================

// ArrayAccess represents reading an element of an array at a given index.
type ArrayAccess struct {
	Array Term
	Index Term
}

var _ Term = (*ArrayAccess)(nil)

// NewArrayAccess constructs a new array access term.
func NewArrayAccess(array Term, index Term) *ArrayAccess {
	return &ArrayAccess{array, index}
}

func (p *ArrayAccess) isTerm() {}

func (p *ArrayAccess) String() string {
	return fmt.Sprintf("%s[%s]", p.Array, p.Index)
}

// ===================================================================
// Hole
// ===================================================================

// Hole is a pattern hole, which may stand for either a term or a whole formula
// within the premises and conclusions of inference rules (and within axiom
// schemas).  Holes are distinct from variables: only holes are bound during
// unification, whilst variables must match exactly.
type Hole struct {
	Name string
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Term = (*Hole)(nil)
var _ Formula = (*Hole)(nil)

// NewHole constructs a new pattern hole with the given name.  The name is
// given without the leading '?'.
func NewHole(name string) *Hole {
	return &Hole{name}
}

func (p *Hole) isTerm()    {}
func (p *Hole) isFormula() {}

func (p *Hole) String() string {
	return "?" + p.Name
}

// ===================================================================
// Helpers
// ===================================================================

func cloneTerms(terms []Term) []Term {
	if len(terms) == 0 {
		return nil
	}
	//
	nterms := make([]Term, len(terms))
	copy(nterms, terms)
	//
	return nterms
}

func joinTerms(terms []Term) string {
	var builder strings.Builder
	//
	for i, t := range terms {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(t.String())
	}
	//
	return builder.String()
}
