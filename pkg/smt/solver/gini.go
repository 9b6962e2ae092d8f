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
package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	log "github.com/sirupsen/logrus"
	"github.com/sravinet/aisp-open-core-sub005/pkg/util/source/sexp"
)

// Gini is an in-process backend for the propositional fragment of SMT-LIB.
// Scripts whose declarations are all nullary Bool constants or functions, and
// whose assertions use only boolean connectives, are translated into a circuit
// and decided exactly.  Any other script is reported as unknown.
type Gini struct{}

// NewGini constructs a new propositional backend.
func NewGini() *Gini {
	return &Gini{}
}

// Name of this backend.
func (p *Gini) Name() string { return "gini" }

// Available always returns true, since this backend requires nothing from the
// environment.
func (p *Gini) Available() bool { return true }

// Check a given script by translating it into a circuit, and solving the
// resulting CNF.
func (p *Gini) Check(ctx context.Context, script string) (Result, error) {
	commands, _, err := sexp.ParseString("script", script)
	//
	if err != nil {
		return UNKNOWN, err
	}
	//
	b := newCircuitBuilder()
	//
	root, ok := b.commands(commands)
	//
	if !ok {
		log.Debugf("script is not propositional, giving up")
		return UNKNOWN, nil
	}
	//
	if ctx.Err() != nil {
		return UNKNOWN, fmt.Errorf("gini: %w", ctx.Err())
	}
	//
	g := gini.New()
	b.c.ToCnf(g)
	g.Assume(root)
	//
	switch solve(ctx, g.GoSolve()) {
	case 1:
		return SAT, nil
	case -1:
		return UNSAT, nil
	}
	//
	return UNKNOWN, fmt.Errorf("gini: %w", ctx.Err())
}

// Interval at which a running solve checks whether its context is done.
const giniPollInterval = 10 * time.Millisecond

// Wait for a running solve to finish, stopping it once the context is done.
// This returns 0 when the solve was stopped without a result.
func solve(ctx context.Context, s inter.Solve) int {
	for {
		select {
		case <-ctx.Done():
			return s.Stop()
		default:
			if result := s.Try(giniPollInterval); result != 0 {
				return result
			}
		}
	}
}

// Translates solver commands into a circuit.
type circuitBuilder struct {
	c *logic.C
	// Inputs allocated for declared symbols
	inputs map[string]z.Lit
}

func newCircuitBuilder() *circuitBuilder {
	return &circuitBuilder{logic.NewC(), make(map[string]z.Lit)}
}

// Translate a sequence of commands, returning the conjunction of all
// assertions.  This fails if any declaration or assertion falls outside the
// propositional fragment.
func (p *circuitBuilder) commands(commands []sexp.SExp) (z.Lit, bool) {
	var assertions []z.Lit
	//
	for _, c := range commands {
		l := c.AsList()
		//
		if l == nil {
			return p.c.F, false
		}
		//
		switch l.Head() {
		case "declare-const":
			if l.Len() != 3 || l.Get(2).String() != "Bool" {
				return p.c.F, false
			}
			//
			p.inputs[l.Get(1).String()] = p.c.Lit()
		case "declare-fun":
			if l.Len() != 4 || l.Get(2).AsList() == nil || l.Get(2).AsList().Len() != 0 ||
				l.Get(3).String() != "Bool" {
				return p.c.F, false
			}
			//
			p.inputs[l.Get(1).String()] = p.c.Lit()
		case "declare-sort":
			return p.c.F, false
		case "assert":
			if l.Len() != 2 {
				return p.c.F, false
			}
			//
			lit, ok := p.expr(l.Get(1))
			//
			if !ok {
				return p.c.F, false
			}
			//
			assertions = append(assertions, lit)
		}
	}
	//
	return p.c.Ands(assertions...), true
}

func (p *circuitBuilder) expr(e sexp.SExp) (z.Lit, bool) {
	if s := e.AsSymbol(); s != nil {
		return p.symbol(s.Value)
	}
	//
	l := e.AsList()
	//
	if l.Len() == 1 {
		// Nullary function application, such as (P)
		return p.expr(l.Get(0))
	} else if l.Len() == 0 || l.Get(0).AsSymbol() == nil {
		return p.c.F, false
	}
	//
	args, ok := p.exprs(l.Elements[1:])
	//
	if !ok {
		return p.c.F, false
	}
	//
	switch l.Head() {
	case "not":
		if len(args) == 1 {
			return args[0].Not(), true
		}
	case "and":
		return p.c.Ands(args...), true
	case "or":
		return p.c.Ors(args...), true
	case "=>":
		// Right associative
		result := args[len(args)-1]
		//
		for i := len(args) - 2; i >= 0; i-- {
			result = p.c.Or(args[i].Not(), result)
		}
		//
		return result, true
	case "=", "iff":
		// Chainable
		conjuncts := make([]z.Lit, 0, len(args))
		//
		for i := 0; i+1 < len(args); i++ {
			conjuncts = append(conjuncts, p.iff(args[i], args[i+1]))
		}
		//
		return p.c.Ands(conjuncts...), true
	case "xor":
		if len(args) == 2 {
			return p.iff(args[0], args[1]).Not(), true
		}
	case "ite":
		if len(args) == 3 {
			return p.c.Or(p.c.And(args[0], args[1]), p.c.And(args[0].Not(), args[2])), true
		}
	}
	//
	return p.c.F, false
}

func (p *circuitBuilder) exprs(elements []sexp.SExp) ([]z.Lit, bool) {
	lits := make([]z.Lit, len(elements))
	//
	for i, e := range elements {
		var ok bool
		//
		if lits[i], ok = p.expr(e); !ok {
			return nil, false
		}
	}
	//
	return lits, true
}

func (p *circuitBuilder) symbol(name string) (z.Lit, bool) {
	switch name {
	case "true":
		return p.c.T, true
	case "false":
		return p.c.F, true
	}
	//
	lit, ok := p.inputs[name]
	//
	return lit, ok
}

func (p *circuitBuilder) iff(a z.Lit, b z.Lit) z.Lit {
	return p.c.And(p.c.Or(a.Not(), b), p.c.Or(a, b.Not()))
}
