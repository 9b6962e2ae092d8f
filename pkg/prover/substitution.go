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
package prover

import (
	"fmt"
	"strings"

	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
)

// Binding is the value assigned to a hole by a substitution.  Exactly one of
// the two fields is non-nil, depending upon whether the hole was bound in
// formula or term position.
type Binding struct {
	Formula formula.Formula
	Term    formula.Term
}

func (b Binding) String() string {
	if b.Formula != nil {
		return b.Formula.String()
	}
	//
	return b.Term.String()
}

// Substitution maps hole names to their bindings.  Bindings may themselves
// contain holes, which are resolved when the substitution is applied.  A
// substitution is treated as immutable once shared; see Bind.
type Substitution map[string]Binding

// Lookup the binding for a given hole, if one exists.
func (p Substitution) Lookup(hole string) (Binding, bool) {
	b, ok := p[hole]
	return b, ok
}

// Bind returns a copy of this substitution extended with a given binding.
func (p Substitution) Bind(hole string, b Binding) Substitution {
	nsubst := p.Clone()
	nsubst[hole] = b
	//
	return nsubst
}

// Clone returns a (shallow) copy of this substitution.
func (p Substitution) Clone() Substitution {
	nsubst := make(Substitution, len(p)+1)
	//
	for k, v := range p {
		nsubst[k] = v
	}
	//
	return nsubst
}

// Apply this substitution to a formula, replacing every bound hole (in either
// position) by its fully resolved binding.
func (p Substitution) Apply(f formula.Formula) formula.Formula {
	if len(p) == 0 {
		return f
	}
	//
	return p.rewriter().Apply(f)
}

// ApplyTerm applies this substitution to a term.
func (p Substitution) ApplyTerm(t formula.Term) formula.Term {
	if len(p) == 0 {
		return t
	}
	//
	return p.rewriter().ApplyTerm(t)
}

func (p Substitution) rewriter() formula.Rewriter {
	var rw formula.Rewriter
	//
	rw.Formula = func(f formula.Formula) (formula.Formula, bool) {
		if h, ok := f.(*formula.Hole); ok {
			if b, ok := p[h.Name]; ok && b.Formula != nil {
				return rw.Apply(b.Formula), true
			}
		}
		//
		return nil, false
	}
	rw.Term = func(t formula.Term) (formula.Term, bool) {
		if h, ok := t.(*formula.Hole); ok {
			if b, ok := p[h.Name]; ok && b.Term != nil {
				return rw.ApplyTerm(b.Term), true
			}
		}
		//
		return nil, false
	}
	//
	return rw
}

func (p Substitution) String() string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for i, name := range formula.SortedKeys(p) {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(fmt.Sprintf("?%s := %s", name, p[name]))
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}

// Rename every hole in a formula by appending a given suffix.  This is used to
// obtain a fresh copy of an axiom schema or rule before unification.
func renameHoles(f formula.Formula, suffix string) formula.Formula {
	return holeRenamer(suffix).Apply(f)
}

func holeRenamer(suffix string) formula.Rewriter {
	return formula.Rewriter{
		Formula: func(f formula.Formula) (formula.Formula, bool) {
			if h, ok := f.(*formula.Hole); ok {
				return formula.NewHole(h.Name + suffix), true
			}
			//
			return nil, false
		},
		Term: func(t formula.Term) (formula.Term, bool) {
			if h, ok := t.(*formula.Hole); ok {
				return formula.NewHole(h.Name + suffix), true
			}
			//
			return nil, false
		},
	}
}
