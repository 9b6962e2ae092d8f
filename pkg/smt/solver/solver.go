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
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sravinet/aisp-open-core-sub005/pkg/smt"
	"github.com/sravinet/aisp-open-core-sub005/pkg/verdict"
)

// ErrSolverUnavailable is returned when a solver backend is required by
// configuration, but none is available.  This signals an environment fault,
// rather than a proof outcome.
var ErrSolverUnavailable = errors.New("solver unavailable")

// Result is the native satisfiability result reported by a backend.
type Result uint8

const (
	// SAT indicates the assertions are satisfiable.
	SAT Result = iota
	// UNSAT indicates the assertions are unsatisfiable.
	UNSAT
	// UNKNOWN indicates the backend could not decide.
	UNKNOWN
)

func (r Result) String() string {
	switch r {
	case SAT:
		return "sat"
	case UNSAT:
		return "unsat"
	}
	//
	return "unknown"
}

// ParseResult converts the textual response of a solver into a result.
// Anything other than "sat" or "unsat" is treated as unknown.
func ParseResult(text string) Result {
	switch text {
	case "sat":
		return SAT
	case "unsat":
		return UNSAT
	}
	//
	return UNKNOWN
}

// Backend represents a decision procedure capable of checking a complete
// solver script.
type Backend interface {
	// Name of this backend (for reporting).
	Name() string
	// Available determines whether this backend can actually be used in the
	// current environment.
	Available() bool
	// Check a given (validated) script and report its satisfiability.  This
	// should return promptly once the context is done.
	Check(ctx context.Context, script string) (Result, error)
}

// Config determines how solver queries are dispatched.
type Config struct {
	// Timeout applied to each individual query.
	Timeout time.Duration
	// RequireSolver determines whether the absence of a backend is fatal.
	RequireSolver bool
}

// DefaultConfig returns the default solver configuration.
func DefaultConfig() Config {
	return Config{30 * time.Second, false}
}

// Stats is a snapshot of the counters maintained by a solver interface.
type Stats struct {
	Queries      uint64
	SyntaxErrors uint64
	Proven       uint64
	Disproven    uint64
	Unknown      uint64
}

// Interface validates solver scripts and dispatches them to a backend,
// classifying the outcome as a verdict.  This is safe for concurrent use.
type Interface struct {
	backend Backend
	config  Config
	// counters
	queries      atomic.Uint64
	syntaxErrors atomic.Uint64
	proven       atomic.Uint64
	disproven    atomic.Uint64
	unknown      atomic.Uint64
}

// New constructs a solver interface for a given backend, which may be nil to
// indicate no backend is configured.
func New(backend Backend, config Config) *Interface {
	if backend == nil {
		backend = Disabled{}
	}
	//
	return &Interface{backend: backend, config: config}
}

// Backend returns the backend used by this interface.
func (p *Interface) Backend() Backend {
	return p.backend
}

// Verify checks a given solver script, whose final assertion is assumed to be
// the negation of the goal.  Hence, an unsatisfiable script means the goal is
// proven, whilst a satisfiable script yields a counterexample.  Malformed
// scripts produce an error verdict without ever reaching the backend.  An
// error is only returned for environment faults, such as a required backend
// being unavailable.
func (p *Interface) Verify(ctx context.Context, script string) (verdict.Verdict, error) {
	p.queries.Add(1)
	//
	if err := smt.Validate(script); err != nil {
		p.syntaxErrors.Add(1)
		return verdict.Error(fmt.Sprintf("Syntax error: %s", err.Error())), nil
	} else if !p.backend.Available() {
		if p.config.RequireSolver {
			return verdict.Verdict{}, fmt.Errorf("%w: backend %s", ErrSolverUnavailable, p.backend.Name())
		}
		//
		p.unknown.Add(1)
		//
		return verdict.Unknown(), nil
	}
	//
	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		//
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}
	//
	result, err := p.backend.Check(ctx, script)
	//
	switch {
	case err != nil && ctx.Err() != nil:
		log.Debugf("solver %s timed out: %s", p.backend.Name(), err)
		p.unknown.Add(1)
		//
		return verdict.Unknown(), nil
	case err != nil:
		return verdict.Error(fmt.Sprintf("Solver error: %s", err.Error())), nil
	}
	//
	log.Debugf("solver %s reported %s", p.backend.Name(), result)
	//
	switch result {
	case UNSAT:
		p.proven.Add(1)
		return verdict.Proven(), nil
	case SAT:
		p.disproven.Add(1)
		return verdict.Disproven(), nil
	default:
		p.unknown.Add(1)
		return verdict.Unknown(), nil
	}
}

// Stats returns a snapshot of the counters for this interface.
func (p *Interface) Stats() Stats {
	return Stats{
		Queries:      p.queries.Load(),
		SyntaxErrors: p.syntaxErrors.Load(),
		Proven:       p.proven.Load(),
		Disproven:    p.disproven.Load(),
		Unknown:      p.unknown.Load(),
	}
}

// Disabled is a backend which is never available.
type Disabled struct{}

// Name of this backend.
func (Disabled) Name() string { return "none" }

// Available always returns false.
func (Disabled) Available() bool { return false }

// Check always reports unknown.
func (Disabled) Check(context.Context, string) (Result, error) {
	return UNKNOWN, fmt.Errorf("%w: backend disabled", ErrSolverUnavailable)
}
