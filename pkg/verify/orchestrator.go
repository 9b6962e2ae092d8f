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
package verify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
	"github.com/sravinet/aisp-open-core-sub005/pkg/prover"
	"github.com/sravinet/aisp-open-core-sub005/pkg/smt"
	"github.com/sravinet/aisp-open-core-sub005/pkg/smt/solver"
	"github.com/sravinet/aisp-open-core-sub005/pkg/util"
	"github.com/sravinet/aisp-open-core-sub005/pkg/verdict"
	"golang.org/x/sync/errgroup"
)

// Task is a single property to be verified.
type Task struct {
	Name     string
	Property *formula.Property
	// Properties assumed to hold whilst verifying this one.
	Hypotheses []*formula.Property
	// Methods to attempt in order (or nil for the configured default).
	Methods []Method
}

// NewTask constructs a task for a given property, using the default methods.
func NewTask(property *formula.Property, hypotheses ...*formula.Property) Task {
	return Task{property.Name, property, hypotheses, nil}
}

// Orchestrator verifies batches of properties, using proof search and/or a
// solver as configured.  The engine and solver are shared by all tasks.
type Orchestrator struct {
	engine *prover.Engine
	solver *solver.Interface
	config Config
	cache  *Cache
}

// New constructs an orchestrator.  Either the engine or the solver may be nil,
// in which case methods requiring them cannot decide any property.
func New(engine *prover.Engine, iface *solver.Interface, config Config) *Orchestrator {
	var cache *Cache
	//
	if config.Cache.Enabled {
		cache = NewCache(config.Cache)
	}
	//
	if iface == nil {
		iface = solver.New(nil, solver.Config{RequireSolver: config.RequireSolver})
	}
	//
	return &Orchestrator{engine, iface, config, cache}
}

// Cache returns the verdict cache (or nil if caching is disabled).
func (p *Orchestrator) Cache() *Cache {
	return p.cache
}

// VerifyAll verifies a batch of tasks.  Every task is reported, even when
// others fail.  Environment faults (e.g. a required solver being unavailable)
// and inconsistent proofs yield an error status, but do not prevent remaining
// tasks from running.
func (p *Orchestrator) VerifyAll(ctx context.Context, tasks []Task) Result {
	var (
		stats   = util.NewPerfStats()
		results = make([]PropertyResult, len(tasks))
		run     = batch{orchestrator: p, perf: stats}
	)
	//
	if len(tasks) == 0 {
		return Result{Status: Status{Kind: ERROR, Reason: "no properties to verify"}}
	}
	//
	if p.config.TotalTimeout > 0 {
		var cancel context.CancelFunc
		//
		ctx, cancel = context.WithTimeout(ctx, p.config.TotalTimeout)
		defer cancel()
	}
	//
	group, gctx := errgroup.WithContext(ctx)
	//
	if p.config.Parallel && p.config.Workers > 1 {
		group.SetLimit(int(p.config.Workers))
	} else {
		group.SetLimit(1)
	}
	//
	for i, task := range tasks {
		results[i] = PropertyResult{Name: task.Name, Verdict: verdict.Unknown(), Reason: TIMEOUT}
		//
		group.Go(func() error {
			if reason, stop := run.stopped(gctx); stop {
				results[i].Reason = reason
				return nil
			}
			//
			results[i] = run.verify(gctx, task)
			//
			return nil
		})
	}
	//
	_ = group.Wait()
	//
	result := Result{Properties: results}
	//
	for _, r := range results {
		result.Statistics.add(r)
	}
	//
	result.Statistics.TotalTime = stats.Elapsed()
	//
	if n := uint(len(tasks)) - run.skipped(); n > 0 {
		result.Statistics.AverageTime = result.Statistics.TotalTime / time.Duration(n)
		result.Statistics.AverageMemory = stats.Allocated() / uint64(n)
	}
	//
	if p.cache != nil {
		result.Statistics.Cache = p.cache.Stats()
	}
	//
	result.Status = run.status(ctx.Err() != nil, results)
	stats.Log("verification")
	//
	return result
}

// Per-batch state shared between workers.
type batch struct {
	orchestrator *Orchestrator
	mutex        sync.Mutex
	// First environment fault
	fatal error
	// Number of tasks never attempted
	unattempted uint
	// Reason for stopping early
	exhausted string
	// Time and memory use since the start of the batch
	perf *util.PerfStats
}

// Check whether the batch has run out of time or memory, in which case the
// task about to start is skipped for the given reason.
func (p *batch) stopped(ctx context.Context) (FailureReason, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	var (
		limit  = p.orchestrator.config.MemoryLimit
		reason FailureReason
	)
	//
	switch {
	case ctx.Err() != nil:
		p.exhausted, reason = "total timeout expired", TIMEOUT
	case limit > 0 && p.perf.Allocated() > limit:
		p.exhausted, reason = "memory limit exceeded", RESOURCE_EXHAUSTED
	default:
		return 0, false
	}
	//
	p.unattempted++
	//
	return reason, true
}

func (p *batch) skipped() uint {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	return p.unattempted
}

func (p *batch) fail(err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	if p.fatal == nil {
		p.fatal = err
	}
}

// Classify the overall status of a batch, where expired indicates the batch
// deadline passed.  Tasks which timed out after the deadline were cut short
// rather than failing, hence the batch is incomplete.
func (p *batch) status(expired bool, results []PropertyResult) Status {
	var (
		total    = uint(len(results))
		verified uint
		failures []Failure
		cut      bool
	)
	//
	for _, r := range results {
		if r.Verdict.Kind() == verdict.PROVEN {
			verified++
		} else {
			failures = append(failures, Failure{r.Name, r.Reason, r.Verdict.Reason()})
			cut = cut || (expired && r.Reason == TIMEOUT)
		}
	}
	//
	switch {
	case p.fatal != nil:
		return Status{ERROR, verified, total, failures, p.fatal.Error()}
	case p.unattempted > 0:
		return Status{INCOMPLETE, verified, total, failures, p.exhausted}
	case cut:
		return Status{INCOMPLETE, verified, total, failures, "total timeout expired"}
	case verified == total:
		return Status{VERIFIED, verified, total, nil, ""}
	case verified == 0:
		return Status{FAILED, verified, total, failures, ""}
	}
	//
	return Status{PARTIALLY_VERIFIED, verified, total, failures, ""}
}

// Verify a single task, trying each method in turn until one decides it.
func (p *batch) verify(ctx context.Context, task Task) PropertyResult {
	var (
		o       = p.orchestrator
		start   = time.Now()
		methods = task.Methods
		result  = PropertyResult{Name: task.Name, Verdict: verdict.Unknown(), Reason: UNSUPPORTED, Attempted: true}
	)
	//
	if methods == nil {
		methods = o.config.Methods
	}
	//
	if o.config.PerPropertyTimeout > 0 {
		var cancel context.CancelFunc
		//
		ctx, cancel = context.WithTimeout(ctx, o.config.PerPropertyTimeout)
		defer cancel()
	}
	//
	for _, method := range methods {
		attempt, reason, err := o.attempt(ctx, method, task)
		result.Attempts = append(result.Attempts, attempt)
		result.Verdict, result.Method, result.Reason = attempt.Verdict, method, reason
		//
		if err != nil {
			log.Debugf("%s: %s failed: %s", task.Name, method, err)
			p.fail(err)
			//
			break
		} else if attempt.Verdict.Kind() != verdict.UNKNOWN {
			break
		}
	}
	//
	result.Time = time.Since(start)
	log.Debugf("%s: %s after %s", task.Name, result.Verdict, result.Time)
	//
	return result
}

// Attempt a single method on a task, consulting the cache first.  This
// returns an error only for faults which should halt the batch.
func (p *Orchestrator) attempt(ctx context.Context, method Method, task Task) (Attempt, FailureReason, error) {
	var (
		start = time.Now()
		key   = cacheKey(method, task)
	)
	//
	if p.cache != nil {
		if v, ok := p.cache.Get(key); ok {
			return Attempt{method, v, time.Since(start), true}, reasonFor(v, nil), nil
		}
	}
	//
	var (
		v      verdict.Verdict
		reason FailureReason
		err    error
	)
	//
	switch method {
	case SMT_SOLVER:
		v, reason, err = p.solve(ctx, task)
	default:
		v, reason, err = p.prove(ctx, method, task)
	}
	//
	if err == nil && p.cache != nil && v.IsDecided() {
		p.cache.Put(key, v)
	}
	//
	return Attempt{method, v, time.Since(start), false}, reason, err
}

func (p *Orchestrator) solve(ctx context.Context, task Task) (verdict.Verdict, FailureReason, error) {
	script := smt.NewScript(task.Property, task.Hypotheses...)
	v, err := p.solver.Verify(ctx, script.String())
	//
	switch {
	case err != nil:
		return verdict.Error(err.Error()), SOLVER_ERROR, err
	case v.Kind() == verdict.ERROR && strings.HasPrefix(v.Reason(), "Syntax error"):
		return v, INVALID, nil
	case v.Kind() == verdict.UNKNOWN && ctx.Err() != nil:
		return v, TIMEOUT, nil
	case v.Kind() == verdict.UNKNOWN:
		return v, UNSUPPORTED, nil
	}
	//
	return v, reasonFor(v, nil), nil
}

func (p *Orchestrator) prove(ctx context.Context, method Method, task Task) (verdict.Verdict, FailureReason, error) {
	if p.engine == nil {
		return verdict.Unknown(), UNSUPPORTED, nil
	}
	//
	var strategy prover.Strategy
	//
	switch method {
	case DIRECT_PROOF:
		strategy = prover.NATURAL_DEDUCTION
	case AUTOMATED_PROOF:
		strategy = prover.BACKWARD_CHAINING
	case PROOF_BY_CONTRADICTION:
		strategy = prover.RESOLUTION
	case FORWARD_CHAINING:
		strategy = prover.FORWARD_CHAINING
	default:
		return verdict.Error(fmt.Sprintf("unknown method %s", method)), INVALID, nil
	}
	//
	hypotheses := make([]formula.Formula, len(task.Hypotheses))
	//
	for i, h := range task.Hypotheses {
		hypotheses[i] = h.Structure
	}
	//
	outcome := p.engine.Prove(ctx, strategy, task.Property.Structure, hypotheses...)
	//
	if errors.Is(outcome.Err, prover.ErrProofInconsistency) {
		return outcome.Verdict, PROOF_FAILED, outcome.Err
	}
	//
	return outcome.Verdict, reasonFor(outcome.Verdict, outcome.Exhausted), nil
}

// Determine the failure reason implied by a verdict, given why the search
// stopped (if it did so early).
func reasonFor(v verdict.Verdict, exhausted error) FailureReason {
	switch {
	case v.Kind() == verdict.DISPROVEN:
		return COUNTEREXAMPLE
	case v.Kind() == verdict.ERROR:
		return SOLVER_ERROR
	case errors.Is(exhausted, context.DeadlineExceeded), errors.Is(exhausted, context.Canceled):
		return TIMEOUT
	case errors.Is(exhausted, prover.ErrResourceExhausted):
		return RESOURCE_EXHAUSTED
	case exhausted == nil && v.Kind() == verdict.UNKNOWN:
		return PROOF_FAILED
	}
	//
	return UNSUPPORTED
}

func cacheKey(method Method, task Task) string {
	var builder strings.Builder
	//
	builder.WriteString(method.String())
	builder.WriteString(":")
	builder.WriteString(formula.Key(task.Property.Structure))
	//
	for _, h := range task.Hypotheses {
		builder.WriteString("|")
		builder.WriteString(formula.Key(h.Structure))
	}
	//
	return builder.String()
}
