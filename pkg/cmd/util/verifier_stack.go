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
package cmd

import (
	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
	"github.com/sravinet/aisp-open-core-sub005/pkg/property"
	"github.com/sravinet/aisp-open-core-sub005/pkg/prover"
	"github.com/sravinet/aisp-open-core-sub005/pkg/smt/solver"
	"github.com/sravinet/aisp-open-core-sub005/pkg/verify"
)

// VerifierStack bundles together everything needed to verify a theory: the
// proof search engine, the solver interface and the orchestrator which combines
// them.
type VerifierStack struct {
	// Theory being verified.
	theory property.Theory
	// Settings used to construct each component.
	settings verify.Settings
	// Proof search engine (including the standard axioms if requested).
	engine *prover.Engine
	// Solver interface for the selected backend.
	solver *solver.Interface
	// Orchestrator combining engine and solver.
	orchestrator *verify.Orchestrator
}

// Engine returns the proof search engine for this stack.
func (p *VerifierStack) Engine() *prover.Engine {
	return p.engine
}

// Solver returns the solver interface for this stack.
func (p *VerifierStack) Solver() *solver.Interface {
	return p.solver
}

// Orchestrator returns the orchestrator for this stack.
func (p *VerifierStack) Orchestrator() *verify.Orchestrator {
	return p.orchestrator
}

// Settings returns the settings used to construct this stack.
func (p *VerifierStack) Settings() verify.Settings {
	return p.settings
}

// Theory returns the theory being verified.
func (p *VerifierStack) Theory() property.Theory {
	return p.theory
}

// Tasks returns one verification task for each property in the theory, where
// every hypothesis of the theory is assumed.
func (p *VerifierStack) Tasks() []verify.Task {
	tasks := make([]verify.Task, len(p.theory.Properties))
	//
	for i, prop := range p.theory.Properties {
		tasks[i] = verify.NewTask(prop, p.theory.Hypotheses...)
	}
	//
	return tasks
}

// Hypotheses returns the structure of every hypothesis in the theory.
func (p *VerifierStack) Hypotheses() []formula.Formula {
	hypotheses := make([]formula.Formula, len(p.theory.Hypotheses))
	//
	for i, h := range p.theory.Hypotheses {
		hypotheses[i] = h.Structure
	}
	//
	return hypotheses
}
