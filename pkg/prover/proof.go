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
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
)

// ErrProofInconsistency is returned when a generated proof fails its
// structural re-check.  This indicates a fault in the engine, and is never
// reported as a successful proof.
var ErrProofInconsistency = errors.New("proof inconsistency")

// JustificationKind determines how a proof step was justified.
type JustificationKind uint8

const (
	// ASSUMPTION steps are hypotheses, introduced assumptions or the negated
	// goal of a refutation.
	ASSUMPTION JustificationKind = iota
	// AXIOM steps are instances of an axiom.
	AXIOM
	// RULE steps follow from earlier steps by a rule.
	RULE
)

// Names of the assumptions steps which can be introduced by the engine.
const (
	hypothesisName = "hypothesis"
	assumptionName = "assumption"
	negatedGoal    = "negated_goal"
)

// Names of the rules built into the engine.
const (
	implicationIntro   = "implication_intro"
	conjunctionIntro   = "conjunction_intro"
	biconditionalIntro = "biconditional_intro"
	universalIntro     = "universal_intro"
	resolutionRule     = "resolution"
)

var builtinRules = []string{implicationIntro, conjunctionIntro, biconditionalIntro, universalIntro, resolutionRule}

// Justification for a single proof step.
type Justification struct {
	Kind JustificationKind
	// Name of the axiom, rule or assumption.
	Name string
}

func (j Justification) String() string {
	switch j.Kind {
	case ASSUMPTION:
		return j.Name
	case AXIOM:
		return "axiom " + j.Name
	default:
		return "rule " + j.Name
	}
}

// ProofStep is a single line of a proof.
type ProofStep struct {
	// Position of this step within the proof.
	ID uint
	// Formula established by this step.
	Formula formula.Formula
	// Justification for this step.
	Justification Justification
	// Steps this step depends upon, which must all occur earlier.
	Dependencies []uint
	// Nesting level at which an assumption was introduced (zero otherwise).
	Level uint
}

// Proof is a sequence of steps, the last of which establishes the goal (or
// the empty clause, for a refutation).
type Proof struct {
	Goal     formula.Formula
	Strategy Strategy
	Steps    []ProofStep
}

// Length returns the number of steps in this proof.
func (p *Proof) Length() uint {
	return uint(len(p.Steps))
}

// Depth returns the length of the longest dependency chain in this proof.
func (p *Proof) Depth() uint {
	depths := make([]uint, len(p.Steps))
	deepest := uint(0)
	//
	for i, step := range p.Steps {
		depth := uint(1)
		//
		for _, dep := range step.Dependencies {
			if dep < uint(i) {
				depth = max(depth, depths[dep]+1)
			}
		}
		//
		depths[i] = depth
		deepest = max(deepest, depth)
	}
	//
	return deepest
}

// RulesUsed returns the distinct rules used in this proof, in order of first
// use.
func (p *Proof) RulesUsed() []string {
	var rules []string
	//
	for _, step := range p.Steps {
		if step.Justification.Kind == RULE && !slices.Contains(rules, step.Justification.Name) {
			rules = append(rules, step.Justification.Name)
		}
	}
	//
	return rules
}

// Validate re-checks the structure of this proof.  Every dependency must refer
// to a strictly earlier step, every axiom or rule named must be known, and the
// final step must establish the goal (or the empty clause, for resolution).
func (p *Proof) Validate(axioms []string, rules []string) error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("%w: empty proof", ErrProofInconsistency)
	}
	//
	for i, step := range p.Steps {
		if step.ID != uint(i) {
			return fmt.Errorf("%w: step %d has id %d", ErrProofInconsistency, i, step.ID)
		}
		//
		for _, dep := range step.Dependencies {
			if dep >= step.ID {
				return fmt.Errorf("%w: step %d depends on later step %d", ErrProofInconsistency, i, dep)
			}
		}
		//
		if err := validateJustification(step, axioms, rules); err != nil {
			return err
		}
	}
	//
	last := p.Steps[len(p.Steps)-1].Formula
	//
	if p.Strategy == RESOLUTION {
		if !isEmptyClause(last) {
			return fmt.Errorf("%w: refutation does not end in the empty clause", ErrProofInconsistency)
		}
	} else if _, err := Unify(last, p.Goal, nil); err != nil {
		return fmt.Errorf("%w: final step %s does not establish %s", ErrProofInconsistency, last, p.Goal)
	}
	//
	return nil
}

func validateJustification(step ProofStep, axioms []string, rules []string) error {
	var known bool
	//
	switch j := step.Justification; j.Kind {
	case ASSUMPTION:
		known = j.Name == hypothesisName || j.Name == assumptionName || j.Name == negatedGoal
	case AXIOM:
		known = slices.Contains(axioms, j.Name)
	case RULE:
		known = slices.Contains(rules, j.Name) || slices.Contains(builtinRules, j.Name)
	}
	//
	if !known {
		return fmt.Errorf("%w: step %d has unknown justification %s", ErrProofInconsistency, step.ID,
			step.Justification)
	}
	//
	return nil
}

func (p *Proof) String() string {
	var builder strings.Builder
	//
	for _, step := range p.Steps {
		builder.WriteString(fmt.Sprintf("%3d. %s\t[%s]", step.ID+1, step.Formula, step.Justification))
		//
		if len(step.Dependencies) > 0 {
			var deps []string
			//
			for _, dep := range step.Dependencies {
				deps = append(deps, fmt.Sprintf("%d", dep+1))
			}
			//
			builder.WriteString(" from ")
			builder.WriteString(strings.Join(deps, ", "))
		}
		//
		builder.WriteString("\n")
	}
	//
	return builder.String()
}

// Extract the steps needed to establish a given root step, renumbering them
// consecutively and applying a final substitution to their formulas.
func extractProof(goal formula.Formula, strategy Strategy, steps []ProofStep, root uint,
	subst Substitution) *Proof {
	var (
		needed = make([]bool, len(steps))
		worker = []uint{root}
	)
	//
	for len(worker) > 0 {
		n := worker[len(worker)-1]
		worker = worker[:len(worker)-1]
		//
		if !needed[n] {
			needed[n] = true
			worker = append(worker, steps[n].Dependencies...)
		}
	}
	//
	var (
		mapping = make([]uint, len(steps))
		nsteps  []ProofStep
	)
	//
	for i, step := range steps {
		if !needed[i] {
			continue
		}
		//
		mapping[i] = uint(len(nsteps))
		deps := make([]uint, len(step.Dependencies))
		//
		for j, dep := range step.Dependencies {
			deps[j] = mapping[dep]
		}
		//
		nsteps = append(nsteps, ProofStep{mapping[i], subst.Apply(step.Formula), step.Justification, deps,
			step.Level})
	}
	//
	return &Proof{goal, strategy, nsteps}
}
