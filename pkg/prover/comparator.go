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
	"cmp"
	"reflect"
	"slices"

	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
)

// Candidate is an axiom or rule which may be attempted against a goal.
type Candidate struct {
	// Name of the axiom or rule.
	Name string
	// Formula of the axiom, or conclusion of the rule.
	Formula formula.Formula
	// Priority of the axiom or rule.
	Priority uint
	// Rule indicates whether this is a rule (rather than an axiom).
	Rule bool
	// Index into the engine's axioms (or rules).
	Index int
}

// Comparator determines the order in which candidates are attempted for a given
// goal.  Compare returns a negative number when a should be attempted before b,
// a positive number when b should be attempted before a, and zero otherwise.
// Candidates which compare equal retain their declaration order.
type Comparator interface {
	Compare(goal formula.Formula, a Candidate, b Candidate) int
}

// DeclarationOrder is a comparator which attempts candidates in the order they
// were declared.
type DeclarationOrder struct{}

// Compare always returns zero.
func (DeclarationOrder) Compare(formula.Formula, Candidate, Candidate) int {
	return 0
}

// WeightedComparator orders candidates by descending score, where a score is
// a weighted combination of priority, complexity and goal distance.  The
// weights are an extension point and the particular combination here is a
// reasonable default rather than a fixed contract.
type WeightedComparator struct {
	Weights HeuristicWeights
}

// NewWeightedComparator constructs a comparator for a given set of weights.
func NewWeightedComparator(weights HeuristicWeights) *WeightedComparator {
	return &WeightedComparator{weights}
}

// Compare two candidates with respect to a given goal.
func (p *WeightedComparator) Compare(goal formula.Formula, a Candidate, b Candidate) int {
	return cmp.Compare(p.Score(goal, b), p.Score(goal, a))
}

// Score a candidate with respect to a given goal, where higher scores are
// attempted first.
func (p *WeightedComparator) Score(goal formula.Formula, c Candidate) float64 {
	priority := p.Weights.AxiomPriority
	//
	if c.Rule {
		priority = p.Weights.RulePriority
	}
	//
	complexity := float64(formula.Complexity(c.Formula)) / 10
	//
	return float64(c.Priority)*priority - p.Weights.Complexity*complexity -
		p.Weights.GoalDistance*float64(distance(goal, c.Formula))
}

// Estimate how far a candidate is from a goal, based on their outermost shape.
// Zero means the same head, one means the candidate matches anything, and two
// means the heads differ.
func distance(goal formula.Formula, candidate formula.Formula) uint {
	if _, ok := candidate.(*formula.Hole); ok {
		return 1
	} else if reflect.TypeOf(goal) != reflect.TypeOf(candidate) {
		return 2
	}
	//
	switch g := goal.(type) {
	case *formula.Atomic:
		if g.Predicate != candidate.(*formula.Atomic).Predicate {
			return 2
		}
	case *formula.FunctionApplication:
		if g.Function != candidate.(*formula.FunctionApplication).Function {
			return 2
		}
	}
	//
	return 0
}

// Sort candidates for a given goal, preserving declaration order amongst equals.
func sortCandidates(comparator Comparator, goal formula.Formula, candidates []Candidate) []Candidate {
	sorted := slices.Clone(candidates)
	//
	slices.SortStableFunc(sorted, func(a, b Candidate) int {
		return comparator.Compare(goal, a, b)
	})
	//
	return sorted
}
