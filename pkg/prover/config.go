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
	"time"
)

// Strategy identifies one of the available proof search strategies.
type Strategy uint8

const (
	// NATURAL_DEDUCTION performs recursive backtracking search using
	// introduction rules, user-supplied rules and axioms.
	NATURAL_DEDUCTION Strategy = iota
	// BACKWARD_CHAINING performs goal-directed AND/OR search.
	BACKWARD_CHAINING
	// FORWARD_CHAINING computes the breadth-first closure of the axioms under
	// the rules.
	FORWARD_CHAINING
	// RESOLUTION performs refutation of the negated goal over clauses.
	RESOLUTION
)

// Strategies lists all strategies in a fixed order.
var Strategies = []Strategy{NATURAL_DEDUCTION, BACKWARD_CHAINING, FORWARD_CHAINING, RESOLUTION}

func (s Strategy) String() string {
	switch s {
	case NATURAL_DEDUCTION:
		return "natural-deduction"
	case BACKWARD_CHAINING:
		return "backward-chaining"
	case FORWARD_CHAINING:
		return "forward-chaining"
	case RESOLUTION:
		return "resolution"
	}
	//
	return "???"
}

// ParseStrategy converts a (short or long) strategy name into a strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "nd", "natural-deduction":
		return NATURAL_DEDUCTION, nil
	case "bc", "backward-chaining":
		return BACKWARD_CHAINING, nil
	case "fc", "forward-chaining":
		return FORWARD_CHAINING, nil
	case "res", "resolution":
		return RESOLUTION, nil
	}
	//
	return 0, fmt.Errorf("unknown strategy \"%s\"", name)
}

// HeuristicWeights bias the order in which candidate axioms and rules are
// attempted.  See WeightedComparator for how these are combined.
type HeuristicWeights struct {
	// Penalty applied per node of the candidate formula.
	Complexity float64 `yaml:"complexity"`
	// Reward applied per unit of axiom priority.
	AxiomPriority float64 `yaml:"axiom_priority"`
	// Reward applied per unit of rule priority.
	RulePriority float64 `yaml:"rule_priority"`
	// Penalty applied for shape mismatch with the goal.
	GoalDistance float64 `yaml:"goal_distance"`
}

// SearchConfig bounds the resources available to a single proof attempt.
type SearchConfig struct {
	// Maximum recursion depth (or derivation depth for forward chaining).
	MaxDepth uint `yaml:"max_depth"`
	// Wall-clock budget for a single proof attempt.
	Timeout time.Duration `yaml:"timeout"`
	// Maximum number of search steps (goal expansions, queue pops or
	// resolvents, depending upon the strategy).
	MaxSteps uint `yaml:"max_steps"`
	// Enables memoisation of failed goals in backward chaining.
	EnableCaching bool `yaml:"enable_caching"`
	// Weights used by the default comparator.
	Weights HeuristicWeights `yaml:"weights"`
}

// DefaultSearchConfig returns the default search configuration.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		MaxDepth:      50,
		Timeout:       60 * time.Second,
		MaxSteps:      10000,
		EnableCaching: true,
		Weights:       DefaultWeights(),
	}
}

// DefaultWeights returns the default heuristic weights.
func DefaultWeights() HeuristicWeights {
	return HeuristicWeights{
		Complexity:    1.0,
		AxiomPriority: 1.5,
		RulePriority:  1.2,
		GoalDistance:  2.0,
	}
}
