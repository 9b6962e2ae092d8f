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

// Stats records the work done by a single proof attempt.
type Stats struct {
	// Number of goals expanded (or facts popped, or resolvents generated).
	StepsExplored uint
	// Number of times a rule matched and was applied.
	RulesApplied uint
	// Number of alternatives abandoned after partial progress.
	Backtracks uint
	// Wall-clock time spent searching.
	SearchTime time.Duration
	// Deepest recursion reached (or number of resolution rounds).
	PeakDepth uint
}

func (s Stats) String() string {
	return fmt.Sprintf("steps=%d rules=%d backtracks=%d depth=%d time=%s", s.StepsExplored, s.RulesApplied,
		s.Backtracks, s.PeakDepth, s.SearchTime)
}
