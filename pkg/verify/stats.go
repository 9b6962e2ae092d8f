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
	"time"

	"github.com/sravinet/aisp-open-core-sub005/pkg/verdict"
)

// MethodStats records how a single method fared across a batch.
type MethodStats struct {
	Attempts  uint
	Successes uint
	TotalTime time.Duration
}

// SuccessRate returns the fraction of attempts which decided their property.
func (s MethodStats) SuccessRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	//
	return float64(s.Successes) / float64(s.Attempts)
}

// Statistics aggregates the outcome of a batch.
type Statistics struct {
	Total    uint
	Verified uint
	Failed   uint
	Unknown  uint
	// Wall-clock time for the whole batch.
	TotalTime time.Duration
	// Mean time per attempted property.
	AverageTime time.Duration
	// Mean bytes allocated per attempted property.
	AverageMemory uint64
	// Per-method figures.
	Methods map[Method]MethodStats
	// Cache figures (zero when caching is disabled).
	Cache CacheStats
}

// Fold the result of a single property into these statistics.
func (s *Statistics) add(r PropertyResult) {
	if s.Methods == nil {
		s.Methods = make(map[Method]MethodStats)
	}
	//
	s.Total++
	//
	switch r.Verdict.Kind() {
	case verdict.PROVEN:
		s.Verified++
	case verdict.UNKNOWN:
		s.Unknown++
	default:
		s.Failed++
	}
	//
	for _, a := range r.Attempts {
		m := s.Methods[a.Method]
		m.Attempts++
		m.TotalTime += a.Time
		//
		if a.Verdict.IsDecided() {
			m.Successes++
		}
		//
		s.Methods[a.Method] = m
	}
}
