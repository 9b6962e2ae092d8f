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
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/sravinet/aisp-open-core-sub005/pkg/prover"
	"github.com/sravinet/aisp-open-core-sub005/pkg/smt/solver"
)

// Config determines how a batch is verified.
type Config struct {
	// Time budget for each property (across all methods).
	PerPropertyTimeout time.Duration
	// Time budget for the whole batch.
	TotalTimeout time.Duration
	// Bytes which may be allocated before remaining properties are skipped.
	MemoryLimit uint64
	// Methods attempted for a property which specifies none.
	Methods []Method
	// Whether properties are verified concurrently.
	Parallel bool
	// Maximum number of concurrent verifications.
	Workers uint
	// Verdict cache configuration.
	Cache CacheConfig
	// Whether the absence of a solver is fatal.
	RequireSolver bool
}

// DefaultConfig returns the default verification configuration.
func DefaultConfig() Config {
	return Config{
		PerPropertyTimeout: 30 * time.Second,
		TotalTimeout:       300 * time.Second,
		MemoryLimit:        1 << 30,
		Methods:            []Method{SMT_SOLVER, AUTOMATED_PROOF, DIRECT_PROOF},
		Parallel:           true,
		Workers:            uint(runtime.NumCPU()),
		Cache:              CacheConfig{true, 1000, 3600 * time.Second},
		RequireSolver:      false,
	}
}

// Settings combines the configuration of every component involved in
// verification, as read from a configuration file.
type Settings struct {
	Verification Config
	Search       prover.SearchConfig
	Solver       solver.Config
	// Name of the solver backend (see solver.Backends).
	Backend string
	// Location of the solver binary (or "" to search the PATH).
	Binary string
}

// DefaultSettings returns the default settings of every component.
func DefaultSettings() Settings {
	return Settings{DefaultConfig(), prover.DefaultSearchConfig(), solver.DefaultConfig(), "auto", ""}
}

// Layout of a configuration file.  Every field is optional, with absent
// fields retaining their defaults.
type settingsFile struct {
	Verification struct {
		PerPropertyTimeout string   `yaml:"per_property_timeout"`
		TotalTimeout       string   `yaml:"total_timeout"`
		MemoryLimit        *uint64  `yaml:"memory_limit"`
		Methods            []string `yaml:"methods"`
		Parallel           *bool    `yaml:"parallel"`
		Workers            *uint    `yaml:"workers"`
		RequireSolver      *bool    `yaml:"require_solver"`
		Cache              struct {
			Enabled *bool  `yaml:"enabled"`
			MaxSize *uint  `yaml:"max_size"`
			TTL     string `yaml:"ttl"`
		} `yaml:"cache"`
	} `yaml:"verification"`
	Search struct {
		MaxDepth      *uint                    `yaml:"max_depth"`
		Timeout       string                   `yaml:"timeout"`
		MaxSteps      *uint                    `yaml:"max_steps"`
		EnableCaching *bool                    `yaml:"enable_caching"`
		Weights       *prover.HeuristicWeights `yaml:"weights"`
	} `yaml:"search"`
	Solver struct {
		Backend string `yaml:"backend"`
		Binary  string `yaml:"binary"`
		Timeout string `yaml:"timeout"`
	} `yaml:"solver"`
}

// ReadSettings reads settings from a given YAML file.
func ReadSettings(filename string) (Settings, error) {
	// #nosec G304
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return Settings{}, err
	}
	//
	settings, err := ParseSettings(bytes)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return settings, nil
}

// ParseSettings parses settings from YAML text, starting from the defaults.
//
//nolint:revive
func ParseSettings(bytes []byte) (Settings, error) {
	var (
		file     settingsFile
		settings = DefaultSettings()
		errs     []error
	)
	//
	if err := yaml.UnmarshalWithOptions(bytes, &file, yaml.DisallowUnknownField()); err != nil {
		return settings, err
	}
	// Verification
	v := &settings.Verification
	errs = append(errs, duration(file.Verification.PerPropertyTimeout, &v.PerPropertyTimeout),
		duration(file.Verification.TotalTimeout, &v.TotalTimeout),
		duration(file.Verification.Cache.TTL, &v.Cache.TTL))
	assign(file.Verification.MemoryLimit, &v.MemoryLimit)
	assign(file.Verification.Parallel, &v.Parallel)
	assign(file.Verification.Workers, &v.Workers)
	assign(file.Verification.RequireSolver, &v.RequireSolver)
	assign(file.Verification.Cache.Enabled, &v.Cache.Enabled)
	assign(file.Verification.Cache.MaxSize, &v.Cache.MaxSize)
	//
	if file.Verification.Methods != nil {
		methods, err := ParseMethods(file.Verification.Methods)
		errs = append(errs, err)
		v.Methods = methods
	}
	// Search
	s := &settings.Search
	errs = append(errs, duration(file.Search.Timeout, &s.Timeout))
	assign(file.Search.MaxDepth, &s.MaxDepth)
	assign(file.Search.MaxSteps, &s.MaxSteps)
	assign(file.Search.EnableCaching, &s.EnableCaching)
	assign(file.Search.Weights, &s.Weights)
	// Solver
	errs = append(errs, duration(file.Solver.Timeout, &settings.Solver.Timeout))
	settings.Solver.RequireSolver = v.RequireSolver
	//
	if file.Solver.Backend != "" {
		settings.Backend = file.Solver.Backend
	}
	//
	settings.Binary = file.Solver.Binary
	//
	for _, err := range errs {
		if err != nil {
			return settings, err
		}
	}
	//
	return settings, nil
}

func assign[T any](value *T, target *T) {
	if value != nil {
		*target = *value
	}
}

func duration(text string, target *time.Duration) error {
	if text == "" {
		return nil
	}
	//
	d, err := time.ParseDuration(text)
	if err != nil {
		return fmt.Errorf("invalid duration \"%s\": %w", text, err)
	}
	//
	*target = d
	//
	return nil
}
