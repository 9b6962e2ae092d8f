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
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/sravinet/aisp-open-core-sub005/pkg/verify"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetStringArray gets an expected string array, or exits if an error arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringSlice(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetDuration gets an expected duration, or exits if an error arises.
func GetDuration(cmd *cobra.Command, flag string) time.Duration {
	r, err := cmd.Flags().GetDuration(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Determine the settings for a given command.  These start from the defaults,
// are then updated from the configuration file (if given) and, finally, from
// any flags given explicitly on the command line.
func getSettings(cmd *cobra.Command) verify.Settings {
	var (
		settings = verify.DefaultSettings()
		flags    = cmd.Flags()
		err      error
	)
	//
	if filename := GetString(cmd, "config"); filename != "" {
		if settings, err = verify.ReadSettings(filename); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	// Verification
	v := &settings.Verification
	//
	if flags.Changed("method") {
		if v.Methods, err = verify.ParseMethods(GetStringArray(cmd, "method")); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	if flags.Changed("timeout") {
		v.PerPropertyTimeout = GetDuration(cmd, "timeout")
	}
	//
	if flags.Changed("total-timeout") {
		v.TotalTimeout = GetDuration(cmd, "total-timeout")
	}
	//
	if flags.Changed("workers") {
		v.Workers = GetUint(cmd, "workers")
	}
	//
	if flags.Changed("sequential") {
		v.Parallel = !GetFlag(cmd, "sequential")
	}
	//
	if flags.Changed("no-cache") {
		v.Cache.Enabled = !GetFlag(cmd, "no-cache")
	}
	//
	if flags.Changed("require-solver") {
		v.RequireSolver = GetFlag(cmd, "require-solver")
		settings.Solver.RequireSolver = v.RequireSolver
	}
	// Search
	if flags.Changed("max-depth") {
		settings.Search.MaxDepth = GetUint(cmd, "max-depth")
	}
	//
	if flags.Changed("max-steps") {
		settings.Search.MaxSteps = GetUint(cmd, "max-steps")
	}
	//
	if flags.Changed("search-timeout") {
		settings.Search.Timeout = GetDuration(cmd, "search-timeout")
	}
	// Solver
	if flags.Changed("backend") {
		settings.Backend = GetString(cmd, "backend")
	}
	//
	if flags.Changed("z3") {
		settings.Binary = GetString(cmd, "z3")
	}
	//
	if flags.Changed("solver-timeout") {
		settings.Solver.Timeout = GetDuration(cmd, "solver-timeout")
	}
	//
	return settings
}

// Register the flags which control proof search.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().Uint("max-depth", 50, "maximum depth of proof search")
	cmd.Flags().Uint("max-steps", 10000, "maximum number of proof search steps")
	cmd.Flags().Duration("search-timeout", time.Minute, "time limit for each proof search")
	cmd.Flags().Bool("no-stdlib", false, "exclude the standard axioms and rules")
}

// Register the flags which control the solver.
func addSolverFlags(cmd *cobra.Command) {
	cmd.Flags().String("backend", "auto", "solver backend (auto, z3, z3lib, gini or none)")
	cmd.Flags().String("z3", "", "location of the z3 binary")
	cmd.Flags().Duration("solver-timeout", 30*time.Second, "time limit for each solver query")
	cmd.Flags().Bool("require-solver", false, "fail if no solver backend is available")
}
