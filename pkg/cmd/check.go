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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/sravinet/aisp-open-core-sub005/pkg/smt"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] file...",
	Short: "Check one or more SMT-LIB scripts are well formed.",
	Long: `Check one or more SMT-LIB scripts are well formed, without invoking a
	solver.  This identifies unbalanced parentheses, undeclared symbols and
	missing (check-sat) commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		failed := false
		//
		for _, filename := range args {
			if !checkScriptFile(filename) {
				failed = true
			}
		}
		//
		if failed {
			os.Exit(1)
		}
	},
}

// Check a single script, reporting the outcome.
func checkScriptFile(filename string) bool {
	var serr *smt.SyntaxError
	//
	bytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	//
	err = smt.Validate(string(bytes))
	//
	switch {
	case err == nil:
		fmt.Printf("%s: ok\n", filename)
		return true
	case errors.As(err, &serr) && serr.Line > 0:
		fmt.Printf("%s:%d: %s\n", filename, serr.Line, serr.Msg)
	default:
		fmt.Printf("%s: %s\n", filename, err)
	}
	//
	return false
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
