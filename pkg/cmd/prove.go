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
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	cmd_util "github.com/sravinet/aisp-open-core-sub005/pkg/cmd/util"
	"github.com/sravinet/aisp-open-core-sub005/pkg/prover"
	"github.com/sravinet/aisp-open-core-sub005/pkg/verdict"
)

// proveCmd represents the prove command
var proveCmd = &cobra.Command{
	Use:   "prove [flags] file...",
	Short: "Search for proofs of the properties declared in one or more files.",
	Long: `Search for a proof of each property declared in one or more property
	files using a single strategy, printing the steps of any proof found.`,
	Run: func(cmd *cobra.Command, args []string) {
		strategy, err := prover.ParseStrategy(GetString(cmd, "strategy"))
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		stack := cmd_util.NewVerifierStack().
			WithSettings(getSettings(cmd)).
			WithStandardLibrary(!GetFlag(cmd, "no-stdlib")).
			Read(args...).
			Build()
		//
		var (
			hypotheses = stack.Hypotheses()
			proven     = true
		)
		//
		for _, prop := range stack.Theory().Properties {
			outcome := stack.Engine().Prove(context.Background(), strategy, prop.Structure, hypotheses...)
			//
			fmt.Printf("%s: %s (%s)\n", prop.Name, outcome.Verdict, outcome.Stats)
			//
			if outcome.Verdict.Kind() == verdict.PROVEN {
				fmt.Println(outcome.Proof)
			} else {
				proven = false
				//
				if outcome.Exhausted != nil {
					fmt.Printf("search stopped: %s\n", outcome.Exhausted)
				}
			}
		}
		//
		if !proven {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(proveCmd)
	proveCmd.Flags().StringP("strategy", "s", "bc", "proof search strategy (nd, bc, fc or res)")
	addSearchFlags(proveCmd)
}
