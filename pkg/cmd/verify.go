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
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	cmd_util "github.com/sravinet/aisp-open-core-sub005/pkg/cmd/util"
	"github.com/sravinet/aisp-open-core-sub005/pkg/util/termio"
	"github.com/sravinet/aisp-open-core-sub005/pkg/verify"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [flags] file...",
	Short: "Verify the properties declared in one or more files.",
	Long: `Verify the properties declared in one or more property files (or
	directories of them).  Each property is attempted by the configured methods
	in turn, until one decides it.  The exit code is zero only if every property
	was verified.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			settings = getSettings(cmd)
			colour   = termio.IsTerminal(os.Stdout) && !GetFlag(cmd, "no-colour")
		)
		//
		stack := cmd_util.NewVerifierStack().
			WithSettings(settings).
			WithStandardLibrary(!GetFlag(cmd, "no-stdlib")).
			Read(args...).
			Build()
		//
		log.Debugf("verifying %d properties with %d axioms and %d rules", len(stack.Theory().Properties),
			len(stack.Engine().Axioms()), len(stack.Engine().Rules()))
		//
		result := stack.Orchestrator().VerifyAll(context.Background(), stack.Tasks())
		//
		report := newReport(result)
		report.colour = colour
		report.statistics = GetFlag(cmd, "stats")
		//
		if err := report.Print(os.Stdout); err != nil {
			log.Error(err)
			os.Exit(2)
		}
		//
		if result.Status.Kind != verify.VERIFIED {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringSlice("method", []string{"smt", "automated", "direct"},
		"verification methods to attempt, in order")
	verifyCmd.Flags().Duration("timeout", verify.DefaultConfig().PerPropertyTimeout, "time limit for each property")
	verifyCmd.Flags().Duration("total-timeout", verify.DefaultConfig().TotalTimeout, "time limit for all properties")
	verifyCmd.Flags().Uint("workers", verify.DefaultConfig().Workers, "maximum number of concurrent verifications")
	verifyCmd.Flags().Bool("sequential", false, "verify properties one at a time")
	verifyCmd.Flags().Bool("no-cache", false, "disable the verdict cache")
	verifyCmd.Flags().Bool("no-colour", false, "disable coloured output")
	verifyCmd.Flags().Bool("stats", false, "report verification statistics")
	addSearchFlags(verifyCmd)
	addSolverFlags(verifyCmd)
}
