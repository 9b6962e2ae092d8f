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

	"github.com/spf13/cobra"
	cmd_util "github.com/sravinet/aisp-open-core-sub005/pkg/cmd/util"
	"github.com/sravinet/aisp-open-core-sub005/pkg/smt"
)

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile [flags] file...",
	Short: "Compile the properties declared in one or more files into SMT-LIB.",
	Long: `Compile each property declared in one or more property files into an
	SMT-LIB script, which asks whether the property follows from the
	hypotheses of the files.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			theory = cmd_util.ReadPropertyFiles(args...)
			model  = GetFlag(cmd, "model")
		)
		//
		for i, prop := range theory.Properties {
			script := smt.NewScript(prop, theory.Hypotheses...)
			//
			if model {
				script = script.WithModel()
			}
			//
			if i != 0 {
				fmt.Println()
			}
			//
			fmt.Printf("; property %s\n", prop.Name)
			//
			if _, err := script.WriteTo(os.Stdout); err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().Bool("model", false, "request a model after (check-sat)")
}
