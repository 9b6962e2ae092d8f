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
	"path"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/sravinet/aisp-open-core-sub005/pkg/property"
	"github.com/sravinet/aisp-open-core-sub005/pkg/prover"
	"github.com/sravinet/aisp-open-core-sub005/pkg/smt/solver"
	"github.com/sravinet/aisp-open-core-sub005/pkg/util/source"
	"github.com/sravinet/aisp-open-core-sub005/pkg/verify"
)

// PROPERTY_FILE_EXT is the extension of property files found when expanding
// directories.
const PROPERTY_FILE_EXT = ".aisp"

// VerifierStacker is an abstraction for building verifier stacks.  It allows us
// to configure the settings of each component, whether the standard axiom
// system is included, etc.
type VerifierStacker struct {
	// Settings for every component
	settings verify.Settings
	// Determines whether the standard axioms and rules are included.
	stdlib bool
	// Theory read from the property files
	theory property.Theory
}

// NewVerifierStack constructs a new stacker with default settings, which
// includes the standard axiom system.
func NewVerifierStack() *VerifierStacker {
	return &VerifierStacker{verify.DefaultSettings(), true, property.Theory{}}
}

// WithSettings determines the settings to use for every component.
func (p VerifierStacker) WithSettings(settings verify.Settings) VerifierStacker {
	p.settings = settings
	//
	return p
}

// WithStandardLibrary determines whether the standard axioms and rules are
// available to proof search.
func (p VerifierStacker) WithStandardLibrary(enable bool) VerifierStacker {
	p.stdlib = enable
	//
	return p
}

// WithTheory determines the theory to be verified.
func (p VerifierStacker) WithTheory(theory property.Theory) VerifierStacker {
	p.theory = theory
	//
	return p
}

// Theory returns the theory to be verified.
func (p VerifierStacker) Theory() property.Theory {
	return p.theory
}

// Read reads one or more property files (or directories of them) into this
// stack.
func (p VerifierStacker) Read(filenames ...string) VerifierStacker {
	p.theory = ReadPropertyFiles(filenames...)
	return p
}

// Build a fresh VerifierStack from this stacker.
func (p VerifierStacker) Build() VerifierStack {
	builder := prover.NewAxiomSystemBuilder()
	// Include standard axiom system (if requested)
	if p.stdlib {
		builder = prover.StandardAxiomSystem()
	}
	// Include user-defined axioms and rules
	for _, axiom := range p.theory.Axioms {
		builder.AddAxiom(axiom)
	}
	//
	for _, rule := range p.theory.Rules {
		builder.AddRule(rule)
	}
	//
	backend, err := solver.Select(p.settings.Backend, p.settings.Binary)
	// Handle error & exit
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	var (
		engine = builder.Build(p.settings.Search)
		iface  = solver.New(backend, p.settings.Solver)
	)
	//
	return VerifierStack{
		theory:       p.theory,
		settings:     p.settings,
		engine:       engine,
		solver:       iface,
		orchestrator: verify.New(engine, iface, p.settings.Verification),
	}
}

// ReadPropertyFiles reads a given set of property files (or directories
// containing them) into a single theory.  Any syntax errors are reported, and
// cause termination.
func ReadPropertyFiles(filenames ...string) property.Theory {
	var err error
	//
	if len(filenames) == 0 {
		fmt.Println("property file(s) required.")
		os.Exit(5)
	}
	// Recursively expand any directories given in the list of filenames.
	if filenames, err = expandSourceFiles(filenames); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	//
	for _, n := range filenames {
		log.Debug(fmt.Sprintf("including property file %s", n))
	}
	//
	theory, errors, err := property.ReadFiles(filenames...)
	// Sanity check for errors
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	//
	if len(errors) == 0 {
		return theory
	}
	// Report errors
	for _, err := range errors {
		PrintSyntaxError(&err)
	}
	// Fail
	os.Exit(4)
	// unreachable
	return theory
}

// Look through the list of filenames and identify any which are directories.
// Those are then recursively expanded.
func expandSourceFiles(filenames []string) ([]string, error) {
	var expandedFilenames []string
	//
	for _, f := range filenames {
		// Lookup information on the given file.
		if info, err := os.Stat(f); err != nil {
			// Something is wrong with one of the files provided, therefore
			// terminate with an error.
			return nil, err
		} else if info.IsDir() {
			// This a directory, so read its contents
			contents, err := expandDirectory(f)
			if err != nil {
				return nil, err
			}
			//
			expandedFilenames = append(expandedFilenames, contents...)
		} else {
			// This is a single file
			expandedFilenames = append(expandedFilenames, f)
		}
	}
	//
	return expandedFilenames, nil
}

// Recursively search through a given directory looking for any property files.
func expandDirectory(dirname string) ([]string, error) {
	var filenames []string
	// Recursively walk the given directory.
	err := filepath.Walk(dirname, func(filename string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		} else if !info.IsDir() && path.Ext(filename) == PROPERTY_FILE_EXT {
			filenames = append(filenames, filename)
		}
		// Continue.
		return nil
	})
	// Done
	return filenames, err
}

// PrintSyntaxError prints a syntax error with the offending text highlighted.
func PrintSyntaxError(err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := max(1, min(line.Length()-lineOffset, span.Length()))
	// Print error + line number
	fmt.Printf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
	// Print separator line
	fmt.Println()
	// Print line
	fmt.Println(line.String())
	// Print indent (todo: account for tabs)
	fmt.Print(strings.Repeat(" ", max(0, lineOffset)))
	// Print highlight
	fmt.Println(strings.Repeat("^", length))
}
