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
package property

import (
	"github.com/sravinet/aisp-open-core-sub005/pkg/formula"
	"github.com/sravinet/aisp-open-core-sub005/pkg/prover"
	"github.com/sravinet/aisp-open-core-sub005/pkg/util/source"
)

// Theory is the combined contents of one or more property files.  Axioms and
// rules extend the standard axiom system, hypotheses are assumed whilst
// verifying every property and properties are the goals to be verified.
type Theory struct {
	Axioms     []prover.Axiom
	Rules      []prover.InferenceRule
	Hypotheses []*formula.Property
	Properties []*formula.Property
}

// Append the declarations of another theory onto this one.
func (p *Theory) Append(other Theory) {
	p.Axioms = append(p.Axioms, other.Axioms...)
	p.Rules = append(p.Rules, other.Rules...)
	p.Hypotheses = append(p.Hypotheses, other.Hypotheses...)
	p.Properties = append(p.Properties, other.Properties...)
}

// Names returns the name of every declaration in this theory, in order of
// appearance within each kind.
func (p *Theory) Names() []string {
	var names []string
	//
	for _, a := range p.Axioms {
		names = append(names, a.Name)
	}
	//
	for _, r := range p.Rules {
		names = append(names, r.Name)
	}
	//
	for _, h := range p.Hypotheses {
		names = append(names, h.Name)
	}
	//
	for _, q := range p.Properties {
		names = append(names, q.Name)
	}
	//
	return names
}

// ReadFiles reads and parses a given set of property files.  An error is
// returned if any file cannot be read, whilst syntax errors are accumulated
// across all files.
func ReadFiles(filenames ...string) (Theory, []source.SyntaxError, error) {
	files, err := source.ReadFiles(filenames...)
	if err != nil {
		return Theory{}, nil, err
	}
	//
	theory, errs := ParseSourceFiles(files)
	//
	return theory, errs, nil
}
