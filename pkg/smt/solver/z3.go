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
package solver

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Z3Process is a backend which runs the z3 executable as a child process,
// feeding it the script on standard input.
type Z3Process struct {
	// Location of the z3 binary, or "" if it could not be found.
	binary string
}

// NewZ3Process constructs a backend for a given z3 binary.  If the binary is
// "", then z3 is searched for on the PATH.  The resulting backend is
// unavailable if no binary could be located.
func NewZ3Process(binary string) *Z3Process {
	if binary == "" {
		binary = "z3"
	}
	//
	base := filepath.Base(binary)
	//
	if base != "z3" && base != "z3.exe" {
		return &Z3Process{""}
	} else if resolved, err := exec.LookPath(binary); err == nil {
		return &Z3Process{resolved}
	}
	//
	return &Z3Process{""}
}

// Name of this backend.
func (p *Z3Process) Name() string { return "z3" }

// Available checks whether a z3 binary was located.
func (p *Z3Process) Available() bool { return p.binary != "" }

// Check runs z3 on a given script.  The timeout implied by the context
// deadline (if any) is also passed to z3 itself, so that it stops of its own
// accord.
func (p *Z3Process) Check(ctx context.Context, script string) (Result, error) {
	args := []string{"-in", "-smt2"}
	//
	if deadline, ok := ctx.Deadline(); ok {
		secs := max(1, int(math.Ceil(time.Until(deadline).Seconds())))
		args = append(args, fmt.Sprintf("-T:%d", secs))
	}
	// #nosec G204 -- binary is constrained to z3 and resolved via LookPath.
	cmd := exec.CommandContext(ctx, p.binary, args...)
	cmd.Stdin = strings.NewReader(script)
	out, err := cmd.CombinedOutput()
	//
	if ctx.Err() != nil {
		return UNKNOWN, fmt.Errorf("z3 exec: %w", ctx.Err())
	}
	// z3 exits non-zero on a timeout, but still reports a result
	result, ok := parseZ3Output(string(out))
	//
	if !ok && err != nil {
		return UNKNOWN, fmt.Errorf("z3 exec failed: %w (%s)", err, strings.TrimSpace(string(out)))
	} else if !ok {
		return UNKNOWN, fmt.Errorf("z3 exec failed: %s", strings.TrimSpace(string(out)))
	}
	//
	return result, nil
}

// Extract the first result line from z3's output, skipping any diagnostics.
// An "(error ...)" response is reported as a failure.
func parseZ3Output(out string) (Result, bool) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		//
		switch {
		case line == "sat", line == "unsat", line == "unknown":
			return ParseResult(line), true
		case line == "timeout":
			return UNKNOWN, true
		case strings.HasPrefix(line, "(error"):
			return UNKNOWN, false
		}
	}
	//
	return UNKNOWN, false
}
