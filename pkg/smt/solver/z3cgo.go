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

//go:build z3cgo

package solver

/*
#cgo LDFLAGS: -lz3
#include <stdlib.h>
#include <z3.h>
*/
import "C"

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unsafe"
)

// Z3Library is a backend which links against libz3 directly.
type Z3Library struct{}

// NewZ3Library constructs a backend using the linked z3 library.
func NewZ3Library() Backend {
	return &Z3Library{}
}

// Name of this backend.
func (p *Z3Library) Name() string { return "z3lib" }

// Available always returns true, since the library was linked at build time.
func (p *Z3Library) Available() bool { return true }

// Check a given script using a fresh z3 context.  The check-sat and get-model
// commands are not understood by Z3_solver_from_string, and are stripped from
// the script first.
func (p *Z3Library) Check(ctx context.Context, script string) (Result, error) {
	cfg := C.Z3_mk_config()
	zctx := C.Z3_mk_context(cfg)
	C.Z3_del_config(cfg)
	defer C.Z3_del_context(zctx)
	//
	solver := C.Z3_mk_solver(zctx)
	C.Z3_solver_inc_ref(zctx, solver)
	defer C.Z3_solver_dec_ref(zctx, solver)
	//
	if deadline, ok := ctx.Deadline(); ok {
		params := C.Z3_mk_params(zctx)
		C.Z3_params_inc_ref(zctx, params)
		defer C.Z3_params_dec_ref(zctx, params)
		//
		key := C.CString("timeout")
		sym := C.Z3_mk_string_symbol(zctx, key)
		C.free(unsafe.Pointer(key))
		C.Z3_params_set_uint(zctx, params, sym, C.uint(max(1, time.Until(deadline).Milliseconds())))
		C.Z3_solver_set_params(zctx, solver, params)
	}
	//
	cscript := C.CString(stripCommands(script))
	C.Z3_solver_from_string(zctx, solver, cscript)
	C.free(unsafe.Pointer(cscript))
	//
	if code := C.Z3_get_error_code(zctx); code != C.Z3_OK {
		msg := C.Z3_get_error_msg(zctx, code)
		return UNKNOWN, fmt.Errorf("z3 parse error: %s", C.GoString(msg))
	}
	//
	switch C.Z3_solver_check(zctx, solver) {
	case C.Z3_L_TRUE:
		return SAT, nil
	case C.Z3_L_FALSE:
		return UNSAT, nil
	}
	//
	return UNKNOWN, nil
}

func stripCommands(script string) string {
	var builder strings.Builder
	//
	for _, line := range strings.Split(script, "\n") {
		switch strings.TrimSpace(line) {
		case "(check-sat)", "(get-model)":
			continue
		}
		//
		builder.WriteString(line)
		builder.WriteString("\n")
	}
	//
	return builder.String()
}
