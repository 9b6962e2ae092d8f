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
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Backends lists the names accepted by Select.
var Backends = []string{"auto", "z3", "z3lib", "gini", "none"}

// Select constructs a backend by name.  The "auto" backend uses a z3 binary
// when one can be found, and otherwise falls back to the propositional gini
// backend.  The binary argument optionally gives the location of z3.
func Select(name string, binary string) (Backend, error) {
	var backend Backend
	//
	switch name {
	case "auto", "":
		if z3 := NewZ3Process(binary); z3.Available() {
			backend = z3
		} else {
			backend = NewGini()
		}
	case "z3":
		backend = NewZ3Process(binary)
	case "z3lib":
		backend = NewZ3Library()
	case "gini":
		backend = NewGini()
	case "none":
		backend = Disabled{}
	default:
		return nil, fmt.Errorf("unknown solver backend \"%s\"", name)
	}
	//
	log.Debugf("selected solver backend %s (available %t)", backend.Name(), backend.Available())
	//
	return backend, nil
}
