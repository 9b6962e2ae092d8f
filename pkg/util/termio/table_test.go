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
package termio

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func Test_Table_01(t *testing.T) {
	table := NewTablePrinter(2, 2)
	table.SetRow(0, "name", "verdict")
	table.SetRow(1, "p", "proven")
	//
	checkTable(t, table, "name | verdict\np    | proven \n")
}

func Test_Table_02(t *testing.T) {
	// Long cells are truncated
	table := NewTablePrinter(2, 1)
	table.SetRow(0, "property", "x")
	table.SetMaxWidth(0, 5)
	//
	checkTable(t, table, "pro.. | x\n")
}

func Test_Table_03(t *testing.T) {
	// Colours are omitted when disabled
	table := NewTablePrinter(1, 1)
	table.Set(0, 0, "ok")
	table.SetColour(0, 0, color.New(color.FgGreen))
	table.Colours(false)
	//
	checkTable(t, table, "ok\n")
	//
	if table.Get(0, 0) != "ok" || table.Height() != 1 {
		t.Errorf("unexpected table contents")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func checkTable(t *testing.T, table *TablePrinter, expected string) {
	t.Helper()
	//
	var buf bytes.Buffer
	//
	if err := table.Print(&buf); err != nil {
		t.Fatal(err)
	} else if diff := cmp.Diff(expected, buf.String()); diff != "" {
		t.Errorf("unexpected table (-want +got):\n%s", diff)
	}
}
