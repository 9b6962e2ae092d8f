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
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// TablePrinter is useful for printing tables to the terminal.
type TablePrinter struct {
	widths  []uint
	rows    [][]string
	colours [][]*color.Color
	// Whether colours are emitted at all.
	enableColours bool
}

// NewTablePrinter constructs a new table with given dimensions.
func NewTablePrinter(width uint, height uint) *TablePrinter {
	widths := make([]uint, width)
	rows := make([][]string, height)
	colours := make([][]*color.Color, height)
	// Construct the table
	for i := uint(0); i < height; i++ {
		rows[i] = make([]string, width)
		colours[i] = make([]*color.Color, width)
	}

	return &TablePrinter{widths, rows, colours, true}
}

// Set the contents of a given cell in this table
func (p *TablePrinter) Set(col uint, row uint, val string) {
	p.widths[col] = max(p.widths[col], uint(len(val)))
	p.rows[row][col] = val
}

// Get the contents of a given cell in this table
func (p *TablePrinter) Get(col uint, row uint) string {
	return p.rows[row][col]
}

// Height returns the height of this table.
func (p *TablePrinter) Height() uint {
	return uint(len(p.rows))
}

// SetColour sets the colour to use when printing the contents of a given cell.
func (p *TablePrinter) SetColour(col uint, row uint, colour *color.Color) {
	p.colours[row][col] = colour
}

// SetRowColour sets the colour of every cell in a given row.
func (p *TablePrinter) SetRowColour(row uint, colour *color.Color) {
	for col := range p.colours[row] {
		p.colours[row][col] = colour
	}
}

// Colours enables or disables the use of colour.  Disabling colour is useful
// when output is not a terminal as, otherwise, you get a lot of visible escape
// characters being printed.
func (p *TablePrinter) Colours(enable bool) {
	p.enableColours = enable
}

// SetRow sets the contents of an entire row in this table
func (p *TablePrinter) SetRow(row uint, vals ...string) {
	if len(vals) != len(p.widths) {
		panic("incorrect number of columns")
	}
	// Update column widths
	for i := 0; i < len(p.widths); i++ {
		p.widths[i] = max(p.widths[i], uint(len(vals[i])))
	}
	// Done
	p.rows[row] = vals
}

// SetMaxWidths puts an upper bound on the width of any column.
func (p *TablePrinter) SetMaxWidths(width uint) {
	for i := uint(0); i < uint(len(p.widths)); i++ {
		p.SetMaxWidth(i, width)
	}
}

// SetMaxWidth puts an upper bound on the width of any column.
func (p *TablePrinter) SetMaxWidth(col uint, width uint) {
	p.widths[col] = min(p.widths[col], width)
}

// Print the table to a given writer.  Cells are left aligned, and truncated
// with ".." when wider than their column.
func (p *TablePrinter) Print(w io.Writer) error {
	var builder strings.Builder
	//
	for i := 0; i < len(p.rows); i++ {
		row := p.rows[i]
		colours := p.colours[i]
		//
		for j, col := range row {
			jth := col
			jth_width := int(p.widths[j])
			// Truncate data (if applicable)
			if len(col) > jth_width {
				jth = col[0:max(0, jth_width-2)] + ".."
				jth = jth[0:jth_width]
			}
			//
			jth = fmt.Sprintf("%-*s", jth_width, jth)
			// Apply colour (if applicable)
			if p.enableColours && colours[j] != nil {
				jth = colours[j].Sprint(jth)
			}
			//
			if j != 0 {
				builder.WriteString(" | ")
			}
			//
			builder.WriteString(jth)
		}
		//
		builder.WriteString("\n")
	}
	//
	_, err := io.WriteString(w, builder.String())
	//
	return err
}
