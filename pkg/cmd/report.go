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
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sravinet/aisp-open-core-sub005/pkg/util/termio"
	"github.com/sravinet/aisp-open-core-sub005/pkg/verdict"
	"github.com/sravinet/aisp-open-core-sub005/pkg/verify"
)

// Column headings of the per-property table.
var reportHeadings = []string{"property", "verdict", "method", "time", "detail"}

// MAX_DETAIL_WIDTH bounds the width of the detail column.
const MAX_DETAIL_WIDTH = 60

// report renders the result of verifying a batch of properties.
type report struct {
	result verify.Result
	// Determines whether verdicts are coloured.
	colour bool
	// Determines whether statistics are included.
	statistics bool
}

func newReport(result verify.Result) *report {
	return &report{result, false, false}
}

// Print this report to a given writer.
func (p *report) Print(w io.Writer) error {
	var (
		properties = p.result.Properties
		table      = termio.NewTablePrinter(uint(len(reportHeadings)), 1+uint(len(properties)))
	)
	//
	table.SetRow(0, reportHeadings...)
	table.SetRowColour(0, color.New(color.Bold))
	//
	for i, r := range properties {
		row := uint(i + 1)
		table.SetRow(row, r.Name, r.Verdict.String(), methodOf(r), timeOf(r), detailOf(r))
		table.SetColour(1, row, verdictColour(r.Verdict))
	}
	//
	table.SetMaxWidth(4, MAX_DETAIL_WIDTH)
	table.Colours(p.colour)
	//
	if err := table.Print(w); err != nil {
		return err
	}
	//
	var (
		builder strings.Builder
		status  = p.result.Status
	)
	//
	builder.WriteString(fmt.Sprintf("\n%s: %d/%d verified\n", status.Kind, status.Verified, status.Total))
	//
	if status.Reason != "" {
		builder.WriteString(fmt.Sprintf("reason: %s\n", status.Reason))
	}
	//
	if p.statistics {
		p.writeStatistics(&builder)
	}
	//
	_, err := io.WriteString(w, builder.String())
	//
	return err
}

func (p *report) writeStatistics(builder *strings.Builder) {
	stats := p.result.Statistics
	//
	builder.WriteString(fmt.Sprintf("total %d, verified %d, failed %d, unknown %d\n", stats.Total,
		stats.Verified, stats.Failed, stats.Unknown))
	builder.WriteString(fmt.Sprintf("time %s (average %s), average memory %d bytes\n",
		stats.TotalTime.Round(time.Millisecond), stats.AverageTime.Round(time.Microsecond), stats.AverageMemory))
	//
	for _, m := range verify.Methods {
		if ms, ok := stats.Methods[m]; ok {
			builder.WriteString(fmt.Sprintf("%s: %d/%d succeeded (%.0f%%) in %s\n", m, ms.Successes, ms.Attempts,
				100*ms.SuccessRate(), ms.TotalTime.Round(time.Millisecond)))
		}
	}
	//
	builder.WriteString(fmt.Sprintf("cache: %d hits, %d misses, %d entries\n", stats.Cache.Hits,
		stats.Cache.Misses, stats.Cache.Size))
}

func methodOf(r verify.PropertyResult) string {
	if !r.Attempted || len(r.Attempts) == 0 {
		return "-"
	} else if r.Attempts[len(r.Attempts)-1].Cached {
		return r.Method.String() + " (cached)"
	}
	//
	return r.Method.String()
}

func timeOf(r verify.PropertyResult) string {
	if !r.Attempted {
		return "-"
	}
	//
	return r.Time.Round(time.Microsecond).String()
}

func detailOf(r verify.PropertyResult) string {
	switch {
	case r.Verdict.Kind() == verdict.PROVEN:
		return ""
	case r.Verdict.Reason() != "":
		return fmt.Sprintf("%s: %s", r.Reason, r.Verdict.Reason())
	}
	//
	return r.Reason.String()
}

func verdictColour(v verdict.Verdict) *color.Color {
	switch v.Kind() {
	case verdict.PROVEN:
		return color.New(color.FgGreen)
	case verdict.DISPROVEN:
		return color.New(color.FgRed)
	case verdict.UNKNOWN:
		return color.New(color.FgYellow)
	}
	//
	return color.New(color.FgMagenta)
}
