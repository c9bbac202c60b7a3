// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	summaryIndent = 4  // spaces to indent summary rows
	labelWidth    = 14 // width of the row label
)

// 🎯 FormatSummaryTable renders the totals of a run as aligned colored rows
func FormatSummaryTable(s Summary) string {
	type row struct {
		label string
		value string
		c     *color.Color
	}
	rows := []row{
		{"directories", fmt.Sprint(s.Dirs), color.New(color.FgCyan)},
		{"files", fmt.Sprint(s.Files), color.New(color.FgGreen)},
		{"replacements", fmt.Sprint(s.Replacements), color.New(color.FgMagenta)},
		{"written", humanize.Bytes(uint64(max(0, s.Bytes))), color.New(color.FgBlue)},
		{"skipped", fmt.Sprint(s.Skipped), color.New(color.FgHiBlack)},
	}
	if s.Failed > 0 {
		rows = append(rows, row{"failed", fmt.Sprint(s.Failed), color.New(color.FgRed)})
	}

	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%s%s %s\n",
			strings.Repeat(" ", summaryIndent),
			fmt.Sprintf("%-*s", labelWidth, r.label),
			r.c.Sprint(r.value),
		)
	}
	if s.DryRun {
		fmt.Fprintf(&b, "%s%s\n", strings.Repeat(" ", summaryIndent), color.YellowString("dry run, nothing written"))
	}
	return b.String()
}
