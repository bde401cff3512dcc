/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package report renders the human-readable narration of a preprocessing run.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const ruleWidth = 50

// Reporter writes banners, notices and tables to a single writer.
type Reporter struct {
	w       io.Writer
	section lipgloss.Style
	warning lipgloss.Style
}

// New returns a Reporter writing to w. Styling is only emitted when w is a
// terminal.
func New(w io.Writer) *Reporter {
	r := lipgloss.NewRenderer(w)
	return &Reporter{
		w:       w,
		section: r.NewStyle().Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// Discard returns a Reporter that drops everything.
func Discard() *Reporter {
	return New(io.Discard)
}

// Banner prints a title between two horizontal rules.
func (r *Reporter) Banner(title string) {
	r.Rule()
	fmt.Fprintln(r.w, r.section.Render(title))
	r.Rule()
}

// Rule prints a horizontal rule.
func (r *Reporter) Rule() {
	fmt.Fprintln(r.w, strings.Repeat("=", ruleWidth))
}

// Section prints a stage heading.
func (r *Reporter) Section(title string) {
	fmt.Fprintln(r.w, r.section.Render("=== "+strings.ToUpper(title)+" ==="))
}

// Printf prints one line.
func (r *Reporter) Printf(format string, args ...any) {
	fmt.Fprintln(r.w, fmt.Sprintf(format, args...))
}

// Warnf prints one warning line.
func (r *Reporter) Warnf(format string, args ...any) {
	fmt.Fprintln(r.w, r.warning.Render("WARNING: "+fmt.Sprintf(format, args...)))
}

// Table prints rows under headers with a box border.
func (r *Reporter) Table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(r.w, t.String())
}

// List formats names the way the reports print column lists.
func List(names []string) string {
	return "[" + strings.Join(names, ", ") + "]"
}
