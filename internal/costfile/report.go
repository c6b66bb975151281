// SPDX-License-Identifier: MIT

package costfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvmatch/matching"
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Objective names used in reports.
const (
	ObjectiveMax = "max"
	ObjectiveMin = "min"
)

// ErrUnknownFormat is returned by Write for an unsupported format name.
var ErrUnknownFormat = errors.New("costfile: unknown report format")

// Assignment is one matched row/column pair in a report.
type Assignment struct {
	Left       int    `json:"left" yaml:"left"`
	Right      int    `json:"right" yaml:"right"`
	LeftLabel  string `json:"left_label,omitempty" yaml:"left_label,omitempty"`
	RightLabel string `json:"right_label,omitempty" yaml:"right_label,omitempty"`
	Cost       int64  `json:"cost" yaml:"cost"`
}

// Report is the serializable outcome of one solve.
type Report struct {
	Objective       string         `json:"objective" yaml:"objective"`
	Total           int64          `json:"total" yaml:"total"`
	Assignments     []Assignment   `json:"assignments" yaml:"assignments"`
	UnassignedRight []int          `json:"unassigned_right,omitempty" yaml:"unassigned_right,omitempty"`
	Stats           matching.Stats `json:"stats" yaml:"stats"`
}

// NewReport builds a report for doc from a solved result. Costs and the total
// are always taken from doc.Costs, so a minimization solved on the
// Complement reports original costs.
func NewReport(doc *Document, res matching.Result, objective string) Report {
	rep := Report{
		Objective:   objective,
		Assignments: make([]Assignment, 0, len(res.Pairs)),
		Stats:       res.Stats,
	}
	used := make([]bool, len(doc.Costs[0]))
	for _, p := range res.Pairs {
		cost := doc.Costs[p.Left][p.Right]
		rep.Total += cost
		used[p.Right] = true
		rep.Assignments = append(rep.Assignments, Assignment{
			Left:       p.Left,
			Right:      p.Right,
			LeftLabel:  doc.LeftLabel(p.Left),
			RightLabel: doc.RightLabel(p.Right),
			Cost:       cost,
		})
	}
	for j, u := range used {
		if !u {
			rep.UnassignedRight = append(rep.UnassignedRight, j)
		}
	}

	return rep
}

// Write encodes rep to w as text, json or yaml.
func Write(w io.Writer, rep Report, format string) error {
	switch format {
	case FormatText:
		return writeText(w, rep)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Text report palette.
var (
	colorTeal  = lipgloss.Color("#20B9B4")
	colorDeep  = lipgloss.Color("#16858E")
	colorSlate = lipgloss.Color("#2C4A54")
)

// writeText renders the assignments as a bordered table followed by the
// total and solver counters. Colors are chosen for w's terminal profile, so
// files and pipes receive plain text.
func writeText(w io.Writer, rep Report) error {
	re := lipgloss.NewRenderer(w)
	header := re.NewStyle().Bold(true).Foreground(colorTeal).Padding(0, 1)
	cell := re.NewStyle().Padding(0, 1)
	number := cell.Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(re.NewStyle().Foreground(colorDeep)).
		Headers("LEFT", "RIGHT", "COST").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 2:
				return number
			default:
				return cell
			}
		})
	for _, a := range rep.Assignments {
		t.Row(name(a.Left, a.LeftLabel), name(a.Right, a.RightLabel), strconv.FormatInt(a.Cost, 10))
	}

	title := re.NewStyle().Bold(true).Foreground(colorTeal)
	muted := re.NewStyle().Foreground(colorSlate)
	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n",
		t.Render(),
		title.Render(fmt.Sprintf("total (%s): %d", rep.Objective, rep.Total)),
		muted.Render(fmt.Sprintf("phases: %d  relaxations: %d  augmentations: %d",
			rep.Stats.Phases, rep.Stats.Relaxations, rep.Stats.Augmentations)))

	return err
}

// name prefers the label and falls back to the index.
func name(idx int, label string) string {
	if label != "" {
		return label
	}

	return strconv.Itoa(idx)
}
