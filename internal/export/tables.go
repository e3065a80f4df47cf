// Package export flattens a snapshot into tables and writes them as CSV or
// as an XLSX workbook.
package export

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/afmlabs/evaldash/internal/metrics"
)

// ErrUnknownDataset is returned for a dataset name with no table.
var ErrUnknownDataset = errors.New("unknown dataset")

// Table is one dataset as a header and rows of cell values.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Datasets lists the exportable dataset names in workbook order.
var Datasets = []string{
	"performance",
	"domains",
	"languages",
	"training-cycles",
	"failure-trends",
	"severity",
	"heatmap",
}

var rubricHeader = []string{"factual", "reasoning", "helpfulness", "clarity", "safety"}

func rubricCells(r metrics.RubricScores) []any {
	cells := make([]any, 0, len(metrics.Dimensions))
	for _, d := range metrics.Dimensions {
		cells = append(cells, r.Get(d))
	}
	return cells
}

func prefixed(prefix string, names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, prefix+n)
	}
	return out
}

// TableFor builds the named dataset's table from snap.
func TableFor(snap *metrics.Snapshot, name string) (Table, error) {
	name = strings.TrimSuffix(strings.ToLower(name), ".csv")
	t := Table{Name: name}

	switch name {
	case "performance":
		t.Header = append([]string{"timestamp", "cycle", "model_name", "win_rate"}, rubricHeader...)
		for _, p := range snap.Performance {
			t.Rows = append(t.Rows, append([]any{p.Timestamp, p.Cycle, p.ModelName, p.WinRate}, rubricCells(p.RubricScores)...))
		}
	case "domains":
		t.Header = []string{"domain", "win_rate", "evaluation_volume"}
		for _, d := range snap.Domains {
			t.Rows = append(t.Rows, []any{d.Domain, d.WinRate, d.EvaluationVolume})
		}
	case "languages":
		t.Header = []string{"language", "win_rate", "evaluation_volume", "complexity_score", "avg_rubric_score", "improvement_trend"}
		for _, l := range snap.Languages {
			t.Rows = append(t.Rows, []any{l.Language, l.WinRate, l.EvaluationVolume, l.ComplexityScore, l.AvgRubricScore, l.ImprovementTrend})
		}
	case "training-cycles":
		t.Header = append([]string{"cycle_id", "cycle_label"}, prefixed("before_", rubricHeader)...)
		t.Header = append(t.Header, prefixed("after_", rubricHeader)...)
		t.Header = append(t.Header, "hallucination", "reasoning_errors", "instruction_following", "safety_violations")
		for _, c := range snap.TrainingCycles {
			row := []any{c.CycleID, c.CycleLabel}
			row = append(row, rubricCells(c.BeforeScores)...)
			row = append(row, rubricCells(c.AfterScores)...)
			f := c.FailureBreakdown
			row = append(row, f.Hallucination, f.ReasoningErrors, f.InstructionFollowing, f.SafetyViolations)
			t.Rows = append(t.Rows, row)
		}
	case "failure-trends":
		t.Header = []string{"cycle", "hallucination", "reasoning_errors", "instruction_following", "safety_violations"}
		for _, f := range snap.FailureTrends {
			t.Rows = append(t.Rows, []any{f.Cycle, f.Hallucination, f.ReasoningErrors, f.InstructionFollowing, f.SafetyViolations})
		}
	case "severity":
		t.Header = []string{"category", "pass", "fail"}
		for _, s := range snap.Severity {
			t.Rows = append(t.Rows, []any{s.Category, s.Pass, s.Fail})
		}
	case "heatmap":
		t.Header = []string{"domain", "cycle", "value"}
		for _, c := range metrics.GenerateHeatmapData(snap.Domains) {
			if len(snap.Cycles) > 0 && !slices.Contains(snap.Cycles, c.Cycle) {
				continue
			}
			t.Rows = append(t.Rows, []any{c.Domain, c.Cycle, c.Value})
		}
	default:
		return Table{}, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
	return t, nil
}

// Tables builds every dataset's table in workbook order.
func Tables(snap *metrics.Snapshot) []Table {
	out := make([]Table, 0, len(Datasets))
	for _, name := range Datasets {
		t, err := TableFor(snap, name)
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	return out
}
