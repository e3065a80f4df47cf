package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/afmlabs/evaldash/internal/export"
	"github.com/afmlabs/evaldash/internal/filters"
	"github.com/afmlabs/evaldash/internal/metrics"
)

const kpiDataset = "kpis"

var printer = message.NewPrinter(language.English)

type generateOptions struct {
	format  string
	seed    uint64
	filters filterFlags
}

func newGenerateCommand(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [dataset...]",
		Short: "Generate datasets and print them",
		Long: fmt.Sprintf(`Generate one snapshot and print the requested datasets.

Datasets: %s, %s. With no arguments every dataset is printed.`,
			strings.Join(export.Datasets, ", "), kpiDataset),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, a, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "table", "Output format: table or json")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed for reproducible output")
	opts.filters.register(cmd)

	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, opts *generateOptions, args []string) error {
	if opts.format != "table" && opts.format != "json" {
		return fmt.Errorf("unknown format %q (want table or json)", opts.format)
	}
	names := args
	if len(names) == 0 {
		names = append(slices.Clone(export.Datasets), kpiDataset)
	}

	g, err := a.generator(seedFlag(cmd, opts.seed))
	if err != nil {
		return err
	}
	snap, state, err := opts.filters.apply(g.Snapshot(), g.Anchors())
	if err != nil {
		return err
	}
	kpis := g.ComputeKPIs(snap.Performance)

	out := cmd.OutOrStdout()
	if opts.format == "json" {
		heatmap := filters.ClipHeatmap(metrics.GenerateHeatmapData(snap.Domains), state.TimeRange)
		return writeGenerateJSON(out, snap, kpis, heatmap, names)
	}

	for i, name := range names {
		if i > 0 {
			fmt.Fprintln(out) //nolint:errcheck
		}
		if name == kpiDataset {
			writeKPIs(out, kpis)
			continue
		}
		t, err := export.TableFor(snap, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "== %s ==\n", t.Name) //nolint:errcheck
		writeTable(out, t)
	}
	return nil
}

func writeGenerateJSON(w io.Writer, snap *metrics.Snapshot, kpis metrics.KPIs, heatmap []metrics.HeatmapCell, names []string) error {
	doc := make(map[string]any, len(names))
	for _, name := range names {
		key := strings.TrimSuffix(strings.ToLower(name), ".csv")
		switch key {
		case kpiDataset:
			doc[key] = kpis
		case "performance":
			doc[key] = snap.Performance
		case "domains":
			doc[key] = snap.Domains
		case "languages":
			doc[key] = snap.Languages
		case "training-cycles":
			doc[key] = snap.TrainingCycles
		case "failure-trends":
			doc[key] = snap.FailureTrends
		case "severity":
			doc[key] = snap.Severity
		case "heatmap":
			doc[key] = heatmap
		default:
			return fmt.Errorf("%w: %q", export.ErrUnknownDataset, name)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func writeKPIs(w io.Writer, k metrics.KPIs) {
	fmt.Fprintln(w, "== kpis ==") //nolint:errcheck
	rows := [][2]string{
		{"win rate", printer.Sprintf("%.1f%%", k.WinRate)},
		{"change", printer.Sprintf("%+.1f pp", k.WinRateChange)},
		{"improvement", printer.Sprintf("%+.1f pp", k.Improvement)},
		{"avg rubric", printer.Sprintf("%.1f", k.AvgRubric)},
		{"evaluations", printer.Sprintf("%d", k.TotalDR)},
		{"95% CI", printer.Sprintf("%.1f to %.1f", k.WinRateCI.Lower, k.WinRateCI.Upper)},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s  %s\n", padRight(r[0], 12), r[1]) //nolint:errcheck
	}
}

// writeTable prints t with columns padded to their display width.
func writeTable(w io.Writer, t export.Table) {
	cells := make([][]string, 0, len(t.Rows)+1)
	cells = append(cells, t.Header)
	for _, row := range t.Rows {
		line := make([]string, len(row))
		for i, v := range row {
			line[i] = formatCell(v)
		}
		cells = append(cells, line)
	}

	widths := make([]int, len(t.Header))
	for _, line := range cells {
		for i, c := range line {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	for _, line := range cells {
		parts := make([]string, len(line))
		for i, c := range line {
			parts[i] = padRight(c, widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " ")) //nolint:errcheck
	}
}

func formatCell(v any) string {
	switch x := v.(type) {
	case float64:
		return printer.Sprintf("%.1f", x)
	case int:
		return printer.Sprintf("%d", x)
	default:
		return fmt.Sprint(x)
	}
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
