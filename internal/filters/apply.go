package filters

import (
	"cmp"
	"slices"

	"github.com/afmlabs/evaldash/internal/metrics"
)

// FilterDomains keeps the rows of the selected domain.
func FilterDomains(domains []metrics.DomainData, d Domain) []metrics.DomainData {
	if d == DomainAll {
		return slices.Clone(domains)
	}
	out := make([]metrics.DomainData, 0, 1)
	for _, row := range domains {
		if row.Domain == d.Label() {
			out = append(out, row)
		}
	}
	return out
}

// SortDomainsByWinRate returns a copy ordered by descending win rate.
func SortDomainsByWinRate(domains []metrics.DomainData) []metrics.DomainData {
	out := slices.Clone(domains)
	slices.SortStableFunc(out, func(a, b metrics.DomainData) int {
		return cmp.Compare(b.WinRate, a.WinRate)
	})
	return out
}

// FilterLanguages keeps the rows of the selected language.
func FilterLanguages(langs []metrics.LanguageData, l Language) []metrics.LanguageData {
	if l == LanguageAll {
		return slices.Clone(langs)
	}
	out := make([]metrics.LanguageData, 0, 1)
	for _, row := range langs {
		if row.Language == l.Label() {
			out = append(out, row)
		}
	}
	return out
}

// SortLanguages returns a copy ordered by the given column.
func SortLanguages(langs []metrics.LanguageData, key LanguageSortKey, asc bool) []metrics.LanguageData {
	field := func(l metrics.LanguageData) float64 {
		switch key {
		case SortByEvaluationVolume:
			return float64(l.EvaluationVolume)
		case SortByAvgRubricScore:
			return l.AvgRubricScore
		case SortByImprovementTrend:
			return l.ImprovementTrend
		default:
			return l.WinRate
		}
	}

	out := slices.Clone(langs)
	slices.SortStableFunc(out, func(a, b metrics.LanguageData) int {
		if asc {
			return cmp.Compare(field(a), field(b))
		}
		return cmp.Compare(field(b), field(a))
	})
	return out
}

// ModelNames lists the distinct model names in perf that the selection shows.
// Our own model is always shown.
func ModelNames(perf []metrics.ModelPerformance, m ModelVersion, ours string) []string {
	var names []string
	for _, p := range perf {
		if slices.Contains(names, p.ModelName) {
			continue
		}
		if m == ModelAll || p.ModelName == m.Label() || p.ModelName == ours {
			names = append(names, p.ModelName)
		}
	}
	if names == nil {
		names = []string{}
	}
	return names
}

// FilterPerformance keeps rows of the named models inside the time range.
func FilterPerformance(perf []metrics.ModelPerformance, names []string, r TimeRange) []metrics.ModelPerformance {
	out := make([]metrics.ModelPerformance, 0, len(perf))
	for _, p := range perf {
		if slices.Contains(names, p.ModelName) && r.Contains(p.Cycle) {
			out = append(out, p)
		}
	}
	return out
}

// ClipFailureTrends keeps the cycles inside the time range.
func ClipFailureTrends(trends []metrics.FailureModeTrend, r TimeRange) []metrics.FailureModeTrend {
	out := make([]metrics.FailureModeTrend, 0, len(trends))
	for _, f := range trends {
		if r.Contains(f.Cycle) {
			out = append(out, f)
		}
	}
	return out
}

// ClipHeatmap keeps the cells inside the time range.
func ClipHeatmap(cells []metrics.HeatmapCell, r TimeRange) []metrics.HeatmapCell {
	out := make([]metrics.HeatmapCell, 0, len(cells))
	for _, c := range cells {
		if r.Contains(c.Cycle) {
			out = append(out, c)
		}
	}
	return out
}

// ChartPoint is one cycle of the win-rate line chart.
type ChartPoint struct {
	Cycle    string             `json:"cycle"`
	WinRates map[string]float64 `json:"winRates"`
}

// PerformanceChart pivots perf into one point per cycle holding the win rate
// of each named model. Cycles keep their order of first appearance.
func PerformanceChart(perf []metrics.ModelPerformance, names []string) []ChartPoint {
	var points []ChartPoint
	index := make(map[string]int)
	for _, p := range perf {
		if !slices.Contains(names, p.ModelName) {
			continue
		}
		i, ok := index[p.Cycle]
		if !ok {
			i = len(points)
			index[p.Cycle] = i
			points = append(points, ChartPoint{Cycle: p.Cycle, WinRates: make(map[string]float64, len(names))})
		}
		points[i].WinRates[p.ModelName] = p.WinRate
	}
	if points == nil {
		points = []ChartPoint{}
	}
	return points
}

// Apply narrows every dataset of snap to the selection. Training cycles and
// severity are not filterable and pass through unchanged. snap is not modified.
func Apply(snap *metrics.Snapshot, s State, ours string) *metrics.Snapshot {
	names := ModelNames(snap.Performance, s.Model, ours)
	return &metrics.Snapshot{
		Cycles:         s.TimeRange.Cycles(),
		Performance:    FilterPerformance(snap.Performance, names, s.TimeRange),
		Domains:        SortDomainsByWinRate(FilterDomains(snap.Domains, s.Domain)),
		Languages:      SortLanguages(FilterLanguages(snap.Languages, s.Language), s.SortKey, s.SortAsc),
		TrainingCycles: slices.Clone(snap.TrainingCycles),
		FailureTrends:  ClipFailureTrends(snap.FailureTrends, s.TimeRange),
		Severity:       slices.Clone(snap.Severity),
	}
}
