package metrics

import (
	"errors"
	"math"

	"github.com/afmlabs/evaldash/internal/statistics"
)

// ErrCycleNotFound is returned when a training cycle ID is unknown.
var ErrCycleNotFound = errors.New("training cycle not found")

// kpiSeed fixes the bootstrap stream so KPIs are a pure function of the series.
const kpiSeed = 2025

// GenerateSeverityData splits each rubric dimension of our model's observed
// scores into whole-percent pass and fail shares.
func (g *Generator) GenerateSeverityData() []SeverityData {
	ours := g.anchors.Ours()
	if ours == nil {
		return []SeverityData{}
	}
	data := make([]SeverityData, 0, len(Dimensions))
	for _, d := range Dimensions {
		v := ours.RubricEnd.Get(d)
		data = append(data, SeverityData{
			Category: d.Label(),
			Pass:     int(math.Round(v)),
			Fail:     int(math.Round(100 - v)),
		})
	}
	return data
}

// ComputeKPIs derives the headline numbers for our model from perf.
func (g *Generator) ComputeKPIs(perf []ModelPerformance) KPIs {
	name := ""
	if ours := g.anchors.Ours(); ours != nil {
		name = ours.Name
	}
	return ComputeKPIs(perf, name, g.anchors.TotalEvaluations())
}

// ComputeKPIs derives the headline numbers from the rows of the named model.
// Changes are zero when there is no earlier point to diff against.
func ComputeKPIs(perf []ModelPerformance, model string, totalEvaluations int) KPIs {
	var series []ModelPerformance
	for _, p := range perf {
		if p.ModelName == model {
			series = append(series, p)
		}
	}

	kpis := KPIs{
		TotalDR:   totalEvaluations,
		SparkData: make([]float64, 0, len(series)),
	}
	for _, p := range series {
		kpis.SparkData = append(kpis.SparkData, p.WinRate)
	}
	if len(series) == 0 {
		return kpis
	}

	latest := series[len(series)-1]
	earliest := series[0]

	kpis.WinRate = latest.WinRate
	kpis.AvgRubric = Round1(latest.RubricScores.Average())
	kpis.Improvement = Round1(latest.WinRate - earliest.WinRate)
	if len(series) > 1 {
		kpis.WinRateChange = Round1(latest.WinRate - series[len(series)-2].WinRate)
	}
	kpis.WinRateCI = statistics.BootstrapCI(kpis.SparkData, 0.95, kpiSeed)
	return kpis
}

// GenerateHeatmapData flattens each domain trend into (domain, cycle) cells.
func GenerateHeatmapData(domains []DomainData) []HeatmapCell {
	cells := make([]HeatmapCell, 0, len(domains)*len(Cycles))
	for _, d := range domains {
		for i, v := range d.Trend {
			if i >= len(Cycles) {
				break
			}
			cells = append(cells, HeatmapCell{Domain: d.Domain, Cycle: Cycles[i], Value: v})
		}
	}
	return cells
}

// CompareRubrics pairs the latest-cycle rubric of ours against competitor,
// one row per dimension. A model missing from perf scores zero.
func CompareRubrics(perf []ModelPerformance, ours, competitor string) []RubricComparison {
	latest := Cycles[len(Cycles)-1]
	var oursScores, theirScores RubricScores
	for _, p := range perf {
		if p.Cycle != latest {
			continue
		}
		switch p.ModelName {
		case ours:
			oursScores = p.RubricScores
		case competitor:
			theirScores = p.RubricScores
		}
	}

	rows := make([]RubricComparison, 0, len(Dimensions))
	for _, d := range Dimensions {
		rows = append(rows, RubricComparison{
			Dimension:  d.Label(),
			Ours:       oursScores.Get(d),
			Competitor: theirScores.Get(d),
		})
	}
	return rows
}

// CompareCycle lists before, after and improvement per dimension.
func CompareCycle(c TrainingCycle) []CycleComparison {
	rows := make([]CycleComparison, 0, len(Dimensions))
	for _, d := range Dimensions {
		before, after := c.BeforeScores.Get(d), c.AfterScores.Get(d)
		rows = append(rows, CycleComparison{
			Dimension:   d.ShortLabel(),
			Before:      before,
			After:       after,
			Improvement: Round1(after - before),
		})
	}
	return rows
}

// FindCycle returns the training cycle with the given ID.
func FindCycle(cycles []TrainingCycle, id string) (TrainingCycle, error) {
	for _, c := range cycles {
		if c.CycleID == id {
			return c, nil
		}
	}
	return TrainingCycle{}, ErrCycleNotFound
}
