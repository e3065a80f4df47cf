package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perfRow(model, cycle string, win float64) ModelPerformance {
	return ModelPerformance{
		Cycle:        cycle,
		ModelName:    model,
		WinRate:      win,
		RubricScores: RubricScores{Factual: 60, Reasoning: 62, Helpfulness: 64, Clarity: 66, Safety: 80},
	}
}

func TestGenerateSeverityData(t *testing.T) {
	sev := New().GenerateSeverityData()

	assert.Equal(t, []SeverityData{
		{Category: "Factual Accuracy", Pass: 63, Fail: 37},
		{Category: "Reasoning Quality", Pass: 60, Fail: 40},
		{Category: "Helpfulness", Pass: 66, Fail: 34},
		{Category: "Clarity / Style", Pass: 68, Fail: 32},
		{Category: "Safety Compliance", Pass: 84, Fail: 16},
	}, sev)
	for _, s := range sev {
		assert.Equal(t, 100, s.Pass+s.Fail, s.Category)
	}
}

func TestGenerateSeverityData_NoOursModel(t *testing.T) {
	anchors := DefaultAnchors()
	anchors.Models[0].Ours = false

	assert.Empty(t, New(WithAnchors(anchors)).GenerateSeverityData())
}

func TestComputeKPIs(t *testing.T) {
	perf := []ModelPerformance{
		perfRow("AFM (Ours)", "Jan 2025", 30),
		perfRow("GPT-5", "Jan 2025", 58),
		perfRow("AFM (Ours)", "Feb 2025", 32.5),
		perfRow("AFM (Ours)", "Mar 2025", 35.9),
	}

	kpis := ComputeKPIs(perf, "AFM (Ours)", 1210)

	assert.Equal(t, 35.9, kpis.WinRate)
	assert.Equal(t, 3.4, kpis.WinRateChange)
	assert.Equal(t, 5.9, kpis.Improvement)
	assert.Equal(t, 66.4, kpis.AvgRubric)
	assert.Equal(t, 1210, kpis.TotalDR)
	assert.Equal(t, []float64{30, 32.5, 35.9}, kpis.SparkData)

	ci := kpis.WinRateCI
	assert.LessOrEqual(t, ci.Lower, ci.Mean)
	assert.GreaterOrEqual(t, ci.Upper, ci.Mean)
	assert.InDelta(t, 32.8, ci.Mean, 0.01)
	assert.Equal(t, 0.95, ci.ConfidenceLevel)
}

func TestComputeKPIs_SingleCycle(t *testing.T) {
	kpis := ComputeKPIs([]ModelPerformance{perfRow("AFM (Ours)", "Jan 2025", 41.2)}, "AFM (Ours)", 10)

	assert.Equal(t, 41.2, kpis.WinRate)
	assert.Zero(t, kpis.WinRateChange)
	assert.Zero(t, kpis.Improvement)
	assert.Equal(t, []float64{41.2}, kpis.SparkData)
}

func TestComputeKPIs_NoRows(t *testing.T) {
	kpis := ComputeKPIs(nil, "AFM (Ours)", 1210)

	assert.Zero(t, kpis.WinRate)
	assert.Equal(t, 1210, kpis.TotalDR)
	assert.NotNil(t, kpis.SparkData)
	assert.Empty(t, kpis.SparkData)
}

func TestGenerator_ComputeKPIs(t *testing.T) {
	g := New(WithSeed(7))
	perf := g.GenerateModelPerformance()

	kpis := g.ComputeKPIs(perf)

	assert.Equal(t, 1210, kpis.TotalDR)
	assert.Len(t, kpis.SparkData, len(Cycles))
	assert.Equal(t, perf[len(Cycles)-1].WinRate, kpis.WinRate)
	assert.Equal(t, Round1(perf[len(Cycles)-1].WinRate-perf[0].WinRate), kpis.Improvement)
}

func TestGenerateHeatmapData(t *testing.T) {
	domains := New(WithSeed(1)).GenerateDomainData()

	cells := GenerateHeatmapData(domains)

	require.Len(t, cells, len(domains)*len(Cycles))
	assert.Equal(t, HeatmapCell{Domain: "Law", Cycle: "Jan 2025", Value: domains[0].Trend[0]}, cells[0])
	last := cells[len(cells)-1]
	assert.Equal(t, "Tech Infrastructure", last.Domain)
	assert.Equal(t, "Dec 2025", last.Cycle)
}

func TestGenerateHeatmapData_Empty(t *testing.T) {
	assert.Empty(t, GenerateHeatmapData(nil))
}

func TestCompareRubrics(t *testing.T) {
	perf := New(WithSource(drawMid)).GenerateModelPerformance()

	rows := CompareRubrics(perf, "AFM (Ours)", "GPT-5")

	require.Len(t, rows, len(Dimensions))
	assert.Equal(t, RubricComparison{Dimension: "Factual Accuracy", Ours: 63.4, Competitor: 75}, rows[0])
	assert.Equal(t, RubricComparison{Dimension: "Safety Compliance", Ours: 83.8, Competitor: 84}, rows[4])
}

func TestCompareRubrics_UnknownCompetitorScoresZero(t *testing.T) {
	perf := New(WithSource(drawMid)).GenerateModelPerformance()

	for _, row := range CompareRubrics(perf, "AFM (Ours)", "nobody") {
		assert.Zero(t, row.Competitor, row.Dimension)
		assert.NotZero(t, row.Ours, row.Dimension)
	}
}

func TestCompareCycle(t *testing.T) {
	cycles := New().GenerateTrainingCycles()

	rows := CompareCycle(cycles[3])

	assert.Equal(t, []CycleComparison{
		{Dimension: "Factual", Before: 61, After: 63.4, Improvement: 2.4},
		{Dimension: "Reasoning", Before: 58, After: 60.4, Improvement: 2.4},
		{Dimension: "Helpful", Before: 63, After: 66, Improvement: 3},
		{Dimension: "Clarity", Before: 65, After: 68, Improvement: 3},
		{Dimension: "Safety", Before: 82, After: 83.8, Improvement: 1.8},
	}, rows)
}

func TestFindCycle(t *testing.T) {
	cycles := New().GenerateTrainingCycles()

	c, err := FindCycle(cycles, "TC-002")
	require.NoError(t, err)
	assert.Equal(t, "Cycle 2 (Q2)", c.CycleLabel)

	_, err = FindCycle(cycles, "TC-999")
	assert.ErrorIs(t, err, ErrCycleNotFound)
}

func TestRubricScores_Average(t *testing.T) {
	r := RubricScores{Factual: 60, Reasoning: 62, Helpfulness: 64, Clarity: 66, Safety: 80}
	assert.InDelta(t, 66.4, r.Average(), 1e-9)
	assert.Zero(t, r.Get(Dimension(99)))
}

func TestDimensionLabels(t *testing.T) {
	assert.Equal(t, "Clarity / Style", DimensionClarity.Label())
	assert.Equal(t, "Helpful", DimensionHelpfulness.ShortLabel())
	assert.Equal(t, "safety", DimensionSafety.String())
}
