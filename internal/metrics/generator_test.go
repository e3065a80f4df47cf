package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource always returns the same draw.
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

const (
	drawLow  = fixedSource(0)
	drawMid  = fixedSource(0.5)
	drawHigh = fixedSource(0.999999999)
)

// roundingSlack covers the one-decimal rounding applied after jitter.
const roundingSlack = 0.05

func TestGenerateModelPerformance_Shape(t *testing.T) {
	g := New(WithSeed(1))
	perf := g.GenerateModelPerformance()

	require.Len(t, perf, len(g.Anchors().Models)*len(Cycles))
	assert.Equal(t, "AFM (Ours)", perf[0].ModelName)
	assert.Equal(t, "Jan 2025", perf[0].Cycle)
	assert.Equal(t, "2025-01-15", perf[0].Timestamp)
	assert.Equal(t, "Dec 2025", perf[11].Cycle)
	assert.Equal(t, "2025-12-15", perf[11].Timestamp)
	assert.Equal(t, "GPT-5", perf[12].ModelName)
}

func TestGenerateModelPerformance_NoJitterHitsAnchors(t *testing.T) {
	g := New(WithSource(drawMid))
	perf := g.GenerateModelPerformance()

	first, last := perf[0], perf[len(Cycles)-1]
	assert.Equal(t, 25.0, first.WinRate)
	assert.Equal(t, MatchupOverall, last.WinRate)
	assert.Equal(t, 50.0, first.RubricScores.Factual)
	assert.Equal(t, 63.4, last.RubricScores.Factual)
	assert.Equal(t, 83.8, last.RubricScores.Safety)

	gpt := perf[len(Cycles) : 2*len(Cycles)]
	assert.Equal(t, 58.0, gpt[0].WinRate)
	assert.Equal(t, Round1(100-MatchupGPT5), gpt[len(gpt)-1].WinRate)
}

func TestGenerateModelPerformance_EndpointsWithinJitter(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		g := New(WithSeed(seed))
		perf := g.GenerateModelPerformance()
		n := len(Cycles)

		for mi, m := range g.Anchors().Models {
			first, last := perf[mi*n], perf[mi*n+n-1]

			assert.InDelta(t, m.BaseWin, first.WinRate, WinRateJitter/2+roundingSlack, "seed %d model %s", seed, m.Name)
			assert.InDelta(t, m.EndWin, last.WinRate, WinRateJitter/2+roundingSlack, "seed %d model %s", seed, m.Name)
			assert.InDelta(t, m.RubricBase.Reasoning, first.RubricScores.Reasoning, RubricJitter/2+roundingSlack)
			assert.InDelta(t, m.RubricEnd.Reasoning, last.RubricScores.Reasoning, RubricJitter/2+roundingSlack)
			assert.InDelta(t, m.RubricBase.Safety, first.RubricScores.Safety, SafetyJitter/2+roundingSlack)
			assert.InDelta(t, m.RubricEnd.Safety, last.RubricScores.Safety, SafetyJitter/2+roundingSlack)
		}
	}
}

func TestGenerator_ClampsAtExtremes(t *testing.T) {
	anchors := DefaultAnchors()
	anchors.Models = []ModelAnchor{{
		Name:       "edge",
		Ours:       true,
		BaseWin:    0,
		EndWin:     100,
		RubricBase: RubricScores{Factual: 0, Reasoning: 0, Helpfulness: 0, Clarity: 0, Safety: 0},
		RubricEnd:  RubricScores{Factual: 100, Reasoning: 100, Helpfulness: 100, Clarity: 100, Safety: 100},
	}}
	anchors.Domains = []DomainAnchor{{Name: "low", WinRate: 1, Volume: 1}, {Name: "high", WinRate: 99.5, Volume: 1}}
	anchors.FailureTrends.SafetyViolations = RateAnchor{Start: 0.2, End: 0, Amplitude: 5}

	for _, src := range []fixedSource{drawLow, drawHigh} {
		g := New(WithAnchors(anchors), WithSource(src))
		snap := g.Snapshot()

		for _, p := range snap.Performance {
			assertPercent(t, p.WinRate)
			for _, d := range Dimensions {
				assertPercent(t, p.RubricScores.Get(d))
			}
		}
		for _, d := range snap.Domains {
			for _, v := range d.Trend {
				assertPercent(t, v)
			}
		}
		for _, f := range snap.FailureTrends {
			assertPercent(t, f.Hallucination)
			assertPercent(t, f.SafetyViolations)
		}
	}
}

func assertPercent(t *testing.T, v float64) {
	t.Helper()
	assert.GreaterOrEqual(t, v, 0.0)
	assert.LessOrEqual(t, v, 100.0)
}

func TestGenerateDomainData(t *testing.T) {
	g := New(WithSource(drawMid))
	domains := g.GenerateDomainData()

	require.Len(t, domains, 7)
	law := domains[0]
	assert.Equal(t, "Law", law.Domain)
	assert.Equal(t, 60.0, law.WinRate)
	assert.Equal(t, 30, law.EvaluationVolume)
	require.Len(t, law.Trend, len(Cycles))
	assert.Equal(t, 52.0, law.Trend[0])
	assert.Equal(t, 62.0, law.Trend[len(Cycles)-1])

	for _, d := range domains {
		assert.Len(t, d.Trend, len(Cycles), d.Domain)
	}
}

func TestGenerateDomainData_TrendWithinJitter(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		for _, d := range New(WithSeed(seed)).GenerateDomainData() {
			assert.InDelta(t, d.WinRate-DomainTrendBelow, d.Trend[0], DomainTrendJitter/2+roundingSlack)
			assert.InDelta(t, d.WinRate+DomainTrendAbove, d.Trend[len(d.Trend)-1], DomainTrendJitter/2+roundingSlack)
		}
	}
}

func TestGenerateLanguageData(t *testing.T) {
	langs := New().GenerateLanguageData()

	require.Len(t, langs, 11)
	assert.Equal(t, LanguageData{
		Language:         "English",
		WinRate:          43.4,
		EvaluationVolume: 702,
		ComplexityScore:  0.30,
		AvgRubricScore:   76,
		ImprovementTrend: 2.1,
	}, langs[0])
	for _, l := range langs {
		assert.GreaterOrEqual(t, l.ComplexityScore, 0.0)
		assert.LessOrEqual(t, l.ComplexityScore, 1.0)
	}
}

func TestGenerateTrainingCycles(t *testing.T) {
	cycles := New().GenerateTrainingCycles()

	require.Len(t, cycles, 4)
	ids := make([]string, 0, len(cycles))
	for _, c := range cycles {
		ids = append(ids, c.CycleID)
		for _, d := range Dimensions {
			assert.GreaterOrEqual(t, c.AfterScores.Get(d), c.BeforeScores.Get(d), "%s %s", c.CycleID, d)
		}
	}
	assert.Equal(t, []string{"TC-001", "TC-002", "TC-003", "TC-004"}, ids)
	assert.Equal(t, 63.4, cycles[3].AfterScores.Factual)
	assert.Equal(t, 5, cycles[3].FailureBreakdown.SafetyViolations)
}

func TestGenerateFailureModeTrends(t *testing.T) {
	trends := New(WithSource(drawMid)).GenerateFailureModeTrends()

	require.Len(t, trends, len(Cycles))
	assert.Equal(t, FailureModeTrend{
		Cycle: "Jan 2025", Hallucination: 24, ReasoningErrors: 26, InstructionFollowing: 22, SafetyViolations: 10,
	}, trends[0])
	assert.Equal(t, FailureModeTrend{
		Cycle: "Dec 2025", Hallucination: 15, ReasoningErrors: 16, InstructionFollowing: 12, SafetyViolations: 5,
	}, trends[len(trends)-1])
}

func TestGenerateFailureModeTrends_WholePercentages(t *testing.T) {
	for _, f := range New(WithSeed(9)).GenerateFailureModeTrends() {
		for _, v := range []float64{f.Hallucination, f.ReasoningErrors, f.InstructionFollowing, f.SafetyViolations} {
			assert.Equal(t, float64(int(v)), v)
		}
	}
}

func TestGenerator_FreshDrawsPerCall(t *testing.T) {
	g := New(WithSeed(3))
	a := g.GenerateModelPerformance()
	b := g.GenerateModelPerformance()
	assert.NotEqual(t, a, b)
}

func TestGenerator_SeedIsReproducible(t *testing.T) {
	assert.Equal(t, New(WithSeed(11)).Snapshot(), New(WithSeed(11)).Snapshot())
}

func TestSnapshot(t *testing.T) {
	snap := New(WithSeed(5)).Snapshot()

	assert.Equal(t, Cycles, snap.Cycles)
	assert.Len(t, snap.Performance, 48)
	assert.Len(t, snap.Domains, 7)
	assert.Len(t, snap.Languages, 11)
	assert.Len(t, snap.TrainingCycles, 4)
	assert.Len(t, snap.FailureTrends, 12)
	assert.Len(t, snap.Severity, 5)
}

func TestLerpAndFraction(t *testing.T) {
	assert.Equal(t, 25.0, Lerp(25, 35, 0))
	assert.Equal(t, 35.0, Lerp(25, 35, 1))
	assert.Equal(t, 30.0, Lerp(25, 35, 0.5))
	assert.Equal(t, 0.0, fraction(0, 12))
	assert.Equal(t, 1.0, fraction(11, 12))
	assert.Equal(t, 0.0, fraction(0, 1))
}

func TestClampAndRound(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-3))
	assert.Equal(t, 100.0, Clamp(101))
	assert.Equal(t, 42.5, Clamp(42.5))
	assert.Equal(t, 35.9, Round1(35.94))
	assert.Equal(t, 36.0, Round1(35.96))
	assert.Equal(t, 0.0, Mean(nil))
}
