// Package metrics synthesizes the datasets behind the evaluation dashboard.
//
// Every series is projected from a handful of observed anchor numbers: the
// value at cycle i is lerp(base, end, i/(n-1)) plus bounded symmetric jitter,
// clamped to [0,100]. Each call draws fresh values, so a view that needs a
// stable picture must generate once (see Snapshot) and reuse the result.
package metrics

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Source is a uniform random source on [0,1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Generator produces synthetic datasets from an anchor table.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng     Source
	anchors *Anchors
}

// Option configures a Generator.
type Option func(*Generator)

// WithAnchors replaces the built-in anchor table.
func WithAnchors(a *Anchors) Option {
	return func(g *Generator) {
		if a != nil {
			g.anchors = a
		}
	}
}

// WithSeed makes the generator reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithSource injects an arbitrary random source.
func WithSource(src Source) Option {
	return func(g *Generator) {
		if src != nil {
			g.rng = src
		}
	}
}

// New creates a Generator seeded from the global random source.
func New(opts ...Option) *Generator {
	g := &Generator{
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		anchors: DefaultAnchors(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Anchors returns the table the generator interpolates from.
func (g *Generator) Anchors() *Anchors {
	return g.anchors
}

// jitter perturbs v by up to ±amplitude/2 and clamps to [0,100].
func (g *Generator) jitter(v, amplitude float64) float64 {
	return Clamp(v + (g.rng.Float64()-0.5)*amplitude)
}

func (g *Generator) point(base, end, t, amplitude float64) float64 {
	return Round1(g.jitter(Lerp(base, end, t), amplitude))
}

// GenerateModelPerformance returns one sample per model per cycle, model-major.
func (g *Generator) GenerateModelPerformance() []ModelPerformance {
	n := len(Cycles)
	data := make([]ModelPerformance, 0, len(g.anchors.Models)*n)

	for _, m := range g.anchors.Models {
		for i, cycle := range Cycles {
			t := fraction(i, n)
			data = append(data, ModelPerformance{
				Timestamp: fmt.Sprintf("2025-%02d-15", i+1),
				Cycle:     cycle,
				ModelName: m.Name,
				WinRate:   g.point(m.BaseWin, m.EndWin, t, WinRateJitter),
				RubricScores: RubricScores{
					Factual:     g.point(m.RubricBase.Factual, m.RubricEnd.Factual, t, RubricJitter),
					Reasoning:   g.point(m.RubricBase.Reasoning, m.RubricEnd.Reasoning, t, RubricJitter),
					Helpfulness: g.point(m.RubricBase.Helpfulness, m.RubricEnd.Helpfulness, t, RubricJitter),
					Clarity:     g.point(m.RubricBase.Clarity, m.RubricEnd.Clarity, t, RubricJitter),
					Safety:      g.point(m.RubricBase.Safety, m.RubricEnd.Safety, t, SafetyJitter),
				},
			})
		}
	}
	return data
}

// GenerateDomainData returns the observed domain rows with a synthetic trend
// climbing from 8 points below to 2 points above the observed win rate.
func (g *Generator) GenerateDomainData() []DomainData {
	n := len(Cycles)
	data := make([]DomainData, 0, len(g.anchors.Domains))

	for _, d := range g.anchors.Domains {
		trend := make([]float64, n)
		for i := range trend {
			trend[i] = g.point(d.WinRate-DomainTrendBelow, d.WinRate+DomainTrendAbove, fraction(i, n), DomainTrendJitter)
		}
		data = append(data, DomainData{
			Domain:           d.Name,
			WinRate:          d.WinRate,
			EvaluationVolume: d.Volume,
			Trend:            trend,
		})
	}
	return data
}

// GenerateLanguageData returns the observed language rows.
func (g *Generator) GenerateLanguageData() []LanguageData {
	data := make([]LanguageData, 0, len(g.anchors.Languages))
	for _, l := range g.anchors.Languages {
		data = append(data, LanguageData{
			Language:         l.Name,
			WinRate:          l.WinRate,
			EvaluationVolume: l.Volume,
			ComplexityScore:  l.Complexity,
			AvgRubricScore:   l.Rubric,
			ImprovementTrend: l.Trend,
		})
	}
	return data
}

// GenerateTrainingCycles returns the literal training cycles in order.
func (g *Generator) GenerateTrainingCycles() []TrainingCycle {
	data := make([]TrainingCycle, 0, len(g.anchors.TrainingCycles))
	for _, c := range g.anchors.TrainingCycles {
		data = append(data, TrainingCycle{
			CycleID:          c.ID,
			CycleLabel:       c.Label,
			BeforeScores:     c.Before,
			AfterScores:      c.After,
			FailureBreakdown: c.Failures,
		})
	}
	return data
}

// GenerateFailureModeTrends interpolates each failure rate from its start
// anchor down to its end anchor, rounded to whole percentages. Jitter can
// make neighbouring cycles locally non-monotonic.
func (g *Generator) GenerateFailureModeTrends() []FailureModeTrend {
	n := len(Cycles)
	ft := g.anchors.FailureTrends
	rate := func(a RateAnchor, t float64) float64 {
		return math.Round(g.jitter(Lerp(a.Start, a.End, t), a.Amplitude))
	}

	data := make([]FailureModeTrend, 0, n)
	for i, cycle := range Cycles {
		t := fraction(i, n)
		data = append(data, FailureModeTrend{
			Cycle:                cycle,
			Hallucination:        rate(ft.Hallucination, t),
			ReasoningErrors:      rate(ft.ReasoningErrors, t),
			InstructionFollowing: rate(ft.InstructionFollowing, t),
			SafetyViolations:     rate(ft.SafetyViolations, t),
		})
	}
	return data
}

// Snapshot generates every dataset once.
func (g *Generator) Snapshot() *Snapshot {
	return &Snapshot{
		Cycles:         append([]string(nil), Cycles...),
		Performance:    g.GenerateModelPerformance(),
		Domains:        g.GenerateDomainData(),
		Languages:      g.GenerateLanguageData(),
		TrainingCycles: g.GenerateTrainingCycles(),
		FailureTrends:  g.GenerateFailureModeTrends(),
		Severity:       g.GenerateSeverityData(),
	}
}
