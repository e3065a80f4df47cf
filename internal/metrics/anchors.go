package metrics

// Cycles is the fixed twelve-month axis shared by every time series.
var Cycles = []string{
	"Jan 2025", "Feb 2025", "Mar 2025", "Apr 2025",
	"May 2025", "Jun 2025", "Jul 2025", "Aug 2025",
	"Sep 2025", "Oct 2025", "Nov 2025", "Dec 2025",
}

// Jitter amplitudes per field.
const (
	WinRateJitter       = 2.0
	RubricJitter        = 1.5
	SafetyJitter        = 1.0
	DomainTrendJitter   = 3.0
	DomainTrendBelow    = 8.0
	DomainTrendAbove    = 2.0
	FailureRateJitter   = 2.0
	SafetyFailureJitter = 1.0
)

// Head-to-head win rates of our model against each competitor.
const (
	MatchupOverall     = 35.9
	MatchupClaudeOpus4 = 39.5
	MatchupGPT5        = 37.8
	MatchupO3O4        = 27.8
)

// ModelAnchor is the start and end of one model's trajectory.
type ModelAnchor struct {
	Name       string       `yaml:"name" mapstructure:"name"`
	Ours       bool         `yaml:"ours" mapstructure:"ours"`
	BaseWin    float64      `yaml:"base_win" mapstructure:"base_win"`
	EndWin     float64      `yaml:"end_win" mapstructure:"end_win"`
	RubricBase RubricScores `yaml:"rubric_base" mapstructure:"rubric_base"`
	RubricEnd  RubricScores `yaml:"rubric_end" mapstructure:"rubric_end"`
}

// DomainAnchor is the observed win rate and sample count of a domain.
type DomainAnchor struct {
	Name    string  `yaml:"name" mapstructure:"name"`
	WinRate float64 `yaml:"win_rate" mapstructure:"win_rate"`
	Volume  int     `yaml:"volume" mapstructure:"volume"`
}

// LanguageAnchor is the observed row of a language.
type LanguageAnchor struct {
	Name       string  `yaml:"name" mapstructure:"name"`
	WinRate    float64 `yaml:"win_rate" mapstructure:"win_rate"`
	Volume     int     `yaml:"volume" mapstructure:"volume"`
	Complexity float64 `yaml:"complexity" mapstructure:"complexity"`
	Rubric     float64 `yaml:"rubric" mapstructure:"rubric"`
	Trend      float64 `yaml:"trend" mapstructure:"trend"`
}

// CycleAnchor is a literal training cycle.
type CycleAnchor struct {
	ID       string           `yaml:"id" mapstructure:"id"`
	Label    string           `yaml:"label" mapstructure:"label"`
	Before   RubricScores     `yaml:"before" mapstructure:"before"`
	After    RubricScores     `yaml:"after" mapstructure:"after"`
	Failures FailureBreakdown `yaml:"failures" mapstructure:"failures"`
}

// RateAnchor interpolates a failure rate from Start to End.
type RateAnchor struct {
	Start     float64 `yaml:"start" mapstructure:"start"`
	End       float64 `yaml:"end" mapstructure:"end"`
	Amplitude float64 `yaml:"amplitude" mapstructure:"amplitude"`
}

// FailureTrendAnchors holds one RateAnchor per failure category.
type FailureTrendAnchors struct {
	Hallucination        RateAnchor `yaml:"hallucination" mapstructure:"hallucination"`
	ReasoningErrors      RateAnchor `yaml:"reasoning_errors" mapstructure:"reasoning_errors"`
	InstructionFollowing RateAnchor `yaml:"instruction_following" mapstructure:"instruction_following"`
	SafetyViolations     RateAnchor `yaml:"safety_violations" mapstructure:"safety_violations"`
}

// Anchors is the full table the generator interpolates from.
type Anchors struct {
	Models         []ModelAnchor       `yaml:"models" mapstructure:"models"`
	Domains        []DomainAnchor      `yaml:"domains" mapstructure:"domains"`
	Languages      []LanguageAnchor    `yaml:"languages" mapstructure:"languages"`
	TrainingCycles []CycleAnchor       `yaml:"training_cycles" mapstructure:"training_cycles"`
	FailureTrends  FailureTrendAnchors `yaml:"failure_trends" mapstructure:"failure_trends"`

	// EnforceMonotonicCycles makes Validate reject training cycles whose
	// after score is below the before score on any dimension.
	EnforceMonotonicCycles bool `yaml:"enforce_monotonic_cycles" mapstructure:"enforce_monotonic_cycles"`
}

// rubricOurs is the observed rubric pass rate of our model.
var rubricOurs = RubricScores{Factual: 63.4, Reasoning: 60.4, Helpfulness: 66, Clarity: 68, Safety: 83.8}

// DefaultAnchors returns a fresh copy of the built-in anchor table.
func DefaultAnchors() *Anchors {
	return &Anchors{
		Models: []ModelAnchor{
			{
				Name:       "AFM (Ours)",
				Ours:       true,
				BaseWin:    25,
				EndWin:     MatchupOverall,
				RubricBase: RubricScores{Factual: 50, Reasoning: 46, Helpfulness: 52, Clarity: 54, Safety: 75},
				RubricEnd:  rubricOurs,
			},
			{
				Name:       "GPT-5",
				BaseWin:    58,
				EndWin:     100 - MatchupGPT5,
				RubricBase: RubricScores{Factual: 72, Reasoning: 74, Helpfulness: 75, Clarity: 73, Safety: 81},
				RubricEnd:  RubricScores{Factual: 75, Reasoning: 77, Helpfulness: 79, Clarity: 77, Safety: 84},
			},
			{
				Name:       "Claude Opus 4",
				BaseWin:    56,
				EndWin:     100 - MatchupClaudeOpus4,
				RubricBase: RubricScores{Factual: 70, Reasoning: 73, Helpfulness: 74, Clarity: 72, Safety: 80},
				RubricEnd:  RubricScores{Factual: 73, Reasoning: 76, Helpfulness: 77, Clarity: 75, Safety: 83},
			},
			{
				Name:       "O3/O4",
				BaseWin:    66,
				EndWin:     100 - MatchupO3O4,
				RubricBase: RubricScores{Factual: 74, Reasoning: 76, Helpfulness: 77, Clarity: 75, Safety: 82},
				RubricEnd:  RubricScores{Factual: 76, Reasoning: 78, Helpfulness: 80, Clarity: 78, Safety: 84},
			},
		},
		Domains: []DomainAnchor{
			{Name: "Law", WinRate: 60.0, Volume: 30},
			{Name: "Education", WinRate: 42.1, Volume: 133},
			{Name: "Coding", WinRate: 42.0, Volume: 174},
			{Name: "Medical", WinRate: 40.6, Volume: 64},
			{Name: "General", WinRate: 35.9, Volume: 676},
			{Name: "Finance", WinRate: 34.3, Volume: 70},
			{Name: "Tech Infrastructure", WinRate: 27.0, Volume: 63},
		},
		Languages: []LanguageAnchor{
			{Name: "English", WinRate: 43.4, Volume: 702, Complexity: 0.30, Rubric: 76, Trend: 2.1},
			{Name: "Hindi", WinRate: 50.0, Volume: 4, Complexity: 0.55, Rubric: 80, Trend: 5.4},
			{Name: "Portuguese", WinRate: 39.1, Volume: 23, Complexity: 0.40, Rubric: 72, Trend: 1.8},
			{Name: "Korean", WinRate: 35.4, Volume: 48, Complexity: 0.78, Rubric: 68, Trend: 3.2},
			{Name: "Chinese", WinRate: 34.2, Volume: 111, Complexity: 0.70, Rubric: 66, Trend: 2.5},
			{Name: "Polish", WinRate: 29.9, Volume: 67, Complexity: 0.72, Rubric: 63, Trend: 1.4},
			{Name: "Russian", WinRate: 28.6, Volume: 77, Complexity: 0.68, Rubric: 62, Trend: 1.1},
			{Name: "Spanish", WinRate: 25.6, Volume: 39, Complexity: 0.35, Rubric: 60, Trend: -0.8},
			{Name: "Japanese", WinRate: 18.5, Volume: 25, Complexity: 0.88, Rubric: 52, Trend: 0.6},
			{Name: "Turkish", WinRate: 18.2, Volume: 20, Complexity: 0.75, Rubric: 51, Trend: -0.4},
			{Name: "Arabic", WinRate: 17.2, Volume: 29, Complexity: 0.85, Rubric: 48, Trend: -1.5},
		},
		TrainingCycles: []CycleAnchor{
			{
				ID: "TC-001", Label: "Cycle 1 (Q1)",
				Before:   RubricScores{Factual: 50, Reasoning: 46, Helpfulness: 52, Clarity: 54, Safety: 75},
				After:    RubricScores{Factual: 55, Reasoning: 51, Helpfulness: 57, Clarity: 58, Safety: 78},
				Failures: FailureBreakdown{Hallucination: 21, ReasoningErrors: 22, InstructionFollowing: 19, SafetyViolations: 9},
			},
			{
				ID: "TC-002", Label: "Cycle 2 (Q2)",
				Before:   RubricScores{Factual: 55, Reasoning: 51, Helpfulness: 57, Clarity: 58, Safety: 78},
				After:    RubricScores{Factual: 58, Reasoning: 55, Helpfulness: 60, Clarity: 62, Safety: 80},
				Failures: FailureBreakdown{Hallucination: 19, ReasoningErrors: 20, InstructionFollowing: 16, SafetyViolations: 7},
			},
			{
				ID: "TC-003", Label: "Cycle 3 (Q3)",
				Before:   RubricScores{Factual: 58, Reasoning: 55, Helpfulness: 60, Clarity: 62, Safety: 80},
				After:    RubricScores{Factual: 61, Reasoning: 58, Helpfulness: 63, Clarity: 65, Safety: 82},
				Failures: FailureBreakdown{Hallucination: 17, ReasoningErrors: 18, InstructionFollowing: 14, SafetyViolations: 6},
			},
			{
				ID: "TC-004", Label: "Cycle 4 (Q4)",
				Before:   RubricScores{Factual: 61, Reasoning: 58, Helpfulness: 63, Clarity: 65, Safety: 82},
				After:    rubricOurs,
				Failures: FailureBreakdown{Hallucination: 15, ReasoningErrors: 16, InstructionFollowing: 12, SafetyViolations: 5},
			},
		},
		FailureTrends: FailureTrendAnchors{
			Hallucination:        RateAnchor{Start: 24, End: 15, Amplitude: FailureRateJitter},
			ReasoningErrors:      RateAnchor{Start: 26, End: 16, Amplitude: FailureRateJitter},
			InstructionFollowing: RateAnchor{Start: 22, End: 12, Amplitude: FailureRateJitter},
			SafetyViolations:     RateAnchor{Start: 10, End: 5, Amplitude: SafetyFailureJitter},
		},
	}
}

// Ours returns the anchor of our own model, or nil if none is marked.
func (a *Anchors) Ours() *ModelAnchor {
	for i := range a.Models {
		if a.Models[i].Ours {
			return &a.Models[i]
		}
	}
	return nil
}

// TotalEvaluations sums the sample volume over all domains.
func (a *Anchors) TotalEvaluations() int {
	total := 0
	for _, d := range a.Domains {
		total += d.Volume
	}
	return total
}
