package metrics

import "github.com/afmlabs/evaldash/internal/statistics"

// RubricScores holds the five rubric pass rates, each a percentage in [0,100].
type RubricScores struct {
	Factual     float64 `json:"factual" yaml:"factual" mapstructure:"factual"`
	Reasoning   float64 `json:"reasoning" yaml:"reasoning" mapstructure:"reasoning"`
	Helpfulness float64 `json:"helpfulness" yaml:"helpfulness" mapstructure:"helpfulness"`
	Clarity     float64 `json:"clarity" yaml:"clarity" mapstructure:"clarity"`
	Safety      float64 `json:"safety" yaml:"safety" mapstructure:"safety"`
}

// Get returns the score for a single dimension.
func (r RubricScores) Get(d Dimension) float64 {
	switch d {
	case DimensionFactual:
		return r.Factual
	case DimensionReasoning:
		return r.Reasoning
	case DimensionHelpfulness:
		return r.Helpfulness
	case DimensionClarity:
		return r.Clarity
	case DimensionSafety:
		return r.Safety
	}
	return 0
}

// Average is the unrounded mean of all five dimensions.
func (r RubricScores) Average() float64 {
	return Mean([]float64{r.Factual, r.Reasoning, r.Helpfulness, r.Clarity, r.Safety})
}

// ModelPerformance is one (model, cycle) sample.
type ModelPerformance struct {
	Timestamp    string       `json:"timestamp"`
	Cycle        string       `json:"cycle"`
	ModelName    string       `json:"model_name"`
	WinRate      float64      `json:"win_rate"`
	RubricScores RubricScores `json:"rubric_scores"`
}

// DomainData summarizes one business domain. Trend is aligned to Cycles.
type DomainData struct {
	Domain           string    `json:"domain"`
	WinRate          float64   `json:"win_rate"`
	EvaluationVolume int       `json:"evaluation_volume"`
	Trend            []float64 `json:"trend"`
}

// LanguageData summarizes one natural language.
type LanguageData struct {
	Language         string  `json:"language"`
	WinRate          float64 `json:"win_rate"`
	EvaluationVolume int     `json:"evaluation_volume"`
	ComplexityScore  float64 `json:"complexity_score"`
	AvgRubricScore   float64 `json:"avg_rubric_score"`
	ImprovementTrend float64 `json:"improvement_trend"`
}

// FailureBreakdown counts failures per category for a training cycle.
type FailureBreakdown struct {
	Hallucination        int `json:"hallucination" yaml:"hallucination" mapstructure:"hallucination"`
	ReasoningErrors      int `json:"reasoning_errors" yaml:"reasoning_errors" mapstructure:"reasoning_errors"`
	InstructionFollowing int `json:"instruction_following" yaml:"instruction_following" mapstructure:"instruction_following"`
	SafetyViolations     int `json:"safety_violations" yaml:"safety_violations" mapstructure:"safety_violations"`
}

// TrainingCycle is a quarterly before/after rubric snapshot.
type TrainingCycle struct {
	CycleID          string           `json:"cycle_id"`
	CycleLabel       string           `json:"cycle_label"`
	BeforeScores     RubricScores     `json:"before_scores"`
	AfterScores      RubricScores     `json:"after_scores"`
	FailureBreakdown FailureBreakdown `json:"failure_breakdown"`
}

// FailureModeTrend holds failure-rate percentages for one cycle.
type FailureModeTrend struct {
	Cycle                string  `json:"cycle"`
	Hallucination        float64 `json:"hallucination"`
	ReasoningErrors      float64 `json:"reasoning_errors"`
	InstructionFollowing float64 `json:"instruction_following"`
	SafetyViolations     float64 `json:"safety_violations"`
}

// SeverityData is the pass/fail split of one rubric dimension.
type SeverityData struct {
	Category string `json:"category"`
	Pass     int    `json:"pass"`
	Fail     int    `json:"fail"`
}

// KPIs are the headline numbers of the performance overview.
type KPIs struct {
	WinRate       float64                       `json:"winRate"`
	WinRateChange float64                       `json:"winRateChange"`
	TotalDR       int                           `json:"totalDR"`
	AvgRubric     float64                       `json:"avgRubric"`
	Improvement   float64                       `json:"improvement"`
	SparkData     []float64                     `json:"sparkData"`
	WinRateCI     statistics.ConfidenceInterval `json:"winRateCI"`
}

// HeatmapCell is one (domain, cycle) value.
type HeatmapCell struct {
	Domain string  `json:"domain"`
	Cycle  string  `json:"cycle"`
	Value  float64 `json:"value"`
}

// RubricComparison pairs ours against a competitor on one dimension.
type RubricComparison struct {
	Dimension  string  `json:"dimension"`
	Ours       float64 `json:"ours"`
	Competitor float64 `json:"competitor"`
}

// CycleComparison is the before/after delta of one dimension in a training cycle.
type CycleComparison struct {
	Dimension   string  `json:"dimension"`
	Before      float64 `json:"before"`
	After       float64 `json:"after"`
	Improvement float64 `json:"improvement"`
}

// Snapshot bundles every dataset produced by a single generation pass, so a
// view renders all of its charts from the same draw.
type Snapshot struct {
	Cycles         []string           `json:"cycles"`
	Performance    []ModelPerformance `json:"performance"`
	Domains        []DomainData       `json:"domains"`
	Languages      []LanguageData     `json:"languages"`
	TrainingCycles []TrainingCycle    `json:"trainingCycles"`
	FailureTrends  []FailureModeTrend `json:"failureTrends"`
	Severity       []SeverityData     `json:"severity"`
}
