package webapi

import (
	"time"

	"github.com/afmlabs/evaldash/internal/auth"
	"github.com/afmlabs/evaldash/internal/filters"
	"github.com/afmlabs/evaldash/internal/insights"
	"github.com/afmlabs/evaldash/internal/metrics"
)

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Success bool      `json:"success"`
	User    auth.User `json:"user"`
}

// LogoutResponse is returned by logout.
type LogoutResponse struct {
	Success bool `json:"success"`
}

// Option is one selectable filter value.
type Option struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// FiltersResponse enumerates every filter value the API accepts.
type FiltersResponse struct {
	Domains     []Option `json:"domains"`
	Languages   []Option `json:"languages"`
	Models      []Option `json:"models"`
	Competitors []Option `json:"competitors"`
	Sections    []Option `json:"sections"`
	SortKeys    []Option `json:"sortKeys"`
	Cycles      []string `json:"cycles"`
}

// Selection echoes the filters a response was computed with.
type Selection struct {
	Domain     string `json:"domain"`
	Language   string `json:"language"`
	Model      string `json:"model"`
	From       string `json:"from"`
	To         string `json:"to"`
	Section    string `json:"section"`
	Sort       string `json:"sort"`
	Order      string `json:"order"`
	Competitor string `json:"competitor"`
}

// DashboardResponse is every dataset of one view, generated in a single pass.
type DashboardResponse struct {
	GeneratedAt      time.Time                  `json:"generatedAt"`
	Filters          Selection                  `json:"filters"`
	Cycles           []string                   `json:"cycles"`
	Models           []string                   `json:"models"`
	Performance      []metrics.ModelPerformance `json:"performance"`
	Chart            []filters.ChartPoint       `json:"chart"`
	KPIs             metrics.KPIs               `json:"kpis"`
	Domains          []metrics.DomainData       `json:"domains"`
	Heatmap          []metrics.HeatmapCell      `json:"heatmap"`
	Languages        []metrics.LanguageData     `json:"languages"`
	TrainingCycles   []metrics.TrainingCycle    `json:"trainingCycles"`
	FailureTrends    []metrics.FailureModeTrend `json:"failureTrends"`
	Severity         []metrics.SeverityData     `json:"severity"`
	RubricComparison []metrics.RubricComparison `json:"rubricComparison"`
	Insights         *insights.Summary          `json:"insights"`
}

// PerformanceResponse is the win-rate view.
type PerformanceResponse struct {
	Models      []string                   `json:"models"`
	Performance []metrics.ModelPerformance `json:"performance"`
	Chart       []filters.ChartPoint       `json:"chart"`
}

// CycleComparisonResponse is the before/after view of one training cycle.
type CycleComparisonResponse struct {
	Cycle      metrics.TrainingCycle     `json:"cycle"`
	Comparison []metrics.CycleComparison `json:"comparison"`
	Annotation string                    `json:"annotation"`
}
