package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/afmlabs/evaldash/internal/auth"
	"github.com/afmlabs/evaldash/internal/export"
	"github.com/afmlabs/evaldash/internal/filters"
	"github.com/afmlabs/evaldash/internal/insights"
	"github.com/afmlabs/evaldash/internal/logging"
	"github.com/afmlabs/evaldash/internal/metrics"
	"github.com/afmlabs/evaldash/internal/observability"
)

// Version is set at build time or defaults to dev.
var Version = "0.1.0-dev"

// maxLoginBody caps the login request body.
const maxLoginBody = 1 << 16

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Config configures Handlers.
type Config struct {
	Source        DatasetSource
	Credentials   auth.Credentials
	SecureCookies bool
	Metrics       *observability.Metrics
	// Now defaults to time.Now.
	Now func() time.Time
}

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	source  DatasetSource
	creds   auth.Credentials
	secure  bool
	metrics *observability.Metrics
	now     func() time.Time
}

// NewHandlers creates a new Handlers from cfg.
func NewHandlers(cfg Config) *Handlers {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Handlers{
		source:  cfg.Source,
		creds:   cfg.Credentials,
		secure:  cfg.SecureCookies,
		metrics: cfg.Metrics,
		now:     now,
	}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleLogin checks the submitted credentials and sets the session cookie.
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	var req auth.LoginRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxLoginBody)).Decode(&req); err != nil {
		logger.Warn("login body unreadable", "error", err)
		h.metrics.Login("error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user, err := h.creds.Login(req)
	switch {
	case errors.Is(err, auth.ErrValidation):
		h.metrics.Login("invalid")
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	case errors.Is(err, auth.ErrAuthentication):
		logger.Info("login rejected", "email", req.Email)
		h.metrics.Login("rejected")
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	case err != nil:
		logger.Error("login failed", "error", err)
		h.metrics.Login("error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := auth.EncodeToken(user, h.now())
	if err != nil {
		logger.Error("issuing session", "error", err)
		h.metrics.Login("error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(w, auth.SessionCookie(token, h.secure))
	logger.Info("login", logging.AddIf([]any{"email", user.Email}, "role", user.Role)...)
	h.metrics.Login("success")
	writeJSON(w, http.StatusOK, LoginResponse{Success: true, User: user})
}

// HandleLogout clears the session cookie unconditionally.
func (h *Handlers) HandleLogout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, auth.ClearedCookie(h.secure))
	writeJSON(w, http.StatusOK, LogoutResponse{Success: true})
}

// HandleFilters lists the accepted filter values.
func (h *Handlers) HandleFilters(w http.ResponseWriter, _ *http.Request) {
	resp := FiltersResponse{
		Domains:     options(filters.Domains, filters.Domain.Key, filters.Domain.Label),
		Languages:   options(filters.Languages, filters.Language.Key, filters.Language.Label),
		Models:      options(filters.ModelVersions, filters.ModelVersion.Key, filters.ModelVersion.Label),
		Competitors: options(filters.ModelVersions[2:], filters.ModelVersion.Key, filters.ModelVersion.Label),
		Sections:    options(filters.Sections, filters.Section.Key, filters.Section.Label),
		SortKeys:    options(filters.LanguageSortKeys, filters.LanguageSortKey.Key, filters.LanguageSortKey.Key),
		Cycles:      append([]string(nil), metrics.Cycles...),
	}
	writeJSON(w, http.StatusOK, resp)
}

func options[T any](values []T, key, label func(T) string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Key: key(v), Label: label(v)})
	}
	return out
}

// view is one generated snapshot together with its filtered projection.
type view struct {
	state    filters.State
	full     *metrics.Snapshot
	filtered *metrics.Snapshot
	models   []string
	ours     string
}

// loadView parses the filters and generates a snapshot. On failure it has
// already written the error response.
func (h *Handlers) loadView(w http.ResponseWriter, r *http.Request) (*view, bool) {
	state, err := filters.ParseQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	snap, err := h.source.Snapshot(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("generating snapshot", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}

	ours := ""
	if m := h.source.Anchors().Ours(); m != nil {
		ours = m.Name
	}
	return &view{
		state:    state,
		full:     snap,
		filtered: filters.Apply(snap, state, ours),
		models:   filters.ModelNames(snap.Performance, state.Model, ours),
		ours:     ours,
	}, true
}

func (v *view) kpis(totalEvaluations int) metrics.KPIs {
	return metrics.ComputeKPIs(v.filtered.Performance, v.ours, totalEvaluations)
}

func (v *view) heatmap() []metrics.HeatmapCell {
	return filters.ClipHeatmap(metrics.GenerateHeatmapData(v.filtered.Domains), v.state.TimeRange)
}

func (v *view) rubricComparison() []metrics.RubricComparison {
	return metrics.CompareRubrics(v.full.Performance, v.ours, v.state.Competitor.Label())
}

func selection(s filters.State) Selection {
	order := "desc"
	if s.SortAsc {
		order = "asc"
	}
	return Selection{
		Domain:     s.Domain.Key(),
		Language:   s.Language.Key(),
		Model:      s.Model.Key(),
		From:       metrics.Cycles[s.TimeRange.From],
		To:         metrics.Cycles[s.TimeRange.To],
		Section:    s.Section.Key(),
		Sort:       s.SortKey.Key(),
		Order:      order,
		Competitor: s.Competitor.Key(),
	}
}

// HandleDashboard returns every dataset of one view from a single snapshot.
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	v, ok := h.loadView(w, r)
	if !ok {
		return
	}
	summary, err := insights.Build(v.filtered)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, DashboardResponse{
		GeneratedAt:      h.now().UTC(),
		Filters:          selection(v.state),
		Cycles:           v.filtered.Cycles,
		Models:           v.models,
		Performance:      v.filtered.Performance,
		Chart:            filters.PerformanceChart(v.filtered.Performance, v.models),
		KPIs:             v.kpis(h.source.Anchors().TotalEvaluations()),
		Domains:          v.filtered.Domains,
		Heatmap:          v.heatmap(),
		Languages:        v.filtered.Languages,
		TrainingCycles:   v.filtered.TrainingCycles,
		FailureTrends:    v.filtered.FailureTrends,
		Severity:         v.filtered.Severity,
		RubricComparison: v.rubricComparison(),
		Insights:         summary,
	})
}

// datasetHandler serves one projection of a freshly generated view.
func (h *Handlers) datasetHandler(project func(v *view) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := h.loadView(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, project(v))
	}
}

// HandlePerformance returns model win rates over the selected cycles.
func (h *Handlers) HandlePerformance(w http.ResponseWriter, r *http.Request) {
	h.datasetHandler(func(v *view) any {
		return PerformanceResponse{
			Models:      v.models,
			Performance: v.filtered.Performance,
			Chart:       filters.PerformanceChart(v.filtered.Performance, v.models),
		}
	})(w, r)
}

// HandleDomains returns domains sorted by descending win rate.
func (h *Handlers) HandleDomains(w http.ResponseWriter, r *http.Request) {
	h.datasetHandler(func(v *view) any { return v.filtered.Domains })(w, r)
}

// HandleLanguages returns languages in the requested sort order.
func (h *Handlers) HandleLanguages(w http.ResponseWriter, r *http.Request) {
	h.datasetHandler(func(v *view) any { return v.filtered.Languages })(w, r)
}

// HandleTrainingCycles returns the training cycles in order.
func (h *Handlers) HandleTrainingCycles(w http.ResponseWriter, r *http.Request) {
	h.datasetHandler(func(v *view) any { return v.filtered.TrainingCycles })(w, r)
}

// HandleFailureTrends returns failure rates over the selected cycles.
func (h *Handlers) HandleFailureTrends(w http.ResponseWriter, r *http.Request) {
	h.datasetHandler(func(v *view) any { return v.filtered.FailureTrends })(w, r)
}

// HandleSeverity returns the rubric pass/fail split.
func (h *Handlers) HandleSeverity(w http.ResponseWriter, r *http.Request) {
	h.datasetHandler(func(v *view) any { return v.filtered.Severity })(w, r)
}

// HandleKPIs returns the headline numbers of our model.
func (h *Handlers) HandleKPIs(w http.ResponseWriter, r *http.Request) {
	h.datasetHandler(func(v *view) any { return v.kpis(h.source.Anchors().TotalEvaluations()) })(w, r)
}

// HandleHeatmap returns the domain × cycle grid.
func (h *Handlers) HandleHeatmap(w http.ResponseWriter, r *http.Request) {
	h.datasetHandler(func(v *view) any { return v.heatmap() })(w, r)
}

// HandleRubricComparison compares our latest rubric with the competitor's.
func (h *Handlers) HandleRubricComparison(w http.ResponseWriter, r *http.Request) {
	h.datasetHandler(func(v *view) any { return v.rubricComparison() })(w, r)
}

// HandleCycleComparison returns the before/after view of one training cycle.
func (h *Handlers) HandleCycleComparison(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "cycle id is required")
		return
	}
	v, ok := h.loadView(w, r)
	if !ok {
		return
	}

	cycle, err := metrics.FindCycle(v.full.TrainingCycles, id)
	if err != nil {
		if errors.Is(err, metrics.ErrCycleNotFound) {
			writeError(w, http.StatusNotFound, "training cycle not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	index := 0
	for i, c := range v.full.TrainingCycles {
		if c.CycleID == id {
			index = i
		}
	}
	writeJSON(w, http.StatusOK, CycleComparisonResponse{
		Cycle:      cycle,
		Comparison: metrics.CompareCycle(cycle),
		Annotation: insights.CycleAnnotation(index),
	})
}

// HandleInsights returns the insight cards, stats and annotations.
func (h *Handlers) HandleInsights(w http.ResponseWriter, r *http.Request) {
	v, ok := h.loadView(w, r)
	if !ok {
		return
	}
	summary, err := insights.Build(v.filtered)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleExportWorkbook streams the filtered view as an XLSX workbook.
func (h *Handlers) HandleExportWorkbook(w http.ResponseWriter, r *http.Request) {
	v, ok := h.loadView(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="evaldash.xlsx"`)
	if err := export.WriteWorkbook(w, v.filtered); err != nil {
		logging.FromContext(r.Context()).Error("writing workbook", "error", err)
	}
}

// HandleExportCSV streams one dataset of the filtered view as CSV.
func (h *Handlers) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("dataset")
	v, ok := h.loadView(w, r)
	if !ok {
		return
	}
	table, err := export.TableFor(v.filtered, name)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, table.Name))
	if err := export.WriteCSV(w, table); err != nil {
		logging.FromContext(r.Context()).Error("writing csv", "error", err)
	}
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, h *Handlers) {
	mux.HandleFunc("POST /api/auth/login", h.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", h.HandleLogout)

	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/filters", h.HandleFilters)
	mux.HandleFunc("GET /api/dashboard", h.HandleDashboard)
	mux.HandleFunc("GET /api/performance", h.HandlePerformance)
	mux.HandleFunc("GET /api/domains", h.HandleDomains)
	mux.HandleFunc("GET /api/languages", h.HandleLanguages)
	mux.HandleFunc("GET /api/training-cycles", h.HandleTrainingCycles)
	mux.HandleFunc("GET /api/training-cycles/{id}/comparison", h.HandleCycleComparison)
	mux.HandleFunc("GET /api/failure-trends", h.HandleFailureTrends)
	mux.HandleFunc("GET /api/severity", h.HandleSeverity)
	mux.HandleFunc("GET /api/kpis", h.HandleKPIs)
	mux.HandleFunc("GET /api/heatmap", h.HandleHeatmap)
	mux.HandleFunc("GET /api/rubric-comparison", h.HandleRubricComparison)
	mux.HandleFunc("GET /api/insights", h.HandleInsights)
	mux.HandleFunc("GET /api/export", h.HandleExportWorkbook)
	mux.HandleFunc("GET /api/export/{dataset}", h.HandleExportCSV)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
