package filters

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"

	"github.com/afmlabs/evaldash/internal/metrics"
)

// TimeRange is an inclusive window of cycle indexes on metrics.Cycles.
type TimeRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// FullRange covers every cycle.
func FullRange() TimeRange {
	return TimeRange{From: 0, To: len(metrics.Cycles) - 1}
}

// Valid reports whether the window lies on the cycle axis and is not inverted.
func (r TimeRange) Valid() bool {
	return r.From >= 0 && r.To < len(metrics.Cycles) && r.From <= r.To
}

// Cycles returns the cycle labels inside the window.
func (r TimeRange) Cycles() []string {
	if !r.Valid() {
		return []string{}
	}
	return slices.Clone(metrics.Cycles[r.From : r.To+1])
}

// Contains reports whether the labelled cycle falls inside the window.
func (r TimeRange) Contains(cycle string) bool {
	i := slices.Index(metrics.Cycles, cycle)
	return i >= r.From && i <= r.To && i >= 0
}

// State is the full set of filter selections for one dashboard view.
type State struct {
	Domain     Domain
	Language   Language
	Model      ModelVersion
	TimeRange  TimeRange
	Section    Section
	SortKey    LanguageSortKey
	SortAsc    bool
	Competitor ModelVersion
}

// NewState returns the unfiltered default selection.
func NewState() State {
	return State{
		Domain:     DomainAll,
		Language:   LanguageAll,
		Model:      ModelAll,
		TimeRange:  FullRange(),
		Section:    SectionOverview,
		SortKey:    SortByWinRate,
		Competitor: ModelGPT5,
	}
}

func (s *State) SetDomain(d Domain) { s.Domain = d }
func (s *State) SetLanguage(l Language) { s.Language = l }
func (s *State) SetModelVersion(m ModelVersion) { s.Model = m }
func (s *State) SetActiveSection(sec Section) { s.Section = sec }

// SetTimeRange replaces the window. An invalid window is rejected.
func (s *State) SetTimeRange(r TimeRange) error {
	if !r.Valid() {
		return fmt.Errorf("%w: time range [%d,%d]", ErrUnknownKey, r.From, r.To)
	}
	s.TimeRange = r
	return nil
}

// SetCompetitor picks the model compared against ours. It must be a concrete competitor.
func (s *State) SetCompetitor(m ModelVersion) error {
	if m == ModelAll || m == ModelAFM {
		return fmt.Errorf("%w: competitor %q", ErrUnknownKey, m.Key())
	}
	s.Competitor = m
	return nil
}

// ParseQuery builds a State from URL query parameters. Absent parameters keep
// their defaults; present ones must be valid keys.
func ParseQuery(q url.Values) (State, error) {
	s := NewState()
	var err error

	if s.Domain, err = ParseDomain(q.Get("domain")); err != nil {
		return State{}, err
	}
	if s.Language, err = ParseLanguage(q.Get("language")); err != nil {
		return State{}, err
	}
	if s.Model, err = ParseModelVersion(q.Get("model")); err != nil {
		return State{}, err
	}
	if s.Section, err = ParseSection(q.Get("section")); err != nil {
		return State{}, err
	}
	if s.SortKey, err = ParseLanguageSortKey(q.Get("sort")); err != nil {
		return State{}, err
	}

	switch q.Get("order") {
	case "", "desc":
	case "asc":
		s.SortAsc = true
	default:
		return State{}, fmt.Errorf("%w: order %q", ErrUnknownKey, q.Get("order"))
	}

	if c := q.Get("competitor"); c != "" {
		m, err := ParseModelVersion(c)
		if err != nil {
			return State{}, err
		}
		if err := s.SetCompetitor(m); err != nil {
			return State{}, err
		}
	}

	r := s.TimeRange
	if r.From, err = cycleIndex(q.Get("from"), r.From); err != nil {
		return State{}, err
	}
	if r.To, err = cycleIndex(q.Get("to"), r.To); err != nil {
		return State{}, err
	}
	if err := s.SetTimeRange(r); err != nil {
		return State{}, err
	}
	return s, nil
}

// cycleIndex accepts either a numeric index or a cycle label such as "Mar 2025".
func cycleIndex(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i, nil
	}
	if i := slices.Index(metrics.Cycles, v); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("%w: cycle %q", ErrUnknownKey, v)
}
