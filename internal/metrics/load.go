package metrics

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/afmlabs/evaldash/internal/validation"
	"github.com/go-viper/mapstructure/v2"
)

// ErrInvalidAnchors is returned when an anchor table fails validation.
var ErrInvalidAnchors = errors.New("invalid anchors")

// LoadAnchors reads a YAML anchor file and overlays it onto the built-in
// table. Sections absent from the file keep their defaults; sections present
// replace the defaults wholesale.
func LoadAnchors(path string) (*Anchors, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading anchors %q: %w", path, err)
	}
	return ParseAnchors(data)
}

// ParseAnchors is LoadAnchors over raw bytes.
func ParseAnchors(data []byte) (*Anchors, error) {
	doc, schemaErrs, err := validation.ParseAnchorsYAML(data)
	if err != nil {
		return nil, err
	}
	if len(schemaErrs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAnchors, strings.Join(schemaErrs, "; "))
	}

	anchors := DefaultAnchors()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      anchors,
		ZeroFields:  true,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnchors, err)
	}

	if err := anchors.Validate(); err != nil {
		return nil, err
	}
	return anchors, nil
}

// Validate checks the invariants the generator relies on. The after ≥ before
// rule for training cycles is only applied when EnforceMonotonicCycles is set.
func (a *Anchors) Validate() error {
	var problems []string

	if len(a.Models) == 0 {
		problems = append(problems, "at least one model is required")
	}
	ours := 0
	for _, m := range a.Models {
		if m.Ours {
			ours++
		}
		if !inPercent(m.BaseWin) || !inPercent(m.EndWin) {
			problems = append(problems, fmt.Sprintf("model %q: win rates must be within [0,100]", m.Name))
		}
		if !rubricInPercent(m.RubricBase) || !rubricInPercent(m.RubricEnd) {
			problems = append(problems, fmt.Sprintf("model %q: rubric scores must be within [0,100]", m.Name))
		}
	}
	if ours != 1 {
		problems = append(problems, fmt.Sprintf("exactly one model must be marked ours, found %d", ours))
	}

	for _, l := range a.Languages {
		if l.Complexity < 0 || l.Complexity > 1 {
			problems = append(problems, fmt.Sprintf("language %q: complexity must be within [0,1]", l.Name))
		}
	}

	seen := make(map[string]bool, len(a.TrainingCycles))
	for _, c := range a.TrainingCycles {
		if seen[c.ID] {
			problems = append(problems, fmt.Sprintf("training cycle %q: duplicate id", c.ID))
		}
		seen[c.ID] = true
		if !a.EnforceMonotonicCycles {
			continue
		}
		for _, d := range Dimensions {
			if c.After.Get(d) < c.Before.Get(d) {
				problems = append(problems, fmt.Sprintf("training cycle %q: %s after (%.1f) is below before (%.1f)",
					c.ID, d.Key(), c.After.Get(d), c.Before.Get(d)))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidAnchors, strings.Join(problems, "; "))
	}
	return nil
}

func inPercent(v float64) bool {
	return v >= 0 && v <= 100
}

func rubricInPercent(r RubricScores) bool {
	for _, d := range Dimensions {
		if !inPercent(r.Get(d)) {
			return false
		}
	}
	return true
}
