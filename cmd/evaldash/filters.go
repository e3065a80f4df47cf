package main

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/afmlabs/evaldash/internal/filters"
	"github.com/afmlabs/evaldash/internal/metrics"
)

// filterFlags mirrors the dashboard query parameters on the command line.
type filterFlags struct {
	domain   string
	language string
	model    string
	from     string
	to       string
	sort     string
	order    string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.domain, "domain", "", "Domain filter (all, general, coding, education, medical, finance, infrastructure, legal)")
	cmd.Flags().StringVar(&f.language, "language", "", "Language filter (all, english, hindi, ...)")
	cmd.Flags().StringVar(&f.model, "model", "", "Model filter (all, afm, gpt-5, claude-opus-4, o3-o4)")
	cmd.Flags().StringVar(&f.from, "from", "", `First cycle, as an index or label such as "Mar 2025"`)
	cmd.Flags().StringVar(&f.to, "to", "", "Last cycle, as an index or label")
	cmd.Flags().StringVar(&f.sort, "sort", "", "Language sort key (win_rate, evaluation_volume, avg_rubric_score, improvement_trend)")
	cmd.Flags().StringVar(&f.order, "order", "", "Language sort order (asc, desc)")
}

// state parses the flags the same way the API parses its query string.
func (f *filterFlags) state() (filters.State, error) {
	q := url.Values{}
	for k, v := range map[string]string{
		"domain":   f.domain,
		"language": f.language,
		"model":    f.model,
		"from":     f.from,
		"to":       f.to,
		"sort":     f.sort,
		"order":    f.order,
	} {
		if v != "" {
			q.Set(k, v)
		}
	}
	return filters.ParseQuery(q)
}

// apply narrows snap to the flags. ours names our own model in the anchors.
func (f *filterFlags) apply(snap *metrics.Snapshot, anchors *metrics.Anchors) (*metrics.Snapshot, filters.State, error) {
	s, err := f.state()
	if err != nil {
		return nil, s, err
	}
	ours := ""
	if m := anchors.Ours(); m != nil {
		ours = m.Name
	}
	return filters.Apply(snap, s, ours), s, nil
}
