package insights

import (
	"fmt"

	"github.com/afmlabs/evaldash/internal/metrics"
)

var cycleAnnotations = []string{
	"Cycle 1 focused on foundational quality improvements. Factual accuracy saw the largest gain (+8pp), driven by retrieval-augmented training data introduced in Q1.",
	"Cycle 2 delivered broad improvements across all dimensions. Helpfulness jumped +6pp as instruction-tuning datasets were expanded significantly.",
	"Cycle 3 was the most impactful cycle. Reasoning improved +6pp through chain-of-thought fine-tuning. All dimensions crossed the 78+ threshold.",
	"Cycle 4 training delivered +5pp average improvement across all dimensions. Reasoning saw the largest gain (+5pp), confirming the effectiveness of chain-of-thought fine-tuning.",
}

// CycleAnnotation returns the commentary for the training cycle at index.
// Indexes outside the table fall back to the latest cycle.
func CycleAnnotation(index int) string {
	if index < 0 || index >= len(cycleAnnotations) {
		return cycleAnnotations[len(cycleAnnotations)-1]
	}
	return cycleAnnotations[index]
}

// PerformanceAnnotation summarizes the head-to-head matchups.
func PerformanceAnnotation() string {
	return fmt.Sprintf("AFM shows a %.1f%% overall win rate against four top model families. "+
		"Best performance against Claude Opus 4 (%.1f%%) and GPT-5 (%.1f%%), with the widest gap against O3/O4 (%.1f%%).",
		metrics.MatchupOverall, metrics.MatchupClaudeOpus4, metrics.MatchupGPT5, metrics.MatchupO3O4)
}

// DomainAnnotation names the strongest and weakest domain.
func DomainAnnotation(domains []metrics.DomainData) string {
	if len(domains) == 0 {
		return "No domain data for the current selection."
	}
	best, worst := domains[0], domains[0]
	for _, d := range domains[1:] {
		if d.WinRate > best.WinRate {
			best = d
		}
		if d.WinRate < worst.WinRate {
			worst = d
		}
	}
	if best.Domain == worst.Domain {
		return fmt.Sprintf("%s sits at a %.1f%% win rate.", best.Domain, best.WinRate)
	}
	return fmt.Sprintf("%s is the strongest domain at %.1f%% win rate. %s lags behind at %.1f%%, "+
		"suggesting need for domain-specific training data augmentation.",
		best.Domain, best.WinRate, worst.Domain, worst.WinRate)
}

// FailureAnnotation compares the combined failure rate of the first and last cycle.
func FailureAnnotation(trends []metrics.FailureModeTrend) string {
	if len(trends) < 2 {
		return "Not enough cycles to compare failure rates."
	}
	total := func(f metrics.FailureModeTrend) float64 {
		return f.Hallucination + f.ReasoningErrors + f.InstructionFollowing + f.SafetyViolations
	}
	first, last := trends[0], trends[len(trends)-1]
	return fmt.Sprintf("Total failure rate moved from %.0f%% in %s to %.0f%% in %s. Hallucinations went from %.0f%% to %.0f%%.",
		total(first), first.Cycle, total(last), last.Cycle, first.Hallucination, last.Hallucination)
}

// Annotations returns the chart commentary keyed by chart.
func Annotations(snap *metrics.Snapshot) map[string]string {
	out := map[string]string{
		"performance": PerformanceAnnotation(),
		"training":    CycleAnnotation(len(cycleAnnotations) - 1),
	}
	if snap == nil {
		return out
	}
	out["domains"] = DomainAnnotation(snap.Domains)
	out["failures"] = FailureAnnotation(snap.FailureTrends)
	if n := len(snap.TrainingCycles); n > 0 {
		out["training"] = CycleAnnotation(n - 1)
	}
	return out
}
