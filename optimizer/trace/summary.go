package trace

// TraceSummary aggregates statistics from a SearchTrace.
type TraceSummary struct {
	TotalEvaluated   int
	TotalRejected    int
	TotalSkippedRows int
	Allocations      int // number of coarse phases seen
	// Improvement is the leftover reduction of the last fine phase over the
	// coarse phase preceding it. Never negative.
	Improvement        int
	CandidatesRecorded int
	PhaseDistribution  map[Phase]int // phase → evaluated pairs
}

// Summarize computes aggregate statistics from a SearchTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SearchTrace) *TraceSummary {
	summary := &TraceSummary{
		PhaseDistribution: make(map[Phase]int),
	}
	if st == nil {
		return summary
	}

	var lastCoarse *PhaseRecord
	for i := range st.Phases {
		p := &st.Phases[i]
		summary.TotalEvaluated += p.Evaluated
		summary.TotalRejected += p.Rejected
		summary.TotalSkippedRows += p.SkippedRows
		summary.PhaseDistribution[p.Phase] += p.Evaluated
		switch p.Phase {
		case PhaseCoarse:
			summary.Allocations++
			lastCoarse = p
		case PhaseFine:
			if lastCoarse != nil {
				summary.Improvement = lastCoarse.BestLeftoverSum - p.BestLeftoverSum
			}
		}
	}
	summary.CandidatesRecorded = len(st.Candidates)

	return summary
}
