// Package trace provides search-trace recording for the troop allocator.
// It has no dependencies on optimizer/ and stores pure data types only.
package trace

// Phase identifies which pass of the search produced a record.
type Phase string

const (
	PhaseCoarse Phase = "coarse"
	PhaseFine   Phase = "fine"
)

// CandidateRecord captures a single evaluated (n1, n2) pair.
// LeftoverSum and Diff are zero for rejected (over-budget) pairs.
type CandidateRecord struct {
	Phase       Phase
	N1          int
	N2          int
	Accepted    bool
	LeftoverSum int
	Diff        int
}

// PhaseRecord captures the outcome of one search phase.
type PhaseRecord struct {
	Phase           Phase
	Evaluated       int // pairs checked against the budget
	Rejected        int // pairs that overspent at least one resource
	SkippedRows     int // n1 values with no affordable unit of type 2
	BestN1          int
	BestN2          int
	BestLeftoverSum int
	BestDiff        int // math.MaxInt if no pair was ever accepted
}
