package trace

// TraceLevel controls the verbosity of search tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelPhases captures one summary record per search phase.
	TraceLevelPhases TraceLevel = "phases"
	// TraceLevelCandidates additionally captures every evaluated (n1, n2) pair.
	TraceLevelCandidates TraceLevel = "candidates"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:       true,
	TraceLevelPhases:     true,
	TraceLevelCandidates: true,
	"":                   true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SearchTrace collects phase and candidate records during one or more allocations.
type SearchTrace struct {
	Config     TraceConfig
	Phases     []PhaseRecord
	Candidates []CandidateRecord
}

// NewSearchTrace creates a SearchTrace ready for recording.
func NewSearchTrace(config TraceConfig) *SearchTrace {
	return &SearchTrace{
		Config:     config,
		Phases:     make([]PhaseRecord, 0),
		Candidates: make([]CandidateRecord, 0),
	}
}

// Enabled reports whether phase records should be collected.
// Safe for a nil trace.
func (st *SearchTrace) Enabled() bool {
	if st == nil {
		return false
	}
	return st.Config.Level == TraceLevelPhases || st.Config.Level == TraceLevelCandidates
}

// RecordsCandidates reports whether per-candidate records should be collected.
// Safe for a nil trace.
func (st *SearchTrace) RecordsCandidates() bool {
	return st != nil && st.Config.Level == TraceLevelCandidates
}

// RecordPhase appends a phase summary record.
func (st *SearchTrace) RecordPhase(record PhaseRecord) {
	st.Phases = append(st.Phases, record)
}

// RecordCandidate appends a candidate evaluation record.
func (st *SearchTrace) RecordCandidate(record CandidateRecord) {
	st.Candidates = append(st.Candidates, record)
}
