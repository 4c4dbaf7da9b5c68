package trace

import (
	"testing"
)

func TestSearchTrace_RecordPhase_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for phases
	st := NewSearchTrace(TraceConfig{Level: TraceLevelPhases})

	// WHEN a phase record is recorded
	st.RecordPhase(PhaseRecord{
		Phase:           PhaseCoarse,
		Evaluated:       9,
		BestN1:          10,
		BestN2:          10,
		BestLeftoverSum: 5100,
	})

	// THEN the trace contains one phase record with correct data
	if len(st.Phases) != 1 {
		t.Fatalf("expected 1 phase, got %d", len(st.Phases))
	}
	if st.Phases[0].Phase != PhaseCoarse {
		t.Errorf("expected coarse phase, got %s", st.Phases[0].Phase)
	}
	if st.Phases[0].BestLeftoverSum != 5100 {
		t.Errorf("expected leftover 5100, got %d", st.Phases[0].BestLeftoverSum)
	}
}

func TestSearchTrace_RecordCandidate_PreservesOrder(t *testing.T) {
	// GIVEN a trace configured for candidates
	st := NewSearchTrace(TraceConfig{Level: TraceLevelCandidates})

	// WHEN multiple candidates are added
	st.RecordCandidate(CandidateRecord{Phase: PhaseCoarse, N1: 0, N2: 0, Accepted: true, LeftoverSum: 400})
	st.RecordCandidate(CandidateRecord{Phase: PhaseCoarse, N1: 0, N2: 5, Accepted: false})
	st.RecordCandidate(CandidateRecord{Phase: PhaseFine, N1: 1, N2: 1, Accepted: true, LeftoverSum: 320})

	// THEN order is preserved
	if len(st.Candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(st.Candidates))
	}
	if st.Candidates[1].N2 != 5 || st.Candidates[1].Accepted {
		t.Error("candidate order not preserved")
	}
	if st.Candidates[2].Phase != PhaseFine {
		t.Errorf("expected fine phase last, got %s", st.Candidates[2].Phase)
	}
}

func TestSearchTrace_LevelGates(t *testing.T) {
	tests := []struct {
		name           string
		st             *SearchTrace
		wantEnabled    bool
		wantCandidates bool
	}{
		{"nil trace", nil, false, false},
		{"none", NewSearchTrace(TraceConfig{Level: TraceLevelNone}), false, false},
		{"empty level", NewSearchTrace(TraceConfig{}), false, false},
		{"phases", NewSearchTrace(TraceConfig{Level: TraceLevelPhases}), true, false},
		{"candidates", NewSearchTrace(TraceConfig{Level: TraceLevelCandidates}), true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.st.Enabled(); got != tt.wantEnabled {
				t.Errorf("Enabled() = %v, want %v", got, tt.wantEnabled)
			}
			if got := tt.st.RecordsCandidates(); got != tt.wantCandidates {
				t.Errorf("RecordsCandidates() = %v, want %v", got, tt.wantCandidates)
			}
		})
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"phases", true},
		{"candidates", true},
		{"", true}, // empty defaults to none
		{"decisions", false},
		{"PHASES", false}, // case-sensitive
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidTraceLevel(tt.level); got != tt.valid {
				t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
			}
		})
	}
}
