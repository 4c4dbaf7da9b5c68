package optimizer

import "fmt"

const (
	// DefaultStep is the coarse-phase grid spacing.
	DefaultStep = 5
	// DefaultRefineWindow is the fine-phase half-width around the coarse winner.
	DefaultRefineWindow = 5
)

// SearchConfig holds the tuning parameters of the two-phase search.
// Larger steps make the coarse phase faster but coarser; a larger refine
// window makes the fine phase recover more of what the coarse phase skipped.
type SearchConfig struct {
	Step         int `json:"step"`          // coarse grid spacing (must be >= 1)
	RefineWindow int `json:"refine_window"` // fine-phase half-width (>= 0; 0 rechecks only the coarse winner)
}

// NewSearchConfig creates a SearchConfig with all fields explicitly set.
// Does not apply defaults; use DefaultSearchConfig for those.
func NewSearchConfig(step, refineWindow int) SearchConfig {
	return SearchConfig{Step: step, RefineWindow: refineWindow}
}

// DefaultSearchConfig returns step 5 and refine window 5.
func DefaultSearchConfig() SearchConfig {
	return NewSearchConfig(DefaultStep, DefaultRefineWindow)
}

// Validate returns an error describing the first invalid field, or nil.
func (c SearchConfig) Validate() error {
	if c.Step < 1 {
		return fmt.Errorf("step must be >= 1, got %d", c.Step)
	}
	if c.RefineWindow < 0 {
		return fmt.Errorf("refine window must be >= 0, got %d", c.RefineWindow)
	}
	return nil
}
