package optimizer

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/retterrudi/travian-tools/optimizer/trace"
)

// Allocation is the best (Count1, Count2) pair found by Allocate, together
// with what it costs and what it leaves over.
type Allocation struct {
	Count1      int       `json:"count1"`
	Count2      int       `json:"count2"`
	LeftoverSum int       `json:"leftover_sum"`
	Leftover    Resources `json:"leftover"`
	Cost        Resources `json:"cost"`
}

// Allocator runs the two-phase coarse-to-fine grid search.
// Without a trace attached it holds no mutable state and may be shared.
type Allocator struct {
	config SearchConfig
	logger logrus.FieldLogger
	trace  *trace.SearchTrace
}

// NewAllocator creates an allocator for cfg.
// Panics if cfg is invalid; callers holding user input should call cfg.Validate first.
func NewAllocator(cfg SearchConfig) *Allocator {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("NewAllocator: %v", err))
	}
	return &Allocator{
		config: cfg,
		logger: logrus.StandardLogger(),
	}
}

// WithLogger replaces the logger used for phase results. A nil logger is ignored.
func (a *Allocator) WithLogger(logger logrus.FieldLogger) *Allocator {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// WithTrace attaches a trace that every subsequent Allocate call appends to.
func (a *Allocator) WithTrace(st *trace.SearchTrace) *Allocator {
	a.trace = st
	return a
}

// Config returns the search parameters.
func (a *Allocator) Config() SearchConfig { return a.config }

// candidate is a scored (n1, n2) pair.
type candidate struct {
	n1, n2      int
	leftoverSum int
	diff        int
}

// beats reports whether c should replace the current best o.
// Smaller leftover wins, then smaller |n1-n2|; exact ties keep o.
func (c candidate) beats(o candidate) bool {
	if c.leftoverSum != o.leftoverSum {
		return c.leftoverSum < o.leftoverSum
	}
	return c.diff < o.diff
}

// search is the per-call state shared by both phases.
type search struct {
	budget Resources
	cost1  Resources
	cost2  Resources
	best   candidate
	stats  trace.PhaseRecord
	tr     *trace.SearchTrace
}

// maxUnits2 returns how many type-2 units the budget affords after n1 type-1 units.
func (s *search) maxUnits2(n1 int) (int, error) {
	return s.budget.Sub(s.cost1.Scale(n1)).MaxAffordable(s.cost2)
}

func (s *search) evaluate(n1, n2 int) {
	s.stats.Evaluated++
	leftover := s.budget.Sub(s.cost1.Scale(n1).Add(s.cost2.Scale(n2)))
	if leftover.HasNegative() {
		s.stats.Rejected++
		if s.tr.RecordsCandidates() {
			s.tr.RecordCandidate(trace.CandidateRecord{Phase: s.stats.Phase, N1: n1, N2: n2})
		}
		return
	}
	c := candidate{n1: n1, n2: n2, leftoverSum: leftover.Sum(), diff: abs(n1 - n2)}
	if s.tr.RecordsCandidates() {
		s.tr.RecordCandidate(trace.CandidateRecord{
			Phase:       s.stats.Phase,
			N1:          n1,
			N2:          n2,
			Accepted:    true,
			LeftoverSum: c.leftoverSum,
			Diff:        c.diff,
		})
	}
	if c.beats(s.best) {
		s.best = c
	}
}

func (s *search) beginPhase(phase trace.Phase) {
	s.stats = trace.PhaseRecord{Phase: phase}
}

func (s *search) endPhase(logger logrus.FieldLogger) {
	s.stats.BestN1 = s.best.n1
	s.stats.BestN2 = s.best.n2
	s.stats.BestLeftoverSum = s.best.leftoverSum
	s.stats.BestDiff = s.best.diff
	if s.tr.Enabled() {
		s.tr.RecordPhase(s.stats)
	}
	logger.Debugf("%s phase: best (%d, %d) leftover=%d, evaluated=%d rejected=%d skipped rows=%d",
		s.stats.Phase, s.best.n1, s.best.n2, s.best.leftoverSum,
		s.stats.Evaluated, s.stats.Rejected, s.stats.SkippedRows)
}

// Allocate returns the best split of budget between units costing cost1 and cost2.
// The returned pair never overspends budget in any resource. Returns an error
// wrapping ErrZeroCost if either cost vector has a zero component.
// A negative budget is not validated and gives an unspecified result.
func (a *Allocator) Allocate(budget, cost1, cost2 Resources) (Allocation, error) {
	s := &search{
		budget: budget,
		cost1:  cost1,
		cost2:  cost2,
		best:   candidate{leftoverSum: budget.Sum(), diff: math.MaxInt},
		tr:     a.trace,
	}
	if err := a.coarse(s); err != nil {
		return Allocation{}, err
	}
	if err := a.fine(s); err != nil {
		return Allocation{}, err
	}

	cost := cost1.Scale(s.best.n1).Add(cost2.Scale(s.best.n2))
	alloc := Allocation{
		Count1:      s.best.n1,
		Count2:      s.best.n2,
		LeftoverSum: s.best.leftoverSum,
		Leftover:    budget.Sub(cost),
		Cost:        cost,
	}
	a.logger.Debugf("allocation: %d x unit1 + %d x unit2, leftover %s", alloc.Count1, alloc.Count2, alloc.Leftover)
	return alloc, nil
}

// coarse samples n1 and n2 every Step units from zero up to what is affordable.
// Rows where no type-2 unit fits are skipped entirely, including their n2 = 0 pair.
func (a *Allocator) coarse(s *search) error {
	s.beginPhase(trace.PhaseCoarse)
	maxUnits1, err := s.budget.MaxAffordable(s.cost1)
	if err != nil {
		return err
	}
	step := a.config.Step
	for n1 := 0; n1 <= maxUnits1; n1 += step {
		maxUnits2, err := s.maxUnits2(n1)
		if err != nil {
			return err
		}
		if maxUnits2 <= 0 {
			s.stats.SkippedRows++
			continue
		}
		for n2 := 0; n2 <= maxUnits2; n2 += step {
			s.evaluate(n1, n2)
		}
	}
	s.endPhase(a.logger)
	return nil
}

// fine rescans every pair within RefineWindow of the coarse winner, keeping
// the coarse winner as the incumbent.
func (a *Allocator) fine(s *search) error {
	s.beginPhase(trace.PhaseFine)
	w := a.config.RefineWindow
	center := s.best
	n1Min := max(0, center.n1-w)
	n2Min := max(0, center.n2-w)
	for n1 := n1Min; n1 <= center.n1+w; n1++ {
		maxUnits2, err := s.maxUnits2(n1)
		if err != nil {
			return err
		}
		if maxUnits2 <= 0 {
			s.stats.SkippedRows++
			continue
		}
		n2Max := min(maxUnits2, center.n2+w)
		for n2 := n2Min; n2 <= n2Max; n2++ {
			s.evaluate(n1, n2)
		}
	}
	s.endPhase(a.logger)
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
