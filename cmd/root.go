package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/retterrudi/travian-tools/optimizer"
	"github.com/retterrudi/travian-tools/optimizer/trace"
)

// envPrefix is prepended to flag names to form environment overrides,
// e.g. TRAVIAN_REFINE_WINDOW for --refine-window.
const envPrefix = "TRAVIAN"

var (
	logLevel string // Log verbosity level

	// CLI flags for the allocate command
	budget       []int  // Available lumber, clay, iron, crop
	cost1        []int  // Cost of one unit of type 1
	cost2        []int  // Cost of one unit of type 2
	unitsFile    string // Troop catalog path
	tribe        string // Tribe whose catalog troops --unit1/--unit2 name
	unit1        string // Catalog troop name for unit type 1
	unit2        string // Catalog troop name for unit type 2
	step         int    // Coarse search grid spacing
	refineWindow int    // Fine search half-width
	jsonOut      bool   // Emit JSON instead of text
	traceLevel   string // Search trace verbosity
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "travian-tools",
	Short: "Resource planning tools for Travian",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindEnv(cmd.Flags()); err != nil {
			return err
		}
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	},
	SilenceUsage: true,
}

// allocateCmd splits a budget between two troop types
var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Split a resource budget between two troop types",
	Long: `Split a resource budget between two troop types, spending as much as possible
and preferring equal troop counts when two splits leave the same amount over.

Costs are given directly with --cost1/--cost2 or looked up in the troop
catalog with --tribe, --unit1 and --unit2.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := allocateOptions{
			Budget:     budget,
			Cost1:      cost1,
			Cost2:      cost2,
			UnitsFile:  unitsFile,
			Tribe:      tribe,
			Unit1:      unit1,
			Unit2:      unit2,
			Search:     optimizer.NewSearchConfig(step, refineWindow),
			JSON:       jsonOut,
			TraceLevel: traceLevel,
		}
		if err := runAllocate(opts, os.Stdout, os.Stderr); err != nil {
			logrus.Fatalf("Allocation failed: %v", err)
		}
	},
}

// allocateOptions carries the allocate command's inputs independent of flag globals.
type allocateOptions struct {
	Budget     []int
	Cost1      []int
	Cost2      []int
	UnitsFile  string
	Tribe      string
	Unit1      string
	Unit2      string
	Search     optimizer.SearchConfig
	JSON       bool
	TraceLevel string
}

// allocateReport is the JSON document written with --json.
type allocateReport struct {
	Unit1      string                 `json:"unit1,omitempty"`
	Unit2      string                 `json:"unit2,omitempty"`
	Budget     optimizer.Resources    `json:"budget"`
	Cost1      optimizer.Resources    `json:"cost1"`
	Cost2      optimizer.Resources    `json:"cost2"`
	Search     optimizer.SearchConfig `json:"search"`
	Allocation optimizer.Allocation   `json:"allocation"`
}

// resolveCosts returns the two unit costs, from the catalog when a tribe or
// unit name is given and from the explicit cost flags otherwise.
func resolveCosts(opts allocateOptions) (optimizer.Resources, optimizer.Resources, error) {
	if opts.Tribe == "" && opts.Unit1 == "" && opts.Unit2 == "" {
		c1, err := optimizer.FromSlice(opts.Cost1)
		if err != nil {
			return optimizer.Resources{}, optimizer.Resources{}, fmt.Errorf("--cost1: %w", err)
		}
		c2, err := optimizer.FromSlice(opts.Cost2)
		if err != nil {
			return optimizer.Resources{}, optimizer.Resources{}, fmt.Errorf("--cost2: %w", err)
		}
		return c1, c2, nil
	}
	if len(opts.Cost1) > 0 || len(opts.Cost2) > 0 {
		return optimizer.Resources{}, optimizer.Resources{}, fmt.Errorf("--cost1/--cost2 cannot be combined with --tribe/--unit1/--unit2")
	}
	if opts.Tribe == "" || opts.Unit1 == "" || opts.Unit2 == "" {
		return optimizer.Resources{}, optimizer.Resources{}, fmt.Errorf("--tribe, --unit1 and --unit2 must be given together")
	}
	cat, err := LoadCatalog(opts.UnitsFile)
	if err != nil {
		return optimizer.Resources{}, optimizer.Resources{}, err
	}
	c1, err := cat.TroopCost(opts.Tribe, opts.Unit1)
	if err != nil {
		return optimizer.Resources{}, optimizer.Resources{}, err
	}
	c2, err := cat.TroopCost(opts.Tribe, opts.Unit2)
	if err != nil {
		return optimizer.Resources{}, optimizer.Resources{}, err
	}
	logrus.Debugf("Loaded costs from %s: %s=%s, %s=%s", opts.UnitsFile, opts.Unit1, c1, opts.Unit2, c2)
	return c1, c2, nil
}

// runAllocate validates the options, runs the allocator and writes the result to out.
// The trace summary, if any, goes to errOut.
func runAllocate(opts allocateOptions, out, errOut io.Writer) error {
	b, err := optimizer.FromSlice(opts.Budget)
	if err != nil {
		return fmt.Errorf("--budget: %w", err)
	}
	if b.HasNegative() {
		return fmt.Errorf("--budget must not be negative, got %s", b)
	}
	if err := opts.Search.Validate(); err != nil {
		return err
	}
	if !trace.IsValidTraceLevel(opts.TraceLevel) {
		return fmt.Errorf("unknown trace level %q; valid: none, phases, candidates", opts.TraceLevel)
	}
	c1, c2, err := resolveCosts(opts)
	if err != nil {
		return err
	}

	logrus.Infof("Allocating budget %s between unit1 (%s) and unit2 (%s), step=%d, refine window=%d",
		b, c1, c2, opts.Search.Step, opts.Search.RefineWindow)

	var st *trace.SearchTrace
	if opts.TraceLevel != "" && trace.TraceLevel(opts.TraceLevel) != trace.TraceLevelNone {
		st = trace.NewSearchTrace(trace.TraceConfig{Level: trace.TraceLevel(opts.TraceLevel)})
	}
	alloc, err := optimizer.NewAllocator(opts.Search).WithTrace(st).Allocate(b, c1, c2)
	if err != nil {
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		report := allocateReport{
			Unit1: opts.Unit1, Unit2: opts.Unit2,
			Budget: b, Cost1: c1, Cost2: c2,
			Search: opts.Search, Allocation: alloc,
		}
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	} else {
		printAllocation(out, opts, alloc)
	}

	if st != nil {
		printTraceSummary(errOut, st)
	}
	return nil
}

func printAllocation(w io.Writer, opts allocateOptions, alloc optimizer.Allocation) {
	name1, name2 := "Unit 1", "Unit 2"
	if opts.Unit1 != "" {
		name1, name2 = opts.Unit1, opts.Unit2
	}
	fmt.Fprintf(w, "%s: %d, %s: %d, Remaining Sum: %d\n", name1, alloc.Count1, name2, alloc.Count2, alloc.LeftoverSum)
	fmt.Fprintf(w, "Cost:      %s\n", alloc.Cost)
	fmt.Fprintf(w, "Remaining: %s\n", alloc.Leftover)
}

func printTraceSummary(w io.Writer, st *trace.SearchTrace) {
	summary := trace.Summarize(st)
	fmt.Fprintf(w, "=== Search Trace ===\n")
	for _, p := range st.Phases {
		fmt.Fprintf(w, "%-6s evaluated=%d rejected=%d skipped_rows=%d best=(%d, %d) leftover=%d\n",
			p.Phase, p.Evaluated, p.Rejected, p.SkippedRows, p.BestN1, p.BestN2, p.BestLeftoverSum)
	}
	fmt.Fprintf(w, "Total evaluated: %d, fine-phase improvement: %d\n", summary.TotalEvaluated, summary.Improvement)
	if summary.CandidatesRecorded > 0 {
		fmt.Fprintf(w, "Candidates recorded: %d\n", summary.CandidatesRecorded)
	}
}

// bindEnv fills every flag the user did not set from its TRAVIAN_* environment
// variable, if present. Explicit flags always win.
func bindEnv(flags *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if bindErr != nil || f.Changed || !v.IsSet(f.Name) {
			return
		}
		if err := flags.Set(f.Name, v.GetString(f.Name)); err != nil {
			bindErr = fmt.Errorf("invalid %s_%s: %w", envPrefix, strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_")), err)
		}
	})
	return bindErr
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Budget and costs, each as lumber,clay,iron,crop
	allocateCmd.Flags().IntSliceVar(&budget, "budget", nil, "Available resources as lumber,clay,iron,crop")
	allocateCmd.Flags().IntSliceVar(&cost1, "cost1", nil, "Cost of one unit of type 1 as lumber,clay,iron,crop")
	allocateCmd.Flags().IntSliceVar(&cost2, "cost2", nil, "Cost of one unit of type 2 as lumber,clay,iron,crop")

	// Troop catalog lookup
	allocateCmd.Flags().StringVar(&unitsFile, "units-file", defaultUnitsFilePath, "Path to the troop catalog YAML")
	allocateCmd.Flags().StringVar(&tribe, "tribe", "", "Tribe in the troop catalog (e.g. spartans)")
	allocateCmd.Flags().StringVar(&unit1, "unit1", "", "Catalog troop name for unit type 1")
	allocateCmd.Flags().StringVar(&unit2, "unit2", "", "Catalog troop name for unit type 2")

	// Search tuning
	allocateCmd.Flags().IntVar(&step, "step", optimizer.DefaultStep, "Coarse search grid spacing (>= 1)")
	allocateCmd.Flags().IntVar(&refineWindow, "refine-window", optimizer.DefaultRefineWindow, "Fine search half-width around the coarse winner (>= 0)")

	// Output
	allocateCmd.Flags().BoolVar(&jsonOut, "json", false, "Output the result as JSON")
	allocateCmd.Flags().StringVar(&traceLevel, "trace", "none", "Search trace level (none, phases, candidates); summary is printed to stderr")

	rootCmd.AddCommand(allocateCmd)
	rootCmd.AddCommand(unitsCmd)
}
