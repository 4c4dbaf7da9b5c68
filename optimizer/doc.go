// Package optimizer splits a fixed Travian resource budget between two troop
// types.
//
// # Reading Guide
//
//   - resources.go: the four-component Resources value type and its arithmetic
//   - config.go: SearchConfig, the step and refine-window tuning parameters
//   - allocator.go: the two-phase coarse-to-fine grid search
//
// # Search
//
// The allocator first samples the (n1, n2) grid every Step units, keeping the
// pair with the smallest leftover sum and, among equal leftovers, the smallest
// |n1-n2|. It then rescans a window of half-width RefineWindow around that pair
// at step 1. The result is always affordable but is not guaranteed to be the
// global optimum.
//
// Decision traces for both phases live in the optimizer/trace sub-package.
package optimizer
