// Package dre computes the derived views of a monthly income statement (DRE).
//
// The statement is held as a period x account Table: one row per month label,
// one column per account identifier. Every transform in this package takes a
// Table and returns a new one; no function mutates its input, so the same raw
// statement can feed any number of category views, concurrently if needed.
//
// # Pipeline
//
//	raw statement → SelectPeriods → Select(members) → PruneZeroColumns
//	              → AddPercentages / AddPercentOfTotal → Summarize(headline)
//
// The Assembler runs the pipeline for one category of the Registry and
// returns a DerivedView ready for a rendering layer.
//
// # Undefined values
//
// Ratios over a zero denominator and statistics over too few values are
// reported as NaN, never as errors. Use IsUndefined to tell them apart from a
// genuine zero.
//
// # Errors
//
// A category that references an account missing from the statement is a
// configuration error and fails with *AccountNotFoundError (matching
// ErrAccountNotFound with errors.Is). Unknown categories fail with
// ErrCategoryNotFound.
package dre
