// Package api contains the HTTP contract of the DRE report service.
// Version v1 represents the current stable API version.
package api

// Category and account names must already be cleaned identifiers
// ("identifier" tag). Period labels are passed through as given: unknown
// and repeated months select nothing extra.

// DeriveRequest asks for the derived view of one category
type DeriveRequest struct {
	Category    string   `json:"category" validate:"required,identifier"`
	Periods     []string `json:"periods,omitempty"`
	Headline    string   `json:"headline,omitempty" validate:"omitempty,identifier"`
	RequireBase bool     `json:"require_base"`
	Magnitudes  bool     `json:"magnitudes"`
	// DropEmptyPeriods hides periods in which every shown account is zero.
	DropEmptyPeriods bool `json:"drop_empty_periods"`
}

// BatchDeriveRequest asks for several categories over the same periods.
// No categories means all of them.
type BatchDeriveRequest struct {
	Categories []string `json:"categories,omitempty" validate:"omitempty,max=64,unique,dive,identifier"`
	Periods    []string `json:"periods,omitempty"`
}

// OverviewRequest asks for consolidated totals. No columns means every
// category's total line.
type OverviewRequest struct {
	Periods []string `json:"periods,omitempty"`
	Columns []string `json:"columns,omitempty" validate:"omitempty,max=256,unique,dive,identifier"`
}
