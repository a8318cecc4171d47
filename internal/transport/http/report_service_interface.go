package http

import (
	"context"

	"drecli/internal/dre"
	"drecli/internal/services"
)

// ReportServiceInterface defines the report operations the handlers need
type ReportServiceInterface interface {
	Periods() []string
	DefaultPeriods() []string
	Categories() []dre.Category
	Category(name string) (dre.Category, error)
	Derive(ctx context.Context, req services.DeriveRequest) (*dre.DerivedView, error)
	DeriveAll(ctx context.Context, periods, names []string) ([]*dre.DerivedView, error)
	Overview(ctx context.Context, periods, columns []string) (*services.Overview, error)
}

// StructValidator validates decoded request bodies
type StructValidator interface {
	ValidateStruct(v interface{}) error
}
