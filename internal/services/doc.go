// Package services implements the business logic layer between the HTTP
// handlers or the CLI and the dre package.
//
// ReportService holds one immutable statement loaded at start-up together
// with the category registry and answers every derived-view query against
// it. Requests that omit periods fall back to the configured defaults.
//
//	svc, err := services.NewReportServiceFromConfig(ctx, cfg, metrics, logger)
//	view, err := svc.Derive(ctx, services.DeriveRequest{Category: "ebitda"})
//
// Errors from the dre package are returned unchanged so the transport layer
// can map dre.ErrCategoryNotFound and *dre.AccountNotFoundError to problem
// details. Start-up mismatches between the registry and the statement are
// configuration AppErrors.
//
// HealthService reports liveness and whether a statement is loaded.
package services
