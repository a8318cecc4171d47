// Package http implements the HTTP handlers of the DRE report service. It is
// a thin layer over ReportServiceInterface: handlers decode and validate the
// request, call the service and render the pkg/contracts/api/v1 response.
//
// # Routes
//
//	GET  /api/health               HealthHandler.HealthCheck
//	GET  /api/health/ready         503 until a statement is loaded
//	GET  /api/v1/periods           statement months and default selection
//	GET  /api/v1/categories        registered categories in display order
//	GET  /api/v1/categories/{name} one category
//	POST /api/v1/derive            derived view of one category
//	POST /api/v1/derive/batch      several categories over the same periods
//	POST /api/v1/overview          consolidated totals over the base
//	GET  /metrics                  Prometheus exposition
//
// # Errors
//
// Every failure goes through errors.ErrorHandler and is answered with RFC
// 7807 problem details:
//
//	unknown category            404 /errors/dre/category-not-found
//	account missing from sheet  422 /errors/dre/account-not-found
//	invalid body or field       400 /errors/validation
//	deadline exceeded           504 /errors/timeout
//
// Undefined numbers (zero denominators, spread of a single value) are
// encoded as JSON null.
package http
