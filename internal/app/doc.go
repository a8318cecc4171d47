// Package app wires the DRE report web service: configuration, logging,
// OpenTelemetry, the report service over the loaded statement, the chi
// router with its middleware chain and the HTTP server lifecycle.
//
// # Initialization Flow
//
//  1. Load configuration from environment and files
//  2. Initialize logging and observability
//  3. Load the statement workbook and the category registry, and check
//     every category against the statement
//  4. Set up handlers and middleware
//  5. Start the HTTP server and wait for SIGINT/SIGTERM
//
// # Usage
//
//	application, err := app.NewApplication(ctx)
//	if err != nil {
//	    return err
//	}
//	return application.Run()
package app
