// Package shared holds helpers used by several packages of the DRE report
// tools without belonging to any of them.
//
// The testutil subpackage provides a capturing slog handler and workbook
// fixture builders for tests. It must not import domain packages so that
// in-package tests of those domains can use it.
package shared
