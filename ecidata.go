// Package ecidata retrieves per-constituency election result pages and
// converts them into structured vote tallies.
//
// The result pages carry their data on a single line of malformed HTML.
// This package contains the domain types, the error model, the interfaces
// between components, and the line locator that isolates the results line.
// Implementations live in subdirectories named after their primary
// dependency (e.g., etree/, http/, slog/).
package ecidata
