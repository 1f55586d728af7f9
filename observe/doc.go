// Package observe provides observability primitives for the solver.
//
// It bundles OpenTelemetry tracing and metrics providers, a structured JSON
// logger built on log/slog, and a Middleware that instruments an operation
// with all three. Exporters are selected by name in the exporters subpackage.
package observe
