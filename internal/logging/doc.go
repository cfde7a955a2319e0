// Package logging assembles structured slog loggers and attribute helpers used
// across datesift components.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and exposes a no-op logger for tests and wiring code that cannot fail.
// Component code tags its lines via NewComponentLogger so every record carries
// a stable component field.
//
// Prefer these constructors over hand-rolled slog setup so all pipeline stages
// emit records with the same shape.
package logging
