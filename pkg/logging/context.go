package logging

import "log/slog"

// WithOperator returns a child logger tagged with the operator's name, e.g.
// "HashJoin" or "HashAggregation".
func WithOperator(name string) *slog.Logger {
	return Get().With("operator", name)
}

// WithPhase returns a child logger tagged with a phase within an
// operator's lifecycle, e.g. "build", "probe", "materialize", "emit".
func WithPhase(operator, phase string) *slog.Logger {
	return Get().With("operator", operator, "phase", phase)
}

// WithError returns a child logger with the error attached as a field.
func WithError(err error) *slog.Logger {
	return Get().With("error", err.Error())
}
