package template

import "log/slog"

// DefaultMaxDepth is the conditional nesting limit of the default engine.
const DefaultMaxDepth = 64

// Option configures an Engine.
type Option func(*Engine)

// WithMaxDepth sets how deeply ${name?} blocks may nest before parsing
// fails with NestingTooDeep. Zero or a negative value removes the limit.
//
// Default: DefaultMaxDepth
//
// Example:
//
//	eng := NewEngine(WithMaxDepth(2))
//	_, err := eng.Render("${a?}${b?}${c?}x${end}${end}${end}", nil)
//	// err: Conditional blocks nested too deeply (limit 2)
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		e.maxDepth = depth
	}
}

// WithLogger sets the logger used for debug output while rendering.
//
// Default: nil (no logging)
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}
