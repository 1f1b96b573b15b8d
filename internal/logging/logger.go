// Package logging defines the structured logger used by services and
// handlers. The variadic args are key/value pairs:
//
//	log.Info(ctx, "puzzle created", "puzzle_id", id, "owner_id", owner)
package logging

import "context"

// Logger is a context-aware, structured logger.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}
