// Package attr provides slog attribute helpers shared by every service so
// log fields keep consistent names across modules.
package attr

import (
	"context"
	"log/slog"

	"github.com/greenside-club/scoring/app/shared/sharedtypes"
)

type correlationIDKey struct{}

// WithCorrelationID stamps a correlation ID onto the context for the
// duration of one import session or request.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationID returns the correlation ID stamped on the context, or ""
// when none was set.
func CorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// ExtractCorrelationID pulls the correlation ID off the context as a log
// attribute, or an empty attribute when none was set.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String("correlation_id", CorrelationID(ctx))
}

func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

func Int(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

func Float64(key string, value float64) slog.Attr {
	return slog.Float64(key, value)
}

func Bool(key string, value bool) slog.Attr {
	return slog.Bool(key, value)
}

func Any(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func EventID(key string, id sharedtypes.EventID) slog.Attr {
	return slog.String(key, id.String())
}
