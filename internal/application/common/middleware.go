package common

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andrescamacho/redcycle-go/internal/domain/shared"
)

// LoggingMiddleware logs every request with its outcome and duration.
// Domain rejections are logged at info, other failures at error.
func LoggingMiddleware() Middleware {
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		logger := LoggerFromContext(ctx)
		start := time.Now()

		response, err := next(ctx, request)

		metadata := map[string]interface{}{
			"request":     strings.TrimPrefix(fmt.Sprintf("%T", request), "*"),
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if _, ok := request.(Mutation); ok {
			metadata["mutation"] = true
		}

		switch {
		case err == nil:
			logger.Log(LevelDebug, "request handled", metadata)
		case shared.IsRejection(err):
			metadata["reason"] = err.Error()
			logger.Log(LevelInfo, "request rejected", metadata)
		default:
			metadata["error"] = err.Error()
			logger.Log(LevelError, "request failed", metadata)
		}
		return response, err
	}
}
