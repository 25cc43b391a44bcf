package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/redcycle-go/internal/application/common"
)

// PrometheusMiddleware creates a middleware that records request execution metrics
//
// Request names are extracted via reflection and simplified to remove package prefixes.
// For example: "*commands.ProcessModuleCommand" becomes "ProcessModuleCommand"
func PrometheusMiddleware(collector *CommandMetricsCollector) common.Middleware {
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)

		collector.RecordCommandExecution(requestName(request), requestKind(request), time.Since(start).Seconds(), err)
		return response, err
	}
}

func requestKind(request common.Request) string {
	if _, ok := request.(common.Mutation); ok {
		return KindMutation
	}
	return KindRead
}

// requestName extracts a clean request name using reflection
// Examples:
//   - "*commands.ProcessModuleCommand" → "ProcessModuleCommand"
//   - "*queries.GetStateQuery" → "GetStateQuery"
func requestName(request common.Request) string {
	if request == nil {
		return "UnknownRequest"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	parts := strings.Split(fullName, ".")
	return parts[len(parts)-1]
}
