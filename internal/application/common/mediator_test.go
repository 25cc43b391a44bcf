package common

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/redcycle-go/internal/domain/shared"
)

type pingRequest struct{ Value string }

type pingHandler struct{ calls int }

func (h *pingHandler) Handle(ctx context.Context, request Request) (Response, error) {
	h.calls++
	req := request.(*pingRequest)
	switch req.Value {
	case "fail":
		return nil, errors.New("ping failed")
	case "refuse":
		return nil, shared.NewDomainError("ping refused")
	}
	return "pong:" + req.Value, nil
}

type recordingLogger struct {
	levels []string
	last   map[string]interface{}
}

func (l *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.levels = append(l.levels, level)
	l.last = metadata
}

func TestMediator_SendDispatchesToHandler(t *testing.T) {
	m := NewMediator()
	handler := &pingHandler{}
	require.NoError(t, RegisterHandler[*pingRequest](m, handler))

	resp, err := m.Send(context.Background(), &pingRequest{Value: "a"})

	require.NoError(t, err)
	assert.Equal(t, "pong:a", resp)
	assert.Equal(t, 1, handler.calls)
}

func TestMediator_RegisterErrors(t *testing.T) {
	m := NewMediator()

	assert.Error(t, m.Register(nil, &pingHandler{}))
	require.NoError(t, RegisterHandler[*pingRequest](m, &pingHandler{}))
	assert.Error(t, RegisterHandler[*pingRequest](m, &pingHandler{}))

	_, err := m.Send(context.Background(), nil)
	assert.Error(t, err)
	_, err = m.Send(context.Background(), "unregistered")
	assert.Error(t, err)
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	m := NewMediator()
	require.NoError(t, RegisterHandler[*pingRequest](m, &pingHandler{}))

	var order []string
	trace := func(name string) Middleware {
		return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
			order = append(order, name+":before")
			resp, err := next(ctx, request)
			order = append(order, name+":after")
			return resp, err
		}
	}
	m.Use(trace("outer"))
	m.Use(trace("inner"))

	_, err := m.Send(context.Background(), &pingRequest{Value: "x"})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, order)
}

func TestLoggingMiddleware(t *testing.T) {
	m := NewMediator()
	require.NoError(t, RegisterHandler[*pingRequest](m, &pingHandler{}))
	m.Use(LoggingMiddleware())
	logger := &recordingLogger{}
	ctx := WithLogger(context.Background(), logger)

	_, err := m.Send(ctx, &pingRequest{Value: "ok"})
	require.NoError(t, err)
	_, err = m.Send(ctx, &pingRequest{Value: "refuse"})
	require.Error(t, err)
	_, err = m.Send(ctx, &pingRequest{Value: "fail"})
	require.Error(t, err)

	assert.Equal(t, []string{LevelDebug, LevelInfo, LevelError}, logger.levels)
	assert.Equal(t, "common.pingRequest", logger.last["request"])
	assert.Equal(t, "ping failed", logger.last["error"])
}

func TestLoggerFromContext_DefaultsToNoOp(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	assert.NotNil(t, logger)
	logger.Log(LevelInfo, "ignored", nil)
}
