package lambda

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/NasaVasa/haltwatch/internal/usecase"
	"go.uber.org/zap"
)

type Runner interface {
	RunToday(ctx context.Context) (string, error)
}

type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Handler serves scheduled invocations. A failed run is answered with a 500
// response, not an invocation error.
type Handler struct {
	runner Runner
	logger *zap.Logger
}

func NewHandler(runner Runner, logger *zap.Logger) *Handler {
	return &Handler{runner: runner, logger: logger}
}

func (h *Handler) Handle(ctx context.Context, event json.RawMessage) (Response, error) {
	h.logger.Info("lambda invocation", zap.Int("event_bytes", len(event)))
	body, err := h.runner.RunToday(ctx)
	if err != nil {
		return respond(http.StatusInternalServerError, usecase.RenderFailure(err)), nil
	}
	return respond(http.StatusOK, body), nil
}

func respond(status int, message string) Response {
	encoded, err := json.Marshal(message)
	if err != nil {
		encoded = []byte(`""`)
	}
	return Response{StatusCode: status, Body: string(encoded)}
}
