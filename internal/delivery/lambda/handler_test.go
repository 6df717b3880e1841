package lambda

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/NasaVasa/haltwatch/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRunner struct {
	body string
	err  error
}

func (f fakeRunner) RunToday(context.Context) (string, error) {
	return f.body, f.err
}

func decodeBody(t *testing.T, resp Response) string {
	t.Helper()
	var body string
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	return body
}

func TestHandlerSuccess(t *testing.T) {
	handler := NewHandler(fakeRunner{body: "42 total rows"}, zap.NewNop())

	resp, err := handler.Handle(context.Background(), json.RawMessage(`{"source": "aws.events"}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "42 total rows", decodeBody(t, resp))
}

func TestHandlerFailureIsAResponse(t *testing.T) {
	runErr := &usecase.StageError{Stage: usecase.StageMonitoring, Err: assert.AnError}
	handler := NewHandler(fakeRunner{err: runErr}, zap.NewNop())

	resp, err := handler.Handle(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Error updating ticker monitoring: "+assert.AnError.Error(), decodeBody(t, resp))
}

func TestResponseShape(t *testing.T) {
	raw, err := json.Marshal(respond(http.StatusOK, "done"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"statusCode": 200, "body": "\"done\""}`, string(raw))
}
