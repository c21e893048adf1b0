package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WeirdIdea/OTUS-06/rpc"
	"github.com/WeirdIdea/OTUS-06/store"
	"github.com/WeirdIdea/OTUS-06/testutil"
)

func newTestServer(t *testing.T, st *store.MemoryStore) *httptest.Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := rpc.NewDispatcher(st, log)
	handler := NewMethodHandler(dispatcher, log)

	srv, err := New(&HTTPServerConfig{
		ListenAddr:               "127.0.0.1:0",
		Log:                      log,
		DrainDuration:            time.Millisecond,
		GracefulShutdownDuration: time.Second,
	}, handler)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func postMethod(t *testing.T, ts *httptest.Server, body map[string]any) (envelope, *http.Response) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/method/", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env, resp
}

func TestMethodOnlineScore(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore())

	env, resp := postMethod(t, ts, testutil.NewEnvelope(
		testutil.WithArguments(map[string]any{
			"phone": "79175002040", "email": "stupnikov@otus.ru",
		}),
	))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, rpc.StatusOK, env.Code)
	assert.Empty(t, env.Error)

	result, ok := env.Response.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 3.0, result["score"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestMethodOnlineScoreAdmin(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore())

	env, resp := postMethod(t, ts, testutil.NewEnvelope(testutil.AsAdmin()))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result, ok := env.Response.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 42.0, result["score"])
}

func TestMethodClientsInterests(t *testing.T) {
	st := store.NewMemoryStore()
	st.Set("i:1", `["books"]`)
	ts := newTestServer(t, st)

	env, resp := postMethod(t, ts, testutil.NewEnvelope(
		testutil.WithMethod("clients_interests"),
		testutil.WithArguments(map[string]any{
			"client_ids": []int{1, 2}, "date": "19.07.2017",
		}),
	))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{
		"client_id1": []any{"books"},
		"client_id2": []any{},
	}, env.Response)
}

func TestMethodBadJSON(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore())

	resp, err := http.Post(ts.URL+"/method/", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, rpc.StatusBadRequest, env.Code)
	assert.Equal(t, "Bad Request", env.Error)
}

func TestMethodForbidden(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore())

	env, resp := postMethod(t, ts, testutil.NewEnvelope(testutil.WithToken("sdd")))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, rpc.StatusForbidden, env.Code)
	assert.Equal(t, "Forbidden", env.Error)
}

func TestMethodInvalidRequest(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore())

	env, resp := postMethod(t, ts, testutil.NewEnvelope(
		testutil.WithArguments(map[string]any{
			"phone": "89175002040", "email": "a@b",
		}),
	))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, rpc.StatusInvalidRequest, env.Code)

	// Argument violations ride as the structured payload, not a bare string.
	payload, ok := env.Error.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(rpc.StatusInvalidRequest), payload["code"])
	assert.Contains(t, payload["error"], "phone")
}

func TestUnknownPath(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore())

	resp, err := http.Post(ts.URL+"/unknown/", "application/json", bytes.NewReader([]byte("{}")))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, rpc.StatusNotFound, env.Code)
	assert.Equal(t, "Not Found", env.Error)
}

func TestRequestIDHeaderEcho(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore())

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/method", bytes.NewReader([]byte("{}")))
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "test-id-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "test-id-123", resp.Header.Get("X-Request-Id"))
}

func TestHealthAndDrainEndpoints(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore())

	get := func(path string) int {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, get("/livez"))
	assert.Equal(t, http.StatusOK, get("/readyz"))
	assert.Equal(t, http.StatusOK, get("/drain"))
	assert.Equal(t, http.StatusServiceUnavailable, get("/readyz"))
	assert.Equal(t, http.StatusOK, get("/undrain"))
	assert.Equal(t, http.StatusOK, get("/readyz"))
}
