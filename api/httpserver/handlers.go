package httpserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/flashbots/go-utils/httplogger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/WeirdIdea/OTUS-06/metrics"
	"github.com/WeirdIdea/OTUS-06/rpc"
)

// maxBodyBytes caps the accepted request body size.
const maxBodyBytes = 1 << 20

// envelope is the wire shape of every method response. Exactly one of
// Response and Error is present. Error carries the dispatch error payload
// when the stage produced one, and the canonical status message otherwise.
type envelope struct {
	Response any `json:"response,omitempty"`
	Error    any `json:"error,omitempty"`
	Code     int `json:"code"`
}

// MethodHandler adapts HTTP to the dispatcher: it decodes the POST body,
// runs the call and renders the response envelope. All method calls share
// the single /method endpoint; routing happens inside the envelope.
type MethodHandler struct {
	dispatcher *rpc.Dispatcher
	log        *slog.Logger
}

// NewMethodHandler creates the handler for the /method endpoint.
func NewMethodHandler(d *rpc.Dispatcher, log *slog.Logger) *MethodHandler {
	return &MethodHandler{dispatcher: d, log: log}
}

// RegisterRoutes implements RouteRegistrar.
func (h *MethodHandler) RegisterRoutes(r chi.Router) {
	logmw := func(next http.Handler) http.Handler {
		return httplogger.LoggingMiddlewareSlog(h.log, next)
	}
	r.With(logmw).Post("/method", h.handleMethod)
	r.With(logmw).Post("/method/", h.handleMethod)
	r.NotFound(h.handleNotFound)
}

func (h *MethodHandler) handleMethod(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-Id")
	if requestID == "" {
		requestID = middleware.GetReqID(r.Context())
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}

	var body map[string]any
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		h.log.Info("undecodable request body", "requestID", requestID, "err", err)
		h.writeEnvelope(w, requestID, nil, rpc.StatusBadRequest, "")
		return
	}

	start := time.Now()
	resp, code := h.dispatcher.Dispatch(r.Context(), body, requestID)
	method, _ := body["method"].(string)
	metrics.ObserveCall(method, code, time.Since(start))

	h.writeEnvelope(w, requestID, resp, code, method)
}

func (h *MethodHandler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.writeEnvelope(w, middleware.GetReqID(r.Context()), nil, rpc.StatusNotFound, "")
}

// writeEnvelope renders a dispatch outcome. The outcome code doubles as the
// HTTP status code.
func (h *MethodHandler) writeEnvelope(w http.ResponseWriter, requestID string, resp any, code int, method string) {
	var env envelope
	if rpc.IsError(code) {
		env = envelope{Error: rpc.StatusText[code], Code: code}
		if p, ok := resp.(*rpc.ErrorPayload); ok {
			env.Error = p
		}
	} else {
		env = envelope{Response: resp, Code: code}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-Id", requestID)
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		h.log.Error("response encoding failed", "requestID", requestID, "method", method, "err", err)
	}
}
