package rpc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/WeirdIdea/OTUS-06/scoring"
	"github.com/WeirdIdea/OTUS-06/store"
)

// Method call outcome codes. They double as HTTP status codes on the wire.
const (
	StatusOK             = 200
	StatusBadRequest     = 400
	StatusForbidden      = 403
	StatusNotFound       = 404
	StatusInvalidRequest = 422
	StatusInternalError  = 500
)

// StatusText maps every error code to its canonical message, used when a
// stage produces no payload of its own.
var StatusText = map[int]string{
	StatusBadRequest:     "Bad Request",
	StatusForbidden:      "Forbidden",
	StatusNotFound:       "Not Found",
	StatusInvalidRequest: "Invalid Request",
	StatusInternalError:  "Internal Server Error",
}

// IsError reports whether code denotes a failed call.
func IsError(code int) bool {
	_, ok := StatusText[code]
	return ok
}

// AdminScore is returned for online_score calls made by the administrator,
// bypassing argument validation and the scoring collaborator entirely.
const AdminScore float64 = 42

// ScoreFunc computes a relevance score for a person. InterestsFunc looks up
// the interest list for one client. Both default to the scoring package and
// are injectable for tests.
type (
	ScoreFunc     func(ctx context.Context, st store.Store, p scoring.Person) (float64, error)
	InterestsFunc func(ctx context.Context, st store.Store, clientID int64) ([]string, error)
)

type handlerFunc func(ctx context.Context, env *MethodRequest, log *slog.Logger) (any, int)

// Dispatcher routes validated envelopes to method handlers.
type Dispatcher struct {
	store     store.Store
	log       *slog.Logger
	score     ScoreFunc
	interests InterestsFunc
	now       func() time.Time

	handlers map[string]handlerFunc
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithScoreFunc replaces the score computation.
func WithScoreFunc(f ScoreFunc) Option {
	return func(d *Dispatcher) { d.score = f }
}

// WithInterestsFunc replaces the interests lookup.
func WithInterestsFunc(f InterestsFunc) Option {
	return func(d *Dispatcher) { d.interests = f }
}

// WithClock replaces the wall clock used for admin token freshness.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// NewDispatcher wires a dispatcher over the given store. The method table is
// fixed at construction; adding a method means adding a handler here.
func NewDispatcher(st store.Store, log *slog.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:     st,
		log:       log,
		score:     scoring.GetScore,
		interests: scoring.GetInterests,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.handlers = map[string]handlerFunc{
		"online_score":      d.onlineScore,
		"clients_interests": d.clientsInterests,
	}
	return d
}

// ErrorPayload is the structured body of a failed call.
type ErrorPayload struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

func invalidRequest(format string, args ...any) (any, int) {
	return &ErrorPayload{Code: StatusInvalidRequest, Error: fmt.Sprintf(format, args...)}, StatusInvalidRequest
}

// Dispatch runs one call through the pipeline: envelope validation,
// authentication, routing, then the method handler. requestID tags every
// log line produced on behalf of the call. A nil response with an error
// code means the caller should fall back to StatusText.
func (d *Dispatcher) Dispatch(ctx context.Context, body map[string]any, requestID string) (response any, code int) {
	log := d.log.With("requestID", requestID)
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic in method handler", "panic", r)
			response, code = nil, StatusInternalError
		}
	}()

	env := NewMethodRequest(body)
	if err := env.Validate(); err != nil {
		return invalidRequest("%s", err)
	}
	if env.Method() == "" {
		return invalidRequest("method: %s", "value is required")
	}
	if !CheckAuth(env, d.now()) {
		log.Info("authentication failed", "login", env.Login(), "account", env.Account())
		return nil, StatusForbidden
	}
	h, ok := d.handlers[env.Method()]
	if !ok {
		return invalidRequest("unknown method %q", env.Method())
	}
	return h(ctx, env, log)
}

func (d *Dispatcher) onlineScore(ctx context.Context, env *MethodRequest, log *slog.Logger) (any, int) {
	if env.IsAdmin() {
		return map[string]any{"score": AdminScore}, StatusOK
	}

	req := NewOnlineScoreRequest(env.Arguments())
	if err := req.Validate(); err != nil {
		return invalidRequest("%s", err)
	}
	if !req.EnoughFields() {
		return invalidRequest("not enough fields: need phone+email, first_name+last_name or birthday+gender")
	}

	score, err := d.score(ctx, d.store, req.Person())
	if err != nil {
		log.Error("score computation failed", "err", err)
		return nil, StatusInternalError
	}
	return map[string]any{"score": score}, StatusOK
}

func (d *Dispatcher) clientsInterests(ctx context.Context, env *MethodRequest, log *slog.Logger) (any, int) {
	req := NewClientsInterestsRequest(env.Arguments())
	if err := req.Validate(); err != nil {
		return invalidRequest("%s", err)
	}

	ids := req.ClientIDs()
	out := make(map[string]any, len(ids))
	for _, id := range ids {
		interests, err := d.interests(ctx, d.store, id)
		if err != nil {
			log.Error("interests lookup failed", "clientID", id, "err", err)
			return nil, StatusInternalError
		}
		out[fmt.Sprintf("client_id%d", id)] = interests
	}
	return out, StatusOK
}
