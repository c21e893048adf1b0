// Package httpserver provides the HTTP surface of the scoring API.
//
// BaseServer owns the router, the middleware stack, graceful shutdown and
// the operational endpoints every deployment gets: /livez and /readyz
// health checks, /drain and /undrain readiness control for load balancers,
// an optional Prometheus metrics listener and optional pprof. Components
// contribute their routes through the RouteRegistrar interface.
//
// MethodHandler is the one registrar this service ships: it decodes the
// POST /method body, runs the call through the rpc dispatcher and renders
// the response envelope. Every response carries either a result or an
// error, plus the outcome code, which is mirrored as the HTTP status:
//
//	{"response": {"score": 3.5}, "code": 200}
//	{"error": "Forbidden", "code": 403}
//	{"error": {"code": 422, "error": "phone: phone number must start with 7"}, "code": 422}
package httpserver
