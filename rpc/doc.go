// Package rpc implements the method-call layer of the scoring API: the
// request envelope and per-method argument schemas, digest authentication,
// and the dispatcher that ties them together.
//
// Dispatch enforces a fixed order: envelope validation, authentication,
// routing, per-method argument validation and business rules, handler
// execution. Each stage is a potential early exit with a well-defined
// status code; see the status constants.
//
// The dispatcher is stateless apart from its injected collaborators and is
// safe for concurrent use.
package rpc
