// Package schema implements the declarative field-validation framework
// used by the scoring API request types.
//
// A request shape is described by a Schema: an ordered list of named
// Field descriptors. Each descriptor carries a required/nullable contract
// plus a type-specific rule chain. Raw JSON input is bound to a Request
// without validation; Validate then walks the declared fields in schema
// order and stops at the first violation.
//
// Descriptors and schemas are immutable configuration, built once at
// startup; Request instances are per-call and never shared.
package schema
