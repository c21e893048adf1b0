// Package common holds identity constants shared across the scoring API
// binaries and packages.
package common

// PackageName identifies the service in metrics namespaces and logs.
const PackageName = "scoring_api"

// Version is stamped at build time via -ldflags.
var Version = "dev"
