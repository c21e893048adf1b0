// Package cmd provides CLI commands for the scoring API.
//
// # Commands
//
// scoring-api: Runs the HTTP gateway. Accepts method calls on POST /method/,
// validates and authenticates the envelope, and dispatches to the
// online_score and clients_interests handlers.
//
//	go run ./cmd/scoring-api --config=scoring.yaml
//	go run ./cmd/scoring-api --addr=:8080 --store=memory
//
// # Configuration
//
// The command supports a YAML configuration file via the --config flag.
// Command-line flags override config file values.
//
//	listen_addr: ":8080"
//	metrics_addr: ":8090"
//	enable_pprof: false
//	drain_duration: 5s
//	graceful_shutdown_duration: 10s
//	log:
//	  json: true
//	  debug: false
//	store:
//	  backend: "redis"
//	  redis:
//	    addr: "localhost:6379"
//	    timeout: 3s
//	  postgres:
//	    host: "localhost"
//	    port: 5432
//	    user: "postgres"
//	    database: "scoring"
//	    ssl_mode: "disable"
package cmd
