// Package server provides the demo HTTP server for the nylas-go client.
//
// # Key Components
//
// Server exposes the hosted-auth flow and a few message endpoints over
// the Nylas client:
//   - GET  /nylas/generate-auth-token: build the hosted-auth URL
//   - POST /nylas/exchange-access-token: exchange an authorization code
//   - GET  /nylas/messages: list the account's messages
//   - GET  /nylas/recent-message: fetch the most recent message
//
// The message endpoints identify the account via the Authorization
// bearer token; the server itself holds no user tokens.
//
// HealthChecker serves /healthz and /readyz for Kubernetes probes.
//
// MetricsServer serves Prometheus metrics on a dedicated port, isolated
// from the main application traffic.
//
// Configuration is loaded from environment variables via LoadConfig;
// see Config for the full list.
package server
