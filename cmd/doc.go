// Package cmd implements the command-line interface for nylas-go.
//
// This package provides the following commands:
//   - serve: Start the demo web server exposing the hosted-auth flow and message endpoints
//   - auth url: Build the hosted-auth URL for the user to visit
//   - auth exchange: Exchange an authorization code for an access token
//   - version: Display version information
package cmd
