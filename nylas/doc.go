// Package nylas provides a client for the Nylas email and calendar API.
//
// The client covers the hosted authentication flow (authorization URL
// generation and authorization-code exchange), account information
// retrieval, and the message, thread and calendar resource endpoints.
//
// A client starts out unauthenticated and can only build authorization
// URLs and exchange authorization codes:
//
//	client, err := nylas.New(ctx, clientID, clientSecret)
//	authURL, err := client.AuthenticationURL(nylas.AuthURLParams{
//		RedirectURI: "http://localhost:3000/callback",
//		Scopes:      "email,calendar,contacts",
//	})
//	token, err := client.ExchangeAccessToken(ctx, code)
//
// Constructing a client with an access token fetches the account
// information for that token up front. Construction fails outright if
// the token is rejected, so an authenticated client always has its
// account available:
//
//	client, err := nylas.New(ctx, clientID, clientSecret,
//		nylas.WithAccessToken(token))
//	account := client.Account()
//	messages, err := client.Messages().All(ctx)
//
// The access token is immutable for the lifetime of a client. There is
// no automatic refresh; an expired or revoked token surfaces as an
// authentication error on the next call, and callers re-authenticate
// by constructing a new client.
//
// All failures are reported as *Error values carrying the error kind
// (validation, network, authentication, parse, precondition) so
// callers can distinguish a provider rejection from a response they
// could not understand. The package itself never logs.
package nylas
