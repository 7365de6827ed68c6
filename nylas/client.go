package nylas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	// DefaultBaseURL is the endpoint of the Nylas API.
	DefaultBaseURL = "https://api.nylas.com"

	// defaultTimeout bounds requests made with a context that carries
	// no deadline of its own.
	defaultTimeout = 30 * time.Second
)

// Client provides access to the Nylas API.
//
// A client constructed without an access token is unauthenticated: it
// can generate authorization URLs and exchange authorization codes,
// but resource calls fail with a precondition error. A client
// constructed with an access token fetches its account information
// during construction and is fully authenticated afterwards. The token
// is immutable for the client's lifetime; re-authentication means
// constructing a new client.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string

	accessToken string
	account     *Account

	// httpClient is the base transport, used for the token exchange.
	httpClient *http.Client

	// authClient injects the bearer token; nil until authenticated.
	authClient *http.Client
}

// Option configures a Client during construction.
type Option func(*Client)

// WithAccessToken supplies a pre-existing access token. Construction
// then fetches the account information for that token and fails if the
// token is rejected.
func WithAccessToken(token string) Option {
	return func(c *Client) {
		c.accessToken = token
	}
}

// WithBaseURL overrides the Nylas API endpoint. Intended for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a new Nylas client with the provided client ID and
// client secret.
//
// When an access token is supplied via WithAccessToken, New performs
// one network call to fetch the account associated with the token.
// The client is returned only if that call succeeds; a client is never
// left half-authenticated.
func New(ctx context.Context, clientID, clientSecret string, opts ...Option) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, &Error{
			Kind:    KindValidation,
			Op:      "new",
			Message: "client ID and client secret must not be empty",
		}
	}

	c := &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      DefaultBaseURL,
		httpClient:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.accessToken != "" {
		c.authClient = c.bearerClient(ctx)

		account, err := c.fetchAccount(ctx)
		if err != nil {
			return nil, err
		}
		c.account = account
	}

	return c, nil
}

// bearerClient builds an HTTP client that sends the access token as an
// Authorization: Bearer header on every request. The token never
// appears in query strings.
func (c *Client) bearerClient(ctx context.Context) *http.Client {
	if c.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: c.accessToken,
		TokenType:   "Bearer",
	})
	return oauth2.NewClient(ctx, src)
}

// Authenticated reports whether the client holds an access token and
// fetched account information.
func (c *Client) Authenticated() bool {
	return c.authClient != nil
}

// Account returns the account information cached during construction.
// It is nil for an unauthenticated client.
func (c *Client) Account() *Account {
	return c.account
}

// AccessToken returns the bearer token held by the client. It is empty
// for an unauthenticated client.
func (c *Client) AccessToken() string {
	return c.accessToken
}

// BaseURL returns the API endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Messages returns the service for message operations.
func (c *Client) Messages() *MessagesService {
	return &MessagesService{client: c}
}

// Threads returns the service for thread operations.
func (c *Client) Threads() *ThreadsService {
	return &ThreadsService{client: c}
}

// Calendars returns the service for calendar operations.
func (c *Client) Calendars() *CalendarsService {
	return &CalendarsService{client: c}
}

// fetchAccount retrieves the account associated with the access token.
func (c *Client) fetchAccount(ctx context.Context) (*Account, error) {
	var account Account
	if err := c.get(ctx, "account", "/account", nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// requireAuth returns a precondition error when the client is not in
// the authenticated state. No network call is made.
func (c *Client) requireAuth(op string) error {
	if c.authClient == nil {
		return &Error{
			Kind:    KindPrecondition,
			Op:      op,
			Message: "not authenticated: access token must be set",
		}
	}
	return nil
}

// get performs an authenticated GET against the API and decodes the
// JSON response into v.
func (c *Client) get(ctx context.Context, op, path string, query url.Values, v any) error {
	if err := c.requireAuth(op); err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &Error{Kind: KindValidation, Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.authClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		kind := KindNetwork
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			kind = KindAuth
		}
		return &Error{
			Kind:       kind,
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    providerMessage(body),
			Err:        fmt.Errorf("request failed with status %d", resp.StatusCode),
		}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &Error{Kind: KindParse, Op: op, Err: err}
	}
	return nil
}

// providerMessage extracts the error message from a Nylas error
// response body. Nylas reports errors under "message"; some endpoints
// use "error".
func providerMessage(body []byte) string {
	var er struct {
		Message  string `json:"message"`
		ErrField string `json:"error"`
	}
	if err := json.Unmarshal(body, &er); err != nil {
		return ""
	}
	if er.Message != "" {
		return er.Message
	}
	return er.ErrField
}
