package nylas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	authorizePath = "/oauth/authorize"
	tokenPath     = "/oauth/token"
)

// AuthURLParams holds the parameters for building an authorization
// URL. RedirectURI is required; the other fields are optional and
// omitted from the URL when empty.
type AuthURLParams struct {
	// RedirectURI is the absolute URL the user is sent back to after
	// granting consent.
	RedirectURI string

	// LoginHint pre-fills the user's email address on the consent page.
	LoginHint string

	// State is an opaque value echoed back unmodified on the callback,
	// used to correlate callbacks and prevent request forgery.
	State string

	// Scopes is a comma-separated list of requested scopes (e.g.
	// "email,calendar,contacts"). The provider applies its default
	// scope set when empty.
	Scopes string
}

// AuthenticationURL builds the URL for initiating the hosted
// authentication flow. The caller presents the URL to the end user,
// typically via a browser redirect; no network call is made here.
func (c *Client) AuthenticationURL(params AuthURLParams) (string, error) {
	const op = "authenticationURL"

	if c.clientID == "" || c.clientSecret == "" {
		return "", &Error{
			Kind:    KindValidation,
			Op:      op,
			Message: "client ID and client secret must not be empty",
		}
	}
	if params.RedirectURI == "" {
		return "", &Error{
			Kind:    KindValidation,
			Op:      op,
			Message: "redirect URI must not be empty",
		}
	}
	redirect, err := url.Parse(params.RedirectURI)
	if err != nil || !redirect.IsAbs() {
		return "", &Error{
			Kind:    KindValidation,
			Op:      op,
			Message: fmt.Sprintf("invalid redirect URI %q", params.RedirectURI),
			Err:     err,
		}
	}

	u, err := url.Parse(c.baseURL + authorizePath)
	if err != nil {
		return "", &Error{Kind: KindValidation, Op: op, Err: err}
	}

	q := u.Query()
	q.Set("response_type", "code")
	q.Set("client_id", c.clientID)
	q.Set("redirect_uri", params.RedirectURI)
	if params.LoginHint != "" {
		q.Set("login_hint", params.LoginHint)
	}
	if params.State != "" {
		q.Set("state", params.State)
	}
	if params.Scopes != "" {
		q.Set("scope", params.Scopes)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// ExchangeAccessToken exchanges an authorization code for an access
// token. The code is valid for a short time and can be used only once.
//
// The client secret is transmitted only in the request body. Exactly
// one network round trip is made; no retry is attempted on failure.
func (c *Client) ExchangeAccessToken(ctx context.Context, code string) (string, error) {
	const op = "exchangeAccessToken"

	if c.clientID == "" || c.clientSecret == "" {
		return "", &Error{
			Kind:    KindValidation,
			Op:      op,
			Message: "client ID and client secret must not be empty",
		}
	}
	if code == "" {
		return "", &Error{
			Kind:    KindValidation,
			Op:      op,
			Message: "authorization code must not be empty",
		}
	}

	data := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"grant_type":    {"authorization_code"},
		"code":          {code},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+tokenPath, strings.NewReader(data.Encode()))
	if err != nil {
		return "", &Error{Kind: KindValidation, Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: KindNetwork, Op: op, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &Error{
			Kind:       KindAuth,
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    providerMessage(body),
			Err:        fmt.Errorf("token request failed with status %d", resp.StatusCode),
		}
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", &Error{Kind: KindParse, Op: op, Err: err}
	}
	if tokenResp.AccessToken == "" {
		return "", &Error{
			Kind:    KindParse,
			Op:      op,
			Message: "access token not found in the response",
		}
	}

	return tokenResp.AccessToken, nil
}
