package nylas

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := New(context.Background(), "cid", "csec", WithBaseURL(baseURL))
	require.NoError(t, err)
	return client
}

func TestAuthenticationURL(t *testing.T) {
	client := newTestClient(t, DefaultBaseURL)

	raw, err := client.AuthenticationURL(AuthURLParams{
		RedirectURI: "http://localhost:3000",
		LoginHint:   "a@b.com",
		State:       "xyz",
		Scopes:      "email,calendar",
	})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "api.nylas.com", u.Host)
	assert.Equal(t, "/oauth/authorize", u.Path)

	q := u.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "cid", q.Get("client_id"))
	assert.Equal(t, "http://localhost:3000", q.Get("redirect_uri"))
	assert.Equal(t, "a@b.com", q.Get("login_hint"))
	assert.Equal(t, "xyz", q.Get("state"))
	assert.Equal(t, "email,calendar", q.Get("scope"))
	assert.Len(t, q, 6)
}

func TestAuthenticationURL_OptionalFieldsOmitted(t *testing.T) {
	client := newTestClient(t, DefaultBaseURL)

	raw, err := client.AuthenticationURL(AuthURLParams{
		RedirectURI: "https://example.com/callback",
	})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "cid", q.Get("client_id"))
	assert.False(t, q.Has("login_hint"))
	assert.False(t, q.Has("state"))
	assert.False(t, q.Has("scope"))
}

func TestAuthenticationURL_RoundTrip(t *testing.T) {
	client := newTestClient(t, DefaultBaseURL)

	// Values that need percent-encoding must survive a parse round trip.
	params := AuthURLParams{
		RedirectURI: "http://localhost:3000/cb?next=/inbox",
		LoginHint:   "first+last@example.com",
		State:       "a b&c=d",
		Scopes:      "email,calendar,contacts",
	}
	raw, err := client.AuthenticationURL(params)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, params.RedirectURI, q.Get("redirect_uri"))
	assert.Equal(t, params.LoginHint, q.Get("login_hint"))
	assert.Equal(t, params.State, q.Get("state"))
	assert.Equal(t, params.Scopes, q.Get("scope"))
}

func TestAuthenticationURL_InvalidRedirectURI(t *testing.T) {
	client := newTestClient(t, DefaultBaseURL)

	tests := []struct {
		name        string
		redirectURI string
	}{
		{name: "empty", redirectURI: ""},
		{name: "relative", redirectURI: "/callback"},
		{name: "unparseable", redirectURI: "http://exa mple.com\x7f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.AuthenticationURL(AuthURLParams{RedirectURI: tt.redirectURI})
			require.Error(t, err)
			assert.True(t, IsKind(err, KindValidation), "expected validation error, got %v", err)
		})
	}
}

func TestExchangeAccessToken(t *testing.T) {
	var gotBody url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/oauth/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotBody = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token": "abc123"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	token, err := client.ExchangeAccessToken(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	assert.Equal(t, "cid", gotBody.Get("client_id"))
	assert.Equal(t, "csec", gotBody.Get("client_secret"))
	assert.Equal(t, "authorization_code", gotBody.Get("grant_type"))
	assert.Equal(t, "the-code", gotBody.Get("code"))
}

func TestExchangeAccessToken_ProviderRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "invalid_grant"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.ExchangeAccessToken(context.Background(), "expired-code")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindAuth), "expected authentication error, got %v", err)
	assert.Contains(t, err.Error(), "invalid_grant")
}

func TestExchangeAccessToken_ParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>oops</html>"},
		{name: "token field missing", body: `{"token_type": "bearer"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := newTestClient(t, srv.URL)
			_, err := client.ExchangeAccessToken(context.Background(), "some-code")
			require.Error(t, err)
			assert.True(t, IsKind(err, KindParse), "expected parse error, got %v", err)
		})
	}
}

func TestExchangeAccessToken_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	client := newTestClient(t, srv.URL)
	_, err := client.ExchangeAccessToken(context.Background(), "some-code")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNetwork), "expected network error, got %v", err)
}

func TestExchangeAccessToken_EmptyCode(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls++
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.ExchangeAccessToken(context.Background(), "")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
	assert.Equal(t, 0, calls, "validation must fail before any network call")
}

func TestExchangeAccessToken_SecretNeverInURL(t *testing.T) {
	var gotURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		_, _ = w.Write([]byte(`{"access_token": "tok"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.ExchangeAccessToken(context.Background(), "some-code")
	require.NoError(t, err)
	assert.False(t, strings.Contains(gotURL, "csec"))
}
