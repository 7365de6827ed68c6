package nylas

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const accountBody = `{
	"id": "acc-1",
	"object": "account",
	"account_id": "acc-1",
	"name": "Jane Doe",
	"provider": "gmail",
	"organization_unit": "label",
	"sync_state": "running",
	"linked_at": 1700000000,
	"email_address": "jane@example.com"
}`

func TestNew_EmptyCredentials(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		secret string
	}{
		{name: "empty id", id: "", secret: "csec"},
		{name: "empty secret", id: "cid", secret: ""},
		{name: "both empty", id: "", secret: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(context.Background(), tt.id, tt.secret)
			require.Error(t, err)
			assert.True(t, IsKind(err, KindValidation))
		})
	}
}

func TestNew_Unauthenticated(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls++
	}))
	defer srv.Close()

	client, err := New(context.Background(), "cid", "csec", WithBaseURL(srv.URL))
	require.NoError(t, err)

	assert.False(t, client.Authenticated())
	assert.Nil(t, client.Account())
	assert.Empty(t, client.AccessToken())
	assert.Equal(t, 0, calls, "constructing without a token must not touch the network")
}

func TestNew_UnauthenticatedResourceCallFails(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls++
	}))
	defer srv.Close()

	client, err := New(context.Background(), "cid", "csec", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = client.Messages().All(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindPrecondition), "expected precondition error, got %v", err)

	_, err = client.Threads().All(context.Background())
	assert.True(t, IsKind(err, KindPrecondition))

	_, err = client.Calendars().All(context.Background())
	assert.True(t, IsKind(err, KindPrecondition))

	assert.Equal(t, 0, calls, "precondition failures must not touch the network")
}

func TestNew_WithAccessToken(t *testing.T) {
	var accountCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/account", r.URL.Path)
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		require.Empty(t, r.URL.Query().Get("access_token"), "token must never travel in the query string")
		accountCalls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(accountBody))
	}))
	defer srv.Close()

	client, err := New(context.Background(), "cid", "csec",
		WithBaseURL(srv.URL), WithAccessToken("tok-1"))
	require.NoError(t, err)

	assert.True(t, client.Authenticated())
	assert.Equal(t, "tok-1", client.AccessToken())
	assert.Equal(t, 1, accountCalls, "account info is fetched exactly once during construction")

	account := client.Account()
	require.NotNil(t, account)
	assert.Equal(t, "jane@example.com", account.EmailAddress)
	assert.Equal(t, "gmail", account.Provider)
	assert.Equal(t, int64(1700000000), account.LinkedAt)

	// Cached: no further network call for the accessor.
	_ = client.Account()
	assert.Equal(t, 1, accountCalls)
}

func TestNew_WithInvalidAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "Invalid authentication token"}`))
	}))
	defer srv.Close()

	client, err := New(context.Background(), "cid", "csec",
		WithBaseURL(srv.URL), WithAccessToken("expired"))
	require.Error(t, err)
	assert.Nil(t, client, "construction must fail outright, not return a half-authenticated client")
	assert.True(t, IsKind(err, KindAuth), "expected authentication error, got %v", err)
	assert.Contains(t, err.Error(), "Invalid authentication token")
}

func TestNew_AccountFetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client, err := New(context.Background(), "cid", "csec",
		WithBaseURL(srv.URL), WithAccessToken("tok"))
	require.Error(t, err)
	assert.Nil(t, client)
	assert.True(t, IsKind(err, KindNetwork))
}

func TestNew_AccountFetchParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client, err := New(context.Background(), "cid", "csec",
		WithBaseURL(srv.URL), WithAccessToken("tok"))
	require.Error(t, err)
	assert.Nil(t, client)
	assert.True(t, IsKind(err, KindParse))
}

func TestClient_BaseURL(t *testing.T) {
	client, err := New(context.Background(), "cid", "csec")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, client.BaseURL())

	client, err = New(context.Background(), "cid", "csec", WithBaseURL("https://api.eu.nylas.com/"))
	require.NoError(t, err)
	assert.Equal(t, "https://api.eu.nylas.com", client.BaseURL(), "trailing slash is trimmed")
}
