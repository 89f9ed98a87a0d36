package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("")
	assert.ErrorIs(t, err, errAPIKeyRequired)

	_, err = NewClient("   ")
	assert.ErrorIs(t, err, errAPIKeyRequired)
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient("sk-test")
	require.NoError(t, err)
	assert.Equal(t, defaultBaseURL, client.BaseURL())
	assert.NotNil(t, client.httpClient)
}

func TestNewClientOptions(t *testing.T) {
	custom := &http.Client{}
	client, err := NewClient("sk-test",
		WithBaseURL("https://proxy.internal/v1/"),
		WithHTTPClient(custom),
	)
	require.NoError(t, err)
	assert.Equal(t, "https://proxy.internal/v1", client.BaseURL())
	assert.Same(t, custom, client.httpClient)
}

func TestNewClientIgnoresEmptyOverrides(t *testing.T) {
	client, err := NewClient("sk-test", WithBaseURL("  "), WithHTTPClient(nil), nil)
	require.NoError(t, err)
	assert.Equal(t, defaultBaseURL, client.BaseURL())
	assert.NotNil(t, client.httpClient)
}

func TestPingSendsBearerToken(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient("sk-test", WithBaseURL(server.URL))
	require.NoError(t, err)

	require.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "/models", gotPath)
}

func TestPingRejectsNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewClient("sk-bad", WithBaseURL(server.URL))
	require.NoError(t, err)
	assert.Error(t, client.Ping(context.Background()))
}
