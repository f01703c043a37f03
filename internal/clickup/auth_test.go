package clickup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timecop/internal/config"
)

func TestNewHTTPClient_BearerForOAuthTokens(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(context.Background(), config.ClickUpConfig{
		APIToken:       "oauth-access-token",
		TeamID:         "9001",
		BaseURL:        server.URL,
		TimeoutSeconds: 5,
	})
	require.NoError(t, client.CheckConnection(context.Background()))

	assert.Equal(t, "Bearer oauth-access-token", gotAuth)
}

func TestOAuthConfig(t *testing.T) {
	cfg := OAuthConfig("client-id", "client-secret", "https://example.com/callback")
	assert.Equal(t, "https://app.clickup.com/api", cfg.Endpoint.AuthURL)
	assert.Equal(t, "https://api.clickup.com/api/v2/oauth/token", cfg.Endpoint.TokenURL)
	assert.Equal(t, "client-id", cfg.ClientID)
}
