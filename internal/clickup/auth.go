package clickup

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Endpoint is the ClickUp OAuth2 endpoint for registered apps.
var Endpoint = oauth2.Endpoint{
	AuthURL:   "https://app.clickup.com/api",
	TokenURL:  "https://api.clickup.com/api/v2/oauth/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

// OAuthConfig returns the oauth2.Config for a registered ClickUp app.
// Most deployments use a personal workspace token instead; this exists for
// multi-workspace installations that go through the authorization code flow.
func OAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     Endpoint,
	}
}

// personalTokenTransport injects a ClickUp personal token. Unlike OAuth
// access tokens, personal tokens are sent verbatim, without a Bearer prefix.
type personalTokenTransport struct {
	token string
	base  http.RoundTripper
}

func (t *personalTokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", t.token)
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}

// newHTTPClient builds an authenticated HTTP client for the given token.
// Personal tokens (pk_ prefix) use the verbatim Authorization header;
// anything else is treated as an OAuth access token and sent through the
// standard oauth2 transport as a Bearer token.
func newHTTPClient(ctx context.Context, token string, timeout time.Duration) *http.Client {
	if strings.HasPrefix(token, "pk_") {
		return &http.Client{
			Timeout:   timeout,
			Transport: &personalTokenTransport{token: token},
		}
	}
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	client.Timeout = timeout
	return client
}
