package httpclient

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// bearerTransport is an http.RoundTripper that proactively attaches
// "Authorization: Bearer <token>" to every outgoing request. Unlike the
// basic-auth authenticator it never waits for a challenge.
type bearerTransport struct {
	source oauth2.TokenSource
	base   http.RoundTripper
}

// RoundTrip implements http.RoundTripper. The request is cloned before the
// header is added so the caller's request is never mutated. A token source
// failure surfaces through the transport's normal error path.
func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.source.Token()
	if err != nil {
		return nil, errors.Wrap(err, "httpclient: fetch bearer token")
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token.AccessToken)

	return t.base.RoundTrip(clone)
}

// bearerSourceFor selects the token source for the bearer injector. A static
// OauthToken wraps into a StaticTokenSource and wins over a configured
// TokenSource, so exactly one source feeds the transport.
func bearerSourceFor(config *Config) oauth2.TokenSource {
	if config.OauthToken != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: config.OauthToken})
	}
	return config.TokenSource
}

// ClientCredentialsTokenSource returns a caching token source backed by the
// OAuth2 client credentials flow, suitable for Config.TokenSource. Tokens are
// fetched lazily and refreshed shortly before expiry.
//
// The context carries the HTTP client used for token requests (see
// oauth2.HTTPClient) and is detached from caller cancellation so a short-lived
// request context cannot kill future refreshes.
func ClientCredentialsTokenSource(ctx context.Context, tokenURL, clientID, clientSecret, scopes string) oauth2.TokenSource {
	if ctx == nil {
		ctx = context.Background()
	} else {
		ctx = context.WithoutCancel(ctx)
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		Scopes:       strings.Fields(scopes),
	}

	return config.TokenSource(ctx)
}

// warnIfExpired logs a warning when a configured static bearer token is a JWT
// whose expiry has already passed. Observational only: opaque tokens are
// skipped and an expired token is still installed, the server remains the
// authority on token validity.
func warnIfExpired(log *logrus.Logger, token string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	if exp.Before(time.Now()) {
		log.Warnf("httpclient: configured bearer token expired at %s", exp.Format(time.RFC3339))
	}
}
