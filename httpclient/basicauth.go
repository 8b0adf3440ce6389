package httpclient

import (
	"encoding/base64"
	"io"
	"net/http"
	"strings"
)

// basicAuthTransport answers Basic authentication challenges reactively: the
// request goes out unauthenticated first, and only a 401 response carrying a
// Basic challenge triggers a single resubmission with credentials. Proxy
// challenges (407) are never satisfied, and any other failure propagates to
// the caller unchanged.
type basicAuthTransport struct {
	username string
	password string
	base     http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	credential := basicCredentials(t.username, t.password)
	if req.Header.Get("Authorization") == credential {
		// Our answer was already rejected once; give up and let the
		// failure propagate rather than loop.
		return resp, nil
	}
	if !hasBasicChallenge(resp.Header) {
		return resp, nil
	}

	retry, ok := replayableRequest(req)
	if !ok {
		return resp, nil
	}
	retry.Header.Set("Authorization", credential)

	// Drain the challenge response so the connection can be reused.
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	resp.Body.Close()

	return t.base.RoundTrip(retry)
}

// hasBasicChallenge scans the WWW-Authenticate headers for a challenge whose
// scheme equals "Basic" case-insensitively.
func hasBasicChallenge(header http.Header) bool {
	for _, value := range header.Values("WWW-Authenticate") {
		for _, challenge := range strings.Split(value, ",") {
			scheme, _, _ := strings.Cut(strings.TrimSpace(challenge), " ")
			if strings.EqualFold(scheme, "Basic") {
				return true
			}
		}
	}
	return false
}

// replayableRequest clones the request for resubmission. Requests with a
// one-shot body that cannot be rewound are not retried.
func replayableRequest(req *http.Request) (*http.Request, bool) {
	retry := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return retry, true
	}
	if req.GetBody == nil {
		return nil, false
	}

	body, err := req.GetBody()
	if err != nil {
		return nil, false
	}
	retry.Body = body

	return retry, true
}

// basicCredentials encodes credentials per RFC 7617.
func basicCredentials(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}
