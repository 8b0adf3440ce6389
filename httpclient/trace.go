package httpclient

import (
	"net/http"
	"net/http/httptrace"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// traceTransport logs every request/response pair at trace level. It sits
// directly above the network transport so authentication retries show up as
// individual exchanges. Purely observational: the request and response pass
// through unchanged and bodies are never read.
type traceTransport struct {
	log  *logrus.Logger
	base http.RoundTripper
}

// RoundTrip implements http.RoundTripper. The "Sending" line is emitted once
// the connection is known (after dialing or connection reuse, before the
// request is written), mirroring where a network-level interceptor sits.
func (t *traceTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	trace := &httptrace.ClientTrace{
		GotConn: func(info httptrace.GotConnInfo) {
			t.log.Tracef("Sending request %s %s on %s\n%s",
				req.Method, req.URL, info.Conn.RemoteAddr(), headerLines(req.Header))
		},
	}
	req = req.WithContext(httptrace.WithClientTrace(req.Context(), trace))

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	elapsed := float64(time.Since(start).Nanoseconds()) / 1e6
	t.log.Tracef("Received %d response for %s %s in %.1fms\n%s",
		resp.StatusCode, req.Method, req.URL, elapsed, headerLines(resp.Header))

	return resp, nil
}

// headerLines renders headers one per line for trace output.
func headerLines(header http.Header) string {
	var b strings.Builder
	for key, values := range header {
		for _, value := range values {
			b.WriteString(key)
			b.WriteString(": ")
			b.WriteString(value)
			b.WriteString("\n")
		}
	}
	return b.String()
}
