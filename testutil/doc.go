// Package testutil provides test helpers shared across this repository.
//
// It includes utilities to spin up IPv4-only local HTTP and TLS servers
// (avoiding IPv6 in sandboxes), inline http.RoundTripper implementations, and
// generate self-signed certificates for TLS tests.
//
// # Utilities
//
//   - NewLocalHTTPServer / NewLocalTLSServer: start httptest servers bound to 127.0.0.1
//   - RoundTripFunc: inline http.RoundTripper implementations
//   - GenerateCertAndKey / WriteTestCertAndKey: self-signed certificates, in memory or on disk
package testutil
