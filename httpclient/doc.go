// Package httpclient constructs the shared HTTP transport client used to talk
// to a cluster API server.
//
// Given an immutable Config it resolves the TLS trust policy (custom CA
// bundles, client certificates, or an explicit trust-everything switch for
// development clusters), installs at most one authentication strategy (a
// reactive basic-auth challenge authenticator or a proactive bearer token
// injector), decides the outbound proxy once from the master URL and the
// noProxy exemptions, optionally wires a trace-level request logger, and
// applies connection and request timeouts.
//
// # Quick Start
//
//	client, err := httpclient.NewClientFor(&httpclient.Config{
//	    MasterURL:  "https://api.example.com:6443",
//	    OauthToken: token,
//	    CAData:     caPEM,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Get("https://api.example.com:6443/healthz")
//
// The returned *http.Client is a long-lived, read-only object: build it once
// per configuration and share it freely across goroutines. Construction
// failures are typed: *ConfigurationError for bad input (malformed proxy or
// master URL, unparseable certificate material) and *TLSUnavailableError when
// the platform cannot provide TLS at all — the latter is unrecoverable and
// must abort startup.
package httpclient
