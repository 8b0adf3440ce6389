package httpclient

import (
	"net"
	"net/http"
	"time"
)

// NewClientFor assembles the shared transport client for a configuration.
//
// It is a pure function over the Config value: the same input always yields
// an equivalently configured client, and nothing is re-evaluated after
// construction (in particular the proxy decision is fixed here and never
// tracks environment or DNS changes). The returned client follows redirects,
// including HTTP to HTTPS upgrades, and is safe for concurrent use.
//
// Errors are typed: *ConfigurationError for malformed input and
// *TLSUnavailableError for the unrecoverable no-TLS case. No partial client
// is ever returned.
func NewClientFor(config *Config) (*http.Client, error) {
	if config == nil {
		config = &Config{}
	}
	log := config.logger()

	transport := defaultTransport()

	tlsConfig, err := tlsConfigFor(config)
	if err != nil {
		return nil, err
	}
	if tlsConfig != nil {
		transport.TLSClientConfig = tlsConfig
	}

	if config.ConnectionTimeout > 0 {
		transport.DialContext = (&net.Dialer{
			Timeout:   config.ConnectionTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext
	}

	proxyURL, err := ResolveProxyURL(config.MasterURL, config.HTTPProxy, config.HTTPSProxy, config.NoProxy)
	if err != nil {
		return nil, err
	}
	if proxyURL != nil {
		transport.Proxy = http.ProxyURL(proxyURL)
	} else {
		// The decision is "no proxy", not "whatever the environment
		// says at request time".
		transport.Proxy = nil
	}

	var rt http.RoundTripper = transport

	if config.tracingEnabled() {
		rt = &traceTransport{log: log, base: rt}
	}

	// At most one authentication strategy; basic auth wins when both
	// credential sets are present.
	switch {
	case config.HasBasicAuth():
		rt = &basicAuthTransport{
			username: config.Username,
			password: config.Password,
			base:     rt,
		}
	case config.HasBearerAuth():
		if config.OauthToken != "" {
			warnIfExpired(log, config.OauthToken)
		}
		rt = &bearerTransport{source: bearerSourceFor(config), base: rt}
	}

	client := &http.Client{Transport: rt}
	if config.RequestTimeout > 0 {
		client.Timeout = config.RequestTimeout
	}

	return client, nil
}

// defaultTransport clones http.DefaultTransport when it is the stock
// *http.Transport. A replaced default (test stubs) cannot be cloned, so a
// fresh transport is used instead.
func defaultTransport() *http.Transport {
	if transport, ok := http.DefaultTransport.(*http.Transport); ok {
		return transport.Clone()
	}
	return &http.Transport{}
}
