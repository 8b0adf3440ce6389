package httpclient

import (
	"net/url"
	"strings"
)

// ResolveProxyURL decides, once, whether requests to the master URL should
// route through a proxy. It returns nil when no proxy applies.
//
// The decision is a pure function of its inputs: the master host is matched
// against each noProxy entry by literal suffix (an exemption always wins),
// then httpsProxy is selected for every scheme except plain http. A malformed
// master or proxy URL is a *ConfigurationError, never a silent no-proxy
// fallback. Non-HTTP master URLs skip proxy resolution entirely.
func ResolveProxyURL(masterURL, httpProxy, httpsProxy string, noProxy []string) (*url.URL, error) {
	if !hasHTTPPrefix(masterURL) {
		return nil, nil
	}

	master, err := url.Parse(masterURL)
	if err != nil {
		return nil, newConfigError("invalid master URL", err)
	}

	host := master.Hostname()
	for _, suffix := range noProxy {
		// Literal suffix match, not anchored on a domain-label boundary:
		// "ample.com" exempts "example.com". Existing configurations
		// depend on the literal behavior, so it is kept as-is.
		if strings.HasSuffix(host, suffix) {
			return nil, nil
		}
	}

	proxy := httpsProxy
	if master.Scheme == "http" {
		proxy = httpProxy
	}
	if proxy == "" {
		return nil, nil
	}

	proxyURL, err := url.Parse(proxy)
	if err != nil {
		return nil, newConfigError("invalid proxy server configuration", err)
	}

	return proxyURL, nil
}
