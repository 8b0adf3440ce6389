package httpclient

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	httpProtocolPrefix  = "http://"
	httpsProtocolPrefix = "https://"
)

// Config carries everything NewClientFor needs to assemble a transport
// client. It is consumed once at construction; the resulting client never
// observes later mutations. Populating it (from kubeconfig files, environment
// variables, service account mounts, ...) is the caller's business.
type Config struct {
	// MasterURL is the API server base URL. It may be empty or non-HTTP
	// (for example when talking over a local socket), in which case proxy
	// resolution is skipped entirely.
	MasterURL string

	// TrustCerts accepts every server certificate and hostname
	// unconditionally. Meant for development and test clusters, not for
	// hardened deployments.
	TrustCerts bool

	// Client certificate key material, as PEM bytes or file paths.
	// Data takes precedence over files. Certificate and key must be
	// provided together.
	ClientCertData []byte
	ClientKeyData  []byte
	ClientCertFile string
	ClientKeyFile  string

	// CA trust material, as PEM bytes or a file path. When present, the
	// system trust store is extended with the bundle.
	CAData []byte
	CAFile string

	// Basic-auth credentials. When both are non-empty they take priority
	// over any bearer token configuration.
	Username string
	Password string

	// OauthToken is a static bearer token attached to every request.
	OauthToken string

	// TokenSource supplies dynamic bearer tokens (for example from the
	// OAuth2 client credentials flow, see ClientCredentialsTokenSource).
	// Ignored when OauthToken is set.
	TokenSource oauth2.TokenSource

	// ConnectionTimeout bounds dialing; RequestTimeout bounds the whole
	// exchange. Zero leaves the transport defaults untouched.
	ConnectionTimeout time.Duration
	RequestTimeout    time.Duration

	// Proxy settings. HTTPProxy serves plain-HTTP master URLs, HTTPSProxy
	// everything else. NoProxy holds host suffixes exempt from proxying;
	// an exemption always wins over a configured proxy.
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    []string

	// Tracing forces request/response logging on or off. When nil, the
	// trace logger is attached iff the logger has trace level enabled.
	Tracing *bool

	// Logger receives trace output and construction-time warnings.
	// Nil means logrus.StandardLogger().
	Logger *logrus.Logger
}

// HasBasicAuth reports whether basic-auth credentials are fully configured.
func (c *Config) HasBasicAuth() bool {
	return c.Username != "" && c.Password != ""
}

// HasBearerAuth reports whether a bearer token or token source is configured.
func (c *Config) HasBearerAuth() bool {
	return c.OauthToken != "" || c.TokenSource != nil
}

// HasKeyMaterial reports whether any client certificate material is configured.
func (c *Config) HasKeyMaterial() bool {
	return len(c.ClientCertData) > 0 || len(c.ClientKeyData) > 0 ||
		c.ClientCertFile != "" || c.ClientKeyFile != ""
}

// HasTrustMaterial reports whether a custom CA bundle is configured.
func (c *Config) HasTrustMaterial() bool {
	return len(c.CAData) > 0 || c.CAFile != ""
}

// logger returns the configured logger or the process-wide default.
func (c *Config) logger() *logrus.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return logrus.StandardLogger()
}

// tracingEnabled decides, before assembly, whether the trace transport is
// attached at all. The hot path never branches on log levels.
func (c *Config) tracingEnabled() bool {
	if c.Tracing != nil {
		return *c.Tracing
	}
	return c.logger().IsLevelEnabled(logrus.TraceLevel)
}

// hasHTTPPrefix reports whether the master URL names a network HTTP(S)
// endpoint. Anything else (empty string, unix sockets) opts out of proxy
// resolution.
func hasHTTPPrefix(masterURL string) bool {
	lower := strings.ToLower(masterURL)
	return strings.HasPrefix(lower, httpProtocolPrefix) ||
		strings.HasPrefix(lower, httpsProtocolPrefix)
}
