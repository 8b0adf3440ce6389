package httpclient

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/pkg/errors"
)

// tlsConfigFor resolves the trust policy for a configuration.
//
// It returns (nil, nil) when neither key material, trust material, nor the
// trust-everything switch is configured, so the platform default TLS context
// stays untouched. TrustCerts disables certificate and hostname verification
// wholesale. A failure to obtain the system trust store is surfaced as
// *TLSUnavailableError; unparseable material as *ConfigurationError.
func tlsConfigFor(config *Config) (*tls.Config, error) {
	if !config.TrustCerts && !config.HasKeyMaterial() && !config.HasTrustMaterial() {
		return nil, nil
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: config.TrustCerts, // #nosec G402 -- explicit opt-in for dev/test clusters
	}

	if config.HasTrustMaterial() {
		pool, err := trustPool(config)
		if err != nil {
			return nil, err
		}
		tlsConfig.RootCAs = pool
	}

	if config.HasKeyMaterial() {
		cert, err := clientKeyPair(config)
		if err != nil {
			return nil, err
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// trustPool extends the system trust store with the configured CA bundle.
func trustPool(config *Config) (*x509.CertPool, error) {
	caPEM := config.CAData
	if len(caPEM) == 0 {
		data, err := os.ReadFile(config.CAFile)
		if err != nil {
			return nil, newConfigError("read CA trust material", err)
		}
		caPEM = data
	}

	pool, err := x509.SystemCertPool()
	if err != nil {
		// The runtime refusing to yield its trust store means it cannot
		// do TLS; requests would be unsafe no matter what we build.
		return nil, &TLSUnavailableError{Err: errors.Wrap(err, "load system trust store")}
	}
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, newConfigError("parse CA trust material", nil)
	}

	return pool, nil
}

// clientKeyPair loads the configured client certificate, from PEM bytes when
// present and from files otherwise. Certificate and key must arrive together.
func clientKeyPair(config *Config) (tls.Certificate, error) {
	certPEM := config.ClientCertData
	keyPEM := config.ClientKeyData

	if len(certPEM) == 0 && config.ClientCertFile != "" {
		data, err := os.ReadFile(config.ClientCertFile)
		if err != nil {
			return tls.Certificate{}, newConfigError("read client certificate", err)
		}
		certPEM = data
	}
	if len(keyPEM) == 0 && config.ClientKeyFile != "" {
		data, err := os.ReadFile(config.ClientKeyFile)
		if err != nil {
			return tls.Certificate{}, newConfigError("read client key", err)
		}
		keyPEM = data
	}

	if len(certPEM) == 0 || len(keyPEM) == 0 {
		return tls.Certificate{}, newConfigError("client certificate and key must both be provided", nil)
	}

	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return tls.Certificate{}, newConfigError("parse client key material", err)
	}

	return cert, nil
}
