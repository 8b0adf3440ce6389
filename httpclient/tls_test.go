package httpclient

import (
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/yybear/kubernetes-client/testutil"
)

func TestTLSConfigFor_Untouched(t *testing.T) {
	tlsConfig, err := tlsConfigFor(&Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tlsConfig != nil {
		t.Fatal("expected nil TLS config when nothing is configured")
	}
}

func TestTLSConfigFor_TrustCerts(t *testing.T) {
	tlsConfig, err := tlsConfigFor(&Config{TrustCerts: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tlsConfig == nil {
		t.Fatal("expected TLS config")
	}
	if !tlsConfig.InsecureSkipVerify {
		t.Error("TrustCerts should disable certificate and hostname verification")
	}
}

func TestTLSConfigFor_TrustMaterialFromData(t *testing.T) {
	certPEM, _ := testutil.GenerateCertAndKey(t)

	tlsConfig, err := tlsConfigFor(&Config{CAData: certPEM})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tlsConfig.RootCAs == nil {
		t.Error("expected a trust pool extended with the CA bundle")
	}
	if tlsConfig.InsecureSkipVerify {
		t.Error("custom trust material must not disable verification")
	}
}

func TestTLSConfigFor_KeyMaterialFromData(t *testing.T) {
	certPEM, keyPEM := testutil.GenerateCertAndKey(t)

	tlsConfig, err := tlsConfigFor(&Config{ClientCertData: certPEM, ClientKeyData: keyPEM})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tlsConfig.Certificates) != 1 {
		t.Fatalf("expected one client certificate, got %d", len(tlsConfig.Certificates))
	}
}

func TestTLSConfigFor_KeyMaterialFromFiles(t *testing.T) {
	dir := t.TempDir()
	certPath := filepath.Join(dir, "client.crt")
	keyPath := filepath.Join(dir, "client.key")
	testutil.WriteTestCertAndKey(t, certPath, keyPath)

	tlsConfig, err := tlsConfigFor(&Config{ClientCertFile: certPath, ClientKeyFile: keyPath})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tlsConfig.Certificates) != 1 {
		t.Fatalf("expected one client certificate, got %d", len(tlsConfig.Certificates))
	}
}

func TestTLSConfigFor_PartialKeyMaterial(t *testing.T) {
	certPEM, _ := testutil.GenerateCertAndKey(t)

	_, err := tlsConfigFor(&Config{ClientCertData: certPEM})
	if err == nil {
		t.Fatal("expected error for certificate without key")
	}

	var configErr *ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected *ConfigurationError, got %T: %v", err, err)
	}
}

func TestTLSConfigFor_BadTrustMaterial(t *testing.T) {
	_, err := tlsConfigFor(&Config{CAData: []byte("not a certificate")})
	if err == nil {
		t.Fatal("expected error for unparseable CA bundle")
	}

	var configErr *ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected *ConfigurationError, got %T: %v", err, err)
	}
}

func TestTLSConfigFor_MissingCAFile(t *testing.T) {
	_, err := tlsConfigFor(&Config{CAFile: filepath.Join(t.TempDir(), "missing.crt")})
	if err == nil {
		t.Fatal("expected error for unreadable CA file")
	}

	var configErr *ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected *ConfigurationError, got %T: %v", err, err)
	}
}

func TestNewClientFor_TrustCertsAcceptsAnyServer(t *testing.T) {
	server, _ := testutil.NewLocalTLSServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClientFor(&Config{MasterURL: server.URL, TrustCerts: true})
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}

	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("request with TrustCerts should succeed against self-signed server: %v", err)
	}
	resp.Body.Close()
}

func TestNewClientFor_TrustMaterialVerifiesServer(t *testing.T) {
	server, certPEM := testutil.NewLocalTLSServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClientFor(&Config{MasterURL: server.URL, CAData: certPEM})
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}

	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("request with trusted CA should succeed: %v", err)
	}
	resp.Body.Close()
}

func TestNewClientFor_DefaultTrustRejectsSelfSigned(t *testing.T) {
	server, _ := testutil.NewLocalTLSServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClientFor(&Config{MasterURL: server.URL})
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}

	resp, err := client.Get(server.URL)
	if err == nil {
		resp.Body.Close()
		t.Fatal("expected TLS verification failure against self-signed server")
	}
}
