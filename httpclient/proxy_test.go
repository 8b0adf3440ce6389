package httpclient

import (
	"errors"
	"testing"
)

func TestResolveProxyURL(t *testing.T) {
	tests := []struct {
		name       string
		masterURL  string
		httpProxy  string
		httpsProxy string
		noProxy    []string
		want       string // expected proxy host:port, "" means no proxy
	}{
		{
			name:       "https master selects https proxy",
			masterURL:  "https://api.example.com:6443",
			httpsProxy: "http://proxy.local:3128",
			want:       "proxy.local:3128",
		},
		{
			name:      "http master selects http proxy",
			masterURL: "http://api.example.com:8080",
			httpProxy: "http://proxy.local:3128",
			want:      "proxy.local:3128",
		},
		{
			name:       "http master ignores https proxy",
			masterURL:  "http://api.example.com:8080",
			httpsProxy: "http://proxy.local:3128",
			want:       "",
		},
		{
			name:       "noProxy suffix match wins over configured proxy",
			masterURL:  "https://api.example.com:6443",
			httpsProxy: "http://proxy.local:3128",
			noProxy:    []string{"example.com"},
			want:       "",
		},
		{
			name:       "noProxy non-matching entry keeps proxy",
			masterURL:  "https://api.example.com:6443",
			httpsProxy: "http://proxy.local:3128",
			noProxy:    []string{"other.org"},
			want:       "proxy.local:3128",
		},
		{
			name:       "noProxy matches by literal suffix without label boundary",
			masterURL:  "https://api.example.com:6443",
			httpsProxy: "http://proxy.local:3128",
			noProxy:    []string{"ample.com"},
			want:       "",
		},
		{
			name:       "uppercase scheme is recognized",
			masterURL:  "HTTPS://api.example.com:6443",
			httpsProxy: "http://proxy.local:3128",
			want:       "proxy.local:3128",
		},
		{
			name:       "non-network master skips proxy resolution",
			masterURL:  "unix:///var/run/cluster.sock",
			httpsProxy: "http://proxy.local:3128",
			want:       "",
		},
		{
			name:       "empty master skips proxy resolution",
			masterURL:  "",
			httpsProxy: "http://proxy.local:3128",
			want:       "",
		},
		{
			name:      "no proxy configured",
			masterURL: "https://api.example.com:6443",
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveProxyURL(tt.masterURL, tt.httpProxy, tt.httpsProxy, tt.noProxy)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.want == "" {
				if got != nil {
					t.Fatalf("expected no proxy, got %s", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected proxy %s, got none", tt.want)
			}
			if got.Host != tt.want {
				t.Errorf("expected proxy host %s, got %s", tt.want, got.Host)
			}
		})
	}
}

func TestResolveProxyURL_MalformedProxy(t *testing.T) {
	_, err := ResolveProxyURL("https://api.example.com:6443", "", "http://\x00bad", nil)
	if err == nil {
		t.Fatal("expected error for malformed proxy URL")
	}

	var configErr *ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected *ConfigurationError, got %T: %v", err, err)
	}
}

func TestResolveProxyURL_MalformedMaster(t *testing.T) {
	_, err := ResolveProxyURL("https://api\x00.example.com", "", "http://proxy.local:3128", nil)
	if err == nil {
		t.Fatal("expected error for malformed master URL")
	}

	var configErr *ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected *ConfigurationError, got %T: %v", err, err)
	}
}
