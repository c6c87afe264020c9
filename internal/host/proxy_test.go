package host

import "testing"

func clearProxyEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"HTTP_PROXY", "http_proxy", "HTTPS_PROXY", "https_proxy", "NO_PROXY", "no_proxy"} {
		t.Setenv(name, "")
	}
}

func TestResolveProxy_DirectWhenUnset(t *testing.T) {
	clearProxyEnv(t)

	got, err := resolveProxy("https://example.com/path")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "DIRECT" {
		t.Fatalf("expected DIRECT, got %q", got)
	}
}

func TestResolveProxy_HTTPSUsesHTTPSProxy(t *testing.T) {
	clearProxyEnv(t)
	t.Setenv("HTTPS_PROXY", "http://proxy.corp:3128")
	t.Setenv("HTTP_PROXY", "http://other.corp:8080")

	got, err := resolveProxy("https://example.com")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "PROXY proxy.corp:3128" {
		t.Fatalf("expected PROXY proxy.corp:3128, got %q", got)
	}
}

func TestResolveProxy_HTTPFallsBackToHTTPProxy(t *testing.T) {
	clearProxyEnv(t)
	t.Setenv("http_proxy", "proxy.corp:8080")

	got, err := resolveProxy("http://example.com")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "PROXY proxy.corp:8080" {
		t.Fatalf("expected PROXY proxy.corp:8080, got %q", got)
	}
}

func TestResolveProxy_NoProxyMatches(t *testing.T) {
	clearProxyEnv(t)
	t.Setenv("HTTPS_PROXY", "http://proxy.corp:3128")
	t.Setenv("NO_PROXY", "internal.corp, .example.com")

	tests := []struct {
		url  string
		want string
	}{
		{"https://internal.corp/x", "DIRECT"},
		{"https://api.example.com", "DIRECT"},
		{"https://example.com", "DIRECT"},
		{"https://other.net", "PROXY proxy.corp:3128"},
	}
	for _, tt := range tests {
		got, err := resolveProxy(tt.url)
		if err != nil {
			t.Fatalf("resolve %s: %v", tt.url, err)
		}
		if got != tt.want {
			t.Fatalf("resolve %s = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestResolveProxy_BadURL(t *testing.T) {
	clearProxyEnv(t)
	if _, err := resolveProxy("://not-a-url"); err == nil {
		t.Fatal("expected parse error")
	}
}
