package host

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// resolveProxy reports the proxy for rawURL from the standard environment
// variables, in the PAC-style string format upstream consumers expect:
// "PROXY host:port" or "DIRECT".
func resolveProxy(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse url %q: %w", rawURL, err)
	}

	if noProxyMatches(u.Hostname()) {
		return "DIRECT", nil
	}

	var proxy string
	if u.Scheme == "https" {
		proxy = envAny("HTTPS_PROXY", "https_proxy")
	}
	if proxy == "" {
		proxy = envAny("HTTP_PROXY", "http_proxy")
	}
	if proxy == "" {
		return "DIRECT", nil
	}

	pu, err := url.Parse(proxy)
	if err != nil || pu.Host == "" {
		// Bare host:port values are common in these variables.
		return "PROXY " + proxy, nil
	}
	return "PROXY " + pu.Host, nil
}

func noProxyMatches(host string) bool {
	noProxy := envAny("NO_PROXY", "no_proxy")
	if noProxy == "" || host == "" {
		return false
	}
	if noProxy == "*" {
		return true
	}
	for _, entry := range strings.Split(noProxy, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		entry = strings.TrimPrefix(entry, ".")
		if host == entry || strings.HasSuffix(host, "."+entry) {
			return true
		}
	}
	return false
}

func envAny(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
