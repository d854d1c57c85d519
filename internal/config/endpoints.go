package config

import (
	"os"
	"strings"
)

// Endpoints describes where uploads go. Resolve is re-run for every request
// so one build works against both a local and a deployed backend.
type Endpoints struct {
	RemoteURL   string   `toml:"remote_url"`
	LocalURL    string   `toml:"local_url"`
	UpscalePath string   `toml:"upscale_path"`
	LocalHosts  []string `toml:"local_hosts"`
}

// HostFunc reports the host the client currently considers itself running on
type HostFunc func() string

// IsLocal reports whether host is one of the local development hosts
func (e Endpoints) IsLocal(host string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	for _, h := range e.LocalHosts {
		if strings.EqualFold(h, host) {
			return true
		}
	}
	return false
}

// BaseURL returns the local base URL for local hosts and the remote one otherwise
func (e Endpoints) BaseURL(host string) string {
	if e.IsLocal(host) {
		return strings.TrimRight(e.LocalURL, "/")
	}
	return strings.TrimRight(e.RemoteURL, "/")
}

// Resolve returns the upscale endpoint for host
func (e Endpoints) Resolve(host string) string {
	path := e.UpscalePath
	if path == "" {
		path = DefaultUpscalePath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return e.BaseURL(host) + path
}

// EnvHost reads UPSCALER_HOST on every call, falling back to the machine hostname
func EnvHost() string {
	if h := os.Getenv("UPSCALER_HOST"); h != "" {
		return h
	}
	h, err := os.Hostname()
	if err != nil {
		return ""
	}
	return h
}

// FixedHost always reports host
func FixedHost(host string) HostFunc {
	return func() string { return host }
}
