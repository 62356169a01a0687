package ratelimit

import (
	"strings"
)

// unlimited are probe endpoints that never count against a client.
var unlimited = map[string]bool{
	"GET /health":  true,
	"GET /metrics": true,
}

// MatchEndpoint returns the configuration whose pattern matches path and method, or nil.
// Patterns are ServeMux-style: "/roster/{id}/image" matches any single segment in place of
// {id}, and a pattern ending in "/" matches every path below it. Exact patterns win over
// wildcard ones, which win over prefixes.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimited[method+" "+path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	var wildcard, prefix *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != method {
			continue
		}
		switch {
		case config.Path == path:
			return config
		case wildcard == nil && strings.Contains(config.Path, "{") && segmentsMatch(config.Path, path):
			wildcard = config
		case prefix == nil && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path):
			prefix = config
		}
	}

	if wildcard != nil {
		return wildcard
	}
	return prefix
}

func segmentsMatch(pattern, path string) bool {
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if len(want) != len(got) {
		return false
	}
	for i, seg := range want {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if got[i] == "" {
				return false
			}
			continue
		}
		if seg != got[i] {
			return false
		}
	}
	return true
}
