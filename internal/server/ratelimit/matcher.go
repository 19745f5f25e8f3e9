package ratelimit

import (
	"strings"
)

// splitPattern separates "METHOD /path" into its parts. A pattern without a
// method applies to every method.
func splitPattern(pattern string) (method, path string) {
	if i := strings.IndexByte(pattern, ' '); i >= 0 {
		return pattern[:i], strings.TrimSpace(pattern[i+1:])
	}
	return "", pattern
}

// matches reports whether a configured pattern covers a registered route.
// A configured path ending in "/*" covers every route below it.
func (c *EndpointConfig) matches(method, path string) bool {
	cm, cp := splitPattern(c.Pattern)
	if cm != "" && cm != method {
		return false
	}
	if prefix, ok := strings.CutSuffix(cp, "*"); ok {
		return strings.HasPrefix(path, prefix)
	}
	return cp == path
}

// MatchEndpoint returns the configuration for a route pattern, or nil when
// the default applies. Exact paths win over wildcards, and among wildcards
// the longest prefix wins.
func MatchEndpoint(pattern string, configs []EndpointConfig) *EndpointConfig {
	method, path := splitPattern(pattern)

	var best *EndpointConfig
	bestLen := -1
	for i := range configs {
		c := &configs[i]
		if !c.matches(method, path) {
			continue
		}
		_, cp := splitPattern(c.Pattern)
		if !strings.HasSuffix(cp, "*") {
			return c
		}
		if len(cp) > bestLen {
			best, bestLen = c, len(cp)
		}
	}
	return best
}
