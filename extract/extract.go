// Package extract turns fetched documents and payloads into normalized
// product records using per-site selector candidates with global
// fallbacks.
package extract

import (
	"net/url"
	"strings"
)

// ImageValidator confirms a candidate image URL before a product record
// is accepted. fetch.Gateway satisfies it; tests may stub it.
type ImageValidator interface {
	IsLikelyValidImage(url string) bool
}

// ResolveURL promotes protocol-relative values to https and resolves
// site-relative paths against the storefront base. Anything else is
// returned untouched.
func ResolveURL(base, raw string) string {
	switch {
	case raw == "":
		return ""
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	case strings.HasPrefix(raw, "/"):
		parsedBase, err := url.Parse(base)
		if err != nil {
			return raw
		}
		parsedRef, err := url.Parse(raw)
		if err != nil {
			return raw
		}
		return parsedBase.ResolveReference(parsedRef).String()
	default:
		return raw
	}
}
