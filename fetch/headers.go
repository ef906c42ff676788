package fetch

import (
	"math/rand"
	"net/http"
)

// headerPool rotates between realistic browser header profiles so
// repeated requests do not share a single fingerprint. Accept-Encoding
// is left to the transport so responses stay transparently decoded.
type headerPool struct {
	profiles []map[string]string
}

func defaultHeaderPool() *headerPool {
	return &headerPool{profiles: []map[string]string{
		{
			"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
			"Accept-Language":           "en-US,en;q=0.9",
			"Connection":                "keep-alive",
			"Upgrade-Insecure-Requests": "1",
		},
		{
			"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.1.1 Safari/605.1.15",
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-us",
			"Connection":      "keep-alive",
		},
		{
			"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
			"Connection":      "keep-alive",
			"DNT":             "1",
		},
	}}
}

// pick returns a fresh header set from a randomly chosen profile.
func (p *headerPool) pick() http.Header {
	profile := p.profiles[rand.Intn(len(p.profiles))]
	h := make(http.Header, len(profile))
	for k, v := range profile {
		h.Set(k, v)
	}
	return h
}
