package fetch

import (
	"log/slog"
	"net/http"
	"strings"
)

// Image URLs shorter than this cannot hold a scheme, host, and file
// name, so they are rejected without a network round trip.
const minImageURLLength = 10

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// IsLikelyValidImage reports whether url plausibly points at a live
// image: it must look like an image URL and a HEAD probe must answer
// with a success status and an image content type. Any transport error
// counts as invalid; a rejected real image is acceptable, a broken
// product card is not. Probe results are memoized.
func (g *Gateway) IsLikelyValidImage(url string) bool {
	if len(url) < minImageURLLength {
		return false
	}
	lower := strings.ToLower(url)
	hasExtension := false
	for _, ext := range imageExtensions {
		if strings.Contains(lower, ext) {
			hasExtension = true
			break
		}
	}
	if !hasExtension {
		return false
	}

	if valid, ok := g.imageCache.Get(url); ok {
		g.Metrics.IncImageCheck("cached")
		return valid
	}

	valid := g.probeImage(url)
	g.imageCache.Add(url, valid)
	if valid {
		g.Metrics.IncImageCheck("valid")
	} else {
		g.Metrics.IncImageCheck("invalid")
	}
	return valid
}

func (g *Gateway) probeImage(url string) bool {
	req, err := http.NewRequest(http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	req.Header = g.headers.pick()

	resp, err := g.headClient.Do(req)
	if err != nil {
		slog.Debug("image probe failed", slog.String("url", url), slog.Any("error", err))
		return false
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	return resp.StatusCode == http.StatusOK && strings.Contains(contentType, "image")
}
