// Package fetch issues throttled, header-rotating storefront requests
// and validates candidate image URLs.
package fetch

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/adeelraza/go-scrape-fashion/config"
	"github.com/adeelraza/go-scrape-fashion/models"
)

const captureKey = "capture"

type kind int

const (
	kindHTML kind = iota
	kindJSON
)

// capture carries one request's response back out of the collector
// callbacks via the per-request colly context.
type capture struct {
	body        []byte
	contentType string
	status      int
}

// Gateway wraps a colly collector shared by all workers of one scraper
// instance. The collector's limit rule is the gateway-wide throttle:
// every request waits out the configured delay regardless of which
// worker issued it.
type Gateway struct {
	cfg        *config.Config
	collector  *colly.Collector
	headClient *http.Client
	headers    *headerPool
	imageCache *lru.Cache[string, bool]
	Metrics    *Metrics

	requestCount int64

	mu           sync.Mutex
	failed       map[string]string
	errorsByType map[string]int
}

// NewGateway builds a gateway configured from cfg.
func NewGateway(cfg *config.Config) (*Gateway, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	collector := colly.NewCollector(colly.AllowURLRevisit())
	collector.SetRequestTimeout(cfg.Timeout)
	collector.IgnoreRobotsTxt = !cfg.RespectRobotsTxt
	collector.WithTransport(transport)

	if err := collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: cfg.MaxConcurrent,
		Delay:       cfg.Delay,
		RandomDelay: cfg.RandomDelay,
	}); err != nil {
		return nil, fmt.Errorf("configure rate limits: %w", err)
	}

	cache, err := lru.New[string, bool](cfg.ImageCacheSize)
	if err != nil {
		return nil, fmt.Errorf("image cache: %w", err)
	}

	g := &Gateway{
		cfg:       cfg,
		collector: collector,
		headClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.ImageCheckTimeout,
		},
		headers:      defaultHeaderPool(),
		imageCache:   cache,
		Metrics:      NewMetrics(),
		failed:       make(map[string]string),
		errorsByType: make(map[string]int),
	}
	g.registerHandlers()
	return g, nil
}

func (g *Gateway) registerHandlers() {
	g.collector.OnRequest(func(r *colly.Request) {
		r.Ctx.Put("start", time.Now())
		atomic.AddInt64(&g.requestCount, 1)
		g.Metrics.IncRequest("started")
	})

	g.collector.OnResponse(func(r *colly.Response) {
		if grab, ok := r.Ctx.GetAny(captureKey).(*capture); ok {
			grab.body = append([]byte(nil), r.Body...)
			grab.contentType = r.Headers.Get("Content-Type")
			grab.status = r.StatusCode
		}
		if start, ok := r.Ctx.GetAny("start").(time.Time); ok {
			g.Metrics.ObserveDuration(time.Since(start))
		}
	})

	g.collector.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
			if grab, ok := r.Ctx.GetAny(captureKey).(*capture); ok {
				grab.status = status
			}
		}
		label := errorLabel(classify(err, status))
		g.mu.Lock()
		g.errorsByType[label]++
		g.mu.Unlock()
		g.Metrics.IncError(label)
	})
}

// WithTransport swaps the underlying transport on both the collector
// and the image-check client. Used by tests to inject mocks.
func (g *Gateway) WithTransport(rt http.RoundTripper) {
	g.collector.WithTransport(rt)
	g.headClient.Transport = rt
}

// FetchHTML retrieves a search page and parses it. Exhausted retries
// surface as an error, never a panic; callers treat failures as an
// empty result.
func (g *Gateway) FetchHTML(url string) (*goquery.Document, error) {
	body, err := g.fetchBody(url, kindHTML)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		g.recordFailure(url, err)
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

// FetchJSON retrieves a structured search-suggestion payload.
func (g *Gateway) FetchJSON(url string) ([]byte, error) {
	return g.fetchBody(url, kindJSON)
}

func (g *Gateway) fetchBody(url string, want kind) ([]byte, error) {
	attempts := g.cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			g.Metrics.IncRetries()
			time.Sleep(g.backoff())
		}

		grab := &capture{}
		reqCtx := colly.NewContext()
		reqCtx.Put(captureKey, grab)

		err := g.collector.Request(http.MethodGet, url, nil, reqCtx, g.headers.pick())
		if err != nil {
			lastErr = classify(err, grab.status)
			slog.Warn("fetch attempt failed",
				slog.String("url", url),
				slog.Int("attempt", attempt),
				slog.Any("error", lastErr),
			)
			continue
		}
		if !contentTypeMatches(want, grab.contentType) {
			lastErr = &ContentTypeError{URL: url, ContentType: grab.contentType}
			g.mu.Lock()
			g.errorsByType["content_type"]++
			g.mu.Unlock()
			g.Metrics.IncError("content_type")
			slog.Warn("unexpected content type",
				slog.String("url", url),
				slog.String("content_type", grab.contentType),
			)
			continue
		}
		return grab.body, nil
	}

	g.recordFailure(url, lastErr)
	return nil, lastErr
}

// backoff picks a uniform random delay within the configured window.
func (g *Gateway) backoff() time.Duration {
	min, max := g.cfg.RetryBackoffMin, g.cfg.RetryBackoffMax
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}

func contentTypeMatches(want kind, contentType string) bool {
	ct := strings.ToLower(contentType)
	switch want {
	case kindJSON:
		return strings.Contains(ct, "json")
	default:
		return strings.Contains(ct, "text/html")
	}
}

func (g *Gateway) recordFailure(url string, err error) {
	msg := "no response"
	if err != nil {
		msg = err.Error()
	}
	g.mu.Lock()
	g.failed[url] = msg
	g.mu.Unlock()
}

// Stats returns the diagnostic counters accumulated so far.
func (g *Gateway) Stats() models.Stats {
	g.mu.Lock()
	defer g.mu.Unlock()

	total := int(atomic.LoadInt64(&g.requestCount))
	failed := len(g.failed)
	urls := make([]string, 0, failed)
	for url := range g.failed {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	denom := total
	if denom < 1 {
		denom = 1
	}
	return models.Stats{
		TotalRequests:  total,
		FailedRequests: failed,
		SuccessRate:    float64(total-failed) / float64(denom),
		FailedURLs:     urls,
	}
}

// ErrorsByType returns a snapshot of error counts per classification.
func (g *Gateway) ErrorsByType() map[string]int {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make(map[string]int, len(g.errorsByType))
	for k, v := range g.errorsByType {
		out[k] = v
	}
	return out
}
