// Package scrape orchestrates multi-brand product searches over the
// site registry.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/adeelraza/go-scrape-fashion/config"
	"github.com/adeelraza/go-scrape-fashion/extract"
	"github.com/adeelraza/go-scrape-fashion/fetch"
	"github.com/adeelraza/go-scrape-fashion/models"
	"github.com/adeelraza/go-scrape-fashion/registry"
)

// Scraper runs search queries against registered storefronts. Construct
// one per logical owner; it carries no global state beyond its gateway
// counters.
type Scraper struct {
	cfg *config.Config
	reg *registry.Registry
	gw  *fetch.Gateway
}

// New builds a scraper over the given registry.
func New(cfg *config.Config, reg *registry.Registry) (*Scraper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}
	gw, err := fetch.NewGateway(cfg)
	if err != nil {
		return nil, err
	}
	return &Scraper{cfg: cfg, reg: reg, gw: gw}, nil
}

// Metrics exposes the Prometheus registry for a metrics endpoint.
func (s *Scraper) Metrics() *fetch.Metrics {
	return s.gw.Metrics
}

// Stats returns the gateway's diagnostic counters.
func (s *Scraper) Stats() models.Stats {
	return s.gw.Stats()
}

// ScrapeBrandProducts searches a single brand, trying terms in order
// until maxProducts records accumulate. Results are deduplicated by
// product URL. An unknown brand or a brand whose every term fails
// yields an empty list, never an error.
func (s *Scraper) ScrapeBrandProducts(brandName string, searchTerms []string, maxProducts int) []*models.Product {
	site, ok := s.reg.Site(brandName)
	if !ok {
		slog.Error("brand not registered", slog.String("brand", brandName))
		return nil
	}

	var all []*models.Product
	for _, term := range searchTerms {
		all = append(all, s.scrapeTerm(site, term, maxProducts)...)
		if len(all) >= maxProducts {
			break
		}
	}

	unique := dedupeByURL(all)
	if len(unique) > maxProducts {
		unique = unique[:maxProducts]
	}
	slog.Info("brand scrape finished",
		slog.String("brand", brandName),
		slog.Int("products", len(unique)),
	)
	return unique
}

// ScrapeMultipleBrands fans the first two search terms out across the
// priority brands with a bounded worker pool, then merges whatever
// completed before the query deadline. Late tasks are abandoned, not
// errors: the caller always gets the deduplicated, price-sorted slice
// of completed results, truncated to maxTotal.
//
// Cross-brand identity here is (name, brand); the single-brand path
// dedupes by product URL instead.
func (s *Scraper) ScrapeMultipleBrands(ctx context.Context, searchTerms []string, maxPerBrand, maxTotal int) []*models.Product {
	if len(searchTerms) > s.cfg.MaxSearchTerms {
		searchTerms = searchTerms[:s.cfg.MaxSearchTerms]
	}

	type task struct {
		site *registry.Site
		term string
	}
	var tasks []task
	for _, brandName := range s.reg.PriorityBrands() {
		site, ok := s.reg.Site(brandName)
		if !ok {
			continue
		}
		for _, term := range searchTerms {
			tasks = append(tasks, task{site: site, term: term})
		}
	}
	if len(tasks) == 0 {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	taskCh := make(chan task)
	// Buffered to the task count so abandoned workers never block on send.
	results := make(chan []*models.Product, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < s.cfg.MaxConcurrent; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tk := range taskCh {
				if runCtx.Err() != nil {
					results <- nil
					continue
				}
				results <- s.scrapeTerm(tk.site, tk.term, maxPerBrand)
			}
		}()
	}
	go func() {
		defer close(taskCh)
		for _, tk := range tasks {
			select {
			case taskCh <- tk:
			case <-runCtx.Done():
				return
			}
		}
	}()

	deadline := time.NewTimer(s.cfg.QueryTimeout)
	defer deadline.Stop()

	var all []*models.Product
	pending := len(tasks)
collect:
	for pending > 0 {
		select {
		case batch := <-results:
			pending--
			all = append(all, batch...)
		case <-deadline.C:
			slog.Warn("query deadline reached, returning partial results",
				slog.Int("pending_tasks", pending),
				slog.Int("collected", len(all)),
			)
			break collect
		case <-ctx.Done():
			break collect
		}
	}

	unique := dedupeByNameBrand(all)
	sortByPrice(unique)
	if len(unique) > maxTotal {
		unique = unique[:maxTotal]
	}
	return unique
}

// SearchByCategory runs a multi-brand query using the category's
// best-known search terms. Unknown categories yield an empty list.
func (s *Scraper) SearchByCategory(ctx context.Context, category string, maxProducts int) []*models.Product {
	terms := registry.TermsForCategory(category)
	if len(terms) == 0 {
		return nil
	}
	if len(terms) > 3 {
		terms = terms[:3]
	}
	return s.ScrapeMultipleBrands(ctx, terms, 2, maxProducts)
}

// scrapeTerm runs one (brand, term) search. All failures are absorbed
// here and reported as an empty batch.
func (s *Scraper) scrapeTerm(site *registry.Site, term string, maxProducts int) []*models.Product {
	searchURL := buildSearchURL(site, term)
	slog.Debug("scraping",
		slog.String("brand", site.Brand),
		slog.String("term", term),
		slog.String("url", searchURL),
	)

	var products []*models.Product
	switch site.Kind {
	case registry.KindJSON:
		payload, err := s.gw.FetchJSON(searchURL)
		if err != nil {
			return nil
		}
		products, err = extract.FromSuggestJSON(payload, site, maxProducts, s.gw)
		if err != nil {
			slog.Warn("malformed suggest payload",
				slog.String("brand", site.Brand),
				slog.Any("error", err),
			)
			return nil
		}
	default:
		doc, err := s.gw.FetchHTML(searchURL)
		if err != nil {
			return nil
		}
		products = extract.FromDocument(doc, site, maxProducts, s.gw)
	}

	for _, product := range products {
		s.gw.Metrics.IncProducts(product.Brand)
	}
	return products
}

func buildSearchURL(site *registry.Site, term string) string {
	if site.SearchParam == "" {
		return site.SearchURL + url.PathEscape(term)
	}
	values := url.Values{}
	for key, value := range site.ExtraParams {
		values.Set(key, value)
	}
	values.Set(site.SearchParam, term)
	return site.SearchURL + "?" + values.Encode()
}
