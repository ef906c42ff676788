package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/adeelraza/go-scrape-fashion/models"
	"github.com/adeelraza/go-scrape-fashion/parser"
	"github.com/adeelraza/go-scrape-fashion/registry"
)

// Lazy-loading themes park the real image URL in data attributes.
var imageAttrs = []string{"src", "data-src", "data-lazy-src"}

// FromDocument extracts up to max products from a search results page.
// The first selector candidate whose container locator matches wins for
// the whole page; a page matching no candidate yields zero products.
func FromDocument(doc *goquery.Document, site *registry.Site, max int, validator ImageValidator) []*models.Product {
	containers, ok := findContainers(doc, site.Selectors)
	if !ok {
		return nil
	}

	var products []*models.Product
	containers.EachWithBreak(func(_ int, container *goquery.Selection) bool {
		if len(products) >= max {
			return false
		}
		if product := productFromContainer(container, site, validator); product != nil {
			products = append(products, product)
		}
		return true
	})
	return products
}

func findContainers(doc *goquery.Document, candidates []registry.SelectorSet) (*goquery.Selection, bool) {
	for _, candidate := range candidates {
		if candidate.Container == "" {
			continue
		}
		if sel := doc.Find(candidate.Container); sel.Length() > 0 {
			return sel, true
		}
	}
	return nil, false
}

// productFromContainer resolves each role through the candidate chain.
// A container without a validated image produces no product; missing
// title, price, or link degrade to their sentinels instead.
func productFromContainer(container *goquery.Selection, site *registry.Site, validator ImageValidator) *models.Product {
	image := tryRole(container, site.Selectors, registry.RoleImage)
	if image == nil {
		return nil
	}
	rawImage := firstAttr(image, imageAttrs...)
	if rawImage == "" {
		return nil
	}
	imageURL := ResolveURL(site.BaseURL, rawImage)
	if !validator.IsLikelyValidImage(imageURL) {
		return nil
	}

	var rawTitle string
	if el := tryRole(container, site.Selectors, registry.RoleTitle); el != nil {
		rawTitle = strings.TrimSpace(el.Text())
	}
	name := parser.CleanProductName(rawTitle)

	var rawPrice string
	if el := tryRole(container, site.Selectors, registry.RolePrice); el != nil {
		rawPrice = strings.TrimSpace(el.Text())
	}

	productURL := "#"
	if el := tryRole(container, site.Selectors, registry.RoleLink); el != nil {
		if href, ok := el.Attr("href"); ok && href != "" {
			productURL = ResolveURL(site.BaseURL, href)
		}
	}

	product := &models.Product{
		Name:         name,
		Brand:        site.Brand,
		Price:        parser.StandardizePrice(rawPrice),
		ImageURL:     imageURL,
		ProductURL:   productURL,
		Description:  name + " from " + site.Brand,
		Availability: "Available",
	}
	if numeric, ok := parser.ExtractPriceNumeric(rawPrice); ok {
		product.PriceNumeric = &numeric
	}
	return product
}

// tryRole walks every candidate's locator for the role in declared
// order, then the global fallbacks. First match wins.
func tryRole(container *goquery.Selection, candidates []registry.SelectorSet, role registry.Role) *goquery.Selection {
	for _, candidate := range candidates {
		locator := candidate.Locator(role)
		if locator == "" {
			continue
		}
		if found := container.Find(locator).First(); found.Length() > 0 {
			return found
		}
	}
	for _, locator := range registry.FallbackSelectors[role] {
		if found := container.Find(locator).First(); found.Length() > 0 {
			return found
		}
	}
	return nil
}

func firstAttr(sel *goquery.Selection, attrs ...string) string {
	for _, attr := range attrs {
		if value, ok := sel.Attr(attr); ok && value != "" {
			return value
		}
	}
	return ""
}
