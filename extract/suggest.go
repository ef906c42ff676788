package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/adeelraza/go-scrape-fashion/models"
	"github.com/adeelraza/go-scrape-fashion/parser"
	"github.com/adeelraza/go-scrape-fashion/registry"
)

// Shopify search-suggestion payload. Only the product list is mapped;
// pages and collections in the same response are ignored.
type suggestPayload struct {
	Resources struct {
		Results struct {
			Products []suggestProduct `json:"products"`
		} `json:"results"`
	} `json:"resources"`
}

type suggestProduct struct {
	Title         string          `json:"title"`
	Price         flexString      `json:"price"`
	URL           string          `json:"url"`
	FeaturedImage *suggestImage   `json:"featured_image"`
	Image         json.RawMessage `json:"image"`
	Variants      []struct {
		FeaturedImage *suggestImage `json:"featured_image"`
	} `json:"variants"`
}

type suggestImage struct {
	URL string `json:"url"`
	Src string `json:"src"`
}

// flexString tolerates the price arriving as either a JSON string or a
// bare number, which varies between storefront themes.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(trimmed)
	return nil
}

// FromSuggestJSON maps a search-suggestion payload to product records.
// Field mapping and URL normalization are all that is needed here; the
// same image validation rule as the HTML path still applies.
func FromSuggestJSON(payload []byte, site *registry.Site, max int, validator ImageValidator) ([]*models.Product, error) {
	var doc suggestPayload
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode suggest payload: %w", err)
	}

	items := doc.Resources.Results.Products
	if len(items) > max {
		items = items[:max]
	}

	products := make([]*models.Product, 0, len(items))
	for _, item := range items {
		imageURL := ResolveURL(site.BaseURL, item.imageCandidate())
		if imageURL == "" || !validator.IsLikelyValidImage(imageURL) {
			continue
		}

		name := parser.CleanProductName(item.Title)
		rawPrice := string(item.Price)

		productURL := "#"
		if item.URL != "" {
			productURL = ResolveURL(site.BaseURL, item.URL)
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
		products = append(products, product)
	}
	return products, nil
}

// imageCandidate tries the known image locations in order:
// featured_image, the loosely-typed image field, then the variants.
func (p suggestProduct) imageCandidate() string {
	if p.FeaturedImage != nil {
		if u := p.FeaturedImage.pick(); u != "" {
			return u
		}
	}
	if len(p.Image) > 0 {
		var asString string
		if err := json.Unmarshal(p.Image, &asString); err == nil && asString != "" {
			return asString
		}
		var asObject suggestImage
		if err := json.Unmarshal(p.Image, &asObject); err == nil {
			if u := asObject.pick(); u != "" {
				return u
			}
		}
	}
	for _, variant := range p.Variants {
		if variant.FeaturedImage != nil {
			if u := variant.FeaturedImage.pick(); u != "" {
				return u
			}
		}
	}
	return ""
}

func (i suggestImage) pick() string {
	if i.URL != "" {
		return i.URL
	}
	return i.Src
}
