// Package models defines data structures shared by the scraping core.
package models

// Product is one normalized storefront listing. Instances are built once
// per successfully extracted container and never mutated afterwards.
type Product struct {
	Name         string   `json:"name"`
	Brand        string   `json:"brand"`
	Price        string   `json:"price"`
	PriceNumeric *float64 `json:"price_numeric,omitempty"`
	ImageURL     string   `json:"image_url"`
	ProductURL   string   `json:"product_url"`
	Description  string   `json:"description"`
	Category     string   `json:"category,omitempty"`
	Availability string   `json:"availability"`
}

// Stats is a diagnostic snapshot of gateway activity for one scraper
// instance. It has no bearing on correctness.
type Stats struct {
	TotalRequests  int      `json:"total_requests"`
	FailedRequests int      `json:"failed_requests"`
	SuccessRate    float64  `json:"success_rate"`
	FailedURLs     []string `json:"failed_urls"`
}
