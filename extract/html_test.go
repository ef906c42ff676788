package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/adeelraza/go-scrape-fashion/registry"
)

func testSite() *registry.Site {
	return &registry.Site{
		Brand:     "Gul Ahmed",
		BaseURL:   "https://www.gulahmedshop.com",
		SearchURL: "https://www.gulahmedshop.com/advancesearch",
		Kind:      registry.KindHTML,
		Selectors: []registry.SelectorSet{
			{
				Container: ".card",
				Image:     ".card-media img",
				Title:     ".card-title",
				Price:     ".card-price",
				Link:      "a.card-link",
			},
			{
				Container: ".tile",
				Image:     ".tile-media img",
				Title:     ".tile-name",
				Price:     ".tile-cost",
				Link:      "a.tile-link",
			},
		},
	}
}

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing fixture html: %v", err)
	}
	return doc
}

func TestFromDocument(t *testing.T) {
	html := `<html><body>
		<div class="card">
			<div class="card-media"><img src="/cdn/kurta-front.jpg"></div>
			<h3 class="card-title">Gul Ahmed - Embroidered Lawn Kurta</h3>
			<span class="card-price">PKR 4,999</span>
			<a class="card-link" href="/products/embroidered-lawn-kurta">View</a>
		</div>
		<div class="card">
			<div class="card-media"><img src="//cdn.shop.example/suit.png"></div>
			<h3 class="card-title">Printed Cotton Suit</h3>
			<span class="card-price">Rs. 12,500</span>
			<a class="card-link" href="https://www.gulahmedshop.com/products/printed-cotton-suit">View</a>
		</div>
	</body></html>`

	validator := &stubValidator{allow: true}
	products := FromDocument(docFromHTML(t, html), testSite(), 10, validator)
	if len(products) != 2 {
		t.Fatalf("extracted %d products, want 2", len(products))
	}

	first := products[0]
	if first.Name != "Embroidered Lawn Kurta" {
		t.Errorf("name = %q, want brand prefix stripped", first.Name)
	}
	if first.Brand != "Gul Ahmed" {
		t.Errorf("brand = %q, want Gul Ahmed", first.Brand)
	}
	if first.Price != "PKR 4,999" {
		t.Errorf("price = %q, want PKR 4,999", first.Price)
	}
	if first.PriceNumeric == nil || *first.PriceNumeric != 4999 {
		t.Errorf("price numeric = %v, want 4999", first.PriceNumeric)
	}
	if first.ImageURL != "https://www.gulahmedshop.com/cdn/kurta-front.jpg" {
		t.Errorf("image url = %q, want it resolved against the base", first.ImageURL)
	}
	if first.ProductURL != "https://www.gulahmedshop.com/products/embroidered-lawn-kurta" {
		t.Errorf("product url = %q, want it resolved against the base", first.ProductURL)
	}
	if first.Description != "Embroidered Lawn Kurta from Gul Ahmed" {
		t.Errorf("description = %q", first.Description)
	}
	if first.Availability != "Available" {
		t.Errorf("availability = %q, want Available", first.Availability)
	}

	second := products[1]
	if second.ImageURL != "https://cdn.shop.example/suit.png" {
		t.Errorf("protocol-relative image = %q, want https scheme added", second.ImageURL)
	}
	if second.Price != "PKR 12,500" {
		t.Errorf("price = %q, want PKR 12,500", second.Price)
	}
}

func TestFromDocumentSecondCandidateWins(t *testing.T) {
	// No .card containers on the page; the second selector candidate
	// must carry the whole extraction.
	html := `<html><body>
		<div class="tile">
			<div class="tile-media"><img src="/cdn/silk-dupatta.jpg"></div>
			<h4 class="tile-name">Silk Dupatta</h4>
			<span class="tile-cost">PKR 3,200</span>
			<a class="tile-link" href="/products/silk-dupatta">View</a>
		</div>
	</body></html>`

	products := FromDocument(docFromHTML(t, html), testSite(), 10, &stubValidator{allow: true})
	if len(products) != 1 {
		t.Fatalf("extracted %d products, want 1", len(products))
	}
	if products[0].Name != "Silk Dupatta" {
		t.Errorf("name = %q, want Silk Dupatta", products[0].Name)
	}
	if products[0].ProductURL != "https://www.gulahmedshop.com/products/silk-dupatta" {
		t.Errorf("product url = %q", products[0].ProductURL)
	}
}

func TestFromDocumentFallbackSelectors(t *testing.T) {
	// The container matches but none of the per-site role locators do;
	// extraction must fall through to the global fallbacks.
	html := `<html><body>
		<div class="card">
			<div class="product"><img src="/cdn/shawl.jpg"></div>
			<h3>Woolen Shawl</h3>
			<span class="price">PKR 8,000</span>
			<a href="/products/woolen-shawl">View</a>
		</div>
	</body></html>`

	products := FromDocument(docFromHTML(t, html), testSite(), 10, &stubValidator{allow: true})
	if len(products) != 1 {
		t.Fatalf("extracted %d products, want 1", len(products))
	}
	product := products[0]
	if product.Name != "Woolen Shawl" {
		t.Errorf("name = %q, want Woolen Shawl via fallback title locator", product.Name)
	}
	if product.Price != "PKR 8,000" {
		t.Errorf("price = %q, want PKR 8,000 via fallback price locator", product.Price)
	}
	if product.ProductURL != "https://www.gulahmedshop.com/products/woolen-shawl" {
		t.Errorf("product url = %q, want link via fallback anchor locator", product.ProductURL)
	}
}

func TestFromDocumentSkipsContainersWithoutImage(t *testing.T) {
	html := `<html><body>
		<div class="card">
			<h3 class="card-title">No Image Item</h3>
			<span class="card-price">PKR 1,000</span>
		</div>
		<div class="card">
			<div class="card-media"><img src="/cdn/kept.jpg"></div>
			<h3 class="card-title">Kept Item</h3>
			<span class="card-price">PKR 2,000</span>
		</div>
	</body></html>`

	products := FromDocument(docFromHTML(t, html), testSite(), 10, &stubValidator{allow: true})
	if len(products) != 1 {
		t.Fatalf("extracted %d products, want 1", len(products))
	}
	if products[0].Name != "Kept Item" {
		t.Errorf("kept product = %q, want Kept Item", products[0].Name)
	}
}

func TestFromDocumentRejectedImageDropsProduct(t *testing.T) {
	html := `<html><body>
		<div class="card">
			<div class="card-media"><img src="/cdn/bad.jpg"></div>
			<h3 class="card-title">Rejected Item</h3>
		</div>
	</body></html>`

	validator := &stubValidator{allow: false}
	products := FromDocument(docFromHTML(t, html), testSite(), 10, validator)
	if len(products) != 0 {
		t.Fatalf("extracted %d products, want 0 when image validation fails", len(products))
	}
	if len(validator.seen) != 1 || validator.seen[0] != "https://www.gulahmedshop.com/cdn/bad.jpg" {
		t.Fatalf("validator saw %v, want the resolved image url", validator.seen)
	}
}

func TestFromDocumentMissingFieldsDegrade(t *testing.T) {
	html := `<html><body>
		<div class="card">
			<div class="card-media"><img src="/cdn/only-image.jpg"></div>
		</div>
	</body></html>`

	products := FromDocument(docFromHTML(t, html), testSite(), 10, &stubValidator{allow: true})
	if len(products) != 1 {
		t.Fatalf("extracted %d products, want 1", len(products))
	}
	product := products[0]
	if product.Name != "Fashion Item" {
		t.Errorf("name = %q, want the placeholder", product.Name)
	}
	if product.Price != "Price on request" {
		t.Errorf("price = %q, want the sentinel", product.Price)
	}
	if product.PriceNumeric != nil {
		t.Errorf("price numeric = %v, want nil", *product.PriceNumeric)
	}
	if product.ProductURL != "#" {
		t.Errorf("product url = %q, want #", product.ProductURL)
	}
}

func TestFromDocumentHonoursMax(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 5; i++ {
		b.WriteString(`<div class="card"><div class="card-media"><img src="/cdn/item.jpg"></div><h3 class="card-title">Item</h3></div>`)
	}
	b.WriteString("</body></html>")

	products := FromDocument(docFromHTML(t, b.String()), testSite(), 2, &stubValidator{allow: true})
	if len(products) != 2 {
		t.Fatalf("extracted %d products, want max of 2", len(products))
	}
}

func TestFromDocumentLazyLoadedImage(t *testing.T) {
	html := `<html><body>
		<div class="card">
			<div class="card-media"><img data-src="/cdn/lazy.webp"></div>
			<h3 class="card-title">Lazy Item</h3>
		</div>
	</body></html>`

	products := FromDocument(docFromHTML(t, html), testSite(), 10, &stubValidator{allow: true})
	if len(products) != 1 {
		t.Fatalf("extracted %d products, want 1", len(products))
	}
	if products[0].ImageURL != "https://www.gulahmedshop.com/cdn/lazy.webp" {
		t.Errorf("image url = %q, want the data-src value resolved", products[0].ImageURL)
	}
}

func TestFromDocumentNoContainersMatch(t *testing.T) {
	html := `<html><body><p>No results found.</p></body></html>`
	products := FromDocument(docFromHTML(t, html), testSite(), 10, &stubValidator{allow: true})
	if len(products) != 0 {
		t.Fatalf("extracted %d products, want 0", len(products))
	}
}
