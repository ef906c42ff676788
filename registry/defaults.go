package registry

// Built-in storefront table. Shopify sites expose search/suggest.json
// and take the JSON path; the rest are scraped from their rendered
// search pages via the selector candidates below.

// FallbackSelectors are the last-resort locators per role, tried after
// every site-specific candidate missed.
var FallbackSelectors = map[Role][]string{
	RoleImage: {
		"img[src*='product']",
		"img[alt*='product']",
		".product img",
		".item img",
		"img[data-src]",
	},
	RoleTitle: {
		".product-title",
		".product-name",
		".item-title",
		"h3",
		"h4",
		".title",
	},
	RolePrice: {
		".price",
		".cost",
		".amount",
		"[class*='price']",
		"[class*='cost']",
	},
	RoleLink: {
		"a[href*='product']",
		".product-link",
		"a",
	},
}

// PriceRange is one named, inclusive price band in PKR.
type PriceRange struct {
	Min   float64
	Max   float64
	Label string
}

// PriceRanges are the named bands accepted by the price filter.
var PriceRanges = map[string]PriceRange{
	"budget":    {Min: 0, Max: 5000, Label: "Under PKR 5,000"},
	"mid_range": {Min: 5000, Max: 15000, Label: "PKR 5,000 - 15,000"},
	"premium":   {Min: 15000, Max: 30000, Label: "PKR 15,000 - 30,000"},
	"luxury":    {Min: 30000, Max: 100000, Label: "Above PKR 30,000"},
}

// CategoryTerms maps shopping categories to search terms that work well
// across the registered storefronts.
var CategoryTerms = map[string][]string{
	"wedding": {"bridal", "wedding", "lehenga", "gharara", "sharara", "bride", "nikah", "walima", "heavy dupatta"},
	"party":   {"party wear", "fancy", "embroidered", "sequin", "evening", "function", "celebration", "gown"},
	"casual":  {"kurti", "casual", "cotton", "lawn", "everyday", "simple", "comfortable", "daily wear", "basic"},
	"formal":  {"formal", "office", "professional", "business", "work wear", "corporate", "elegant", "sophisticated"},
	"winter":  {"winter", "sweater", "cardigan", "jacket", "coat", "warm", "woolen", "fleece", "thermal"},
	"summer":  {"summer", "lawn", "cotton", "linen", "light", "breathable", "cool", "sleeveless", "shorts"},
}

// TermsForCategory returns the search terms for a category, nil when the
// category is unknown.
func TermsForCategory(category string) []string {
	terms, ok := CategoryTerms[category]
	if !ok {
		return nil
	}
	out := make([]string, len(terms))
	copy(out, terms)
	return out
}

// Default returns the built-in registry.
func Default() *Registry {
	sites := []*Site{
		{
			Brand:       "Khaadi",
			BaseURL:     "https://pk.khaadi.com",
			SearchURL:   "https://pk.khaadi.com/search/suggest.json",
			SearchParam: "q",
			Kind:        KindJSON,
			Description: "Contemporary Pakistani fashion brand",
		},
		{
			Brand:       "Nishat Linen",
			BaseURL:     "https://nishatlinen.com",
			SearchURL:   "https://nishatlinen.com/search/suggest.json",
			SearchParam: "q",
			Kind:        KindJSON,
			Description: "Premium Pakistani fashion and home textiles",
		},
		{
			Brand:       "Sapphire",
			BaseURL:     "https://pk.sapphireonline.pk",
			SearchURL:   "https://pk.sapphireonline.pk/search/suggest.json",
			SearchParam: "q",
			Kind:        KindJSON,
			Description: "Modern Pakistani fashion brand",
		},
		{
			Brand:       "Cross Stitch",
			BaseURL:     "https://www.crossstitch.pk",
			SearchURL:   "https://www.crossstitch.pk/search/suggest.json",
			SearchParam: "q",
			Kind:        KindJSON,
			Description: "Contemporary Pakistani fashion",
		},
		{
			Brand:       "Gul Ahmed",
			BaseURL:     "https://www.gulahmedshop.com",
			SearchURL:   "https://www.gulahmedshop.com/advancesearch",
			SearchParam: "search",
			Kind:        KindHTML,
			Description: "Leading textile and fashion house",
			Selectors: []SelectorSet{
				{
					Container: ".item.product.product-item",
					Image:     ".product-image-container img",
					Title:     ".product-item-link",
					Price:     ".price-box .price",
					Link:      ".product-item-link",
				},
				{
					Container: ".product-item",
					Image:     ".product-image img",
					Title:     ".product-name",
					Price:     ".price",
					Link:      ".product-item a",
				},
			},
		},
		{
			Brand:       "Sana Safinaz",
			BaseURL:     "https://sanasafinaz.com",
			SearchURL:   "https://sanasafinaz.com/search",
			SearchParam: "q",
			Kind:        KindHTML,
			Description: "High-end Pakistani designer wear",
			Selectors: []SelectorSet{
				{
					Container: ".grid-product__content",
					Image:     ".grid-product__image img",
					Title:     ".grid-product__title",
					Price:     ".grid-product__price",
					Link:      ".grid-product__link",
				},
				{
					Container: ".product-card",
					Image:     ".product-card__image img",
					Title:     ".product-card__info h3",
					Price:     ".product-card__price",
					Link:      ".product-card a",
				},
			},
		},
		{
			Brand:       "Maria B",
			BaseURL:     "https://www.mariab.pk",
			SearchURL:   "https://www.mariab.pk/search",
			SearchParam: "q",
			ExtraParams: map[string]string{"type": "product,article,page,collection", "options[prefix]": "last"},
			Kind:        KindHTML,
			Description: "Designer Pakistani clothing",
			Selectors: []SelectorSet{
				{
					Container: ".product-item",
					Image:     ".product-item__image img",
					Title:     ".product-item__title",
					Price:     ".product-item__price",
					Link:      ".product-item__image-wrapper a",
				},
				{
					Container: ".grid__item",
					Image:     ".product-form__cart-submit img",
					Title:     ".product-single__title",
					Price:     ".product-single__prices",
					Link:      "a",
				},
			},
		},
		{
			Brand:       "Alkaram Studio",
			BaseURL:     "https://www.alkaramstudio.com",
			SearchURL:   "https://www.alkaramstudio.com/search",
			SearchParam: "q",
			Kind:        KindHTML,
			Description: "Fashion and lifestyle brand",
			Selectors: []SelectorSet{
				{
					Container: ".product-item",
					Image:     ".product-item__image-wrapper img",
					Title:     ".product-item__title",
					Price:     ".price-item.price-item--regular",
					Link:      ".product-item__title",
				},
				{
					Container: ".grid-product",
					Image:     ".grid-product__image img",
					Title:     ".grid-product__title",
					Price:     ".grid-product__price",
					Link:      ".grid-product__link",
				},
			},
		},
		{
			Brand:       "Bonanza Satrangi",
			BaseURL:     "https://bonanzasatrangi.com",
			SearchURL:   "https://bonanzasatrangi.com/search",
			SearchParam: "q",
			Kind:        KindHTML,
			Description: "Colorful Pakistani fashion collection",
			Selectors: []SelectorSet{
				{
					Container: ".product-item",
					Image:     ".product-item__image img",
					Title:     ".product-item__title",
					Price:     ".product-item__price",
					Link:      ".product-item a",
				},
			},
		},
		{
			Brand:       "Zara Shahjahan",
			BaseURL:     "https://zarashahjahan.com",
			SearchURL:   "https://zarashahjahan.com/search",
			SearchParam: "q",
			Kind:        KindHTML,
			Description: "Luxury Pakistani designer brand",
			Selectors: []SelectorSet{
				{
					Container: ".product-item",
					Image:     ".product-item__image img",
					Title:     ".product-item__title",
					Price:     ".product-item__price",
					Link:      ".product-item a",
				},
			},
		},
	}

	// Brands known to answer search requests reliably, in fan-out order.
	priority := []string{"Nishat Linen", "Khaadi", "Gul Ahmed", "Alkaram Studio", "Sapphire"}

	return New(sites, priority)
}
