package registry

import (
	"strings"
	"testing"
)

func TestDefaultRegistryIsValid(t *testing.T) {
	reg := Default()
	if err := reg.Validate(); err != nil {
		t.Fatalf("built-in registry should validate, got: %v", err)
	}
	if reg.Len() != 10 {
		t.Fatalf("built-in registry has %d sites, want 10", reg.Len())
	}
	for _, brand := range reg.PriorityBrands() {
		if _, ok := reg.Site(brand); !ok {
			t.Fatalf("priority brand %q missing from site table", brand)
		}
	}
}

func TestLoad(t *testing.T) {
	doc := `{
		"sites": [
			{
				"brand": "Test Brand",
				"base_url": "https://shop.example.com",
				"search_url": "https://shop.example.com/search",
				"search_param": "q",
				"kind": "html",
				"selectors": [
					{"container": ".product", "title": ".name", "price": ".price"}
				]
			},
			{
				"brand": "Suggest Brand",
				"base_url": "https://json.example.com",
				"search_url": "https://json.example.com/search/suggest.json",
				"search_param": "q",
				"kind": "json"
			}
		],
		"priority": ["Suggest Brand"]
	}`

	reg, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("loaded %d sites, want 2", reg.Len())
	}

	site, ok := reg.Site("Test Brand")
	if !ok {
		t.Fatal("Test Brand not found after load")
	}
	if site.Kind != KindHTML {
		t.Fatalf("Test Brand kind = %q, want %q", site.Kind, KindHTML)
	}
	if got := site.Selectors[0].Locator(RoleTitle); got != ".name" {
		t.Fatalf("title locator = %q, want .name", got)
	}

	if got := reg.PriorityBrands(); len(got) != 1 || got[0] != "Suggest Brand" {
		t.Fatalf("priority brands = %v, want [Suggest Brand]", got)
	}
}

func TestValidateRejections(t *testing.T) {
	valid := func() *Site {
		return &Site{
			Brand:     "Brand",
			BaseURL:   "https://shop.example.com",
			SearchURL: "https://shop.example.com/search",
			Kind:      KindHTML,
			Selectors: []SelectorSet{{Container: ".product"}},
		}
	}

	tests := []struct {
		name   string
		mutate func(s *Site)
	}{
		{name: "missing base URL host", mutate: func(s *Site) { s.BaseURL = "not-a-url" }},
		{name: "empty search URL", mutate: func(s *Site) { s.SearchURL = "" }},
		{name: "html site without selectors", mutate: func(s *Site) { s.Selectors = nil }},
		{name: "selector set without container", mutate: func(s *Site) { s.Selectors = []SelectorSet{{Title: ".name"}} }},
		{name: "unknown response kind", mutate: func(s *Site) { s.Kind = "rss" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := valid()
			tt.mutate(site)
			reg := New([]*Site{site}, nil)
			if err := reg.Validate(); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}

	t.Run("unregistered priority brand", func(t *testing.T) {
		reg := New([]*Site{valid()}, []string{"Ghost Brand"})
		if err := reg.Validate(); err == nil {
			t.Fatal("expected validation error, got nil")
		}
	})

	t.Run("empty registry", func(t *testing.T) {
		if err := New(nil, nil).Validate(); err == nil {
			t.Fatal("expected validation error, got nil")
		}
	})
}

func TestSelectorSetLocator(t *testing.T) {
	set := SelectorSet{
		Container: ".product",
		Image:     "img",
		Title:     ".title",
		Price:     ".price",
		Link:      "a",
	}

	tests := []struct {
		role     Role
		expected string
	}{
		{role: RoleContainer, expected: ".product"},
		{role: RoleImage, expected: "img"},
		{role: RoleTitle, expected: ".title"},
		{role: RolePrice, expected: ".price"},
		{role: RoleLink, expected: "a"},
		{role: Role("unknown"), expected: ""},
	}

	for _, tt := range tests {
		if got := set.Locator(tt.role); got != tt.expected {
			t.Fatalf("Locator(%q) = %q, want %q", tt.role, got, tt.expected)
		}
	}
}

func TestTermsForCategory(t *testing.T) {
	terms := TermsForCategory("wedding")
	if len(terms) == 0 {
		t.Fatal("wedding category should have search terms")
	}
	if terms[0] != "bridal" {
		t.Fatalf("first wedding term = %q, want bridal", terms[0])
	}

	// Returned slice is a copy; mutating it must not touch the table.
	terms[0] = "mutated"
	if again := TermsForCategory("wedding"); again[0] != "bridal" {
		t.Fatal("TermsForCategory must return a copy")
	}

	if got := TermsForCategory("spelunking"); got != nil {
		t.Fatalf("unknown category should return nil, got %v", got)
	}
}

func TestBrandsSorted(t *testing.T) {
	brands := Default().Brands()
	for i := 1; i < len(brands); i++ {
		if brands[i-1] > brands[i] {
			t.Fatalf("brands not sorted: %q before %q", brands[i-1], brands[i])
		}
	}
}
