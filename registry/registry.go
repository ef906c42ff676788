// Package registry holds the curated storefront descriptors. Selector
// sets are data, not code: sites can be reloaded from JSON when a
// storefront changes its markup.
package registry

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"sort"
)

// ResponseKind tells the scraper how a site answers search requests.
type ResponseKind string

const (
	// KindHTML marks sites scraped from rendered search result pages.
	KindHTML ResponseKind = "html"
	// KindJSON marks sites with structured search-suggestion endpoints.
	KindJSON ResponseKind = "json"
)

// Role names one extractable field within a product container.
type Role string

const (
	RoleContainer Role = "container"
	RoleImage     Role = "image"
	RoleTitle     Role = "title"
	RolePrice     Role = "price"
	RoleLink      Role = "link"
)

// SelectorSet maps roles to CSS locators for one page layout. Container
// is required; empty roles fall through to the global fallbacks.
type SelectorSet struct {
	Container string `json:"container"`
	Image     string `json:"image,omitempty"`
	Title     string `json:"title,omitempty"`
	Price     string `json:"price,omitempty"`
	Link      string `json:"link,omitempty"`
}

// Locator returns the locator for a role, empty when unset.
func (s SelectorSet) Locator(role Role) string {
	switch role {
	case RoleContainer:
		return s.Container
	case RoleImage:
		return s.Image
	case RoleTitle:
		return s.Title
	case RolePrice:
		return s.Price
	case RoleLink:
		return s.Link
	}
	return ""
}

// Site describes one storefront: where to search and how to read the
// response. Instances are immutable after load and safe to share.
type Site struct {
	Brand       string            `json:"brand"`
	BaseURL     string            `json:"base_url"`
	SearchURL   string            `json:"search_url"`
	SearchParam string            `json:"search_param,omitempty"` // empty means the term is path-appended
	ExtraParams map[string]string `json:"extra_params,omitempty"`
	Kind        ResponseKind      `json:"kind"`
	Selectors   []SelectorSet     `json:"selectors,omitempty"`
	Description string            `json:"description,omitempty"`
}

// Registry is the brand-keyed site table plus the priority-ordered
// subset the orchestrator fans out over.
type Registry struct {
	sites    map[string]*Site
	priority []string
}

type registryFile struct {
	Sites    []*Site  `json:"sites"`
	Priority []string `json:"priority"`
}

// New builds a registry from explicit sites and a priority order.
func New(sites []*Site, priority []string) *Registry {
	byBrand := make(map[string]*Site, len(sites))
	for _, site := range sites {
		byBrand[site.Brand] = site
	}
	return &Registry{sites: byBrand, priority: priority}
}

// Load parses a JSON registry document.
func Load(r io.Reader) (*Registry, error) {
	var doc registryFile
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	reg := New(doc.Sites, doc.Priority)
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

// LoadFile reads a registry override from disk.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open registry file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Site returns the descriptor for a brand.
func (r *Registry) Site(brand string) (*Site, bool) {
	site, ok := r.sites[brand]
	return site, ok
}

// Brands lists all registered brand names in sorted order.
func (r *Registry) Brands() []string {
	names := make([]string, 0, len(r.sites))
	for name := range r.sites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PriorityBrands returns the ordered subset used for multi-brand queries.
func (r *Registry) PriorityBrands() []string {
	out := make([]string, len(r.priority))
	copy(out, r.priority)
	return out
}

// Len reports the number of registered sites.
func (r *Registry) Len() int {
	return len(r.sites)
}

// Validate checks the registry invariants: usable base URLs, and either
// a JSON search endpoint or at least one selector set with a container.
func (r *Registry) Validate() error {
	if len(r.sites) == 0 {
		return fmt.Errorf("registry has no sites")
	}
	for name, site := range r.sites {
		if site.Brand == "" || site.Brand != name {
			return fmt.Errorf("site %q: brand name mismatch", name)
		}
		parsed, err := url.Parse(site.BaseURL)
		if err != nil || parsed.Host == "" {
			return fmt.Errorf("site %q: base URL must include a host", name)
		}
		if site.SearchURL == "" {
			return fmt.Errorf("site %q: search URL cannot be empty", name)
		}
		switch site.Kind {
		case KindJSON:
		case KindHTML:
			if len(site.Selectors) == 0 {
				return fmt.Errorf("site %q: html sites need at least one selector set", name)
			}
			for i, set := range site.Selectors {
				if set.Container == "" {
					return fmt.Errorf("site %q: selector set %d has no container locator", name, i)
				}
			}
		default:
			return fmt.Errorf("site %q: unknown response kind %q", name, site.Kind)
		}
	}
	for _, name := range r.priority {
		if _, ok := r.sites[name]; !ok {
			return fmt.Errorf("priority brand %q is not registered", name)
		}
	}
	return nil
}
