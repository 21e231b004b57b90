package bank

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"sync"
)

//go:embed banks/*.json
var embeddedBanks embed.FS

// DefaultDomain is the bank used when an unknown domain is requested.
const DefaultDomain = "Computer / IT"

// AptitudeDomain is the only domain with sub-category filtering.
const AptitudeDomain = "Aptitude / General"

// DefaultCategory is assumed for aptitude questions that carry no
// explicit category.
const DefaultCategory = "Behavioral"

// document is the on-disk shape of one bank file.
type document struct {
	Domain    string     `json:"domain"`
	Questions []Question `json:"questions"`
}

// Catalog is the read-only set of question banks keyed by domain.
type Catalog struct {
	banks map[string][]Question
}

// LoadFS reads every *.json bank document from fsys, validates each
// against the bank schema and the per-question invariant, and builds
// a catalog. Duplicate question IDs within a domain are rejected.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	entries, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("glob bank files: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no bank files found")
	}
	sort.Strings(entries)

	c := &Catalog{banks: make(map[string][]Question, len(entries))}
	for _, name := range entries {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read bank %s: %w", name, err)
		}
		if err := ValidateDocument(raw); err != nil {
			return nil, fmt.Errorf("bank %s: %w", name, err)
		}
		var doc document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode bank %s: %w", name, err)
		}
		if _, dup := c.banks[doc.Domain]; dup {
			return nil, fmt.Errorf("bank %s: duplicate domain %q", name, doc.Domain)
		}
		seen := make(map[int]bool, len(doc.Questions))
		for _, q := range doc.Questions {
			if err := q.Validate(); err != nil {
				return nil, fmt.Errorf("bank %s: %w", name, err)
			}
			if seen[q.ID] {
				return nil, fmt.Errorf("bank %s: duplicate question id %d", name, q.ID)
			}
			seen[q.ID] = true
		}
		c.banks[doc.Domain] = doc.Questions
	}

	if _, ok := c.banks[DefaultDomain]; !ok {
		return nil, fmt.Errorf("default domain %q missing from catalog", DefaultDomain)
	}
	return c, nil
}

// Load builds a catalog from the embedded bank files.
func Load() (*Catalog, error) {
	sub, err := fs.Sub(embeddedBanks, "banks")
	if err != nil {
		return nil, fmt.Errorf("embedded banks: %w", err)
	}
	return LoadFS(sub)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog, loaded once per process.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load()
	})
	return defaultCatalog, defaultErr
}

// Questions returns the bank for domain, falling back to the default
// domain's bank when the domain is unknown. The returned slice must
// be treated as read-only.
func (c *Catalog) Questions(domain string) []Question {
	if qs, ok := c.banks[domain]; ok {
		return qs
	}
	return c.banks[DefaultDomain]
}

// HasBank reports whether a dedicated bank exists for domain.
func (c *Catalog) HasBank(domain string) bool {
	_, ok := c.banks[domain]
	return ok
}

// BankDomains returns the domains that have a dedicated bank, sorted.
func (c *Catalog) BankDomains() []string {
	out := make([]string, 0, len(c.banks))
	for d := range c.banks {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
