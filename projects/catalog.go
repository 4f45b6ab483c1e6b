// Package projects serves the portfolio's project catalog: filtering by
// category, free-text search and the paged "load more" view.
package projects

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by Catalog.Get for an unknown slug.
var ErrNotFound = errors.New("projects: not found")

// Project is one card in the grid.
type Project struct {
	Slug        string   `yaml:"slug" json:"slug"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Categories  []string `yaml:"categories" json:"categories"`
	Tech        []string `yaml:"tech" json:"tech"`
	Image       string   `yaml:"image,omitempty" json:"image,omitempty"`
	URL         string   `yaml:"url,omitempty" json:"url,omitempty"`
	Repo        string   `yaml:"repo,omitempty" json:"repo,omitempty"`
}

// InCategory reports whether the project is tagged with category.
// "all" and "" match every project.
func (p Project) InCategory(category string) bool {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, "all") {
		return true
	}
	for _, c := range p.Categories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// Matches reports whether term occurs in the title, description or any
// technology, ignoring case. An empty term matches.
func (p Project) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, t := range p.Tech {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

type catalogFile struct {
	Projects []Project `yaml:"projects"`
}

// Parse decodes a YAML catalog. Slugs and titles are required and slugs
// must be unique.
func Parse(data []byte) ([]Project, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("projects: parse: %w", err)
	}
	seen := make(map[string]bool, len(f.Projects))
	for i, p := range f.Projects {
		if p.Slug == "" || p.Title == "" {
			return nil, fmt.Errorf("projects: entry %d: slug and title are required", i)
		}
		if seen[p.Slug] {
			return nil, fmt.Errorf("projects: duplicate slug %q", p.Slug)
		}
		seen[p.Slug] = true
	}
	return f.Projects, nil
}

// ── Catalog ──────────────────────────────────────────────────────────────────

// Catalog is the current project list. Reads are safe during Replace.
type Catalog struct {
	mu       sync.RWMutex
	projects []Project
}

// NewCatalog returns a catalog holding projects in display order.
func NewCatalog(projects []Project) *Catalog {
	c := &Catalog{}
	c.Replace(projects)
	return c
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	ps, err := read(path)
	if err != nil {
		return nil, err
	}
	return NewCatalog(ps), nil
}

// Reload re-reads path and swaps the catalog contents. On error the current
// contents are kept.
func (c *Catalog) Reload(path string) error {
	ps, err := read(path)
	if err != nil {
		return err
	}
	c.Replace(ps)
	return nil
}

func read(path string) ([]Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("projects: %w", err)
	}
	return Parse(data)
}

// Replace swaps the catalog contents.
func (c *Catalog) Replace(projects []Project) {
	cp := append([]Project(nil), projects...)
	c.mu.Lock()
	c.projects = cp
	c.mu.Unlock()
}

// All returns a copy of every project in display order.
func (c *Catalog) All() []Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Project(nil), c.projects...)
}

// Len returns the number of projects.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.projects)
}

// Get returns the project with slug.
func (c *Catalog) Get(slug string) (Project, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.projects {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Project{}, fmt.Errorf("%w: %q", ErrNotFound, slug)
}

// Categories returns every category in first-seen order.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []string
	seen := map[string]bool{}
	for _, p := range c.projects {
		for _, cat := range p.Categories {
			k := strings.ToLower(cat)
			if !seen[k] {
				seen[k] = true
				out = append(out, cat)
			}
		}
	}
	return out
}

// Filter returns the projects in category, in display order.
func (c *Catalog) Filter(category string) []Project {
	return c.match(Query{Filter: category})
}

// Search returns the projects matching term, in display order.
func (c *Catalog) Search(term string) []Project {
	return c.match(Query{Search: term})
}

func (c *Catalog) match(q Query) []Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Project
	for _, p := range c.projects {
		if p.InCategory(q.Filter) && p.Matches(q.Search) {
			out = append(out, p)
		}
	}
	return out
}
