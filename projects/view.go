package projects

// Paging defaults for the grid.
const (
	DefaultVisible = 6
	DefaultPerLoad = 3
)

// Query selects a page of the grid. Visible <= 0 means DefaultVisible.
type Query struct {
	Filter  string `json:"filter"`
	Search  string `json:"search"`
	Visible int    `json:"visible"`
}

// Page is what the grid shows for a Query.
type Page struct {
	Projects []Project `json:"projects"`
	Total    int       `json:"total"`    // matches for the filter and search
	HasMore  bool      `json:"has_more"` // drives the load-more button
	Next     int       `json:"next"`     // Visible for the next load, 0 when exhausted
}

// Pager applies the paging sizes to a catalog.
type Pager struct {
	Catalog *Catalog
	Visible int
	PerLoad int
}

// NewPager returns a Pager, replacing non-positive sizes with the defaults.
func NewPager(c *Catalog, visible, perLoad int) *Pager {
	if visible <= 0 {
		visible = DefaultVisible
	}
	if perLoad <= 0 {
		perLoad = DefaultPerLoad
	}
	return &Pager{Catalog: c, Visible: visible, PerLoad: perLoad}
}

// View returns the first q.Visible projects matching the filter and search.
// Load more only pages through matches: projects hidden by the filter or
// search never appear, however far the visitor pages.
func (p *Pager) View(q Query) Page {
	if q.Visible <= 0 {
		q.Visible = p.Visible
	}
	matches := p.Catalog.match(q)

	page := Page{Total: len(matches)}
	n := min(q.Visible, len(matches))
	page.Projects = matches[:n:n]
	if n < len(matches) {
		page.HasMore = true
		page.Next = min(n+p.PerLoad, len(matches))
	}
	if page.Projects == nil {
		page.Projects = []Project{}
	}
	return page
}
