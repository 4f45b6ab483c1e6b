package projects_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/km-arc/go-portfolio/projects"
)

func numbered(n int, category func(i int) string) *projects.Catalog {
	ps := make([]projects.Project, n)
	for i := range ps {
		ps[i] = projects.Project{
			Slug:       fmt.Sprintf("p%d", i+1),
			Title:      fmt.Sprintf("Project %d", i+1),
			Categories: []string{category(i)},
		}
	}
	return projects.NewCatalog(ps)
}

func TestPager_LoadMore(t *testing.T) {
	pager := projects.NewPager(numbered(10, func(int) string { return "web" }), 6, 3)

	page := pager.View(projects.Query{})
	if len(page.Projects) != 6 || page.Total != 10 || !page.HasMore || page.Next != 9 {
		t.Fatalf("initial page: %d shown, %+v", len(page.Projects), page)
	}

	page = pager.View(projects.Query{Visible: page.Next})
	if len(page.Projects) != 9 || !page.HasMore || page.Next != 10 {
		t.Fatalf("second page: %d shown, has_more=%v next=%d", len(page.Projects), page.HasMore, page.Next)
	}

	page = pager.View(projects.Query{Visible: page.Next})
	if len(page.Projects) != 10 || page.HasMore || page.Next != 0 {
		t.Fatalf("last page: %d shown, has_more=%v next=%d", len(page.Projects), page.HasMore, page.Next)
	}
}

func TestPager_FilteredProjectsStayHidden(t *testing.T) {
	// odd projects are mobile, even are web
	c := numbered(10, func(i int) string {
		if i%2 == 0 {
			return "web"
		}
		return "mobile"
	})
	pager := projects.NewPager(c, 2, 2)

	var shown []string
	q := projects.Query{Filter: "web"}
	for {
		page := pager.View(q)
		shown = slugs(page.Projects)
		if !page.HasMore {
			break
		}
		q.Visible = page.Next
	}

	want := []string{"p1", "p3", "p5", "p7", "p9"}
	if diff := cmp.Diff(want, shown); diff != "" {
		t.Errorf("load more revealed filtered projects (-want +got):\n%s", diff)
	}
}

func TestPager_EmptyResult(t *testing.T) {
	pager := projects.NewPager(numbered(3, func(int) string { return "web" }), 0, 0)

	page := pager.View(projects.Query{Search: "nothing"})
	if page.Projects == nil || len(page.Projects) != 0 || page.HasMore || page.Total != 0 {
		t.Errorf("empty page: %+v", page)
	}
	if pager.Visible != projects.DefaultVisible || pager.PerLoad != projects.DefaultPerLoad {
		t.Errorf("defaults not applied: %+v", pager)
	}
}

func TestPager_FewerThanVisible(t *testing.T) {
	pager := projects.NewPager(numbered(4, func(int) string { return "web" }), 6, 3)
	page := pager.View(projects.Query{})
	if len(page.Projects) != 4 || page.HasMore {
		t.Errorf("got %d projects, has_more=%v", len(page.Projects), page.HasMore)
	}
}
