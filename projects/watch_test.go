package projects_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/km-arc/go-portfolio/projects"
)

func TestWatch_Reloads(t *testing.T) {
	prev := projects.Debounce
	projects.Debounce = 20 * time.Millisecond
	t.Cleanup(func() { projects.Debounce = prev })

	path := filepath.Join(t.TempDir(), "projects.yaml")
	if err := os.WriteFile(path, []byte("projects:\n  - {slug: a, title: A}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := projects.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := projects.Watch(ctx, path, c, nil); err != nil {
		t.Fatal(err)
	}

	updated := "projects:\n  - {slug: a, title: A}\n  - {slug: b, title: B}\n"
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for c.Len() != 2 {
		if time.Now().After(deadline) {
			t.Fatalf("catalog not reloaded, still %d projects", c.Len())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	c := projects.NewCatalog(nil)
	err := projects.Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "projects.yaml"), c, nil)
	if err == nil {
		t.Error("expected error for a missing directory")
	}
}
