package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-portfolio/framework/container"
	"github.com/km-arc/go-portfolio/projects"
)

func newProjectsCmd(c *cli) *cobra.Command {
	var q projects.Query
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List the project grid as the page would show it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pager, err := container.Resolve[*projects.Pager](c.app.Container, "projects")
			if err != nil {
				return err
			}
			page := pager.View(q)

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SLUG\tTITLE\tCATEGORIES\tTECH")
			for _, p := range page.Projects {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Slug, p.Title,
					strings.Join(p.Categories, ","), strings.Join(p.Tech, ","))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "\n%d of %d shown", len(page.Projects), page.Total)
			if page.HasMore {
				fmt.Fprintf(out, "; --visible %d for more", page.Next)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Filter, "filter", "all", "category filter")
	cmd.Flags().StringVar(&q.Search, "search", "", "search title, description and tech")
	cmd.Flags().IntVar(&q.Visible, "visible", 0, "number of projects to show (default PROJECTS_VISIBLE)")
	return cmd
}
