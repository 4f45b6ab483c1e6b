package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-portfolio/framework/app"
)

// errInvalid exits 1 without printing anything more.
var errInvalid = errors.New("invalid")

// cli holds the state shared by every command.
type cli struct {
	envFiles []string
	app      *app.Application
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Portfolio site server",
		Long:          "Serves the portfolio page, its contact form and project grid, and checks contact input offline.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.app = app.New(c.envFiles...)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.app == nil {
				return nil
			}
			return c.app.Close()
		},
	}
	root.PersistentFlags().StringSliceVar(&c.envFiles, "env", []string{".env"}, "env files to load")

	root.AddCommand(
		newServeCmd(c),
		newCheckCmd(c),
		newProjectsCmd(c),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, errInvalid):
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
