package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-portfolio/framework/container"
	"github.com/km-arc/go-portfolio/framework/http/validation"
)

func newCheckCmd(c *cli) *cobra.Command {
	var (
		fields []string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "check --field name=value ...",
		Short: "Validate contact form values against the configured rules",
		Example: `  portfolio check --field email=ada@example.com --field phone=123
  portfolio check --json --field firstName=A`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make(map[string]string, len(fields))
			for _, f := range fields {
				name, value, ok := strings.Cut(f, "=")
				if !ok || name == "" {
					return fmt.Errorf("--field %q: want name=value", f)
				}
				values[name] = value
			}

			engine, err := container.Resolve[*validation.Engine](c.app.Container, "validation")
			if err != nil {
				return err
			}
			order, err := container.Resolve[[]string](c.app.Container, "validation.order")
			if err != nil {
				return err
			}
			res := engine.ValidateValues(values, order)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			} else {
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "FIELD\tSTATE\tMESSAGE")
				for _, st := range res.Fields {
					state := "valid"
					if !st.Valid {
						state = "invalid"
					} else if _, ok := engine.Rule(st.Name); !ok {
						state = "unruled"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\n", st.Name, state, st.Message)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			if !res.AllValid {
				return errInvalid
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "field to check as name=value (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}
