package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/hookbus/internal/event/pattern"
)

func newEventsCmd(root *rootOptions) *cobra.Command {
	var match string

	cmd := &cobra.Command{
		Use:     "events [scripts...]",
		Short:   "List registered events and their listener counts",
		Example: `  hookbus events hooks.lua --match 'order.*'`,
		RunE: func(cmd *cobra.Command, scripts []string) error {
			if match != "" {
				if err := pattern.Validate(match); err != nil {
					return fmt.Errorf("%w: %q", err, match)
				}
			}

			s, err := root.openSession(cmd.Context(), scripts)
			if err != nil {
				return err
			}
			defer s.Close()

			w := tabwriter.NewWriter(root.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "EVENT\tLISTENERS")
			names := s.dispatcher.RegisteredEvents()
			if match != "" {
				names = pattern.Filter(match, names)
			}
			for _, name := range names {
				listeners, _ := s.dispatcher.Listeners(name)
				fmt.Fprintf(w, "%s\t%d\n", name, len(listeners))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&match, "match", "m", "", "only list events matching the pattern (* and ** wildcards)")
	return cmd
}
