package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ogtriplek/tyre-storefront/internal/domain/vehicle"
	"github.com/spf13/cobra"
)

func newVehiclesCmd(c *cli) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "vehicles",
		Short: "List catalog vehicles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, done, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			q := strings.ToLower(strings.TrimSpace(query))
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tYEAR\tTYRE SIZE")

			shown := 0
			for _, v := range snap.Vehicles() {
				if q != "" && !vehicle.Matches(&v, q) {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.ID, v.Title, v.YearString(), v.TireSize)
				shown++
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if shown == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no vehicles match %q\n", query)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search by year, make, model or title")
	return cmd
}
