package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/ogtriplek/tyre-storefront/internal/domain/filter"
	"github.com/ogtriplek/tyre-storefront/internal/domain/storefront"
	"github.com/spf13/cobra"
)

type productsFlags struct {
	vehicle string
	mode    string
	brand   string
	price   string
	feature string
}

func (f productsFlags) selections() filter.Selections {
	var sel filter.Selections
	if f.brand != "" {
		sel.Brand = &f.brand
	}
	if f.price != "" {
		sel.PriceRange = &f.price
	}
	if f.feature != "" {
		sel.Feature = &f.feature
	}
	return sel
}

func newProductsCmd(c *cli) *cobra.Command {
	var f productsFlags

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Show the product list for a vehicle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := filter.ParseMode(f.mode)
			if err != nil {
				return err
			}

			snap, done, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			s := storefront.NewSession(snap)
			defer s.Close()

			if !s.SelectVehicle(f.vehicle) {
				return fmt.Errorf("unknown vehicle %q", f.vehicle)
			}
			s.SetMode(mode)
			s.SetSelections(f.selections())

			return printView(cmd, s.View())
		},
	}

	cmd.Flags().StringVar(&f.vehicle, "vehicle", "", "Vehicle id (required)")
	cmd.Flags().StringVar(&f.mode, "mode", string(filter.DefaultMode), "Category tab: all, popular, price_low_high or price_high_low")
	cmd.Flags().StringVar(&f.brand, "brand", "", "Only this brand")
	cmd.Flags().StringVar(&f.price, "price", "", "Only this price range key, e.g. 2000-4000")
	cmd.Flags().StringVar(&f.feature, "feature", "", "Only tyres with this feature")
	_ = cmd.MarkFlagRequired("vehicle")

	return cmd
}

func printView(cmd *cobra.Command, view storefront.View) error {
	out := cmd.OutOrStdout()

	if view.State != storefront.StateResults {
		fmt.Fprintln(out, view.Message)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBRAND\tNAME\tPRICE\tPOPULAR")
	for _, p := range view.Products {
		popular := ""
		if p.IsPopular {
			popular = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s%d\t%s\n", p.ID, p.Brand, p.Name, p.Currency, p.Price, popular)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\ncounts: all=%d popular=%d price_low_high=%d price_high_low=%d\n",
		view.Counts.All, view.Counts.Popular, view.Counts.PriceLowHigh, view.Counts.PriceHighLow)
	for _, b := range view.PriceBuckets {
		fmt.Fprintf(out, "price %s: %d\n", b.Label, b.Count)
	}
	return nil
}
