package main

import (
	"fmt"
	"strings"

	"github.com/ogtriplek/tyre-storefront/internal/bootstrap"
	"github.com/ogtriplek/tyre-storefront/internal/config"
	"github.com/ogtriplek/tyre-storefront/internal/domain/catalog"
	"github.com/spf13/cobra"
)

func newSeedCmd(c *cli) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the catalog feed into postgres or dynamodb",
		Long: `Seed upserts every vehicle and product of the feed into the target store,
creating tables when needed. The built-in demo feed is used unless --file is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target = strings.ToLower(target)
			if target != config.CatalogPostgres && target != config.CatalogDynamoDB {
				return fmt.Errorf("cannot seed %q: choose %s or %s", target, config.CatalogPostgres, config.CatalogDynamoDB)
			}

			feed, err := c.feed()
			if err != nil {
				return err
			}

			// Settings for the target are read from the environment regardless of the read source
			c.file = ""
			c.source = target
			cfg, log, err := c.config()
			if err != nil {
				return err
			}

			if err := bootstrap.Seed(cmd.Context(), cfg, log, target, feed); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Seeded %d vehicles and %d products into %s\n",
				len(feed.Vehicles), len(feed.Products), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Where to write: postgres or dynamodb (required)")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func (c *cli) feed() (*catalog.Feed, error) {
	if c.file == "" {
		return catalog.DefaultFeed()
	}
	return catalog.ReadFeedFile(c.file)
}
