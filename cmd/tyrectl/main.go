// cmd/tyrectl/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/ogtriplek/tyre-storefront/internal/bootstrap"
	"github.com/ogtriplek/tyre-storefront/internal/config"
	"github.com/ogtriplek/tyre-storefront/internal/domain/catalog"
	"github.com/ogtriplek/tyre-storefront/internal/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// loadConfig is swapped in tests
var loadConfig = config.Load

// cli holds the root flags shared by every command
type cli struct {
	source  string
	file    string
	verbose bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "tyrectl",
		Short: "Inspect and seed the tyre storefront catalog",
		Long: `tyrectl reads the same catalog sources as the API server.

Commands:
  vehicles  - List vehicles, optionally matching a search
  products  - Show the product list a shopper would see for a vehicle
  seed      - Write a catalog feed into postgres or dynamodb`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&c.source, "source", "", "Catalog source: embedded, file, postgres or dynamodb (default: CATALOG_SOURCE)")
	root.PersistentFlags().StringVar(&c.file, "file", "", "Catalog YAML file; implies --source file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(newVehiclesCmd(c), newProductsCmd(c), newSeedCmd(c))
	return root
}

func (c *cli) config() (*config.Config, *logrus.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	if c.file != "" {
		cfg.Catalog.File = c.file
		cfg.Catalog.Source = config.CatalogFile
	}
	if c.source != "" {
		cfg.Catalog.Source = strings.ToLower(c.source)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log := logger.New(cfg.Logging)
	if !c.verbose {
		log.SetLevel(logrus.WarnLevel)
	}
	return cfg, log, nil
}

// catalog loads the snapshot and returns a func releasing its connections
func (c *cli) catalog(ctx context.Context) (*catalog.Snapshot, func(), error) {
	cfg, log, err := c.config()
	if err != nil {
		return nil, nil, err
	}

	snap, res, err := bootstrap.LoadCatalog(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return snap, func() { _ = res.Close() }, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
