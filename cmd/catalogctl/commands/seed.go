package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/iconplus/catalog/internal/adapters/config"
	"github.com/iconplus/catalog/internal/app"
)

const driverFlag = "driver"

var errVolatileStore = errors.New("memory store does not persist; seed mysql, postgres or mongo")

func newSeedCommand() *cobra.Command {
	flags := map[string]cobraflags.Flag{
		driverFlag: &cobraflags.StringFlag{
			Name:  driverFlag,
			Value: "",
			Usage: "Store driver (mysql, postgres, mongo). Defaults to STORE_DRIVER",
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the sample products into an empty store",
		Long: `Create the products table when missing and insert the five sample products.
A store that already holds products is left untouched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.NewConfig("catalogctl")
			if driver := flags[driverFlag].GetString(); driver != "" {
				cfg.Store.Driver = strings.ToLower(driver)
			}
			// The memory store dies with this process, so a seed would be
			// reported and then lost.
			if cfg.Store.Driver == config.DriverMemory {
				return errVolatileStore
			}
			cfg.Store.SeedOnStart = false
			cfg.RateLimit.Enabled = false
			cfg.Metrics.Enabled = false
			cfg.Tracing.Enabled = false

			a, err := app.New(cmd.Context(), cfg, "catalogctl")
			if err != nil {
				return err
			}
			defer func() { _ = a.Close(cmd.Context()) }()

			inserted, err := a.Seed(cmd.Context())
			if err != nil {
				return err
			}
			if inserted == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s store already holds products, nothing inserted\n", cfg.Store.Driver)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d products into the %s store\n", inserted, cfg.Store.Driver)
			return nil
		},
	}

	cobraflags.RegisterMap(seedCmd, flags)
	return seedCmd
}
