package commands

import (
	"errors"
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	backendFlag = "backend"
	urlFlag     = "url"
	idFlag      = "id"
)

var errRequestFailed = errors.New("request failed")

func connectionFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		backendFlag: &cobraflags.StringFlag{
			Name:  backendFlag,
			Value: backendGin,
			Usage: "Deployment to call (gin, echo)",
		},
		urlFlag: &cobraflags.StringFlag{
			Name:  urlFlag,
			Value: "",
			Usage: "Base URL of the deployment. Overrides CATALOG_GIN_URL or CATALOG_ECHO_URL",
		},
	}
}

func newFetchCommand(settings *viper.Viper) *cobra.Command {
	flags := connectionFlags()
	flags[idFlag] = &cobraflags.StringFlag{
		Name:  idFlag,
		Value: "",
		Usage: "Product id. Lists every product when empty",
	}

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the product list or a single product",
		Long: `Fetch the product list, or one product with --id, from a catalog deployment.

Examples:
  catalogctl fetch                       # list products from the gin deployment
  catalogctl fetch --backend echo --id 3 # one product from the echo deployment`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend, err := resolveBackend(settings, flags[backendFlag].GetString(), flags[urlFlag].GetString())
			if err != nil {
				return err
			}

			c := newClient(settings)
			id := flags[idFlag].GetString()
			out := cmd.OutOrStdout()
			if id == "" {
				envelope := c.FetchCollection(cmd.Context(), backend)
				renderCollection(out, backend, envelope)
				if !envelope.Success {
					return errRequestFailed
				}
				return nil
			}

			envelope := c.FetchProduct(cmd.Context(), backend, id)
			renderProduct(out, backend, envelope)
			if !envelope.Success {
				return errRequestFailed
			}
			return nil
		},
	}

	cobraflags.RegisterMap(fetchCmd, flags)
	return fetchCmd
}

func newHealthCommand(settings *viper.Viper) *cobra.Command {
	flags := connectionFlags()

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check that a deployment is up",
		Long: `Call GET /health on a deployment. The URL must be the deployment root,
without the /api prefix.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend, err := resolveBackend(settings, flags[backendFlag].GetString(), flags[urlFlag].GetString())
			if err != nil {
				return err
			}
			if err := newClient(settings).Health(cmd.Context(), backend); err != nil {
				return fmt.Errorf("%s API is unhealthy: %w", backend.Name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s API is healthy (%s)\n", backend.Name, backend.BaseURL)
			return nil
		},
	}

	cobraflags.RegisterMap(healthCmd, flags)
	return healthCmd
}
