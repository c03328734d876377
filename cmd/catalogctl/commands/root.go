// Package commands implements catalogctl, a terminal front end for the two
// catalog deployments.
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iconplus/catalog/internal/client"
)

const (
	backendGin  = "gin"
	backendEcho = "echo"
)

// NewRootCommand wires every subcommand. Deployment URLs and the timeout
// come from CATALOG_GIN_URL, CATALOG_ECHO_URL and CATALOG_CLIENT_TIMEOUT
// unless a flag overrides them.
func NewRootCommand() *cobra.Command {
	settings := newSettings()

	rootCmd := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Query and seed the product catalog",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newFetchCommand(settings))
	rootCmd.AddCommand(newHealthCommand(settings))
	rootCmd.AddCommand(newSeedCommand())
	return rootCmd
}

func newSettings() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("catalog")
	v.AutomaticEnv()
	v.SetDefault("gin_url", "http://localhost:8080")
	v.SetDefault("echo_url", "http://localhost:8081/api")
	v.SetDefault("client_timeout", client.DefaultTimeout)
	return v
}

// resolveBackend picks the deployment by name. A non-empty override
// replaces the configured base URL.
func resolveBackend(settings *viper.Viper, name, override string) (client.Backend, error) {
	var backend client.Backend
	switch strings.ToLower(name) {
	case backendGin:
		backend = client.Backend{Name: "Gin", BaseURL: settings.GetString("gin_url")}
	case backendEcho:
		backend = client.Backend{Name: "Echo", BaseURL: settings.GetString("echo_url")}
	default:
		return backend, fmt.Errorf("unknown backend %q (use %s or %s)", name, backendGin, backendEcho)
	}
	if override != "" {
		backend.BaseURL = override
	}
	backend.BaseURL = strings.TrimRight(backend.BaseURL, "/")
	return backend, nil
}

func newClient(settings *viper.Viper) *client.Client {
	return client.New(client.WithTimeout(settings.GetDuration("client_timeout")))
}
