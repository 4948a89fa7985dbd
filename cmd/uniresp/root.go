package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitalvas/uniresp/errresp"
	"github.com/vitalvas/uniresp/response"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "uniresp",
		Short:        "Inspect response status catalogs",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("catalog", "default", "Status catalog: default or errors")

	root.AddCommand(newCatalogCmd(), newCheckCmd())

	return root
}

// catalogFlag resolves the --catalog flag.
func catalogFlag(cmd *cobra.Command) (*response.Catalog, error) {
	name, err := cmd.Flags().GetString("catalog")
	if err != nil {
		return nil, err
	}

	switch name {
	case "", "default":
		return response.DefaultCatalog, nil
	case "errors":
		return errresp.Catalog, nil
	default:
		return nil, fmt.Errorf("unknown catalog %q", name)
	}
}
