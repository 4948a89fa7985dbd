package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type catalogEntry struct {
	Status int    `json:"status" yaml:"status"`
	Text   string `json:"text" yaml:"text"`
}

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the statuses of a catalog in slot order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := catalogFlag(cmd)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")

			statuses := catalog.Statuses()
			entries := make([]catalogEntry, 0, len(statuses))
			for _, s := range statuses {
				entries = append(entries, catalogEntry{Status: s, Text: http.StatusText(s)})
			}

			out := cmd.OutOrStdout()

			switch format {
			case "text":
				for _, e := range entries {
					if _, err := fmt.Fprintf(out, "%d\t%s\n", e.Status, e.Text); err != nil {
						return err
					}
				}
				return nil

			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)

			case "yaml":
				enc := yaml.NewEncoder(out)
				defer enc.Close()
				return enc.Encode(entries)

			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}

	cmd.Flags().StringP("format", "f", "text", "Output format: text, json or yaml")

	return cmd
}
