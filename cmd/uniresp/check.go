package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// declaration is the file checked by the check command:
//
//	statuses: [200, 201, 404]
type declaration struct {
	Statuses []int `yaml:"statuses"`
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Check a YAML status declaration against a catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := catalogFlag(cmd)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("unable to read %q: %w", args[0], err)
			}

			var decl declaration
			if err := yaml.Unmarshal(data, &decl); err != nil {
				return fmt.Errorf("unable to parse %q: %w", args[0], err)
			}

			if len(decl.Statuses) == 0 {
				return fmt.Errorf("%s: no statuses declared", args[0])
			}

			if err := catalog.Validate(decl.Statuses); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d statuses ok\n", args[0], len(decl.Statuses))
			return err
		},
	}

	return cmd
}
