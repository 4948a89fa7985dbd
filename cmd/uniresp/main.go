// Command uniresp inspects the status catalogs used by union responses and
// checks status declarations against them.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
