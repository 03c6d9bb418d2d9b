package main

import (
	"os"

	"github.com/oldbaker/go-storefront/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
