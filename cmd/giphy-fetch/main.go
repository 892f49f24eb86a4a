package main

import (
	"errors"
	"fmt"
	"os"

	configcmd "github.com/AD7six/giphy-fetch/internal/commands/config"
	"github.com/AD7six/giphy-fetch/internal/commands/fetch"
	"github.com/AD7six/giphy-fetch/internal/commands/version"
	"github.com/AD7six/giphy-fetch/internal/config"
)

func main() {
	root := fetch.NewRootCmd()

	root.AddCommand(configcmd.NewConfigCmd())
	root.AddCommand(version.NewVersionCmd())

	if err := root.Execute(); err != nil {
		if errors.Is(err, config.ErrNoAPIKey) {
			fmt.Println("No API key provided")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
