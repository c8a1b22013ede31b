package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Lukas-Klein/azure-config-cli/internal/cli"
	"github.com/Lukas-Klein/azure-config-cli/internal/config"
	"github.com/Lukas-Klein/azure-config-cli/internal/tui"
)

func main() {
	app := &cli.App{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		NewBackend: cli.DefaultBackend,
		RunTUI:     tui.Run,
		ConfigPath: config.DefaultPath(),
	}

	if err := app.Run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
