package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/simonhull/firebird-suite/hatch/fledge/output"
	"github.com/simonhull/firebird-suite/hatch/internal/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := commands.RootCmd()
	rootCmd.AddCommand(commands.FeatCmd())
	rootCmd.AddCommand(commands.GenCmd())
	rootCmd.AddCommand(commands.InitCmd())
	rootCmd.AddCommand(commands.VersionCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Reports have already been printed.
		if !errors.Is(err, commands.ErrGenerationFailed) {
			output.Error(err.Error())
		}
		stop()
		os.Exit(1)
	}
}
