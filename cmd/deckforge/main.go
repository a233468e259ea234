package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/deckforge/internal/cli"
	"github.com/example/deckforge/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "deckforge",
		Short:   "deckforge - deck builder for Kódem-style trading card games",
		Version: version.String(),
		Long: `deckforge manages a card catalog and builds decks that follow the section
caps: 2 Protectors, 1 Bio, 5 Rot, 5 Ixim and 24 Adendei/Rava.`,
		SilenceUsage:      true,
		PersistentPreRunE: cli.SetupLogging,
		PersistentPostRun: cli.SyncLogging,
	}
	cli.AddGlobalFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.CardCmd())
	rootCmd.AddCommand(cli.DeckCmd())
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.VersionCmd(version.String()))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
