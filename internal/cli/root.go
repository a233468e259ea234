package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/deckforge/internal/ctxutil"
	"github.com/example/deckforge/internal/logging"
	"github.com/example/deckforge/internal/wire"
)

var (
	playerFlag  string
	verboseFlag bool
)

// AddGlobalFlags registers the flags shared by every command.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&playerFlag, "player", "", "act as this player (overrides config and DECKFORGE_PLAYER)")
	root.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
}

// SetupLogging builds the process logger from config and flags.
// Use it as the root command's PersistentPreRunE.
func SetupLogging(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(wire.Config().LogLevel, verboseFlag)
	if err != nil {
		return err
	}
	wire.SetLogger(logger)
	return nil
}

// SyncLogging flushes buffered log entries.
// Use it as the root command's PersistentPostRun.
func SyncLogging(cmd *cobra.Command, args []string) {
	_ = wire.Logger().Sync()
}

// commandContext returns the command's context carrying the --player flag.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if playerFlag != "" {
		ctx = ctxutil.WithPlayerID(ctx, playerFlag)
	}
	return ctx
}
