package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/deckforge/internal/config"
	"github.com/example/deckforge/internal/db"
	"github.com/example/deckforge/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the deckforge database and config",
		Long: `Initialize the deckforge database at ~/.deckforge/deckforge.db and write a
default config.yaml if none exists.

Examples:
  deckforge init
  deckforge init --seed --player ana`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := wire.ConfigDir()
			cfg := wire.Config()

			configPath := filepath.Join(dir, config.FileName)
			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				if playerFlag != "" {
					cfg.Player = playerFlag
				}
				if err := config.SaveConfig(dir, cfg); err != nil {
					return err
				}
				fmt.Printf("✓ Config written to %s\n", configPath)
			}

			fmt.Printf("Initializing deckforge database at %s\n", cfg.ResolveDatabasePath(dir))
			database := wire.Database()
			fmt.Println("✓ Database initialized successfully")

			if seed {
				if err := db.SeedFixtures(database); err != nil {
					return fmt.Errorf("failed to seed database: %w", err)
				}
				fmt.Printf("✓ Sample catalog and deck DECK-001 loaded (owner %q)\n", db.SeedOwner)
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  deckforge card list")
			fmt.Println("  deckforge deck list --public")
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "load a sample catalog and deck")
	return cmd
}
