package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/deckforge/internal/wire"
)

// CardCmd returns the card command
func CardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Browse and import the card catalog",
	}

	cmd.AddCommand(cardListCmd())
	cmd.AddCommand(cardShowCmd())
	cmd.AddCommand(cardImportCmd())

	return cmd
}

func cardListCmd() *cobra.Command {
	var types []string
	var search string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog cards",
		Long: `List catalog cards, optionally filtered by type and name.

Examples:
  deckforge card list --type Protector,Bio
  deckforge card list --search zorro --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.CardAdapter().List(commandContext(cmd), types, search, limit)
		},
	}

	cmd.Flags().StringSliceVar(&types, "type", nil, "filter by card type (repeatable or comma separated)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "match words in the card name")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of cards")
	return cmd
}

func cardShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [card-id]",
		Short: "Show card details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.CardAdapter().Show(commandContext(cmd), args[0])
		},
	}
}

func cardImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import cards from a CSV or YAML file",
		Long: `Import cards into the catalog. Existing cards with the same ID are replaced.

CSV files need a header with id, name and type columns (text and image_url
are optional). YAML files hold a "cards:" list with the same fields.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.CardAdapter().Import(commandContext(cmd), args[0])
		},
	}
}
