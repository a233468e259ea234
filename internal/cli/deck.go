package cli

import (
	"github.com/spf13/cobra"

	cliadapter "github.com/example/deckforge/internal/adapters/cli"
	"github.com/example/deckforge/internal/adapters/qr"
	"github.com/example/deckforge/internal/wire"
)

// DeckCmd returns the deck command
func DeckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Build and manage decks",
		Long: `Build, arrange and share decks.

Grid slots are written section:index, e.g. mainline:3, rot:0, or the
protector1/protector2 shorthands.`,
	}

	cmd.AddCommand(deckNewCmd())
	cmd.AddCommand(deckListCmd())
	cmd.AddCommand(deckShowCmd())
	cmd.AddCommand(deckAddCmd())
	cmd.AddCommand(deckRemoveCmd())
	cmd.AddCommand(deckSwapCmd())
	cmd.AddCommand(deckTrashCmd())
	cmd.AddCommand(deckCheckCmd())
	cmd.AddCommand(deckExportCmd())
	cmd.AddCommand(deckDeleteCmd())
	cmd.AddCommand(deckHistoryCmd())

	return cmd
}

func deckNewCmd() *cobra.Command {
	var opts cliadapter.NewDeckOptions

	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create a deck from a list of cards",
		Long: `Create and save a deck. The deck must be complete: at least one Protector
and 15 Adendei/Rava cards.

Examples:
  deckforge deck new "Ceniza" --cards KDM-001,KDM-017,KDM-018,...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name = args[0]
			return wire.DeckAdapter().Create(commandContext(cmd), opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.CardIDs, "cards", nil, "card IDs to add, in order")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "deck description")
	cmd.Flags().BoolVar(&opts.Public, "public", false, "make the deck readable by everyone")
	return cmd
}

func deckListCmd() *cobra.Command {
	var public bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your decks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DeckAdapter().List(commandContext(cmd), public)
		},
	}

	cmd.Flags().BoolVar(&public, "public", false, "include public decks of other players")
	return cmd
}

func deckShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [deck-id]",
		Short: "Show a deck's layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DeckAdapter().Show(commandContext(cmd), args[0])
		},
	}
}

func deckAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [deck-id] [card-id]",
		Short: "Add a card to a deck",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DeckAdapter().Add(commandContext(cmd), args[0], args[1])
		},
	}
}

func deckRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [deck-id] [card-id]",
		Short: "Remove a card from a deck",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DeckAdapter().Remove(commandContext(cmd), args[0], args[1])
		},
	}
}

func deckSwapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "swap [deck-id] [from-slot] [to-slot]",
		Short: "Move a card to another slot of the same section",
		Long: `Drag the card at from-slot onto to-slot. An occupied target swaps the two
cards; an empty one moves the card there.

Examples:
  deckforge deck swap DECK-002 protector1 protector2
  deckforge deck swap DECK-002 mainline:0 mainline:5`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DeckAdapter().Swap(commandContext(cmd), args[0], args[1], args[2])
		},
	}
}

func deckTrashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trash [deck-id] [slot]",
		Short: "Drag the card in a slot to the trash",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DeckAdapter().Trash(commandContext(cmd), args[0], args[1])
		},
	}
}

func deckCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [deck-id]",
		Short: "Report what a deck still needs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DeckAdapter().Check(commandContext(cmd), args[0])
		},
	}
}

func deckExportCmd() *cobra.Command {
	var qrPath string
	var qrSize int

	cmd := &cobra.Command{
		Use:   "export [deck-id]",
		Short: "Print a deck list, optionally with a share QR code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DeckAdapter().Export(commandContext(cmd), args[0], qrPath, qrSize)
		},
	}

	cmd.Flags().StringVar(&qrPath, "qr", "", "write the share code as a PNG to this path")
	cmd.Flags().IntVar(&qrSize, "qr-size", qr.DefaultSize, "QR image size in pixels")
	return cmd
}

func deckDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [deck-id]",
		Short: "Delete a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DeckAdapter().Delete(commandContext(cmd), args[0])
		},
	}
}

func deckHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [deck-id]",
		Short: "Show who changed a deck and when",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.HistoryAdapter().Show(commandContext(cmd), args[0])
		},
	}
}
