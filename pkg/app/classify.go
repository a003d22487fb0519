package app

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"menugen/pkg/config"
	"menugen/pkg/feed"
	"menugen/pkg/report"
	"menugen/pkg/version"
)

func newClassifyCommand(env *environment) *cobra.Command {
	var (
		storeID  string
		line     string
		input    string
		format   string
		storeKey string
	)
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Report how each item of a product line is classified",
		Long: `classify prints one row per feed item with its lineage, unit, price,
menu category and discount level. Items come from the store's live feed,
or from a saved feed file with --input.`,
		Example: `  menugen classify --store foster --line preroll --format csv
  menugen classify --input feed.json --line cart --store-key sandy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			line = strings.ToLower(strings.TrimSpace(line))
			if !slices.Contains(config.Lines, line) {
				return fmt.Errorf("unknown product line %q, want one of %s", line, strings.Join(config.Lines, ", "))
			}

			var items []feed.Item
			switch {
			case input != "":
				raw, err := os.ReadFile(input)
				if err != nil {
					return fmt.Errorf("failed to read feed: %w", err)
				}
				items = feed.Normalize(raw)
			case storeID != "":
				snap, err := env.inventory().Snapshot(cmd.Context(), storeID, line)
				if err != nil {
					return err
				}
				items = snap.Items
				if storeKey == "" {
					storeKey = snap.Store.DiscountKey
				}
			default:
				return fmt.Errorf("either --store or --input is required")
			}

			rows := report.Build(env.engine, line, items, storeKey)
			return report.Write(cmd.OutOrStdout(), format, rows)
		},
	}
	cmd.Flags().StringVarP(&storeID, "store", "s", "", "store id")
	cmd.Flags().StringVarP(&line, "line", "l", "", "product line: "+strings.Join(config.Lines, ", "))
	cmd.Flags().StringVarP(&input, "input", "i", "", "saved feed JSON file instead of the live feed")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or csv")
	cmd.Flags().StringVar(&storeKey, "store-key", "", "store name used to match discount tags")
	cmd.MarkFlagRequired("line")
	cmd.MarkFlagsMutuallyExclusive("store", "input")
	return cmd
}

func newStoresCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "stores",
		Short: "List configured stores and their feeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var stores []config.Store
			for _, id := range env.cfg.StoreIDs() {
				store, _ := env.cfg.Store(id)
				stores = append(stores, store)
			}
			printStores(cmd.OutOrStdout(), stores)
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the menugen version",
		Args:  cobra.NoArgs,
		// The version needs no configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "menugen version %s\n", version.Version())
		},
	}
}
