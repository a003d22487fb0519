package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"menugen/pkg/config"
	"menugen/pkg/feed"
	"menugen/pkg/menu"
)

// errNoItems is returned by render when nothing in the feed qualifies.
var errNoItems = errors.New("no items qualified for the menu")

// generated is the outcome of one menu file.
type generated struct {
	Variant menu.Variant
	Path    string
	Items   int
	Bytes   int
}

func newGenerateCommand(env *environment) *cobra.Command {
	var (
		storeID  string
		names    []string
		all      bool
		outDir   string
		fontSize float64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetch a store's feeds and write PDF menus",
		Example: `  menugen generate --store foster --menu flower --menu cart_condensed
  menugen generate --store sandy --all --out ./menus`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			variants, err := selectVariants(names, all)
			if err != nil {
				return err
			}
			results, err := generate(cmd.Context(), env, storeID, variants, outDir, fontSize)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), storeID, results)
			return nil
		},
	}
	cmd.Flags().StringVarP(&storeID, "store", "s", "", "store id")
	cmd.Flags().StringSliceVarP(&names, "menu", "m", nil, "menu type, repeatable")
	cmd.Flags().BoolVar(&all, "all", false, "generate every menu type")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().Float64Var(&fontSize, "font-size", 0, "base font size for full-size menus")
	cmd.MarkFlagRequired("store")
	cmd.MarkFlagsMutuallyExclusive("menu", "all")
	return cmd
}

// selectVariants parses --menu values, or every variant with --all.
func selectVariants(names []string, all bool) ([]menu.Variant, error) {
	if all {
		return menu.Variants(), nil
	}
	if len(names) == 0 {
		return nil, errors.New("at least one --menu or --all is required")
	}
	var variants []menu.Variant
	for _, name := range names {
		v, err := menu.ParseVariant(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(variants, v) {
			variants = append(variants, v)
		}
	}
	return variants, nil
}

// generate downloads each needed product line once, then renders every
// variant in parallel. Variants with no qualifying items are reported with
// an empty Path and no file is written.
func generate(ctx context.Context, env *environment, storeID string, variants []menu.Variant, outDir string, fontSize float64) ([]generated, error) {
	svc := env.inventory()

	var lines []string
	for _, v := range variants {
		if !slices.Contains(lines, v.Line()) {
			lines = append(lines, v.Line())
		}
	}
	var store config.Store
	for _, line := range lines {
		s, _, err := svc.Resolve(storeID, line)
		if err != nil {
			return nil, err
		}
		store = s
	}

	items := make([][]feed.Item, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	for i, line := range lines {
		g.Go(func() error {
			snap, err := svc.Snapshot(gctx, storeID, line)
			if err != nil {
				return err
			}
			items[i] = snap.Items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	results := make([]generated, len(variants))
	g = new(errgroup.Group)
	for i, v := range variants {
		g.Go(func() error {
			lineItems := items[slices.Index(lines, v.Line())]
			pdf, err := env.composer.Generate(v, lineItems, menu.Options{FontSize: fontSize, StoreKey: store.DiscountKey})
			if err != nil {
				return fmt.Errorf("%s: %w", v, err)
			}
			results[i] = generated{Variant: v, Items: len(lineItems), Bytes: len(pdf)}
			if len(pdf) == 0 {
				env.logger.Info("no items qualified", zap.String("store", store.ID), zap.String("menu", string(v)))
				return nil
			}
			path := filepath.Join(outDir, v.FileName(store.ID))
			if err := os.WriteFile(path, pdf, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			results[i].Path = path
			env.logger.Info("menu written", zap.String("path", path), zap.Int("bytes", len(pdf)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func newRenderCommand(env *environment) *cobra.Command {
	var (
		input    string
		name     string
		out      string
		storeKey string
		fontSize float64
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a menu from a saved feed file without network access",
		Example: `  menugen render --input feed.json --menu prepack --store-key foster --out prepack.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := menu.ParseVariant(name)
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("failed to read feed: %w", err)
			}
			items := feed.Normalize(raw)
			pdf, err := env.composer.Generate(v, items, menu.Options{FontSize: fontSize, StoreKey: storeKey})
			if err != nil {
				return err
			}
			if len(pdf) == 0 {
				return fmt.Errorf("%w: %s from %d items", errNoItems, v, len(items))
			}
			if out == "" {
				prefix := storeKey
				if prefix == "" {
					prefix = "menu"
				}
				out = v.FileName(prefix)
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			printSummary(cmd.OutOrStdout(), filepath.Base(input), []generated{{
				Variant: v, Path: out, Items: len(items), Bytes: len(pdf),
			}})
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "saved feed JSON file")
	cmd.Flags().StringVarP(&name, "menu", "m", "", "menu type")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default {store-key}_{menu}_menu.pdf)")
	cmd.Flags().StringVar(&storeKey, "store-key", "", "store name used to match discount tags")
	cmd.Flags().Float64Var(&fontSize, "font-size", 0, "base font size for full-size menus")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("menu")
	return cmd
}
