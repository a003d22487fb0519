// Package app is the composition root shared by the menugen entry points.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"menugen/pkg/classify"
	"menugen/pkg/config"
	"menugen/pkg/feed"
	"menugen/pkg/inventory"
	"menugen/pkg/menu"
)

// Run parses args and executes the selected command. A nil logger is built
// from the --verbose flag; an injected one is used as is.
func Run(ctx context.Context, args []string, logger *zap.Logger) error {
	return run(ctx, args, logger, os.Stdout)
}

func run(ctx context.Context, args []string, logger *zap.Logger, out io.Writer) error {
	env := &environment{logger: logger, injected: logger != nil}
	root := newRootCommand(env)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)
	return root.ExecuteContext(ctx)
}

// environment is what every subcommand shares once the root flags are parsed.
type environment struct {
	configPath string
	envFile    string
	verbose    bool

	injected bool
	logger   *zap.Logger
	cfg      *config.Config
	engine   *classify.Engine
	composer *menu.Composer
}

func newRootCommand(env *environment) *cobra.Command {
	root := &cobra.Command{
		Use:   "menugen",
		Short: "Printable dispensary menus from live inventory feeds",
		Long: `menugen turns a store's inventory feed into print-ready PDF menus.

Feeds are fetched per store and product line, classified into menu
sections, grouped, sorted and laid out as flower, preroll, cart, dab
or prepack menus in full-size or condensed form.

Feed tokens are read from MENUGEN_<STORE>_TOKEN, optionally via a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if !env.injected && env.logger != nil {
				_ = env.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&env.configPath, "config", "c", "", "YAML file merged over the built-in store and rule tables")
	flags.StringVar(&env.envFile, "env-file", ".env", "dotenv file loaded before reading the configuration")
	flags.BoolVarP(&env.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newServeCommand(env),
		newGenerateCommand(env),
		newRenderCommand(env),
		newClassifyCommand(env),
		newStoresCommand(env),
		newVersionCommand(),
	)
	return root
}

// setup loads the dotenv file, the logger and the configuration.
func (e *environment) setup() error {
	if e.envFile != "" {
		if err := godotenv.Load(e.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", e.envFile, err)
		}
	}

	if e.logger == nil {
		zcfg := zap.NewProductionConfig()
		if e.verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		e.logger = logger
	}

	cfg, err := config.Load(e.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	e.cfg = cfg
	e.engine = classify.NewEngine(cfg.Rules)
	e.composer = menu.NewComposer(e.engine, e.logger.Named("menu"))
	e.logger.Debug("configuration loaded",
		zap.String("path", e.configPath),
		zap.Strings("stores", cfg.StoreIDs()))
	return nil
}

// inventory builds a feed-backed inventory service.
func (e *environment) inventory() *inventory.Service {
	client := feed.NewClient(e.cfg.Feed.BaseURL, e.cfg.FeedTimeout(), e.logger.Named("feed"))
	return inventory.NewService(e.cfg, client, e.logger.Named("inventory"))
}
