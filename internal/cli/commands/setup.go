// Package commands implements the nomen subcommands.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nomenlabs/nomen/internal/checks"
	"github.com/nomenlabs/nomen/internal/cli/output"
	"github.com/nomenlabs/nomen/internal/config"
	"github.com/nomenlabs/nomen/internal/interactive"
	"github.com/nomenlabs/nomen/internal/store"
	"github.com/nomenlabs/nomen/pkg/bhl"
	"github.com/nomenlabs/nomen/pkg/zoobank"
)

// current is the configuration resolved by the root command's
// pre-run hook.
var current *config.Config

// SetConfig installs the resolved configuration for subcommands.
func SetConfig(cfg *config.Config) { current = cfg }

// getConfig returns the resolved configuration, loading defaults when
// a command runs outside the root (tests, mostly).
func getConfig() *config.Config {
	if current != nil {
		return current
	}
	cfg, _, err := config.Load("", nil)
	if err != nil {
		return &config.Config{
			DatabasePath: config.DefaultDatabase,
			DataDir:      config.DefaultDataDir,
			OutputFormat: config.DefaultOutput,
		}
	}
	return cfg
}

// CommandContext holds the common dependencies of store-backed
// commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Store    *store.Store
	Renderer *output.Renderer
}

// NewCommandContext opens the catalog and builds the renderer. The
// cleanup function closes the store and must be called, typically via
// defer.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := newLogger(cfg.Verbose)

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	cleanup := func() { _ = st.Close() }
	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Store:    st,
		Renderer: r,
	}, cleanup, nil
}

// NewCommandContextWithoutStore builds a context for commands that do
// not touch the catalog.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	return &CommandContext{
		Cfg:      cfg,
		Logger:   newLogger(cfg.Verbose),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newSuite wires the rule catalog from the command context. network
// turns on the BHL and ZooBank clients; prompt is nil for
// non-interactive runs.
func (c *CommandContext) newSuite(network bool, prompt interactive.Prompter) *checks.Suite {
	deps := checks.Deps{
		Store:  c.Store,
		Prompt: prompt,
		Logger: c.Logger,
	}
	if network {
		bhlOpts := []bhl.Option{bhl.WithLogger(c.Logger)}
		if c.Cfg.BHL.Endpoint != "" {
			bhlOpts = append(bhlOpts, bhl.WithEndpoint(c.Cfg.BHL.Endpoint))
		}
		if c.Cfg.BHL.CacheDir != "" {
			bhlOpts = append(bhlOpts, bhl.WithCacheDir(c.Cfg.BHL.CacheDir))
		}
		deps.BHL = bhl.New(c.Cfg.BHL.APIKey, bhlOpts...)

		zbOpts := []zoobank.Option{zoobank.WithLogger(c.Logger)}
		if c.Cfg.ZooBank.Endpoint != "" {
			zbOpts = append(zbOpts, zoobank.WithEndpoint(c.Cfg.ZooBank.Endpoint))
		}
		deps.ZooBank = zoobank.New(zbOpts...)
	}
	return checks.NewSuite(deps)
}
