package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nomenlabs/nomen/internal/config"
	"github.com/nomenlabs/nomen/internal/store"
)

const starterConfig = `# nomen configuration
database: %s
data_dir: %s

# network: true enables checks that query BHL and ZooBank
network: false

bhl:
  endpoint: %s
  cache_dir: %s
  # api_key: ...

zoobank:
  endpoint: %s

lint:
  disabled: []
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new catalog",
		Long: `Create the catalog database, run its migrations, and write a
starter nomen.yaml configuration file.`,
		Example: `  # Initialize in the current directory
  nomen init

  # Initialize in a new directory
  nomen init my-catalog

  # Overwrite an existing configuration
  nomen init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	cmdCtx := NewCommandContextWithoutStore(cmd)
	r := cmdCtx.Renderer

	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileName)
	}

	content := fmt.Sprintf(starterConfig,
		config.DefaultDatabase, config.DefaultDataDir,
		config.DefaultBHLEndpoint, config.DefaultBHLCacheDir,
		config.DefaultZooBankEndpoint)
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	// opening runs the migrations
	dbPath := filepath.Join(dir, config.DefaultDatabase)
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	version, _ := st.SchemaVersion()
	if err := st.Close(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Join(dir, config.DefaultDataDir), 0750); err != nil {
		return err
	}

	r.Success("catalog initialized")
	r.Printf("  %s (schema version %d)\n", dbPath, version)
	r.Printf("  %s\n", configPath)
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Put region and period seed files under data/")
	r.Println("  2. Run 'nomen seed' to load them")
	r.Println("  3. Run 'nomen shell' to start adding records")

	return nil
}
