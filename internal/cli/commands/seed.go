package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/store"
)

// seedRegion is one region entry in a seed file. Children nest under
// their parent.
type seedRegion struct {
	Name     string       `yaml:"name"`
	Kind     string       `yaml:"kind"`
	Children []seedRegion `yaml:"children,omitempty"`
}

// seedPeriod is one period entry in a seed file.
type seedPeriod struct {
	Name     string       `yaml:"name"`
	System   string       `yaml:"system"`
	MinAge   *float64     `yaml:"min_age,omitempty"`
	MaxAge   *float64     `yaml:"max_age,omitempty"`
	Children []seedPeriod `yaml:"children,omitempty"`
}

type seedFile struct {
	Regions []seedRegion `yaml:"regions,omitempty"`
	Periods []seedPeriod `yaml:"periods,omitempty"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load reference data from the data directory",
		Long: `Load regions and geological periods from YAML files in the data
directory. Loading is idempotent: existing entries are matched by name
and updated in place, so the seed files can be re-run after edits.`,
		Example: `  # Load all seed files from data/
  nomen seed`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd)
		},
	}
}

func runSeed(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	r := cmdCtx.Renderer

	files, err := seedFiles(cmdCtx.Cfg.DataDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		r.Muted("no seed files found in %s", cmdCtx.Cfg.DataDir)
		return nil
	}

	var regions, periods int
	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var sf seedFile
		if err := yaml.Unmarshal(raw, &sf); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		nr, err := loadRegions(cmdCtx.Store, sf.Regions, 0)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		np, err := loadPeriods(cmdCtx.Store, sf.Periods, 0)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		regions += nr
		periods += np
		r.Printf("  %s\n", filepath.Base(path))
	}

	r.Success("loaded %d regions, %d periods from %d files", regions, periods, len(files))
	return nil
}

func seedFiles(dataDir string) ([]string, error) {
	if dataDir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			files = append(files, filepath.Join(dataDir, e.Name()))
		}
	}
	return files, nil
}

func loadRegions(st *store.Store, seeds []seedRegion, parentID int64) (int, error) {
	count := 0
	for _, s := range seeds {
		kind, err := model.ParseRegionKind(s.Kind)
		if err != nil {
			return count, fmt.Errorf("region %q: %w", s.Name, err)
		}
		region := &model.Region{Name: s.Name, Kind: kind, ParentID: parentID}
		if err := st.UpsertRegion(region); err != nil {
			return count, err
		}
		count++
		n, err := loadRegions(st, s.Children, region.ID)
		count += n
		if err != nil {
			return count, err
		}
	}
	return count, nil
}

func loadPeriods(st *store.Store, seeds []seedPeriod, parentID int64) (int, error) {
	count := 0
	for _, s := range seeds {
		system, err := model.ParsePeriodSystem(s.System)
		if err != nil {
			return count, fmt.Errorf("period %q: %w", s.Name, err)
		}
		period := &model.Period{
			Name:     s.Name,
			System:   system,
			ParentID: parentID,
			MinAge:   s.MinAge,
			MaxAge:   s.MaxAge,
		}
		if err := st.UpsertPeriod(period); err != nil {
			return count, err
		}
		count++
		n, err := loadPeriods(st, s.Children, period.ID)
		count += n
		if err != nil {
			return count, err
		}
	}
	return count, nil
}
