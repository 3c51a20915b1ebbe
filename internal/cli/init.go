package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/todolist/internal/paths"
	"github.com/mesh-intelligence/todolist/pkg/types"
)

// configFile holds the structure written to config.yaml by init when a data
// directory is pinned.
type configFile struct {
	Backend         string `yaml:"backend"`
	Format          string `yaml:"format,omitempty"`
	DefaultCategory string `yaml:"default_category"`
	LogLevel        string `yaml:"log_level"`
	DataDir         string `yaml:"data_dir,omitempty"`
}

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and data directories",
		Long: "Create the configuration directory with a default config.yaml and the\n" +
			"data directory. A --data-dir given here is recorded in config.yaml.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, flags)
		},
	}
}

func runInit(cmd *cobra.Command, flags *rootFlags) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}
	if flags.dataDir != "" {
		if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt), flags); err != nil {
			return sysError(fmt.Errorf("write config: %w", err))
		}
	}

	s, err := loadSettings(flags)
	if err != nil {
		return sysError(err)
	}
	if err := os.MkdirAll(s.DataDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create data directory: %w", err))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "config: %s\n", filepath.Join(s.ConfigDir, configFileExt))
	fmt.Fprintf(out, "tasks:  %s\n", s.Path)
	return nil
}

// writeConfigIfMissing creates config.yaml pinning the flag values. An
// existing file is left alone.
func writeConfigIfMissing(path string, flags *rootFlags) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	dataDir, err := paths.ResolveDataDir(flags.dataDir, "")
	if err != nil {
		return err
	}
	cfg := configFile{
		Backend:         flags.backend,
		Format:          flags.format,
		DefaultCategory: types.DefaultCategory,
		LogLevel:        defaultLogLevel,
		DataDir:         dataDir,
	}
	if cfg.Backend == "" {
		cfg.Backend = types.BackendFile
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
