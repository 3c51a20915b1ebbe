package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/todolist/internal/paths"
	"github.com/mesh-intelligence/todolist/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend         = "backend"
	cfgKeyFormat          = "format"
	cfgKeyFile            = "file"
	cfgKeyDefaultCategory = "default_category"
	cfgKeyLogLevel        = "log_level"
	cfgKeyDataDir         = "data_dir"

	defaultLogLevel = "warn"
)

// Environment overrides for single keys. Directory overrides live in paths.
var configEnv = map[string]string{
	cfgKeyBackend:  "TODO_BACKEND",
	cfgKeyFormat:   "TODO_FORMAT",
	cfgKeyLogLevel: "TODO_LOG_LEVEL",
}

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# todo configuration

# Storage backend: file or sqlite
backend: file

# Task file format for the file backend: json, jsonl or yaml
format: json

# Task file name inside the data directory (default: tasks.<format>, or tasks.db)
# file:

# Category given to tasks added without one
default_category: General

# Log level: debug, info, warn or error
log_level: warn

# Data directory (optional; overridable by --data-dir flag)
# data_dir:
`

// settings is the effective configuration of one invocation.
type settings struct {
	ConfigDir    string `json:"config_dir" yaml:"config_dir"`
	types.Config `yaml:",inline"`
	Path         string `json:"path" yaml:"path"`
	LogLevel     string `json:"log_level" yaml:"log_level"`
}

// loadConfig reads config.yaml from the config directory using Viper. It
// creates the directory and a default config.yaml on first run. A missing
// config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendFile)
	v.SetDefault(cfgKeyFormat, types.FormatJSON)
	v.SetDefault(cfgKeyDefaultCategory, types.DefaultCategory)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	for key, env := range configEnv {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// loadSettings resolves directories, reads config.yaml and applies the
// --backend and --format overrides.
func loadSettings(flags *rootFlags) (*settings, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}
	if flags.backend != "" {
		v.Set(cfgKeyBackend, flags.backend)
	}
	if flags.format != "" {
		v.Set(cfgKeyFormat, flags.format)
	}

	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend:         v.GetString(cfgKeyBackend),
		Format:          v.GetString(cfgKeyFormat),
		DataDir:         dataDir,
		File:            v.GetString(cfgKeyFile),
		DefaultCategory: v.GetString(cfgKeyDefaultCategory),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filepath.Join(configDir, configFileExt), err)
	}
	if cfg.Backend == types.BackendSQLite {
		cfg.Format = ""
	}
	return &settings{
		ConfigDir: configDir,
		Config:    cfg,
		Path:      cfg.Path(),
		LogLevel:  v.GetString(cfgKeyLogLevel),
	}, nil
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(flags)
			if err != nil {
				return sysError(err)
			}
			var out []byte
			if flags.jsonMode {
				out, err = json.MarshalIndent(s, "", "  ")
				out = append(out, '\n')
			} else {
				out, err = yaml.Marshal(s)
			}
			if err != nil {
				return sysError(fmt.Errorf("marshal config: %w", err))
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
