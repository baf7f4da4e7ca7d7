package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	exeDirCache  string
	pathOverride string
)

// getExecutableDir returns the directory where the executable is located
func getExecutableDir() string {
	if exeDirCache != "" {
		return exeDirCache
	}
	execPath, err := os.Executable()
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	exeDirCache = filepath.Dir(execPath)
	return exeDirCache
}

type Config struct {
	Logging     LoggingConfig     `yaml:"logging"`
	PromptBuild PromptBuildConfig `yaml:"promptbuild"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// PromptBuildConfig controls where attribute directories live and how nodes are named.
type PromptBuildConfig struct {
	// RootDir anchors relative paths. Empty means the executable's directory.
	RootDir string `yaml:"root_dir,omitempty"`
	// ConfigsDir holds one subdirectory per node.
	ConfigsDir       string `yaml:"configs_dir"`
	FileExtension    string `yaml:"file_extension"`
	NodePrefix       string `yaml:"node_prefix"`
	DisplayPrefix    string `yaml:"display_prefix"`
	Category         string `yaml:"category"`
	EmptyPlaceholder string `yaml:"empty_placeholder"`
}

const (
	DefaultConfigsDir       = "configs"
	DefaultFileExtension    = ".txt"
	DefaultNodePrefix       = "MLV_Combo_"
	DefaultDisplayPrefix    = "MLV Combo"
	DefaultCategory         = "MLV Combo Nodes"
	DefaultEmptyPlaceholder = "Error: No valid configuration files loaded."
)

func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		PromptBuild: DefaultPromptBuildConfig(),
	}
}

func DefaultPromptBuildConfig() PromptBuildConfig {
	return PromptBuildConfig{
		ConfigsDir:       DefaultConfigsDir,
		FileExtension:    DefaultFileExtension,
		NodePrefix:       DefaultNodePrefix,
		DisplayPrefix:    DefaultDisplayPrefix,
		Category:         DefaultCategory,
		EmptyPlaceholder: DefaultEmptyPlaceholder,
	}
}

// WithDefaults fills blank fields so a partially written config file still works.
func (c PromptBuildConfig) WithDefaults() PromptBuildConfig {
	d := DefaultPromptBuildConfig()
	if c.ConfigsDir == "" {
		c.ConfigsDir = d.ConfigsDir
	}
	if c.FileExtension == "" {
		c.FileExtension = d.FileExtension
	}
	if c.NodePrefix == "" {
		c.NodePrefix = d.NodePrefix
	}
	if c.DisplayPrefix == "" {
		c.DisplayPrefix = d.DisplayPrefix
	}
	if c.Category == "" {
		c.Category = d.Category
	}
	if c.EmptyPlaceholder == "" {
		c.EmptyPlaceholder = d.EmptyPlaceholder
	}
	return c
}

// ResolvePath anchors p at RootDir (or the executable directory) unless it is absolute.
// A leading ~ expands to the home directory in both.
func (c PromptBuildConfig) ResolvePath(p string) string {
	p = expandHome(p)
	if filepath.IsAbs(p) {
		return p
	}
	root := expandHome(c.RootDir)
	if root == "" {
		root = getExecutableDir()
	}
	return filepath.Join(root, p)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

// ConfigsRoot is the absolute-or-anchored directory holding node subdirectories.
func (c PromptBuildConfig) ConfigsRoot() string {
	return c.ResolvePath(c.WithDefaults().ConfigsDir)
}

// SetPath overrides ConfigPath, used by the --config flag.
func SetPath(p string) {
	pathOverride = p
}

func ConfigPath() string {
	if pathOverride != "" {
		return pathOverride
	}
	exeDir := getExecutableDir()
	return filepath.Join(exeDir, ".mlv-combo.yaml")
}

func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

// LoadFromPath reads a YAML config. A missing file yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.PromptBuild = cfg.PromptBuild.WithDefaults()

	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
