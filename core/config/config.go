package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tristendillon/scout/core/logger"
	"gopkg.in/yaml.v3"
)

const DefaultFileName = "scout.yaml"

type Config struct {
	Root       string     `yaml:"root"`
	Packages   []string   `yaml:"packages"`
	Aliases    AliasTable `yaml:"aliases"`
	Extensions []string   `yaml:"extensions"`
	Include    []string   `yaml:"include"`
	Exclude    []string   `yaml:"exclude"`
	Workers    int        `yaml:"workers"`
	Graph      Graph      `yaml:"graph"`
	Output     Output     `yaml:"output"`
	Cache      Cache      `yaml:"cache"`
}

type Graph struct {
	// HubThreshold is the direct-importer count a file needs to count as a
	// global import hub. Zero derives it from the number of intersection files.
	HubThreshold    int `yaml:"hubThreshold"`
	MaxChainDepth   int `yaml:"maxChainDepth"`
	MaxChainsPerHub int `yaml:"maxChainsPerHub"`
}

type Output struct {
	Dir     string `yaml:"dir"`
	Records string `yaml:"records"`
	Graph   string `yaml:"graph"`
}

type Cache struct {
	Size int `yaml:"size"`
}

var DefaultExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"}

func Default() *Config {
	return &Config{
		Root:       ".",
		Extensions: append([]string(nil), DefaultExtensions...),
		Include:    []string{"**/*.{js,jsx,ts,tsx,mjs,cjs}"},
		Exclude: []string{
			"**/*.d.ts",
		},
		Graph: Graph{
			MaxChainDepth:   6,
			MaxChainsPerHub: 50,
		},
		Output: Output{
			Dir:     ".scout",
			Records: "records.jsonl",
			Graph:   "graph.json",
		},
		Cache: Cache{Size: 4096},
	}
}

// Load reads path, falling back to Default() when the file does not exist.
// Unset fields keep their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine working dir: %w", err)
		}
		path = filepath.Join(wd, DefaultFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("No config file found at %s, using default config", path)
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	logger.Debug("Config file found: %s", path)
	logger.Debug("Config: %+v", *cfg)

	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if len(c.Packages) == 0 {
		return errors.New("config: at least one tracked package is required")
	}
	seen := make(map[string]bool, len(c.Packages))
	for _, p := range c.Packages {
		if p == "" {
			return errors.New("config: tracked package names cannot be empty")
		}
		if seen[p] {
			return fmt.Errorf("config: tracked package %q listed twice", p)
		}
		seen[p] = true
	}
	for _, a := range c.Aliases {
		if a.Prefix == "" {
			return fmt.Errorf("config: alias for target %q has an empty prefix", a.Target)
		}
	}
	for _, pattern := range append(append([]string(nil), c.Include...), c.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("config: invalid glob pattern %q", pattern)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must be >= 0, got %d", c.Workers)
	}
	if c.Graph.HubThreshold < 0 {
		return fmt.Errorf("config: graph.hubThreshold must be >= 0, got %d", c.Graph.HubThreshold)
	}
	if c.Graph.MaxChainDepth < 1 {
		return fmt.Errorf("config: graph.maxChainDepth must be >= 1, got %d", c.Graph.MaxChainDepth)
	}
	if c.Graph.MaxChainsPerHub < 1 {
		return fmt.Errorf("config: graph.maxChainsPerHub must be >= 1, got %d", c.Graph.MaxChainsPerHub)
	}
	return nil
}

// RecordsPath returns the line-delimited per-file store location.
func (c *Config) RecordsPath() string {
	return c.outputPath(c.Output.Records)
}

// GraphPath returns the cross-file report location.
func (c *Config) GraphPath() string {
	return c.outputPath(c.Output.Graph)
}

func (c *Config) outputPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	dir := c.Output.Dir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.Root, dir)
	}
	return filepath.Join(dir, name)
}
