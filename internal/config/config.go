// Package config handles the .deckforge directory and its config.yaml.
// Every project directory the app runs in gets a .deckforge/ folder
// holding configuration, logs and exported decks.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DeckforgeDir is the name of the directory created per project.
	DeckforgeDir = ".deckforge"

	defaultContentModel = "gemini-2.5-flash"
	defaultImageModel   = "gemini-2.5-flash-image"
	defaultSlideCount   = 8
)

const defaultConfigYAML = `# deckforge configuration
version: 1

gemini:
  # api_key may be left empty and provided via the GEMINI_API_KEY
  # environment variable instead. With no key at all, deckforge runs
  # in offline mode with placeholder content.
  api_key: ""
  content_model: gemini-2.5-flash
  image_model: gemini-2.5-flash-image

generation:
  default_slide_count: 8
  # 0 means no cap: one concurrent image task per slide.
  max_concurrent_images: 0
`

// GeminiConfig selects the generative backend.
type GeminiConfig struct {
	APIKey       string `yaml:"api_key"`
	ContentModel string `yaml:"content_model"`
	ImageModel   string `yaml:"image_model"`
}

// GenerationConfig tunes the generation pipeline.
type GenerationConfig struct {
	DefaultSlideCount   int `yaml:"default_slide_count"`
	MaxConcurrentImages int `yaml:"max_concurrent_images"`
}

// ProjectConfig models .deckforge/config.yaml.
type ProjectConfig struct {
	Version    int              `yaml:"version"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	Generation GenerationConfig `yaml:"generation"`
}

// Config holds the runtime configuration.
type Config struct {
	// ProjectDir is the directory the app was started from.
	ProjectDir string

	// DeckforgeProjectDir is ProjectDir/.deckforge.
	DeckforgeProjectDir string

	Project ProjectConfig
}

// InitDeckforgeDir creates the .deckforge directory structure and a
// default config file when missing. Called on startup.
func InitDeckforgeDir(projectDir string) error {
	base := filepath.Join(projectDir, DeckforgeDir)
	for _, dir := range []string{
		filepath.Join(base, "logs"),
		filepath.Join(base, "exports"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureConfigFile(filepath.Join(base, "config.yaml"))
}

// NewConfig loads configuration for the given project directory.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:          projectDir,
		DeckforgeProjectDir: filepath.Join(projectDir, DeckforgeDir),
		Project:             defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the directory holding log files.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DeckforgeProjectDir, "logs")
}

// ExportsDir returns the directory exported decks are written to.
func (c *Config) ExportsDir() string {
	return filepath.Join(c.DeckforgeProjectDir, "exports")
}

// ConfigPath returns the on-disk location of the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.DeckforgeProjectDir, "config.yaml")
}

// APIKey returns the Gemini key, preferring the GEMINI_API_KEY
// environment variable over the config file. Empty means offline mode.
func (c *Config) APIKey() string {
	if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
		return key
	}
	return strings.TrimSpace(c.Project.Gemini.APIKey)
}

// ContentModel returns the content generation model name.
func (c *Config) ContentModel() string {
	return c.Project.Gemini.ContentModel
}

// ImageModel returns the image generation model name.
func (c *Config) ImageModel() string {
	return c.Project.Gemini.ImageModel
}

// DefaultSlideCount returns the configured default deck size.
func (c *Config) DefaultSlideCount() int {
	return c.Project.Generation.DefaultSlideCount
}

// MaxConcurrentImages returns the fanout cap; zero means unbounded.
func (c *Config) MaxConcurrentImages() int {
	return c.Project.Generation.MaxConcurrentImages
}

func (c *Config) loadProjectConfig() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Gemini: GeminiConfig{
			ContentModel: defaultContentModel,
			ImageModel:   defaultImageModel,
		},
		Generation: GenerationConfig{
			DefaultSlideCount: defaultSlideCount,
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Gemini.ContentModel) == "" {
		pc.Gemini.ContentModel = defaultContentModel
	}
	if strings.TrimSpace(pc.Gemini.ImageModel) == "" {
		pc.Gemini.ImageModel = defaultImageModel
	}
	if pc.Generation.DefaultSlideCount == 0 {
		pc.Generation.DefaultSlideCount = defaultSlideCount
	}
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Generation.DefaultSlideCount < 1 {
		return fmt.Errorf("generation.default_slide_count must be positive")
	}
	if pc.Generation.MaxConcurrentImages < 0 {
		return fmt.Errorf("generation.max_concurrent_images must be >= 0")
	}
	return nil
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
