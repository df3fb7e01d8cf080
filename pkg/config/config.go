// Package config loads the optional .crateship.yaml file that selects
// the registry endpoints, the check strategy, and how tags are recorded.
// Defaults cover releasing to crates.io with a pushed git tag; flags on
// the CLI override anything set here.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no path is given.
const DefaultPath = ".crateship.yaml"

// Strategy selects the registry read surface used for the version check.
type Strategy string

const (
	StrategyLookup Strategy = "lookup"
	StrategyList   Strategy = "list"
	StrategyIndex  Strategy = "index"
)

// TagVia selects how the release tag is created.
type TagVia string

const (
	TagViaGit TagVia = "git"
	TagViaAPI TagVia = "api"
)

// Config holds the tool's settings after normalization.
type Config struct {
	Registry RegistryConfig `yaml:"registry"`
	Tag      TagConfig      `yaml:"tag"`
	GitHub   GitHubConfig   `yaml:"github"`
}

type RegistryConfig struct {
	API      string   `yaml:"api"`
	Index    string   `yaml:"index"`
	Strategy Strategy `yaml:"strategy"`
}

type TagConfig struct {
	Via    TagVia `yaml:"via"`
	Remote string `yaml:"remote"`
}

type GitHubConfig struct {
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Registry: RegistryConfig{Strategy: StrategyIndex},
		Tag:      TagConfig{Via: TagViaGit, Remote: "origin"},
	}
}

// Load reads and validates the config file at path. A missing file at
// the default path yields Default(); a malformed or invalid file is an
// error.
func Load(path string) (Config, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes, validates, and normalizes a config payload.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(string(data)) == "" {
		return cfg, nil
	}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg.normalized(), nil
}

// Validate checks enum fields and cross-field requirements.
func (c Config) Validate() error {
	if _, err := ParseStrategy(string(c.Registry.Strategy)); err != nil {
		return err
	}
	via, err := ParseTagVia(string(c.Tag.Via))
	if err != nil {
		return err
	}
	if via == TagViaAPI {
		if strings.TrimSpace(c.GitHub.Owner) == "" || strings.TrimSpace(c.GitHub.Repo) == "" {
			return fmt.Errorf("config: tag.via=api requires github.owner and github.repo")
		}
	}
	return nil
}

func (c Config) normalized() Config {
	c.Registry.API = strings.TrimRight(strings.TrimSpace(c.Registry.API), "/")
	c.Registry.Index = strings.TrimRight(strings.TrimSpace(c.Registry.Index), "/")
	c.Tag.Remote = strings.TrimSpace(c.Tag.Remote)
	if c.Tag.Remote == "" {
		c.Tag.Remote = "origin"
	}
	c.GitHub.Owner = strings.TrimSpace(c.GitHub.Owner)
	c.GitHub.Repo = strings.TrimSpace(c.GitHub.Repo)
	return c
}

// ParseStrategy validates a strategy name; empty means the default.
func ParseStrategy(raw string) (Strategy, error) {
	switch Strategy(strings.TrimSpace(raw)) {
	case "":
		return StrategyIndex, nil
	case StrategyLookup:
		return StrategyLookup, nil
	case StrategyList:
		return StrategyList, nil
	case StrategyIndex:
		return StrategyIndex, nil
	default:
		return "", fmt.Errorf("unknown strategy %q (expected: lookup, list, index)", raw)
	}
}

// ParseTagVia validates a tag mode; empty means the default.
func ParseTagVia(raw string) (TagVia, error) {
	switch TagVia(strings.TrimSpace(raw)) {
	case "":
		return TagViaGit, nil
	case TagViaGit:
		return TagViaGit, nil
	case TagViaAPI:
		return TagViaAPI, nil
	default:
		return "", fmt.Errorf("unknown tag mode %q (expected: git, api)", raw)
	}
}
