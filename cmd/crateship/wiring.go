package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/odvcencio/crateship/pkg/config"
	"github.com/odvcencio/crateship/pkg/registry"
	"github.com/odvcencio/crateship/pkg/release"
)

// releaseOptions collects the flag values shared by check and release.
type releaseOptions struct {
	manifestPath string
	configPath   string
	strategy     string
	tagVia       string
	remote       string
}

func (o *releaseOptions) load() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if strings.TrimSpace(o.strategy) != "" {
		strategy, err := config.ParseStrategy(o.strategy)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Registry.Strategy = strategy
	}
	if strings.TrimSpace(o.tagVia) != "" {
		via, err := config.ParseTagVia(o.tagVia)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Tag.Via = via
	}
	if strings.TrimSpace(o.remote) != "" {
		cfg.Tag.Remote = strings.TrimSpace(o.remote)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newChecker(cfg config.Config) (registry.Checker, error) {
	switch cfg.Registry.Strategy {
	case config.StrategyLookup:
		return &registry.LookupChecker{APIURL: cfg.Registry.API}, nil
	case config.StrategyList:
		return &registry.ListChecker{APIURL: cfg.Registry.API}, nil
	case config.StrategyIndex:
		return &registry.IndexChecker{IndexURL: cfg.Registry.Index}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Registry.Strategy)
	}
}

func newTagger(cfg config.Config, runner release.Runner, out io.Writer) (release.Tagger, error) {
	switch cfg.Tag.Via {
	case config.TagViaGit:
		return &release.GitTagger{Runner: runner, Remote: cfg.Tag.Remote, Out: out}, nil
	case config.TagViaAPI:
		return &release.APITagger{
			Owner: cfg.GitHub.Owner,
			Repo:  cfg.GitHub.Repo,
			Token: strings.TrimSpace(os.Getenv("GITHUB_TOKEN")),
		}, nil
	default:
		return nil, fmt.Errorf("unknown tag mode %q", cfg.Tag.Via)
	}
}

func newExecutor(cfg config.Config, out io.Writer) (*release.Executor, error) {
	runner := &release.ExecRunner{}
	tagger, err := newTagger(cfg, runner, out)
	if err != nil {
		return nil, err
	}
	return &release.Executor{Runner: runner, Tagger: tagger, Out: out}, nil
}
