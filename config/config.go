// Package config loads bot configurations from YAML files.
package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"chessbots/bots"
	"chessbots/rules"
)

// BotConfig describes one bot instance. Zero values keep the variant's
// defaults.
type BotConfig struct {
	Name           string   `yaml:"name"`
	Variant        string   `yaml:"variant"`
	Engine         string   `yaml:"engine"`
	MateCheckDepth int      `yaml:"mate_check_depth"`
	Selection      string   `yaml:"selection"`
	TopK           int      `yaml:"top_k"`
	ScoreLimit     int      `yaml:"score_limit"`
	Fallback       string   `yaml:"fallback"`
	Terms          []string `yaml:"terms"`
	Seed           *uint64  `yaml:"seed"`
	StrictScoring  *bool    `yaml:"strict_scoring"`
}

// File is the on-disk layout: a list of bots plus logging settings.
type File struct {
	LogLevel string      `yaml:"log_level"`
	Bots     []BotConfig `yaml:"bots"`
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	for i, b := range f.Bots {
		if b.Variant == "" {
			return nil, fmt.Errorf("bot %d: variant is required", i)
		}
	}
	return &f, nil
}

// Find returns the bot config called name, matching the variant when no
// name is set.
func (f *File) Find(name string) (BotConfig, bool) {
	for _, b := range f.Bots {
		if b.Name == name || (b.Name == "" && b.Variant == name) {
			return b, true
		}
	}
	return BotConfig{}, false
}

// Options translates the config into bot options.
func (c BotConfig) Options() ([]bots.Option, error) {
	var options []bots.Option

	engine, err := rules.New(c.Engine)
	if err != nil {
		return nil, err
	}
	options = append(options, bots.WithEngine(engine), bots.WithMateCheckDepth(c.MateCheckDepth), bots.WithScoreLimit(c.ScoreLimit))

	if c.Selection != "" {
		selector, err := bots.NewSelector(c.Selection, c.TopK)
		if err != nil {
			return nil, err
		}
		options = append(options, bots.WithSelector(selector))
	}
	if len(c.Terms) > 0 {
		terms, err := bots.ParseTerms(c.Terms)
		if err != nil {
			return nil, err
		}
		options = append(options, bots.WithTerms(terms))
	}
	switch c.Fallback {
	case "":
	case "none", "empty":
		options = append(options, bots.WithFallback(bots.FallbackNoMove))
	case "opening", bots.OpeningMove:
		options = append(options, bots.WithFallback(bots.FallbackOpeningMove))
	default:
		return nil, fmt.Errorf("unknown fallback %q", c.Fallback)
	}
	if c.Seed != nil {
		options = append(options, bots.WithSeed(*c.Seed))
	}
	if c.StrictScoring != nil {
		options = append(options, bots.WithStrictScoring(*c.StrictScoring))
	}
	return options, nil
}

// Build returns the configured bot.
func (c BotConfig) Build() (bots.ChessBot, error) {
	options, err := c.Options()
	if err != nil {
		return nil, fmt.Errorf("bot %q: %w", c.Variant, err)
	}
	return bots.New(c.Variant, options...)
}

// LoadBot builds the bot called name, from the config file at path when one
// is given and from the built-in variants otherwise.
func LoadBot(name, path string) (bots.ChessBot, error) {
	if path == "" {
		return bots.New(name)
	}
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	if lvl, err := zerolog.ParseLevel(f.LogLevel); err == nil && f.LogLevel != "" {
		zerolog.SetGlobalLevel(lvl)
	}
	c, ok := f.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q not in %s", bots.ErrUnknownBot, name, path)
	}
	return c.Build()
}
