// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package brand

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultConfig []byte

type PaletteColor struct {
	Name string `yaml:"name" json:"name"`
	Hex  string `yaml:"hex" json:"hex"`
}

type LogoRules struct {
	MinHeightPx        int     `yaml:"minHeightPx" json:"minHeightPx"`
	MinClearSpaceRatio float64 `yaml:"minClearSpaceRatio" json:"minClearSpaceRatio"`
}

type WCAGRules struct {
	NormalRatio float64 `yaml:"normalRatio" json:"normalRatio"`
	LargeRatio  float64 `yaml:"largeRatio" json:"largeRatio"`
}

type Dimensions struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Config holds the brand rules every compliance check is measured against.
type Config struct {
	Name             string         `yaml:"name" json:"name"`
	Logo             LogoRules      `yaml:"logo" json:"logo"`
	Palette          []PaletteColor `yaml:"palette" json:"palette"`
	WCAG             WCAGRules      `yaml:"wcag" json:"wcag"`
	MinDimensions    Dimensions     `yaml:"minDimensions" json:"minDimensions"`
	PreferredFormats []string       `yaml:"preferredFormats" json:"preferredFormats"`
}

// Default returns the built-in Waykeeper brand rules.
func Default() Config {
	cfg, err := parse(defaultConfig)
	if err != nil {
		// only fails on a broken build
		panic(fmt.Sprintf("invalid embedded brand config: %v", err))
	}
	return cfg
}

// Load reads brand rules from a yaml file. An empty path returns the defaults.
// Values missing in the file keep their default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "could not read brand config")
	}

	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "could not parse brand config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parse(b []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if len(c.Palette) == 0 {
		return fmt.Errorf("brand palette must not be empty")
	}
	for _, p := range c.Palette {
		if _, err := ParseHex(p.Hex); err != nil {
			return fmt.Errorf("palette color %q: %w", p.Name, err)
		}
	}
	if c.WCAG.NormalRatio <= 0 || c.WCAG.LargeRatio <= 0 {
		return fmt.Errorf("wcag ratios must be positive")
	}
	if c.Logo.MinHeightPx < 0 {
		return fmt.Errorf("logo min height must not be negative")
	}
	return nil
}

// PaletteHexes returns "Name #HEX" pairs, in palette order.
func (c Config) PaletteHexes() []string {
	res := make([]string, 0, len(c.Palette))
	for _, p := range c.Palette {
		res = append(res, fmt.Sprintf("%s %s", p.Name, p.Hex))
	}
	return res
}
