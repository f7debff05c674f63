// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/boxer32/waykeeper-brand-hub/brand"
	"github.com/spf13/viper"
)

type baseConfig struct {
	APIURL      string `json:"apiUrl" mapstructure:"apiUrl"`
	Timeout     int    `json:"timeout" mapstructure:"timeout"`
	JSON        bool   `json:"json" mapstructure:"json"`
	BrandConfig string `json:"brandConfig" mapstructure:"brandConfig"`
}

var RuntimeBaseConfig baseConfig

func ParseBaseConfig() error {
	if err := viper.Unmarshal(&RuntimeBaseConfig); err != nil {
		return err
	}

	if RuntimeBaseConfig.APIURL != "" {
		apiURL, err := sanitizeAPIURL(RuntimeBaseConfig.APIURL)
		if err != nil {
			return err
		}
		RuntimeBaseConfig.APIURL = apiURL
	}

	if RuntimeBaseConfig.Timeout <= 0 {
		RuntimeBaseConfig.Timeout = 120
	}
	return nil
}

func sanitizeAPIURL(apiURL string) (string, error) {
	apiURL = strings.TrimSuffix(strings.TrimSpace(apiURL), "/")
	u, err := url.Parse(apiURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid api url %q", apiURL)
	}
	// the client adds the /api prefix itself
	return strings.TrimSuffix(apiURL, "/api"), nil
}

// Brand returns the brand rules for the local commands.
func Brand() (brand.Config, error) {
	return brand.Load(RuntimeBaseConfig.BrandConfig)
}
