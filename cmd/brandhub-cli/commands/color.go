// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/boxer32/waykeeper-brand-hub/cmd/brandhub-cli/config"
	"github.com/boxer32/waykeeper-brand-hub/compliance"
	"github.com/spf13/cobra"
)

func NewContrastCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "contrast <fg> <bg>",
		Short: "Compute the WCAG contrast ratio of two hex colors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Brand()
			if err != nil {
				return err
			}
			res, err := compliance.CheckContrast(args[0], args[1], cfg.WCAG)
			if err != nil {
				return err
			}
			fmt.Println(renderContrast(args[0], args[1], res, cfg.WCAG))
			return nil
		},
	}
}

func NewNearestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "nearest <hex>",
		Short: "Find the brand palette color closest to a hex color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Brand()
			if err != nil {
				return err
			}
			res, err := compliance.NearestBrandColor(args[0], cfg.Palette)
			if err != nil {
				return err
			}
			fmt.Printf("%s is closest to %s (%s), distance %.2f\n", args[0], res.Nearest, res.Hex, res.Distance)
			return nil
		},
	}
}
