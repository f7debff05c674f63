// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/boxer32/waykeeper-brand-hub/cmd/brandhub-cli/config"
	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/briandowns/spinner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// readText joins the arguments, a single "-" reads stdin.
func readText(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(err, "could not read stdin")
		}
		return strings.TrimSpace(string(b)), nil
	}
	return strings.TrimSpace(strings.Join(args, " ")), nil
}

func NewVoiceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voice <text|->",
		Short: "Analyze copy text for the brand voice and tone",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, _ := cmd.Flags().GetString("scenario")
			audience, _ := cmd.Flags().GetString("audience")

			text, err := readText(args, os.Stdin)
			if err != nil {
				return err
			}
			if text == "" {
				return errors.New("the text to analyze is empty")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(config.RuntimeBaseConfig.Timeout)*time.Second)
			defer cancel()

			s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
			s.Suffix = " Brand Hub: analyzing voice and tone"
			s.Writer = os.Stderr
			s.Start()
			res, err := newClient().AnalyzeVoiceTone(ctx, dtos.VoiceToneRequest{
				Scenario: scenario,
				Audience: audience,
				UserText: text,
			})
			s.Stop()
			if err != nil {
				return err
			}

			if config.RuntimeBaseConfig.JSON {
				fmt.Println(string(res.Analysis))
				return nil
			}
			out, err := renderVoiceTone(res)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().String("scenario", "", "The scenario, e.g. 'Booking Confirmation'")
	cmd.Flags().String("audience", "", "The audience, e.g. 'Family'")
	cmd.MarkFlagRequired("scenario") // nolint: errcheck
	cmd.MarkFlagRequired("audience") // nolint: errcheck
	return cmd
}
