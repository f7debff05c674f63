// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/boxer32/waykeeper-brand-hub/client"
	"github.com/boxer32/waykeeper-brand-hub/cmd/brandhub-cli/config"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set via ldflags during build
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const (
	defaultConfigFilename = ".brandhub"
)

var RootCmd = &cobra.Command{
	SilenceUsage:      true,
	Use:               "brandhub-cli",
	Short:             "Check designs and copy against the Waykeeper brand",
	Version:           version,
	DisableAutoGenTag: true,
	Long: `Check designs and copy against the Waykeeper brand

brandhub-cli talks to a Brand Hub server to review design images and copy text,
and answers color questions about the brand palette locally. Configuration can be
provided via a ./.brandhub config file or environment variables (prefix BRANDHUB_).`,
	Example: `  # Review a design image
  brandhub-cli check ./banner.png

  # Review an image by url and fail below a score of 70
  brandhub-cli check --url https://cdn.example.com/banner.jpg --failUnder 70

  # Analyze copy text
  brandhub-cli voice --scenario "Booking Confirmation" --audience Family "Your trip is booked!"

  # Contrast and palette lookups without a server
  brandhub-cli contrast "#2E6CF6" "#FFFFFF"
  brandhub-cli nearest "#3070F0"`,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init the logger - get the level
		level, err := cmd.Flags().GetString("logLevel")
		if err != nil {
			return err
		}

		switch level {
		case "debug":
			initLogger(slog.LevelDebug)
		case "warn":
			initLogger(slog.LevelWarn)
		case "error":
			initLogger(slog.LevelError)
		default:
			initLogger(slog.LevelInfo)
		}

		return initializeConfig(cmd)
	},
}

func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Brand Hub CLI\n")
			fmt.Printf("Version:    %s\n", version)
			fmt.Printf("Commit:     %s\n", commit)
			fmt.Printf("Built:      %s\n", date)
		},
	}

	RootCmd.AddCommand(
		versionCmd,
		NewCheckCommand(),
		NewVoiceCommand(),
		NewContrastCommand(),
		NewNearestCommand(),
	)

	RootCmd.PersistentFlags().StringP("logLevel", "l", "info", "Set the log level. Options: debug, info, warn, error")
	RootCmd.PersistentFlags().String("apiUrl", "http://localhost:8080", "The url of the Brand Hub server")
	RootCmd.PersistentFlags().Int("timeout", 120, "Request timeout in seconds")
	RootCmd.PersistentFlags().Bool("json", false, "Print the raw json response")
	RootCmd.PersistentFlags().String("brandConfig", "", "Brand rules yaml for the local commands. Defaults to the built-in rules")
}

func initLogger(level slog.Leveler) {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

func initializeConfig(cmd *cobra.Command) error {
	viper.SetConfigName(defaultConfigFilename)
	viper.AddConfigPath(".")
	// It's okay if there isn't a config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		slog.Debug("no config file found")
	}

	viper.SetEnvPrefix("BRANDHUB")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	bindFlags(cmd)

	return config.ParseBaseConfig()
}

// Bind each cobra flag to its associated viper configuration (config file and environment variable)
func bindFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && viper.IsSet(f.Name) {
			val := viper.Get(f.Name)
			cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)) // nolint: errcheck
		}

		if err := viper.BindPFlag(f.Name, f); err != nil {
			slog.Error("could not bind flag to viper", "err", err)
		}
	})
}

func newClient() client.BrandHubClient {
	return client.NewBrandHubClient(config.RuntimeBaseConfig.APIURL, time.Duration(config.RuntimeBaseConfig.Timeout)*time.Second)
}
