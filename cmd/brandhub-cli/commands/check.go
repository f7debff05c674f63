// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/boxer32/waykeeper-brand-hub/cmd/brandhub-cli/config"
	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/boxer32/waykeeper-brand-hub/services"
	"github.com/briandowns/spinner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func contentTypeOf(path string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}

// localMetadata measures the image the same way the browser upload does.
// Images the inspector cannot read are sent without metadata.
func localMetadata(data []byte) *dtos.ClientMetadata {
	meta, err := services.NewImageInspector().Inspect(data)
	if err != nil {
		slog.Debug("could not read image metadata locally", "err", err)
		return nil
	}

	res := &dtos.ClientMetadata{
		Width:      meta.Width,
		Height:     meta.Height,
		ColorSpace: meta.ColorSpace,
	}
	if meta.DPI != nil {
		res.DPI = *meta.DPI
	}
	if meta.Height > 0 {
		res.AspectRatio = float64(meta.Width) / float64(meta.Height)
	}
	res.Megapixels = float64(meta.Width*meta.Height) / 1_000_000
	return res
}

func runCheck(cmd *cobra.Command, args []string) error {
	imageURL, _ := cmd.Flags().GetString("url")
	name, _ := cmd.Flags().GetString("name")
	failUnder, _ := cmd.Flags().GetInt("failUnder")

	if imageURL == "" && len(args) != 1 {
		return errors.New("provide an image file or --url")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(config.RuntimeBaseConfig.Timeout)*time.Second)
	defer cancel()

	c := newClient()

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = " Brand Hub: reviewing design image"
	s.Writer = os.Stderr

	var (
		report dtos.BrandImageReport
		err    error
	)
	if imageURL != "" {
		s.Start()
		report, err = c.CheckImageURL(ctx, imageURL, name)
	} else {
		path := args[0]
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return errors.Wrap(readErr, "could not read image")
		}
		if name == "" {
			name = filepath.Base(path)
		}
		s.Start()
		report, err = c.CheckDesignImage(ctx, name, contentTypeOf(path, data), data, localMetadata(data))
	}
	s.Stop()
	if err != nil {
		return err
	}

	if config.RuntimeBaseConfig.JSON {
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
	} else {
		fmt.Println(renderReport(report))
	}

	if failUnder > 0 && report.Score.Overall < failUnder {
		return fmt.Errorf("overall score %d is below %d", report.Score.Overall, failUnder)
	}
	return nil
}

func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [image]",
		Short: "Review a design image against the brand guidelines",
		Long:  `Uploads a design image (or sends an image url) to the Brand Hub server and prints the compliance report.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheck,
	}

	cmd.Flags().String("url", "", "Review the image at this url instead of a local file")
	cmd.Flags().String("name", "", "File name used in the report. Defaults to the local file name")
	cmd.Flags().Int("failUnder", 0, "Exit with an error if the overall score is below this value")
	return cmd
}
