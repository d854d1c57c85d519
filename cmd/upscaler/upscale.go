package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"image-upscaler/internal/controllers"
	"image-upscaler/internal/imaging"
	"image-upscaler/internal/models"
	"image-upscaler/internal/services"
)

// upscaleSummary is printed to stdout after every run
type upscaleSummary struct {
	File     string `yaml:"file"`
	Endpoint string `yaml:"endpoint"`
	State    string `yaml:"state"`
	Status   string `yaml:"status"`
	OldRes   string `yaml:"old_res,omitempty"`
	NewRes   string `yaml:"new_res,omitempty"`
	Output   string `yaml:"output,omitempty"`
	Duration string `yaml:"duration"`
}

func newUpscaleCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "upscale <image>",
		Short: "Upscale one image without opening the window",
		Long: `Uploads the image to the upscaling service, writes the returned image to
disk and prints a YAML summary with the old and new resolutions.`,
		Example: `  # Write photo_upscaled.<ext> next to the input
  upscaler upscale photo.jpg

  # Use the local development server and pick the output path
  upscaler upscale photo.jpg --local -o big.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			file := models.NewSelectedFile(filepath.Base(path), data, "")

			view := newTerminalView(cmd.ErrOrStderr())
			controller := controllers.NewUpscaleController(view, controllers.Options{
				Endpoints: opts.cfg.Endpoints,
				Host:      opts.host,
				Uploader:  services.NewUpscaleService(opts.cfg.Timeout.Duration, opts.cfg.MaxResponseBytes(), opts.logger),
				Loader:    imaging.NewLoader(opts.logger),
				Logger:    opts.logger,
			})
			defer controller.Shutdown()

			decoded, ok := controller.SelectFile(file)
			if !ok {
				return fmt.Errorf("%s is not an image (%s)", path, file.MIMEType)
			}
			<-decoded

			summary := upscaleSummary{
				File:     path,
				Endpoint: opts.cfg.Endpoints.Resolve(opts.host()),
			}

			startTime := time.Now()
			done, started := controller.Start(cmd.Context())
			if !started {
				return errors.New("upload did not start")
			}

			select {
			case <-done:
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			}
			summary.Duration = time.Since(startTime).Round(time.Millisecond).String()
			summary.State = controller.State().String()
			summary.Status = view.Status()

			result, ok := controller.Result()
			if !ok {
				if err := writeSummary(cmd, summary); err != nil {
					return err
				}
				if err := controller.LastError(); err != nil {
					return err
				}
				return errors.New(summary.Status)
			}
			summary.OldRes = result.OldRes.String()
			summary.NewRes = result.NewRes.String()

			if output == "" {
				output = filepath.Join(filepath.Dir(path), services.SuggestedFileName(file.Name, result))
			}
			if err := saveTo(output, result); err != nil {
				return err
			}
			summary.Output = output

			return writeSummary(cmd, summary)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Where to write the upscaled image (default <name>_upscaled.<ext> next to the input)")

	return cmd
}

func saveTo(path string, result models.UpscaleResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := services.SaveResult(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeSummary(cmd *cobra.Command, summary upscaleSummary) error {
	encoder := yaml.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent(2)
	if err := encoder.Encode(summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return encoder.Close()
}
