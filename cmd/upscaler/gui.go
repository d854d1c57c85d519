package main

import (
	"context"

	"github.com/spf13/cobra"

	"image-upscaler/internal/app"
)

func newGUICmd(opts *rootOptions, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "gui [image]",
		Short: "Open the desktop window",
		Example: `  # Open the window
  upscaler gui

  # Open the window with an image already selected
  upscaler gui photo.jpg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preselect := ""
			if len(args) == 1 {
				preselect = args[0]
			}
			return runGUI(cmd.Context(), opts, version, preselect)
		},
	}
}

func runGUI(ctx context.Context, opts *rootOptions, version, preselect string) error {
	application, err := app.NewApplication(app.Options{
		Config:  opts.cfg,
		Host:    opts.host,
		Logger:  opts.logger,
		Version: version,
	})
	if err != nil {
		return err
	}

	if preselect != "" {
		if err := application.Preselect(preselect); err != nil {
			return err
		}
	}

	return application.Run(ctx)
}
