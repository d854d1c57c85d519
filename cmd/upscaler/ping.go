package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"image-upscaler/internal/models"
	"image-upscaler/internal/services"
)

type pingReport struct {
	BaseURL string              `yaml:"base_url"`
	Health  models.HealthStatus `yaml:"health"`
}

func newPingCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the upscaling service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			baseURL := opts.cfg.Endpoints.BaseURL(opts.host())
			service := services.NewUpscaleService(opts.cfg.Timeout.Duration, opts.cfg.MaxResponseBytes(), opts.logger)

			status, err := service.Health(cmd.Context(), baseURL)
			if err != nil {
				return fmt.Errorf("%s is not reachable: %w", baseURL, err)
			}

			out, err := yaml.Marshal(pingReport{BaseURL: baseURL, Health: *status})
			if err != nil {
				return fmt.Errorf("failed to encode report: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
