package main

import (
	"github.com/spf13/cobra"

	"image-upscaler/internal/config"
	"image-upscaler/internal/logger"
)

// rootOptions is shared by every subcommand; load fills the derived fields
type rootOptions struct {
	configPath string
	local      bool
	logLevel   string

	cfg    config.Config
	logger logger.Logger
	host   config.HostFunc
}

func newRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "upscaler",
		Short: "Desktop and command line client for a remote image upscaling service",
		Long: `Upscaler sends an image to an upscaling service and shows or saves the result.

Without a subcommand it opens the desktop window. Images are uploaded as
multipart form data and the service answers with the enlarged image and the
old and new resolutions.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd.Context(), opts, version, "")
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a TOML config file (default $UPSCALER_CONFIG)")
	cmd.PersistentFlags().BoolVar(&opts.local, "local", false, "Send requests to the local development server")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error (default $LOG_LEVEL)")

	cmd.AddCommand(newGUICmd(opts, version))
	cmd.AddCommand(newUpscaleCmd(opts))
	cmd.AddCommand(newPingCmd(opts))

	return cmd
}

func (o *rootOptions) load() error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}

	o.cfg = cfg
	o.logger = logger.New(logger.Options{Level: cfg.LogLevel, JSON: cfg.JSONLogs})
	o.host = config.EnvHost
	if o.local {
		o.host = config.FixedHost(localHost(cfg.Endpoints))
	}
	return nil
}

func localHost(endpoints config.Endpoints) string {
	if len(endpoints.LocalHosts) > 0 {
		return endpoints.LocalHosts[0]
	}
	return "localhost"
}
