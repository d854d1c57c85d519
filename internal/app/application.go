package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"image-upscaler/internal/config"
	"image-upscaler/internal/controllers"
	"image-upscaler/internal/imaging"
	"image-upscaler/internal/logger"
	"image-upscaler/internal/models"
	"image-upscaler/internal/services"
	"image-upscaler/internal/shutdown"
	"image-upscaler/internal/views"
)

const (
	AppName         = "Image Upscaler"
	AppID           = "com.imageupscaler.client"
	MinWindowWidth  = 1000
	MinWindowHeight = 560
)

// Options configures the desktop application
type Options struct {
	Config  config.Config
	Host    config.HostFunc
	Logger  logger.Logger
	Version string
}

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	view       *views.MainView
	controller *controllers.UpscaleController
	shutdown   *shutdown.Manager
	logger     logger.Logger
}

func NewApplication(opts Options) (*Application, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NoOp{}
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	fyneApp := fyneapp.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(MinWindowWidth, MinWindowHeight))
	window.CenterOnScreen()
	window.SetMaster()

	log.Info("Application", "starting application", map[string]interface{}{
		"version":  opts.Version,
		"remote":   opts.Config.Endpoints.RemoteURL,
		"local":    opts.Config.Endpoints.LocalURL,
		"timeout":  opts.Config.Timeout.String(),
		"max_body": opts.Config.MaxResponseBytes(),
	})

	view := views.NewMainView(window)
	controller := controllers.NewUpscaleController(view, controllers.Options{
		Endpoints: opts.Config.Endpoints,
		Host:      opts.Host,
		Uploader:  services.NewUpscaleService(opts.Config.Timeout.Duration, opts.Config.MaxResponseBytes(), log),
		Loader:    imaging.NewLoader(log),
		Logger:    log,
	})

	manager := shutdown.NewManager(log)
	manager.Register(view)
	manager.Register(controller)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		view:       view,
		controller: controller,
		shutdown:   manager,
		logger:     log,
	}
	application.setupHandlers()

	log.Info("Application", "initialization complete", nil)
	return application, nil
}

func (a *Application) setupHandlers() {
	handlers := NewHandlers(a.shutdown.Context(), a.controller, a.view, a.logger)

	a.view.SetOpenHandler(handlers.HandleOpen)
	a.view.SetDropHandler(handlers.HandleDrop)
	a.view.SetUpscaleHandler(handlers.HandleUpscale)
	a.view.SetSaveHandler(handlers.HandleSave)
}

// Preselect loads a file from disk as if it had been picked in the dialog
func (a *Application) Preselect(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	file := models.NewSelectedFile(filepath.Base(path), data, "")
	if _, ok := a.controller.SelectFile(file); !ok {
		return fmt.Errorf("%s is not an image (%s)", path, file.MIMEType)
	}
	return nil
}

// Run blocks until the window closes or ctx is cancelled
func (a *Application) Run(ctx context.Context) error {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.shutdown.Shutdown()
	})

	a.shutdown.Listen()
	go func() {
		select {
		case <-ctx.Done():
			a.logger.Info("Application", "context cancelled, initiating shutdown", nil)
			a.shutdown.Shutdown()
		case <-a.shutdown.Done():
		}
	}()
	a.window.Show()

	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.shutdown.Shutdown()
	return nil
}
