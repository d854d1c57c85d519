package controllers

import (
	"sync"

	"github.com/google/uuid"

	"image-upscaler/internal/config"
	"image-upscaler/internal/imaging"
	"image-upscaler/internal/logger"
	"image-upscaler/internal/models"
	"image-upscaler/internal/services"
)

// Options wires the controller's collaborators
type Options struct {
	Endpoints    config.Endpoints
	Host         config.HostFunc
	Uploader     services.Uploader
	Loader       imaging.Loader
	Logger       logger.Logger
	NewRequestID func() string
}

// UpscaleController owns the preview and upload lifecycle for one window
type UpscaleController struct {
	view         View
	endpoints    config.Endpoints
	host         config.HostFunc
	uploader     services.Uploader
	loader       imaging.Loader
	logger       logger.Logger
	newRequestID func() string

	mu       sync.Mutex
	selected *models.SelectedFile
	state    models.RequestState
	result   *models.UpscaleResult
	lastErr  error
	// generation bumps on every selection and every request; a finished
	// request only touches the view while its generation is still current.
	generation uint64
	// selection bumps on every selection and guards preview decodes
	selection  uint64
	isShutdown bool
}

// NewUpscaleController builds a controller and puts view into the Idle state
func NewUpscaleController(view View, opts Options) *UpscaleController {
	if opts.Logger == nil {
		opts.Logger = logger.NoOp{}
	}
	if opts.Host == nil {
		opts.Host = config.EnvHost
	}
	if opts.Loader == nil {
		opts.Loader = imaging.NewLoader(opts.Logger)
	}
	if opts.NewRequestID == nil {
		opts.NewRequestID = uuid.NewString
	}

	c := &UpscaleController{
		view:         view,
		endpoints:    opts.Endpoints,
		host:         opts.Host,
		uploader:     opts.Uploader,
		loader:       opts.Loader,
		logger:       opts.Logger,
		newRequestID: opts.NewRequestID,
		state:        models.Idle,
	}

	view.HideResult()
	view.SetLoading(false)
	view.SetActionLabel(ActionLabel)
	view.SetActionEnabled(false)
	view.SetStatus(StatusReady)

	return c
}

func (c *UpscaleController) State() models.RequestState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Selected returns the current file, if any
func (c *UpscaleController) Selected() (models.SelectedFile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return models.SelectedFile{}, false
	}
	return *c.selected, true
}

// Result returns the last successful result still on display
func (c *UpscaleController) Result() (models.UpscaleResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return models.UpscaleResult{}, false
	}
	return *c.result, true
}

func (c *UpscaleController) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Shutdown stops the controller from touching the view again
func (c *UpscaleController) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isShutdown {
		return
	}
	c.isShutdown = true
	c.logger.Info("UpscaleController", "shutdown", map[string]interface{}{
		"state": c.state.String(),
	})
}
