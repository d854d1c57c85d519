package main

import (
	"fmt"
	"image"
	"io"
	"sync"

	"image-upscaler/internal/controllers"
	"image-upscaler/internal/models"
)

// terminalView renders controller updates as lines of text
type terminalView struct {
	mu      sync.Mutex
	out     io.Writer
	status  string
	alerts  []string
	result  *models.UpscaleResult
	preview image.Image
	loading bool
}

var _ controllers.View = (*terminalView)(nil)

func newTerminalView(out io.Writer) *terminalView {
	return &terminalView{out: out}
}

func (v *terminalView) SetOriginalPreview(img image.Image) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.preview = img
	if img != nil {
		b := img.Bounds()
		fmt.Fprintf(v.out, "Loaded %dx%d image\n", b.Dx(), b.Dy())
	}
}

func (v *terminalView) ShowResult(result models.UpscaleResult, _ image.Image) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.result = &result
}

func (v *terminalView) HideResult() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.result = nil
}

func (v *terminalView) SetActionEnabled(bool) {}

func (v *terminalView) SetActionLabel(string) {}

func (v *terminalView) SetLoading(loading bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = loading
}

func (v *terminalView) SetStatus(status string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if status == v.status {
		return
	}
	v.status = status
	fmt.Fprintln(v.out, status)
}

func (v *terminalView) Alert(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.alerts = append(v.alerts, message)
	fmt.Fprintln(v.out, message)
}

func (v *terminalView) Status() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}
