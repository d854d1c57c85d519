package components

import (
	"image"
	"image/color"
	"image/draw"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 480
	ImageAreaHeight = 360
)

// ImageDisplay shows the original and enhanced images side by side with the
// resolution details of the last result underneath
type ImageDisplay struct {
	container     *container.Scroll
	originalImage *canvas.Image
	enhancedImage *canvas.Image
	splitView     *container.Split

	resultInfo  *fyne.Container
	oldResLabel *widget.Label
	newResLabel *widget.Label

	placeholder image.Image

	hasOriginal bool
	hasEnhanced bool
}

// NewImageDisplay creates a new image display component
func NewImageDisplay() *ImageDisplay {
	display := &ImageDisplay{}
	display.createComponents()
	display.setupLayout()
	return display
}

func (id *ImageDisplay) createComponents() {
	id.placeholder = createPlaceholder()

	id.originalImage = newPreviewImage(id.placeholder)
	id.enhancedImage = newPreviewImage(id.placeholder)

	id.oldResLabel = widget.NewLabel("")
	id.newResLabel = widget.NewLabel("")
}

func newPreviewImage(img image.Image) *canvas.Image {
	preview := canvas.NewImageFromImage(img)
	preview.FillMode = canvas.ImageFillContain
	preview.ScaleMode = canvas.ImageScaleSmooth
	preview.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))
	return preview
}

// createPlaceholder draws a light gray frame used before any image is shown
func createPlaceholder() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, ImageAreaWidth, ImageAreaHeight))

	borderColor := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	lightGray := color.RGBA{R: 240, G: 240, B: 240, A: 255}
	draw.Draw(img, img.Bounds(), &image.Uniform{C: borderColor}, image.Point{}, draw.Src)
	draw.Draw(img, img.Bounds().Inset(1), &image.Uniform{C: lightGray}, image.Point{}, draw.Src)

	return img
}

func (id *ImageDisplay) setupLayout() {
	originalContainer := container.NewBorder(
		widget.NewRichTextFromMarkdown("**Original**"),
		nil, nil, nil,
		container.NewStack(id.createImageBackground(), id.originalImage),
	)

	enhancedContainer := container.NewBorder(
		widget.NewRichTextFromMarkdown("**Upscaled**"),
		nil, nil, nil,
		container.NewStack(id.createImageBackground(), id.enhancedImage),
	)

	id.splitView = container.NewHSplit(originalContainer, enhancedContainer)
	id.splitView.SetOffset(0.5)

	id.resultInfo = container.NewHBox(
		widget.NewLabel("Original resolution:"),
		id.oldResLabel,
		widget.NewSeparator(),
		widget.NewLabel("New resolution:"),
		id.newResLabel,
	)
	id.resultInfo.Hide()

	id.container = container.NewVScroll(container.NewVBox(id.splitView, id.resultInfo))
}

func (id *ImageDisplay) createImageBackground() *canvas.Rectangle {
	return canvas.NewRectangle(color.RGBA{R: 252, G: 252, B: 252, A: 255})
}

// SetOriginalImage replaces the original preview; nil restores the placeholder
func (id *ImageDisplay) SetOriginalImage(img image.Image) {
	id.hasOriginal = img != nil
	if img == nil {
		img = id.placeholder
	}
	id.originalImage.Image = img
	id.originalImage.Refresh()
}

// ShowResult fills the enhanced preview and resolution labels and scrolls
// them into view
func (id *ImageDisplay) ShowResult(enhanced image.Image, oldRes, newRes string) {
	id.hasEnhanced = enhanced != nil
	if enhanced == nil {
		enhanced = id.placeholder
	}
	id.enhancedImage.Image = enhanced
	id.enhancedImage.Refresh()

	id.oldResLabel.SetText(oldRes)
	id.newResLabel.SetText(newRes)
	id.resultInfo.Show()
	id.container.ScrollToBottom()
}

// HideResult clears the enhanced preview and hides the resolution details
func (id *ImageDisplay) HideResult() {
	id.hasEnhanced = false
	id.enhancedImage.Image = id.placeholder
	id.enhancedImage.Refresh()

	id.oldResLabel.SetText("")
	id.newResLabel.SetText("")
	id.resultInfo.Hide()
}

func (id *ImageDisplay) HasOriginalImage() bool {
	return id.hasOriginal
}

func (id *ImageDisplay) HasEnhancedImage() bool {
	return id.hasEnhanced
}

func (id *ImageDisplay) ResultVisible() bool {
	return id.resultInfo.Visible()
}

// Resolutions returns the texts of the old and new resolution labels
func (id *ImageDisplay) Resolutions() (string, string) {
	return id.oldResLabel.Text, id.newResLabel.Text
}

func (id *ImageDisplay) GetContainer() fyne.CanvasObject {
	return id.container
}
