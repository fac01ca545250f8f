package gui

import (
	"image"

	"dropclassify/internal/gui/components"
	"dropclassify/internal/imaging"
	"dropclassify/internal/logger"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

const (
	PromptText      = "Drop an image here"
	UnsupportedText = "Not a supported image file."
	ClassifyingText = "Classifying..."
)

// Manager owns the window content. All methods must run on the fyne
// UI goroutine.
type Manager struct {
	window  fyne.Window
	logger  logger.Logger
	status  *components.StatusLabel
	preview *components.ImageDisplay
}

func NewManager(window fyne.Window, log logger.Logger, previewSize int) *Manager {
	manager := &Manager{
		window:  window,
		logger:  log,
		status:  components.NewStatusLabel(PromptText),
		preview: components.NewImageDisplay(previewSize),
	}

	log.Debug("GUIManager", "initialized", map[string]interface{}{
		"preview_size": previewSize,
	})

	return manager
}

func (m *Manager) GetMainContainer() fyne.CanvasObject {
	return container.NewVBox(
		container.NewPadded(m.status.Widget()),
		container.NewCenter(m.preview.Widget()),
	)
}

// SetDropHandler makes the window a drop target. handler receives the
// local paths of every dropped item, in drop order.
func (m *Manager) SetDropHandler(handler func(paths []string)) {
	m.window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		paths := URIPaths(uris)
		m.logger.Debug("GUIManager", "items dropped", map[string]interface{}{
			"count": len(paths),
		})
		handler(paths)
	})
}

func URIPaths(uris []fyne.URI) []string {
	paths := make([]string, 0, len(uris))
	for _, uri := range uris {
		if uri == nil {
			continue
		}
		paths = append(paths, uri.Path())
	}
	return paths
}

func (m *Manager) SetStatus(text string) {
	m.status.SetText(text)
}

func (m *Manager) Status() string {
	return m.status.Text()
}

func (m *Manager) SetPreview(img image.Image) {
	m.preview.SetImage(img)
}

func (m *Manager) Preview() image.Image {
	return m.preview.Image()
}

func (m *Manager) ShowError(err error) {
	m.logger.Error("GUIManager", err, nil)
	dialog.ShowError(err, m.window)
}

func (m *Manager) ShowInformation(title, message string) {
	dialog.ShowInformation(title, message, m.window)
}

// ShowFileOpen asks for an image file and passes its local path to
// onSelected. Cancelling calls nothing.
func (m *Manager) ShowFileOpen(onSelected func(path string)) {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			m.ShowError(err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		onSelected(path)
	}, m.window)

	open.SetFilter(storage.NewExtensionFileFilter(imaging.SupportedExtensions))
	open.Show()
}
