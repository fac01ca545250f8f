package app

import (
	"image"
	"sync/atomic"

	"dropclassify/internal/debug/timing"
	"dropclassify/internal/gui"
	"dropclassify/internal/imaging"
	"dropclassify/internal/logger"

	"fyne.io/fyne/v2"
)

// Predictor is the inference surface the GUI needs.
type Predictor interface {
	Predict(path string) string
	Timing() *timing.Tracker
	Close() error
}

// View is the subset of gui.Manager the handlers drive.
type View interface {
	SetStatus(text string)
	SetPreview(img image.Image)
	ShowInformation(title, message string)
	ShowFileOpen(onSelected func(path string))
}

type Handlers struct {
	predictor   Predictor
	view        View
	logger      logger.Logger
	previewSize int

	// async runs classification off the UI goroutine; ui marshals the
	// result back onto it.
	async func(func())
	ui    func(func())

	// generation is bumped on every drop so a result that finishes after
	// a newer drop never overwrites the label.
	generation atomic.Uint64
}

func NewHandlers(predictor Predictor, view View, log logger.Logger, previewSize int) *Handlers {
	return &Handlers{
		predictor:   predictor,
		view:        view,
		logger:      log,
		previewSize: previewSize,
		async:       func(fn func()) { go fn() },
		ui:          fyne.Do,
	}
}

// HandleDrop reacts to a drop on the window. Only the first path is
// considered.
func (h *Handlers) HandleDrop(paths []string) {
	if len(paths) == 0 {
		return
	}
	h.classify(paths[0])
}

func (h *Handlers) HandleOpen() {
	h.view.ShowFileOpen(h.classify)
}

func (h *Handlers) HandlePerformanceReport() {
	h.view.ShowInformation("Performance Report", h.predictor.Timing().Report())
}

func (h *Handlers) HandleResetTimings() {
	h.predictor.Timing().Reset("")
	h.logger.Debug("Handlers", "timings reset", nil)
}

func (h *Handlers) classify(path string) {
	gen := h.generation.Add(1)

	if !imaging.IsSupported(path) {
		h.logger.Warning("Handlers", "unsupported file dropped", logger.PathFields(path, nil))
		h.view.SetStatus(gui.UnsupportedText)
		return
	}

	preview, err := imaging.LoadPreview(path, h.previewSize)
	if err != nil {
		h.logger.Error("Handlers", err, logger.PathFields(path, map[string]interface{}{
			"stage": "preview",
		}))
	}
	h.view.SetPreview(preview)
	h.view.SetStatus(gui.ClassifyingText)

	h.async(func() {
		name := h.predictor.Predict(path)
		h.ui(func() {
			if h.generation.Load() != gen {
				h.logger.Debug("Handlers", "discarding stale prediction", logger.PathFields(path, map[string]interface{}{
					"prediction": name,
				}))
				return
			}
			h.view.SetStatus("Prediction: " + name)
		})
		h.logger.Info("Handlers", "dropped file", logger.PathFields(path, map[string]interface{}{
			"prediction": name,
		}))
	})
}
