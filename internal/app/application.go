package app

import (
	"dropclassify/internal/config"
	"dropclassify/internal/gui"
	"dropclassify/internal/logger"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "Drag & Drop Image Classifier"
	AppID      = "com.dropclassify.desktop"
	AppVersion = "1.0.0"
)

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	guiManager *gui.Manager
	handlers   *Handlers
	lifecycle  *Lifecycle
	logger     logger.Logger
}

// NewApplication builds the window around an already loaded predictor.
func NewApplication(cfg config.Config, predictor Predictor, log logger.Logger) *Application {
	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)

	window.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))
	window.CenterOnScreen()
	window.SetMaster()

	guiManager := gui.NewManager(window, log, cfg.PreviewSize)
	handlers := NewHandlers(predictor, guiManager, log, cfg.PreviewSize)
	lifecycle := NewLifecycle(log, predictor)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		guiManager: guiManager,
		handlers:   handlers,
		lifecycle:  lifecycle,
		logger:     log,
	}

	guiManager.SetDropHandler(handlers.HandleDrop)
	application.setupMenus()

	log.Info("Application", "initialization complete", map[string]interface{}{
		"version":       AppVersion,
		"window_width":  cfg.WindowWidth,
		"window_height": cfg.WindowHeight,
	})

	return application
}

// Run blocks in the fyne event loop until the window is closed.
func (a *Application) Run() error {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.lifecycle.Shutdown()
		a.window.Close()
	})

	a.window.SetContent(a.guiManager.GetMainContainer())
	a.window.Show()

	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.lifecycle.Shutdown()
	return nil
}

// Quit closes the window from any goroutine.
func (a *Application) Quit() {
	fyne.Do(func() {
		a.lifecycle.Shutdown()
		a.fyneApp.Quit()
	})
}
