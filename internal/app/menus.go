package app

import "fyne.io/fyne/v2"

func (a *Application) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", a.handlers.HandleOpen),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.lifecycle.Shutdown()
			a.fyneApp.Quit()
		}),
	)

	debugMenu := fyne.NewMenu("Debug",
		fyne.NewMenuItem("Performance Report", a.handlers.HandlePerformanceReport),
		fyne.NewMenuItem("Reset Timings", a.handlers.HandleResetTimings),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, debugMenu))
}
