package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// StatusLabel is the drop prompt that also shows prediction results.
type StatusLabel struct {
	label *widget.Label
}

func NewStatusLabel(initial string) *StatusLabel {
	label := widget.NewLabel(initial)
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Bold: true}
	label.Wrapping = fyne.TextWrapWord

	return &StatusLabel{label: label}
}

func (s *StatusLabel) Widget() fyne.CanvasObject {
	return s.label
}

func (s *StatusLabel) SetText(text string) {
	s.label.SetText(text)
}

func (s *StatusLabel) Text() string {
	return s.label.Text
}
