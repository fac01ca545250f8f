// Package inference loads a pretrained classifier and turns image files
// into identity predictions.
package inference

import (
	"fmt"

	"dropclassify/internal/config"
	"dropclassify/internal/imaging"
)

// Backend runs a single forward pass over one preprocessed input tensor
// and returns the raw output vector.
type Backend interface {
	Run(input []float32) ([]float32, error)
	Close() error
	Name() string
}

// OpenBackend loads the model named by cfg with the configured runtime.
func OpenBackend(cfg config.Config) (Backend, error) {
	layout, err := imaging.ParseLayout(cfg.Layout)
	if err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case config.BackendONNX:
		return NewONNXBackend(ONNXOptions{
			ModelPath:   cfg.ModelPath,
			LibraryPath: cfg.ORTLibrary,
			InputName:   cfg.InputName,
			OutputName:  cfg.OutputName,
			InputShape:  layout.Shape(cfg.ImageSize),
			OutputShape: []int64{1, int64(cfg.OutputSize)},
		})
	case config.BackendOpenCV:
		return NewOpenCVBackend(cfg.ModelPath, layout.Shape(cfg.ImageSize))
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
