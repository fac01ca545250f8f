package inference

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"dropclassify/internal/debug/timing"
	"dropclassify/internal/imaging"
	"dropclassify/internal/labels"
	"dropclassify/internal/logger"
)

var ErrClosed = errors.New("predictor is closed")

// FailedLabel is what Predict returns when any stage fails.
const FailedLabel = "Prediction Failed"

type Options struct {
	Labels    labels.Table
	ImageSize int
	Layout    imaging.Layout
	Logger    logger.Logger
	Timing    *timing.Tracker
}

type Result struct {
	Index      int
	Label      string
	Confidence float32
	Scores     []float32
}

// Predictor runs one request at a time against a single backend.
type Predictor struct {
	backend   Backend
	labels    labels.Table
	imageSize int
	layout    imaging.Layout
	logger    logger.Logger
	timing    *timing.Tracker
	mu        sync.Mutex
}

func NewPredictor(backend Backend, opts Options) *Predictor {
	if opts.Labels == nil {
		opts.Labels = labels.Default
	}
	if opts.ImageSize <= 0 {
		opts.ImageSize = 224
	}
	if opts.Logger == nil {
		opts.Logger = logger.NoOp{}
	}
	if opts.Timing == nil {
		opts.Timing = timing.NewTracker()
	}

	return &Predictor{
		backend:   backend,
		labels:    opts.Labels,
		imageSize: opts.ImageSize,
		layout:    opts.Layout,
		logger:    opts.Logger,
		timing:    opts.Timing,
	}
}

func (p *Predictor) Timing() *timing.Tracker {
	return p.timing
}

// Classify decodes the image at path, runs the model and maps the
// arg-max index through the label table.
func (p *Predictor) Classify(path string) (*Result, error) {
	decodeCtx := p.timing.StartTiming("decode")
	img, format, err := imaging.DecodeFile(path)
	if err != nil {
		return nil, err
	}

	input, err := imaging.ToTensor(img, p.imageSize, p.layout)
	if err != nil {
		return nil, fmt.Errorf("failed to preprocess image: %w", err)
	}
	decodeTime := p.timing.EndTiming(decodeCtx)

	scores, inferTime, err := p.run(input)
	if err != nil {
		return nil, err
	}

	index, err := Argmax(scores)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Index:      index,
		Label:      p.labels.Name(index),
		Confidence: scores[index],
		Scores:     scores,
	}

	p.logger.Debug("Predictor", "image classified", logger.PathFields(path, map[string]interface{}{
		"format":     format,
		"index":      index,
		"label":      result.Label,
		"confidence": result.Confidence,
		"decode":     decodeTime.String(),
		"inference":  inferTime.String(),
	}))

	return result, nil
}

func (p *Predictor) run(input []float32) ([]float32, time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.backend == nil {
		return nil, 0, ErrClosed
	}

	ctx := p.timing.StartTiming("inference")
	scores, err := p.backend.Run(input)
	elapsed := p.timing.EndTiming(ctx)
	if err != nil {
		return nil, elapsed, fmt.Errorf("%s backend: %w", p.backend.Name(), err)
	}
	return scores, elapsed, nil
}

// Predict never fails: any error or panic while classifying is logged
// and reported as FailedLabel.
func (p *Predictor) Predict(path string) (label string) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Predictor", fmt.Errorf("panic during prediction: %v", r), logger.PathFields(path, nil))
			label = FailedLabel
		}
	}()

	result, err := p.Classify(path)
	if err != nil {
		p.logger.Error("Predictor", err, logger.PathFields(path, nil))
		return FailedLabel
	}
	return result.Label
}

func (p *Predictor) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.backend == nil {
		return nil
	}
	err := p.backend.Close()
	p.backend = nil
	return err
}
