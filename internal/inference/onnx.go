package inference

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"
)

// Swapped out in tests, which run without the onnxruntime shared library.
var (
	ortIsInitialized = ort.IsInitialized
	ortInitialize    = ort.InitializeEnvironment
	ortDestroy       = ort.DestroyEnvironment
)

// ortEnvironment remembers whether this backend started the onnxruntime
// environment. Only the owner tears it down.
type ortEnvironment struct {
	owned bool
}

func acquireEnvironment() (ortEnvironment, error) {
	if ortIsInitialized() {
		return ortEnvironment{}, nil
	}
	if err := ortInitialize(); err != nil {
		return ortEnvironment{}, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}
	return ortEnvironment{owned: true}, nil
}

func (e *ortEnvironment) release() error {
	if !e.owned {
		return nil
	}
	e.owned = false
	return ortDestroy()
}

type ONNXOptions struct {
	ModelPath   string
	LibraryPath string
	InputName   string
	OutputName  string
	InputShape  []int64
	OutputShape []int64
}

// ONNXBackend keeps one session with pre-allocated tensors for the
// lifetime of the process.
type ONNXBackend struct {
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
	env          ortEnvironment
}

func NewONNXBackend(opts ONNXOptions) (*ONNXBackend, error) {
	if opts.LibraryPath != "" {
		ort.SetSharedLibraryPath(opts.LibraryPath)
	}

	env, err := acquireEnvironment()
	if err != nil {
		return nil, err
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(opts.InputShape...))
	if err != nil {
		env.release()
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(opts.OutputShape...))
	if err != nil {
		inputTensor.Destroy()
		env.release()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(opts.ModelPath,
		[]string{opts.InputName}, []string{opts.OutputName},
		[]ort.Value{inputTensor}, []ort.Value{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		env.release()
		return nil, fmt.Errorf("failed to create ONNX session for %s: %w", opts.ModelPath, err)
	}

	return &ONNXBackend{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
		env:          env,
	}, nil
}

func (b *ONNXBackend) Name() string { return "onnx" }

func (b *ONNXBackend) Run(input []float32) ([]float32, error) {
	dst := b.inputTensor.GetData()
	if len(input) != len(dst) {
		return nil, fmt.Errorf("input has %d values, model expects %d", len(input), len(dst))
	}
	copy(dst, input)

	if err := b.session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	out := b.outputTensor.GetData()
	result := make([]float32, len(out))
	copy(result, out)
	return result, nil
}

func (b *ONNXBackend) Close() error {
	if b.inputTensor != nil {
		b.inputTensor.Destroy()
	}
	if b.outputTensor != nil {
		b.outputTensor.Destroy()
	}
	if b.session != nil {
		b.session.Destroy()
	}
	return b.env.release()
}
