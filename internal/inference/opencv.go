package inference

import (
	"fmt"
	"unsafe"

	"gocv.io/x/gocv"
)

// OpenCVBackend runs the model through the OpenCV DNN module on CPU.
type OpenCVBackend struct {
	net   gocv.Net
	sizes []int
}

// NewOpenCVBackend reads any model format OpenCV DNN understands. shape is
// the full input blob shape including the batch dimension.
func NewOpenCVBackend(modelPath string, shape []int64) (*OpenCVBackend, error) {
	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		net.Close()
		return nil, fmt.Errorf("failed to read network from %s", modelPath)
	}

	if err := net.SetPreferableBackend(gocv.NetBackendOpenCV); err != nil {
		net.Close()
		return nil, fmt.Errorf("failed to set DNN backend: %w", err)
	}
	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		net.Close()
		return nil, fmt.Errorf("failed to set DNN target: %w", err)
	}

	sizes := make([]int, len(shape))
	for i, dim := range shape {
		sizes[i] = int(dim)
	}

	return &OpenCVBackend{net: net, sizes: sizes}, nil
}

func (b *OpenCVBackend) Name() string { return "opencv" }

func (b *OpenCVBackend) Run(input []float32) ([]float32, error) {
	expected := 1
	for _, dim := range b.sizes {
		expected *= dim
	}
	if len(input) != expected {
		return nil, fmt.Errorf("input has %d values, model expects %d", len(input), expected)
	}

	raw := unsafe.Slice((*byte)(unsafe.Pointer(&input[0])), len(input)*4)
	blob, err := gocv.NewMatWithSizesFromBytes(b.sizes, gocv.MatTypeCV32FC1, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to build input blob: %w", err)
	}
	defer blob.Close()

	b.net.SetInput(blob, "")
	out := b.net.Forward("")
	defer out.Close()

	if out.Empty() {
		return nil, fmt.Errorf("network returned an empty output")
	}

	scores, err := out.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("failed to read network output: %w", err)
	}

	result := make([]float32, len(scores))
	copy(result, scores)
	return result, nil
}

func (b *OpenCVBackend) Close() error {
	return b.net.Close()
}
