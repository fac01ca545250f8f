package inference

import "errors"

var ErrEmptyOutput = errors.New("model returned an empty output vector")

// Argmax returns the index of the largest score. Ties resolve to the
// lowest index.
func Argmax(scores []float32) (int, error) {
	if len(scores) == 0 {
		return -1, ErrEmptyOutput
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best, nil
}
