package ml

// Argmax returns the index of the maximum value in the vector.
// Ties resolve to the lowest index (first-maximum scan).
func Argmax(probs []float32) int {
	maxIdx := 0
	for i, v := range probs {
		if v > probs[maxIdx] {
			maxIdx = i
		}
	}
	return maxIdx
}

// TryPaths invokes load on each candidate path in order and returns the
// first success. On total failure it returns the error of the last attempt.
func TryPaths[T any](paths []string, load func(string) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for _, p := range paths {
		v, err := load(p)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
	return zero, lastErr
}
