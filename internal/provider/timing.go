package provider

import "time"

// Timed runs fn and reports how long it took
func Timed[T any](fn func() (T, error)) (T, time.Duration, error) {
	start := time.Now()
	v, err := fn()
	return v, time.Since(start), err
}
