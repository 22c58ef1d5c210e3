package closer

import (
	"sync"
)

var (
	closers []func() error
	mu      sync.Mutex
)

func Add(closer func() error) {
	mu.Lock()
	defer mu.Unlock()
	closers = append(closers, closer)
}

// CloseAll runs registered closers in reverse registration order so that
// dependents shut down before the resources they use.
func CloseAll() error {
	mu.Lock()
	defer mu.Unlock()

	var firstErr error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	closers = nil
	return firstErr
}
