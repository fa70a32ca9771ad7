package common

import (
	"errors"
	"sync"
)

// RunParallel runs every function on its own goroutine, waits for all of
// them and joins whatever errors they returned. The result is nil when all
// succeeded.
func RunParallel(funcs ...func() error) error {
	var wg sync.WaitGroup
	errs := make(chan error, len(funcs))

	for _, fn := range funcs {
		wg.Add(1)
		go func(fn func() error) {
			defer wg.Done()
			if err := fn(); err != nil {
				errs <- err
			}
		}(fn)
	}

	wg.Wait()
	close(errs)

	var allErrs []error
	for err := range errs {
		allErrs = append(allErrs, err)
	}
	return errors.Join(allErrs...)
}
