package homepage

import "sync"

// composeAll maps items to outputs concurrently. Output i depends on item i
// only and lands in slot i, so order is preserved whatever the scheduling.
// The error of the lowest failing index is returned.
func composeAll[T, C any](items []T, fn func(i int, item T) (C, error)) ([]C, error) {
	out := make([]C, len(items))
	errs := make([]error, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out[i], errs[i] = fn(i, item)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
