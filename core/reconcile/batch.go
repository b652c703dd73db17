package reconcile

import "fmt"

// Split divides items into chunks of at most size elements, preserving input
// order. The final chunk may be shorter. Concatenating the returned chunks
// reproduces the input exactly.
//
// A non-positive size is a caller contract violation and returns an error
// before any work is done.
func Split(items []Item, size int) ([][]Item, error) {
	if size <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", size)
	}

	chunks := make([][]Item, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}

	return chunks, nil
}
