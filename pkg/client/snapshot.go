package client

import "context"

// Snapshot is a collection as a screen sees it: on failure Items is empty
// and Err says why.
type Snapshot[T any] struct {
	Items []T
	Err   error
}

// Load runs fetch and degrades a failure to an empty collection.
func Load[T any](ctx context.Context, fetch func(context.Context) ([]T, error)) Snapshot[T] {
	items, err := fetch(ctx)
	if err != nil {
		return Snapshot[T]{Items: []T{}, Err: err}
	}
	if items == nil {
		items = []T{}
	}
	return Snapshot[T]{Items: items}
}
