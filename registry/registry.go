// Package registry maps opaque handles to resources.
//
// Handles are minted from a per registry counter starting at 0 and are never reused,
// so a stale handle can only miss, it can never alias a newer resource.
// A registry is not safe for concurrent use.
package registry

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownHandle = errors.New("unknown handle")

type Registry[H ~uint32, T any] struct {
	items map[H]T
	next  H
}

func New[H ~uint32, T any]() *Registry[H, T] {
	return &Registry[H, T]{
		items: map[H]T{},
	}
}

// Add stores v and returns its new handle
func (r *Registry[H, T]) Add(v T) H {

	if r.items == nil {
		r.items = map[H]T{}
	}

	h := r.next
	r.items[h] = v
	r.next++

	return h
}

// Find returns the value stored under h. The bool is false for handles that were
// never issued or were removed.
func (r *Registry[H, T]) Find(h H) (T, bool) {
	v, ok := r.items[h]
	return v, ok
}

// Remove deletes h and returns what was stored under it
func (r *Registry[H, T]) Remove(h H) (T, error) {

	v, ok := r.items[h]
	if !ok {
		return v, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}

	delete(r.items, h)
	return v, nil
}

func (r *Registry[H, T]) Len() int {
	return len(r.items)
}

// Each calls f for every live entry in ascending handle order
func (r *Registry[H, T]) Each(f func(h H, v T)) {

	hs := make([]H, 0, len(r.items))
	for h := range r.items {
		hs = append(hs, h)
	}
	sort.Slice(hs, func(i, j int) bool { return hs[i] < hs[j] })

	for _, h := range hs {
		f(h, r.items[h])
	}
}
