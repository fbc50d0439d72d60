// Package repository is the per-collection access layer over the working store.
package repository

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// IDGenerator produces record ids. Ids are never derived from the clock.
type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

func NewIDGenerator() IDGenerator {
	return UUIDGenerator{}
}

// list returns a copy of items in stored order, keeping those matched by keep (all when keep is nil).
func list[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep == nil || keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func indexOf[T any](items []T, id string, idOf func(T) string) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

// removeAll drops every record carrying id; a missing id leaves items untouched.
func removeAll[T any](items []T, id string, idOf func(T) string) []T {
	out := items[:0]
	for _, item := range items {
		if idOf(item) != id {
			out = append(out, item)
		}
	}
	return out
}
