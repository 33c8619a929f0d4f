// Package mapper holds slice helpers shared by the persistence mappers and
// the application DTO converters.
package mapper

import (
	"fmt"
)

// MapSlice applies mapFunc to each element. Returns nil for a nil input.
func MapSlice[T any, R any](items []T, mapFunc func(T) R) []R {
	if items == nil {
		return nil
	}

	result := make([]R, 0, len(items))
	for _, item := range items {
		result = append(result, mapFunc(item))
	}
	return result
}

// MapSliceWithID maps a slice of rows to domain entities, stopping at the
// first failure. The failing row's ID is added to the error.
func MapSliceWithID[T any, R any, ID any](
	items []T,
	mapFunc func(*T) (*R, error),
	getID func(*T) ID,
) ([]*R, error) {
	result := make([]*R, 0, len(items))
	for i := range items {
		mapped, err := mapFunc(&items[i])
		if err != nil {
			return nil, fmt.Errorf("failed to map row %v: %w", getID(&items[i]), err)
		}
		result = append(result, mapped)
	}
	return result, nil
}
