// Package mapper holds generic slice mapping helpers shared by the
// persistence mappers and the DTO converters.
package mapper

import "fmt"

// MapSlice converts every element with fn. A nil input stays nil so JSON
// encoders can tell "absent" from "empty".
func MapSlice[T any, R any](items []T, fn func(T) R) []R {
	if items == nil {
		return nil
	}

	out := make([]R, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

// MapRows converts persisted rows one by one. Nil rows and nil results are
// dropped; the first failure aborts and names the offending row by key.
func MapRows[T any, R any, K comparable](rows []*T, convert func(*T) (*R, error), key func(*T) K) ([]*R, error) {
	if rows == nil {
		return nil, nil
	}

	out := make([]*R, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		converted, err := convert(row)
		if err != nil {
			return nil, fmt.Errorf("failed to map row %v: %w", key(row), err)
		}
		if converted != nil {
			out = append(out, converted)
		}
	}
	return out, nil
}
