// Package memory holds process-local implementations of the repository
// interfaces. They honour the same conditional-write and uniqueness contracts
// as the MongoDB repositories and back the service tests and the "memory"
// database driver.
package memory

import (
	"sort"
	"strings"
	"time"

	"neighborhub/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// sortKey extracts the comparable value for a pagination sort field.
type sortKey[T any] func(item T, field string) (float64, bool)

// page sorts items according to params and returns the requested window and
// the total before windowing.
func page[T any](items []T, params *utils.PaginationParams, key sortKey[T], id func(T) primitive.ObjectID) ([]T, int64) {
	desc := params.Order != "asc"
	sort.SliceStable(items, func(i, j int) bool {
		a, okA := key(items[i], params.Sort)
		b, okB := key(items[j], params.Sort)
		if okA && okB && a != b {
			if desc {
				return a > b
			}
			return a < b
		}
		ia, ib := id(items[i]).Hex(), id(items[j]).Hex()
		if desc {
			return ia > ib
		}
		return ia < ib
	})

	total := int64(len(items))
	start := params.GetSkip()
	if start >= len(items) {
		return []T{}, total
	}
	end := start + params.GetLimit()
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total
}

func matchesSearch(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func unixNano(t time.Time) float64 {
	return float64(t.UnixNano())
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyID(id *primitive.ObjectID) *primitive.ObjectID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func copyInt(i *int) *int {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}
