// Package query implements the read-only Query Surface (spec.md §4.7):
// node/nodes lookups, BFS/DFS traversal, reachability, call resolution,
// and guard/data-flow tracing, all returning Relay-style cursor
// connections over internal/store.
package query

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Connection is the cursor-paginated result envelope every query-surface
// list operation returns (spec.md §4.7/§6).
type Connection[T any] struct {
	Items           []T
	HasNextPage     bool
	HasPreviousPage bool
	TotalCount      int
	EndCursor       string
	StartCursor     string
}

// paginate slices items with an opaque base64 cursor, the same
// index-into-materialized-slice scheme the teacher's applyPagination[T]
// uses, generalized from an integer-string cursor to a base64-opaque one
// and extended with hasPreviousPage/totalCount per spec.md §4.7.
func paginate[T any](items []T, after string, first int) (Connection[T], error) {
	if first <= 0 {
		first = defaultPageSize
	}
	if first > maxPageSize {
		first = maxPageSize
	}

	start := 0
	if after != "" {
		idx, err := decodeCursor(after)
		if err != nil {
			return Connection[T]{}, fmt.Errorf("query: invalid cursor: %w", err)
		}
		if idx < 0 || idx >= len(items) {
			return Connection[T]{}, fmt.Errorf("query: cursor out of range")
		}
		start = idx + 1
	}

	end := start + first
	if end > len(items) {
		end = len(items)
	}
	page := items[start:end]

	conn := Connection[T]{
		Items:           page,
		HasPreviousPage: start > 0,
		HasNextPage:     end < len(items),
		TotalCount:      len(items),
	}
	if len(page) > 0 {
		conn.StartCursor = encodeCursor(start)
		conn.EndCursor = encodeCursor(end - 1)
	}
	return conn, nil
}

func encodeCursor(idx int) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(idx)))
}

func decodeCursor(cursor string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(string(raw))
}
