// internal/app/system/paging/paging.go
package paging

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultPageSize is the number of rows a paged list endpoint returns when
// the request does not say otherwise.
const DefaultPageSize = 50

// MaxPageSize caps the limit parameter so one request cannot pull the whole
// catalog.
const MaxPageSize = 500

// ParseAfter extracts the "after" keyset cursor (an id). Returns 0 when the
// parameter is absent, an error when it is present but not a positive id.
func ParseAfter(r *http.Request) (int64, error) {
	raw := query.Get(r, "after")
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid after cursor %q", raw)
	}
	return id, nil
}

// ParseLimit extracts the "limit" parameter, applying the default and the
// cap. The returned value is what the caller should show; fetch one more
// row than this and use Trim to detect whether a next page exists.
func ParseLimit(r *http.Request) (int64, error) {
	raw := query.Get(r, "limit")
	if raw == "" {
		return DefaultPageSize, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 || n > MaxPageSize {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	return n, nil
}

// Result holds the output of Trim for keyset pagination.
type Result struct {
	HasNext bool
	NextID  int64
}

// Trim trims a slice fetched with limit+1 look-ahead. It modifies the slice
// in place; NextID is the id of the last row kept, ready to be echoed as
// the next request's after cursor.
func Trim[T any](rows *[]T, limit int64, id func(T) int64) Result {
	if int64(len(*rows)) <= limit {
		return Result{}
	}
	*rows = (*rows)[:limit]
	return Result{HasNext: true, NextID: id((*rows)[limit-1])}
}
