// Package pagination normalises offset-based paging parameters.
package pagination

// DefaultLimit is the page size used when the caller does not ask for one.
const DefaultLimit = 10

// Normalize applies the default page size, caps it at maxLimit and clamps a negative offset to zero.
// A maxLimit of zero or less disables the cap.
func Normalize(limit, offset, maxLimit int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// HasMore reports whether rows exist past the current page.
func HasMore(offset, limit, total int) bool {
	return offset+limit < total
}
