package pagination

// Limits applied to list queries regardless of what the client asked for.
const (
	DefaultLimit = 25
	MaxLimit     = 100
)

// ClampPaginationParams sanitizes limit/offset values coming from query
// parameters.
func ClampPaginationParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
