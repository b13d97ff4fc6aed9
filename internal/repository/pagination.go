package repository

// Default and maximum page sizes for list endpoints.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest is a 1-indexed pagination request.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps the request to safe bounds: page >= 1 and
// 1 <= limit <= MaxPageSize, defaulting to 1/DefaultPageSize. Zero, negative
// and absent values never produce undefined offsets.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

// Offset returns the row offset for the normalized request.
func (p PageRequest) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}
