package domain

import "math"

const (
	DefaultPage     = 1
	DefaultPageSize = 5
)

// Pagination is a 1-based offset page request.
type Pagination struct {
	Page  int
	Limit int
}

// Normalize replaces out of range values with defaults and caps Limit at
// maxLimit when maxLimit is positive. Page is clamped so that Offset never
// overflows int.
func (p Pagination) Normalize(defaultLimit, maxLimit int) Pagination {
	if defaultLimit < 1 {
		defaultLimit = DefaultPageSize
	}
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if maxPage := math.MaxInt / p.Limit; p.Page > maxPage {
		p.Page = maxPage
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

type PostPage struct {
	Posts []*Post
	Total int64
	Page  int
	Limit int
}

// TotalPages is ceil(Total/Limit). It does not depend on Page, so a page past
// the end reports the same value as any other page.
func (p PostPage) TotalPages() int {
	if p.Limit < 1 || p.Total <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Limit) - 1) / int64(p.Limit))
}
