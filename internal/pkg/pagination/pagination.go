// Package pagination implements fixed-size page windows with 1-based page
// numbers. Out-of-range pages clamp to the last valid page, and empty result
// sets report a 0/0 start/end index.
package pagination

const DefaultPerPage = 10

// Params carries the caller-requested page window.
type Params struct {
	Page    int
	PerPage int
}

// Pages describes the resolved window over a known total.
type Pages struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	StartIndex int   `json:"start_index"`
	EndIndex   int   `json:"end_index"`
}

// Resolve normalizes the requested window against the total row count.
// Page numbers below 1 become 1, pages past the end clamp to the last page.
func Resolve(p Params, total int64) Pages {
	perPage := p.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	page := p.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	pg := Pages{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	if total > 0 {
		pg.StartIndex = (page-1)*perPage + 1
		end := int64(page) * int64(perPage)
		if end > total {
			end = total
		}
		pg.EndIndex = int(end)
	}

	return pg
}

// Offset returns the zero-based row offset of the window.
func (p Pages) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Slice bounds the window against an in-memory result of length n.
func (p Pages) Slice(n int) (lo, hi int) {
	lo = p.Offset()
	if lo > n {
		lo = n
	}
	hi = lo + p.PerPage
	if hi > n {
		hi = n
	}
	return lo, hi
}
