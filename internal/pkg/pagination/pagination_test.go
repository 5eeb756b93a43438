package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		per   int
		total int64
		want  Pages
	}{
		{
			name: "first page of 25", page: 1, per: 10, total: 25,
			want: Pages{Page: 1, PerPage: 10, Total: 25, TotalPages: 3, StartIndex: 1, EndIndex: 10},
		},
		{
			name: "last partial page", page: 3, per: 10, total: 25,
			want: Pages{Page: 3, PerPage: 10, Total: 25, TotalPages: 3, StartIndex: 21, EndIndex: 25},
		},
		{
			name: "page past the end clamps to last", page: 4, per: 10, total: 25,
			want: Pages{Page: 3, PerPage: 10, Total: 25, TotalPages: 3, StartIndex: 21, EndIndex: 25},
		},
		{
			name: "page zero becomes one", page: 0, per: 10, total: 25,
			want: Pages{Page: 1, PerPage: 10, Total: 25, TotalPages: 3, StartIndex: 1, EndIndex: 10},
		},
		{
			name: "zero per page falls back to default", page: 1, per: 0, total: 5,
			want: Pages{Page: 1, PerPage: DefaultPerPage, Total: 5, TotalPages: 1, StartIndex: 1, EndIndex: 5},
		},
		{
			name: "empty set reports zero indexes", page: 1, per: 10, total: 0,
			want: Pages{Page: 1, PerPage: 10, Total: 0, TotalPages: 0, StartIndex: 0, EndIndex: 0},
		},
		{
			name: "total equal to page size is one page", page: 1, per: 10, total: 10,
			want: Pages{Page: 1, PerPage: 10, Total: 10, TotalPages: 1, StartIndex: 1, EndIndex: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(Params{Page: tt.page, PerPage: tt.per}, tt.total)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOffsetAndSlice(t *testing.T) {
	pg := Resolve(Params{Page: 3, PerPage: 10}, 25)
	assert.Equal(t, 20, pg.Offset())

	lo, hi := pg.Slice(25)
	assert.Equal(t, 20, lo)
	assert.Equal(t, 25, hi)

	// Slice never exceeds the backing length.
	lo, hi = pg.Slice(15)
	assert.Equal(t, 15, lo)
	assert.Equal(t, 15, hi)
}
