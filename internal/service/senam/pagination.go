package senam

import (
	"fmt"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
)

const maxVisiblePages = 5

var pageSizes = []int{10, 25, 50, 100}

// TotalPages is ceil(rows/size), 0 for an empty set.
func TotalPages(rows, size int) int {
	if size <= 0 || rows <= 0 {
		return 0
	}
	return (rows + size - 1) / size
}

// PageBounds returns the half-open slice bounds of page within rows.
func PageBounds(page, size, rows int) (start, end int) {
	start = (page - 1) * size
	if start < 0 {
		start = 0
	}
	if start > rows {
		start = rows
	}
	end = min(start+size, rows)
	return start, end
}

// BuildPagination renders a window of at most five page buttons around the
// current page, with first/last shortcuts and ellipsis elision.
func BuildPagination(current, totalPages int) senam.Pagination {
	p := senam.Pagination{Items: []senam.PageItem{}}
	if totalPages <= 1 {
		return p
	}

	startPage := max(1, current-2)
	endPage := min(totalPages, startPage+maxVisiblePages-1)
	if endPage-startPage+1 < maxVisiblePages {
		startPage = max(1, endPage-maxVisiblePages+1)
	}

	if startPage > 1 {
		p.Items = append(p.Items, senam.PageItem{Kind: senam.PageItemPage, Page: 1})
		if startPage > 2 {
			p.Items = append(p.Items, senam.PageItem{Kind: senam.PageItemEllipsis})
		}
	}
	for i := startPage; i <= endPage; i++ {
		p.Items = append(p.Items, senam.PageItem{Kind: senam.PageItemPage, Page: i, Active: i == current})
	}
	if endPage < totalPages {
		if endPage < totalPages-1 {
			p.Items = append(p.Items, senam.PageItem{Kind: senam.PageItemEllipsis})
		}
		p.Items = append(p.Items, senam.PageItem{Kind: senam.PageItemPage, Page: totalPages})
	}

	p.HasPrev = current > 1
	p.HasNext = current < totalPages
	if p.HasPrev {
		p.Prev = current - 1
	}
	if p.HasNext {
		p.Next = current + 1
	}
	return p
}

// TableInfo renders "Menampilkan a-b dari n pegawai".
func TableInfo(page, size, rows int, year string) string {
	start, end := PageBounds(page, size, rows)
	if rows > 0 {
		start++
	}
	info := fmt.Sprintf("Menampilkan %d-%d dari %d pegawai", start, end, rows)
	if year != "" && year != senam.AllValue {
		info += " • Tahun " + year
	}
	return info
}

func isValidPageSize(size int) bool {
	for _, s := range pageSizes {
		if s == size {
			return true
		}
	}
	return false
}
