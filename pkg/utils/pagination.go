package utils

import "math"

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// CalculateOffset returns the index of the first item on page. Pages whose
// offset does not fit in an int saturate to math.MaxInt, i.e. past any end.
func CalculateOffset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}

// PageBounds clamps the [start, end) window of page within total items
func PageBounds(page, perPage, total int) (int, int) {
	if total <= 0 {
		return 0, 0
	}
	start := min(CalculateOffset(page, perPage), total)
	end := total
	if perPage > 0 && total-start > perPage {
		end = start + perPage
	}
	return start, end
}
