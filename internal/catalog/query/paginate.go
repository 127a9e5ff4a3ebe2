package query

// Page slices an ordered slice into the requested page window. Start and end
// are the 1-based display bounds the pagination bar shows ("26-50 of 60"),
// both 0 when the window is empty. TotalPages is
// at least 1 so the bar always has a current page to display. An out-of-range
// page yields an empty window rather than an error; navigation bounds are the
// caller's job.
func Page[T any](items []T, page, size int) (out []T, start, end, totalPages int) {
	total := len(items)
	if size <= 0 {
		size = 25
	}
	totalPages = (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 || total == 0 {
		return nil, 0, 0, totalPages
	}

	lo := (page - 1) * size
	if lo >= total {
		return nil, 0, 0, totalPages
	}
	hi := min(page*size, total)
	return items[lo:hi], lo + 1, hi, totalPages
}
