package parallel

// RowRange is a contiguous, end-exclusive span of rows [Start, End)
// assigned to a single task.
type RowRange struct {
	Start int
	End   int
}

// Len returns the number of rows in the range.
func (r RowRange) Len() int {
	return r.End - r.Start
}

// Empty reports whether the range covers no rows.
func (r RowRange) Empty() bool {
	return r.End <= r.Start
}

// Plan splits [0, totalRows) into workers contiguous ranges.
//
// Every range gets totalRows/workers rows and the last range additionally
// absorbs the remainder. When workers exceeds totalRows the leading ranges
// are empty. A non-positive workers count is treated as 1, and a
// non-positive totalRows yields workers empty ranges.
func Plan(totalRows, workers int) []RowRange {
	if workers <= 0 {
		workers = 1
	}
	if totalRows < 0 {
		totalRows = 0
	}

	base := totalRows / workers
	ranges := make([]RowRange, workers)

	start := 0
	for i := range ranges {
		end := start + base
		if i == workers-1 {
			end = totalRows
		}
		ranges[i] = RowRange{Start: start, End: end}
		start = end
	}

	return ranges
}

// PlanBalanced splits [0, totalRows) like Plan but spreads the remainder one
// row at a time over the leading ranges, so range sizes differ by at most 1.
func PlanBalanced(totalRows, workers int) []RowRange {
	if workers <= 0 {
		workers = 1
	}
	if totalRows < 0 {
		totalRows = 0
	}

	base := totalRows / workers
	remainder := totalRows - base*workers
	ranges := make([]RowRange, workers)

	start := 0
	for i := range ranges {
		size := base
		if i < remainder {
			size++
		}
		ranges[i] = RowRange{Start: start, End: start + size}
		start += size
	}

	return ranges
}
