package legislature

import (
	"fmt"
	"sort"
	"strings"
)

// Condense renders a list of years as ranges: 1995, 1996, 1997, 2001
// becomes "1995-1997, 2001".
func Condense(years []int) string {
	if len(years) == 0 {
		return ""
	}
	sorted := append([]int(nil), years...)
	sort.Ints(sorted)

	var bits []string
	start, end := sorted[0], sorted[0]
	flush := func() {
		if start == end {
			bits = append(bits, fmt.Sprint(start))
		} else {
			bits = append(bits, fmt.Sprintf("%d-%d", start, end))
		}
	}
	for _, year := range sorted[1:] {
		switch {
		case year == end || year == end+1:
			end = year
		default:
			flush()
			start, end = year, year
		}
	}
	flush()
	return strings.Join(bits, ", ")
}
