package tui

import (
	"sort"
	"strconv"
	"strings"
)

// sortRows returns a sorted copy of rows by column col.
// col -1 means no sort (preserve order). Numeric columns compare parsed
// values; cells that do not parse sort after those that do.
// Ties are broken by the first column ascending.
func sortRows(rows [][]string, col int, desc, numeric bool) [][]string {
	out := make([][]string, len(rows))
	copy(out, rows)

	if col < 0 {
		return out
	}

	cell := func(r []string, i int) string {
		if i < len(r) {
			return r[i]
		}
		return ""
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := cell(out[i], col), cell(out[j], col)
		if a == b {
			return strings.ToLower(cell(out[i], 0)) < strings.ToLower(cell(out[j], 0))
		}
		var less bool
		if numeric {
			less = numericLess(a, b)
		} else {
			less = strings.ToLower(a) < strings.ToLower(b)
		}
		if desc {
			return !less
		}
		return less
	})
	return out
}

// numericLess compares cells such as "42", "3/4" or "87.5%" by their
// leading number.
func numericLess(a, b string) bool {
	fa, errA := leadingNumber(a)
	fb, errB := leadingNumber(b)
	switch {
	case errA != nil && errB != nil:
		return a < b
	case errA != nil:
		return false
	case errB != nil:
		return true
	}
	return fa < fb
}

func leadingNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] == '.' || s[end] == '-' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	return strconv.ParseFloat(s[:end], 64)
}

// filterRows returns the rows that contain term in any cell (case-insensitive).
// An empty term returns all rows.
func filterRows(rows [][]string, term string) [][]string {
	if term == "" {
		return rows
	}
	term = strings.ToLower(term)
	var out [][]string
	for _, r := range rows {
		for _, c := range r {
			if strings.Contains(strings.ToLower(c), term) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
