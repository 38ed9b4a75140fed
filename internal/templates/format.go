package templates

import "strconv"

// trimZeros renders quantities without trailing zeros: 2, 0.5, 1.25.
func trimZeros(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
