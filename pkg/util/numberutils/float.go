package numberutils

import (
	"math"
	"strconv"
)

// Round rounds the exact binary value of value to the given number of decimal places.
// Only exact ties go to the even neighbour, so 30.15 (stored as 30.1499...) becomes 30.1.
func Round(value float64, places int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(value, 'f', places, 64), 64)
	if err != nil {
		return value
	}
	return rounded
}

// RoundToInt rounds value to the nearest integer with the same rules as Round.
func RoundToInt(value float64) int {
	return int(Round(value, 0))
}

// FormatDecimal prints value with the shortest representation that keeps at least one decimal place,
// so 10 prints as "10.0" and 12.96 as "12.96".
func FormatDecimal(value float64) string {
	if value == math.Trunc(value) && !math.IsInf(value, 0) {
		return strconv.FormatFloat(value, 'f', 1, 64)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
