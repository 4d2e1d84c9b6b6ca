package format

import (
	"fmt"
	"strconv"
)

// Count renders an integer compactly for narrow table columns:
// 950 -> "950", 1200 -> "1.2k", 3400000 -> "3.4M". Values keep one
// decimal only when it is significant (2000 -> "2k", not "2.0k").
func Count(n int) string {
	switch {
	case n >= 1_000_000:
		return trimDecimal(float64(n)/1_000_000) + "M"
	case n >= 1_000:
		return trimDecimal(float64(n)/1_000) + "k"
	default:
		return strconv.Itoa(n)
	}
}

func trimDecimal(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	if len(s) > 2 && s[len(s)-2:] == ".0" {
		return s[:len(s)-2]
	}
	return s
}
