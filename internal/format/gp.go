// Package format renders gp amounts and percentages for display.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatGP abbreviates a gp amount the way the game client does:
// thousands as k, millions as m, billions as b, one decimal place with
// a trailing .0 dropped. Amounts under 1000 render in full.
func FormatGP(v int64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1_000_000_000:
		return trimZero(fmt.Sprintf("%.1f", float64(v)/1_000_000_000)) + "b"
	case abs >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1f", float64(v)/1_000_000)) + "m"
	case abs >= 1_000:
		return trimZero(fmt.Sprintf("%.1f", float64(v)/1_000)) + "k"
	default:
		return strconv.FormatInt(v, 10)
	}
}

// FormatGPSigned abbreviates like FormatGP but always carries a sign,
// so gains read as +4.5k and losses as -1.2m.
func FormatGPSigned(v int64) string {
	if v >= 0 {
		return "+" + FormatGP(v)
	}
	return FormatGP(v)
}

// FormatROI renders a return-on-investment percentage with two
// decimal places.
func FormatROI(roi float64) string {
	return fmt.Sprintf("%.2f%%", roi)
}

// FormatCommas renders a gp amount in full with thousands separators.
func FormatCommas(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
