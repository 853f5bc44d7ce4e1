package voucherfile

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeDate converts a supplier-specific expiry date into canonical
// YYYY-MM-DD form. Two encodings are recognized: DD/MM/YYYY (Ringa and
// Hollywoodbets) and the 8-character YYYYMMDD (Easyload). Anything else,
// including an empty string, normalizes to "" and callers treat that as an
// unknown expiry.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) != 3 {
			return ""
		}
		day, err1 := strconv.Atoi(parts[0])
		month, err2 := strconv.Atoi(parts[1])
		year, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return ""
		}
		if day < 1 || day > 31 || month < 1 || month > 12 || year < 1000 {
			return ""
		}
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	}

	if len(s) == 8 {
		if _, err := strconv.Atoi(s); err != nil {
			return ""
		}
		return s[0:4] + "-" + s[4:6] + "-" + s[6:8]
	}

	return ""
}
