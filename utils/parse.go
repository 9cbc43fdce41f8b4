package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var reNum = regexp.MustCompile(`[0-9]+`)

func ParseIntSafe(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, _ := strconv.Atoi(s)
	return v
}

func ParseInt64Safe(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

// ExtractPriceKRW вытаскивает цену в вонах из текста каталога.
// Пример: "₩45,000 / 1박" -> 45000. Разделители и неразрывные пробелы игнорируются.
func ExtractPriceKRW(s string) int64 {
	clean := strings.ReplaceAll(s, " ", " ")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, " ", "")
	m := reNum.FindString(clean)
	if m == "" {
		return 0
	}
	return ParseInt64Safe(m)
}
