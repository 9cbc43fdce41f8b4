package utils

import (
	"strconv"
	"strings"
)

// FormatKRW форматирует сумму в воны: 1250000 -> "1,250,000원".
// Воны не имеют дробной части, поэтому принимаем int64.
func FormatKRW(value int64) string {
	neg := value < 0
	if neg {
		value = -value
	}

	s := strconv.FormatInt(value, 10)

	// Вставляем запятую каждые 3 цифры
	var b strings.Builder
	cnt := 0
	for i := len(s) - 1; i >= 0; i-- {
		b.WriteByte(s[i])
		cnt++
		if cnt%3 == 0 && i != 0 {
			b.WriteByte(',')
		}
	}
	runes := []rune(b.String())
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	out := string(runes) + "원"
	if neg {
		out = "-" + out
	}
	return out
}
