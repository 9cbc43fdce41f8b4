package utils

import (
	"strings"
	"time"
)

// Максимальный срок поездки: 2 ночи / 3 дня
const MaxTripNights = 2

const dateLayout = "2006-01-02"

// ClampTripDates ограничивает дату конца поездки сроком 2 ночи / 3 дня.
// Выбранная пользователем дата заменяется молча, без предупреждения.
// Нераспознаваемые даты возвращаются как есть, конец раньше начала
// ужимается до начала.
func ClampTripDates(startDate, endDate string) string {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return endDate
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return endDate
	}
	if end.Before(start) {
		return startDate
	}
	max := start.AddDate(0, 0, MaxTripNights)
	if end.After(max) {
		return max.Format(dateLayout)
	}
	return endDate
}

// ClampUsePoints ограничивает списание баллов балансом и итогом заказа.
// Отрицательный запрос трактуется как ноль.
func ClampUsePoints(requested, balance, total int64) int64 {
	if requested < 0 {
		return 0
	}
	if requested > balance {
		requested = balance
	}
	if requested > total {
		requested = total
	}
	return requested
}

// ParseDayLabel достает номер дня из метки вида "day1", "1일차", "Day 2".
// Метка без цифр и нулевой день относятся к первому дню.
func ParseDayLabel(label string) int {
	var digits strings.Builder
	for _, r := range label {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	day := ParseIntSafe(digits.String())
	if day < 1 {
		return 1
	}
	return day
}

// TagOverlapScore считает число ключевых слов, пересекающихся с тегами
// продукта (теги через запятую). Совпадением считается вхождение подстроки
// в любую сторону; каждое ключевое слово засчитывается не более раза.
func TagOverlapScore(tags string, keywords []string) int {
	parts := strings.Split(tags, ",")
	score := 0
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		for _, tag := range parts {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if strings.Contains(tag, kw) || strings.Contains(kw, tag) {
				score++
				break
			}
		}
	}
	return score
}

// BestMatchIndex возвращает индекс списка тегов с максимальным числом
// совпадений. При равенстве побеждает первый; при нуле совпадений тоже
// первый - пустой категории это не касается: для нее возвращается -1.
func BestMatchIndex(tagLists []string, keywords []string) int {
	if len(tagLists) == 0 {
		return -1
	}
	best := 0
	bestScore := TagOverlapScore(tagLists[0], keywords)
	for i := 1; i < len(tagLists); i++ {
		if score := TagOverlapScore(tagLists[i], keywords); score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best
}
