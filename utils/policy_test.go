package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampTripDates(t *testing.T) {
	// Неделя ужимается до 2 ночей
	assert.Equal(t, "2026-09-03", ClampTripDates("2026-09-01", "2026-09-08"))
	// Срок в пределах лимита не трогаем
	assert.Equal(t, "2026-09-02", ClampTripDates("2026-09-01", "2026-09-02"))
	assert.Equal(t, "2026-09-03", ClampTripDates("2026-09-01", "2026-09-03"))
	// Конец раньше начала ужимается до начала
	assert.Equal(t, "2026-09-01", ClampTripDates("2026-09-01", "2026-08-25"))
	// Нераспознаваемые даты возвращаются как есть
	assert.Equal(t, "когда-нибудь", ClampTripDates("2026-09-01", "когда-нибудь"))
	assert.Equal(t, "2026-09-08", ClampTripDates("не дата", "2026-09-08"))
	// Повторный прогон ничего не меняет
	clamped := ClampTripDates("2026-09-01", "2026-09-08")
	assert.Equal(t, clamped, ClampTripDates("2026-09-01", clamped))
}

func TestClampUsePoints(t *testing.T) {
	assert.Equal(t, int64(5000), ClampUsePoints(5000, 10000, 50000))
	// Больше баланса - режется до баланса
	assert.Equal(t, int64(3000), ClampUsePoints(5000, 3000, 50000))
	// Больше итога - режется до итога
	assert.Equal(t, int64(20000), ClampUsePoints(50000, 90000, 20000))
	// Отрицательный запрос трактуется как ноль
	assert.Equal(t, int64(0), ClampUsePoints(-100, 10000, 50000))
	assert.Equal(t, int64(0), ClampUsePoints(0, 10000, 50000))
}

func TestParseDayLabel(t *testing.T) {
	assert.Equal(t, 1, ParseDayLabel("day1"))
	assert.Equal(t, 2, ParseDayLabel("Day 2"))
	assert.Equal(t, 3, ParseDayLabel("3일차"))
	// Без цифр и нулевой день идут в первый день
	assert.Equal(t, 1, ParseDayLabel("첫째날"))
	assert.Equal(t, 1, ParseDayLabel("day0"))
	assert.Equal(t, 1, ParseDayLabel(""))
}

func TestTagOverlapScore(t *testing.T) {
	assert.Equal(t, 2, TagOverlapScore("힐링,바다,산책", []string{"힐링", "바다"}))
	assert.Equal(t, 0, TagOverlapScore("맛집,카페", []string{"힐링"}))
	// Вхождение подстроки в любую сторону
	assert.Equal(t, 1, TagOverlapScore("바다전망", []string{"바다"}))
	assert.Equal(t, 1, TagOverlapScore("산", []string{"산책"}))
	// Каждое ключевое слово - не более раза
	assert.Equal(t, 1, TagOverlapScore("바다,바다전망,해변바다", []string{"바다"}))
	assert.Equal(t, 0, TagOverlapScore("", []string{"힐링"}))
	assert.Equal(t, 0, TagOverlapScore("힐링,바다", nil))
}

func TestBestMatchIndex(t *testing.T) {
	lists := []string{"맛집,카페", "힐링,바다", "힐링,바다,산책"}
	assert.Equal(t, 2, BestMatchIndex(lists, []string{"힐링", "바다", "산책"}))
	// При равенстве побеждает первый
	assert.Equal(t, 1, BestMatchIndex(lists, []string{"힐링", "바다"}))
	// При нуле совпадений тоже первый
	assert.Equal(t, 0, BestMatchIndex(lists, []string{"역사"}))
	// Пустая категория
	assert.Equal(t, -1, BestMatchIndex(nil, []string{"힐링"}))
}
