package utils

import "time"

// SeoulTime возвращает текущее время в часовом поясе Кореи
func SeoulTime() time.Time {
	// Корея: UTC+9, без перехода на летнее время
	seoulLocation, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.Now().UTC().Add(9 * time.Hour)
	}
	return time.Now().In(seoulLocation)
}
