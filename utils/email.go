package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

func SendEmail(to, subject, body, smtpHost, smtpPort, smtpUser, smtpPass string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	port := ParseIntSafe(smtpPort)
	if port == 0 {
		port = 587
	}
	d := gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)
	return d.DialAndSend(m)
}

// SendReceiptEmail отправляет чек о бронировании после подтверждения платежа
func SendReceiptEmail(to, regionName, startDate, endDate string, amount, usedPoints, earnedPoints int64, smtpHost, smtpPort, smtpUser, smtpPass string) error {
	subject := fmt.Sprintf("[tripmoa] %s 여행 결제가 완료되었습니다", regionName)
	body := fmt.Sprintf(
		"여행 지역: %s\n여행 기간: %s ~ %s\n결제 금액: %s\n사용 포인트: %s\n적립 포인트: %s\n",
		regionName, startDate, endDate,
		FormatKRW(amount), FormatKRW(usedPoints), FormatKRW(earnedPoints),
	)
	return SendEmail(to, subject, body, smtpHost, smtpPort, smtpUser, smtpPass)
}
