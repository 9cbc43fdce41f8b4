package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"tripmoa/config"
)

// ErrAmountMismatch - сумма из SDK не совпала с суммой pending-платежа,
// подтверждение у провайдера не вызывается
var ErrAmountMismatch = errors.New("payment amount mismatch")

// TossPayService - сервис для работы с TossPayments API.
// Через него идут методы toss, card и vbank - SDK на фронте различает их
// кодом способа оплаты, подтверждение у всех одно.
type TossPayService struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

func NewTossPayService(cfg *config.Config) *TossPayService {
	return &TossPayService{
		baseURL:   cfg.TossBaseURL,
		secretKey: cfg.TossSecretKey,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// TossConfirmResult - подтвержденный платеж Toss
type TossConfirmResult struct {
	PaymentKey  string `json:"paymentKey"`
	OrderID     string `json:"orderId"`
	Status      string `json:"status"`
	Method      string `json:"method"`
	TotalAmount int64  `json:"totalAmount"`
	ApprovedAt  string `json:"approvedAt"`
	Receipt     *struct {
		URL string `json:"url"`
	} `json:"receipt"`
}

type tossError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Confirm подтверждает платеж по paymentKey/orderId/amount
func (t *TossPayService) Confirm(paymentKey, orderID string, amount int64) (*TossConfirmResult, error) {
	payload := map[string]interface{}{
		"paymentKey": paymentKey,
		"orderId":    orderID,
		"amount":     amount,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", t.baseURL+"/v1/payments/confirm", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	// Basic auth: base64(secretKey + ":")
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(t.secretKey+":")))

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("toss confirm request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != 200 {
		var apiErr tossError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
			if apiErr.Code == "ALREADY_PROCESSING_PAYMENT" {
				return nil, ErrAlreadyProcessing
			}
			return nil, fmt.Errorf("toss error %s: %s", apiErr.Code, apiErr.Message)
		}
		return nil, fmt.Errorf("toss returned %d: %s", resp.StatusCode, string(body))
	}

	var result TossConfirmResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse confirm response: %w", err)
	}
	return &result, nil
}
