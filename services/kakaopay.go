package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tripmoa/config"
)

// ErrAlreadyProcessing - провайдер сообщает, что платеж уже обрабатывается.
// Симптом дублирующего вызова подтверждения, обрабатывается как неопасный.
var ErrAlreadyProcessing = errors.New("payment is already processing")

// KakaoPayService - сервис для работы с KakaoPay API
type KakaoPayService struct {
	baseURL  string
	adminKey string
	cid      string
	client   *http.Client
}

func NewKakaoPayService(cfg *config.Config) *KakaoPayService {
	return &KakaoPayService{
		baseURL:  cfg.KakaoBaseURL,
		adminKey: cfg.KakaoAdminKey,
		cid:      cfg.KakaoCID,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// KakaoReadyResult - ответ на payment ready
type KakaoReadyResult struct {
	TID               string `json:"tid"`
	NextRedirectPCURL string `json:"next_redirect_pc_url"`
	CreatedAt         string `json:"created_at"`
}

// KakaoApproveResult - подтвержденный платеж
type KakaoApproveResult struct {
	AID    string `json:"aid"`
	TID    string `json:"tid"`
	Amount struct {
		Total   int64 `json:"total"`
		TaxFree int64 `json:"tax_free"`
		Point   int64 `json:"point"`
	} `json:"amount"`
	ApprovedAt string `json:"approved_at"`
}

type kakaoError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// request делает form-encoded запрос к KakaoPay API
func (k *KakaoPayService) request(endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequest("POST", k.baseURL+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
	req.Header.Set("Authorization", "KakaoAK "+k.adminKey)

	resp, err := k.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kakaopay request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != 200 {
		var apiErr kakaoError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Msg != "" {
			// -702: платеж уже в обработке по этому tid
			if apiErr.Code == -702 || strings.Contains(apiErr.Msg, "already") {
				return nil, ErrAlreadyProcessing
			}
			return nil, fmt.Errorf("kakaopay error %d: %s", apiErr.Code, apiErr.Msg)
		}
		return nil, fmt.Errorf("kakaopay returned %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// Ready создает платеж и возвращает tid + URL страницы оплаты
func (k *KakaoPayService) Ready(orderID string, userID uint, itemName string, amount int64, approvalURL, cancelURL, failURL string) (*KakaoReadyResult, error) {
	form := url.Values{}
	form.Set("cid", k.cid)
	form.Set("partner_order_id", orderID)
	form.Set("partner_user_id", strconv.FormatUint(uint64(userID), 10))
	form.Set("item_name", itemName)
	form.Set("quantity", "1")
	form.Set("total_amount", strconv.FormatInt(amount, 10))
	form.Set("tax_free_amount", "0")
	form.Set("approval_url", approvalURL)
	form.Set("cancel_url", cancelURL)
	form.Set("fail_url", failURL)

	body, err := k.request("/v1/payment/ready", form)
	if err != nil {
		return nil, err
	}

	var result KakaoReadyResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse ready response: %w", err)
	}
	if result.TID == "" {
		return nil, fmt.Errorf("kakaopay ready returned empty tid")
	}
	return &result, nil
}

// Approve обменивает pg_token на подтвержденный платеж
func (k *KakaoPayService) Approve(tid, orderID string, userID uint, pgToken string) (*KakaoApproveResult, error) {
	form := url.Values{}
	form.Set("cid", k.cid)
	form.Set("tid", tid)
	form.Set("partner_order_id", orderID)
	form.Set("partner_user_id", strconv.FormatUint(uint64(userID), 10))
	form.Set("pg_token", pgToken)

	body, err := k.request("/v1/payment/approve", form)
	if err != nil {
		return nil, err
	}

	var result KakaoApproveResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse approve response: %w", err)
	}
	return &result, nil
}

// Cancel отменяет платеж (частично или полностью)
func (k *KakaoPayService) Cancel(tid string, amount int64) error {
	form := url.Values{}
	form.Set("cid", k.cid)
	form.Set("tid", tid)
	form.Set("cancel_amount", strconv.FormatInt(amount, 10))
	form.Set("cancel_tax_free_amount", "0")

	_, err := k.request("/v1/payment/cancel", form)
	return err
}
