package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tripmoa/config"

	"github.com/stretchr/testify/assert"
)

func newKakaoTestService(t *testing.T, handler http.HandlerFunc) *KakaoPayService {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewKakaoPayService(&config.Config{
		KakaoBaseURL:  srv.URL,
		KakaoAdminKey: "test-admin-key",
		KakaoCID:      "TC0ONETIME",
	})
}

func TestKakaoReady(t *testing.T) {
	svc := newKakaoTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment/ready", r.URL.Path)
		assert.Equal(t, "KakaoAK test-admin-key", r.Header.Get("Authorization"))

		r.ParseForm()
		assert.Equal(t, "plan42-abc123", r.PostForm.Get("partner_order_id"))
		assert.Equal(t, "49000", r.PostForm.Get("total_amount"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tid":"T1234567890","next_redirect_pc_url":"https://online-pay.kakao.com/mockup/v1/xxx/info"}`))
	})

	result, err := svc.Ready("plan42-abc123", 7, "제주 여행", 49000, "http://cb/success", "http://cb/cancel", "http://cb/fail")
	assert.NoError(t, err)
	assert.Equal(t, "T1234567890", result.TID)
	assert.Contains(t, result.NextRedirectPCURL, "online-pay.kakao.com")
}

func TestKakaoApprove(t *testing.T) {
	svc := newKakaoTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment/approve", r.URL.Path)

		r.ParseForm()
		assert.Equal(t, "T1234567890", r.PostForm.Get("tid"))
		assert.Equal(t, "pg-token-xyz", r.PostForm.Get("pg_token"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"aid":"A5678","tid":"T1234567890","amount":{"total":49000,"tax_free":0,"point":490},"approved_at":"2025-03-01T12:00:00"}`))
	})

	result, err := svc.Approve("T1234567890", "plan42-abc123", 7, "pg-token-xyz")
	assert.NoError(t, err)
	assert.Equal(t, "A5678", result.AID)
	assert.Equal(t, int64(49000), result.Amount.Total)
	assert.Equal(t, int64(490), result.Amount.Point)
}

// Ошибка -702 маппится в ErrAlreadyProcessing
func TestKakaoApproveAlreadyProcessing(t *testing.T) {
	svc := newKakaoTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":-702,"msg":"payment is already processing"}`))
	})

	_, err := svc.Approve("T1", "o1", 7, "tok")
	assert.Equal(t, ErrAlreadyProcessing, err)
}

func TestKakaoReadyError(t *testing.T) {
	svc := newKakaoTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":-781,"msg":"invalid cid"}`))
	})

	_, err := svc.Ready("o1", 7, "x", 1000, "a", "b", "c")
	assert.Error(t, err)
}
