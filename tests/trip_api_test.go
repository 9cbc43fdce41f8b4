package tests

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"tripmoa/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

// Функция для загрузки .env перед тестами
func TestMain(m *testing.M) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// Клик по незамапленной области карты игнорируется без ошибки
func TestStartRegionUnknownMapID(t *testing.T) {
	r := routes.SetupRouter()
	w := postJSON(r, "/trip/region", map[string]string{"map_id": "atlantis"})
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.NotContains(t, w.Body.String(), "session_id")
}

// Выбор региона из списка создает сессию мастера
func TestStartRegionByName(t *testing.T) {
	r := routes.SetupRouter()
	w := postJSON(r, "/trip/region", map[string]string{"region_name": "제주"})
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "session_id")
	assert.Contains(t, w.Body.String(), "제주")
}

// Неизвестное имя региона - ошибка, в отличие от клика по карте
func TestStartRegionUnknownName(t *testing.T) {
	r := routes.SetupRouter()
	w := postJSON(r, "/trip/region", map[string]string{"region_name": "화성"})
	assert.Equal(t, 400, w.Code)
}

// Конфигурация с истекшей сессией
func TestConfigureExpiredSession(t *testing.T) {
	r := routes.SetupRouter()
	w := postJSON(r, "/trip/config", map[string]interface{}{
		"session_id": "no-such-session",
		"start_date": "2026-09-01",
		"end_date":   "2026-09-03",
		"keywords":   []string{"힐링"},
	})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "세션이 만료되었습니다")
}

// Полный проход шагов регион -> конфигурация с ограничением срока поездки
func TestConfigureClampsDates(t *testing.T) {
	r := routes.SetupRouter()

	w := postJSON(r, "/trip/region", map[string]string{"region_name": "부산"})
	assert.Equal(t, 200, w.Code)
	var resp struct {
		Result struct {
			SessionID string `json:"session_id"`
		} `json:"result"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Result.SessionID)

	// Неделя молча ужимается до 2 ночей / 3 дней
	w = postJSON(r, "/trip/config", map[string]interface{}{
		"session_id": resp.Result.SessionID,
		"start_date": "2026-09-01",
		"end_date":   "2026-09-08",
		"keywords":   []string{"바다"},
	})
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"end_date":"2026-09-03"`)
}

// Ключевые слова обязательны для обычного входа
func TestConfigureRequiresKeywords(t *testing.T) {
	r := routes.SetupRouter()

	w := postJSON(r, "/trip/region", map[string]string{"region_name": "서울"})
	assert.Equal(t, 200, w.Code)
	var resp struct {
		Result struct {
			SessionID string `json:"session_id"`
		} `json:"result"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = postJSON(r, "/trip/config", map[string]interface{}{
		"session_id": resp.Result.SessionID,
		"start_date": "2026-09-01",
		"end_date":   "2026-09-02",
	})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "키워드를 선택해주세요")
}

// Переключение остановки с истекшей сессией
func TestToggleSpotExpiredSession(t *testing.T) {
	r := routes.SetupRouter()
	w := postJSON(r, "/trip/spots/toggle", map[string]interface{}{
		"session_id": "no-such-session",
		"day":        1,
		"spot_id":    7,
	})
	assert.Equal(t, 400, w.Code)
}

// Пакет услуг без session_id
func TestGetProductsMissingSession(t *testing.T) {
	r := routes.SetupRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/trip/products", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
}

// Оплата требует входа
func TestCheckoutRequiresAuth(t *testing.T) {
	r := routes.SetupRouter()
	w := postJSON(r, "/trip/checkout", map[string]interface{}{
		"session_id": "some-session",
		"provider":   "kakao",
	})
	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "로그인이 필요합니다")
}

// Анонимное сохранение плана отклоняется, userId из тела не спасает
func TestSavePlanRequiresAuth(t *testing.T) {
	r := routes.SetupRouter()
	w := postJSON(r, "/plans/save", map[string]interface{}{
		"userId":      999,
		"regionName":  "제주",
		"regionId":    3,
		"startDate":   "2025-03-01",
		"endDate":     "2025-03-03",
		"peopleCount": 2,
		"spots":       []map[string]interface{}{{"spot_id": 11, "day": 1}},
	})
	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "로그인이 필요합니다")
}

// Подтверждение Toss без обязательных полей
func TestTossConfirmValidation(t *testing.T) {
	r := routes.SetupRouter()
	w := postJSON(r, "/payment/toss/confirm", map[string]interface{}{
		"session_id": "some-session",
	})
	assert.Equal(t, 400, w.Code)
}

// Подтверждение Toss с истекшей сессией: провайдер не вызывается
func TestTossConfirmExpiredSession(t *testing.T) {
	r := routes.SetupRouter()
	w := postJSON(r, "/payment/toss/confirm", map[string]interface{}{
		"session_id": "no-such-session",
		"paymentKey": "pk-test",
		"orderId":    "plan1-abc",
		"amount":     10000,
	})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "결제 세션이 만료되었습니다")
}

// JSON-подтверждение KakaoPay с истекшей сессией
func TestKakaoApproveExpiredSession(t *testing.T) {
	r := routes.SetupRouter()
	w := postJSON(r, "/payment/approve", map[string]interface{}{
		"session_id": "no-such-session",
		"pg_token":   "tok",
	})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "결제 세션이 만료되었습니다")
}

// История платежей закрыта токеном
func TestGetPaymentsRequiresToken(t *testing.T) {
	r := routes.SetupRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/payments", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)
}

// Чек по нечисловому id плана
func TestReceiptBadPlanID(t *testing.T) {
	r := routes.SetupRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/trip/receipt/abc", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
}
