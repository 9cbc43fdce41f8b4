package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"tripmoa/models"
)

// SessionTTL - время жизни сессии мастера и всех ее ключей
const SessionTTL = 30 * time.Minute

// TripSession - состояние мастера планирования одной поездки.
// Создается на шаге выбора региона, мутируется каждым следующим шагом,
// после сохранения плана носит его идентификатор.
type TripSession struct {
	UserID      uint     `json:"user_id,omitempty"`
	RegionID    uint     `json:"region_id"`
	RegionName  string   `json:"region_name"`
	SubRegion   string   `json:"sub_region,omitempty"`
	Budget      int64    `json:"budget,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	PeopleCount int      `json:"people_count,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	// Вход "наугад": регион выбран сервером, ключевые слова пропускаются
	Surprise        bool   `json:"surprise,omitempty"`
	DefaultCategory string `json:"default_category,omitempty"`

	Schedule models.Schedule       `json:"schedule,omitempty"`
	PlanID   uint                  `json:"plan_id,omitempty"`
	Bundle   *models.ProductBundle `json:"bundle,omitempty"`

	UsePoints  int64 `json:"use_points,omitempty"`
	TotalPrice int64 `json:"total_price,omitempty"`

	// Результат последней реконсиляции - первый ярус данных для чека
	LastResult *PaymentDetail `json:"last_result,omitempty"`
}

// Total - полная стоимость поездки: выбранные точки маршрута плюс пакет услуг
func (s *TripSession) Total() int64 {
	var total int64
	for _, stops := range s.Schedule {
		for _, st := range stops {
			if st.Selected {
				total += st.Price
			}
		}
	}
	if s.Bundle != nil {
		total += s.Bundle.Subtotal(s.PeopleCount)
	}
	return total
}

// PendingPayment - единица передачи через редирект провайдера.
// Пишется одним ключом до передачи управления, читается на странице возврата.
type PendingPayment struct {
	UserID    uint        `json:"user_id"`
	PlanID    uint        `json:"plan_id"`
	OrderID   string      `json:"order_id"`
	Provider  string      `json:"provider"`
	Amount    int64       `json:"amount"`
	UsePoints int64       `json:"use_points"`
	TID       string      `json:"tid,omitempty"` // только KakaoPay
	Snapshot  TripSession `json:"snapshot"`
}

// PaymentDetail - подтвержденный платеж, хранится под планом для повторного
// показа чека (снимок плана, слитый с использованными баллами)
type PaymentDetail struct {
	UserID       uint                  `json:"user_id"`
	PlanID       uint                  `json:"plan_id"`
	OrderID      string                `json:"order_id"`
	Provider     string                `json:"provider"`
	Amount       int64                 `json:"amount"`
	UsedPoints   int64                 `json:"used_points"`
	EarnedPoints int64                 `json:"earned_points"`
	RegionName   string                `json:"region_name"`
	StartDate    string                `json:"start_date"`
	EndDate      string                `json:"end_date"`
	PeopleCount  int                   `json:"people_count"`
	Schedule     models.Schedule       `json:"schedule,omitempty"`
	Bundle       *models.ProductBundle `json:"bundle,omitempty"`
	ApprovedAt   string                `json:"approved_at"`
}

func SessionKey(sessionID string) string {
	return "trip:session:" + sessionID
}

// MarkerKey - ключ метки "план уже сохранен" для пары (пользователь, дата, регион)
func MarkerKey(userID uint, startDate, regionName string) string {
	return fmt.Sprintf("saved_plan:%d:%s:%s", userID, startDate, regionName)
}

func PendingKey(sessionID string) string {
	return "pending_payment:" + sessionID
}

func DetailKey(planID uint) string {
	return fmt.Sprintf("payment_detail:%d", planID)
}

// TempPlanKey - унаследованный одноместный слот данных плана
func TempPlanKey(userID uint) string {
	return fmt.Sprintf("temp_plan_data:%d", userID)
}

func ViewKey(planID uint) string {
	return fmt.Sprintf("plan_views:%d", planID)
}

func LoadSession(ctx context.Context, kv KVStore, sessionID string) (*TripSession, error) {
	raw, err := kv.Get(ctx, SessionKey(sessionID))
	if err != nil {
		return nil, err
	}
	var s TripSession
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("corrupt session %s: %v", sessionID, err)
	}
	return &s, nil
}

func SaveSession(ctx context.Context, kv KVStore, sessionID string, s *TripSession) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return kv.Set(ctx, SessionKey(sessionID), string(raw), SessionTTL)
}

// GetSavedPlanMarker возвращает id сохраненного плана и признак наличия метки.
// Метка с id 0 означает идущее сохранение: она стоит, но id еще не присвоен.
func GetSavedPlanMarker(ctx context.Context, kv KVStore, userID uint, startDate, regionName string) (uint, bool, error) {
	raw, err := kv.Get(ctx, MarkerKey(userID, startDate, regionName))
	if err == ErrNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, true, nil
	}
	return uint(id), true, nil
}

func SetSavedPlanMarker(ctx context.Context, kv KVStore, userID uint, startDate, regionName string, planID uint) error {
	return kv.Set(ctx, MarkerKey(userID, startDate, regionName), strconv.FormatUint(uint64(planID), 10), SessionTTL)
}

// RollbackSavedPlanMarker снимает метку, чтобы неудавшееся сохранение можно было повторить
func RollbackSavedPlanMarker(ctx context.Context, kv KVStore, userID uint, startDate, regionName string) error {
	return kv.Del(ctx, MarkerKey(userID, startDate, regionName))
}

func SavePendingPayment(ctx context.Context, kv KVStore, sessionID string, p *PendingPayment) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return kv.Set(ctx, PendingKey(sessionID), string(raw), SessionTTL)
}

func LoadPendingPayment(ctx context.Context, kv KVStore, sessionID string) (*PendingPayment, error) {
	raw, err := kv.Get(ctx, PendingKey(sessionID))
	if err != nil {
		return nil, err
	}
	var p PendingPayment
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("corrupt pending payment %s: %v", sessionID, err)
	}
	return &p, nil
}

func DeletePendingPayment(ctx context.Context, kv KVStore, sessionID string) error {
	return kv.Del(ctx, PendingKey(sessionID))
}

func SavePaymentDetail(ctx context.Context, kv KVStore, d *PaymentDetail) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	// Чек должен переживать сессию мастера, TTL не ставим
	return kv.Set(ctx, DetailKey(d.PlanID), string(raw), 0)
}

func LoadPaymentDetail(ctx context.Context, kv KVStore, planID uint) (*PaymentDetail, error) {
	raw, err := kv.Get(ctx, DetailKey(planID))
	if err != nil {
		return nil, err
	}
	var d PaymentDetail
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, fmt.Errorf("corrupt payment detail for plan %d: %v", planID, err)
	}
	return &d, nil
}

func parseInt64(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func formatInt64(n int64) string {
	return strconv.FormatInt(n, 10)
}
