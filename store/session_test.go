package store

import (
	"context"
	"testing"

	"tripmoa/models"

	"github.com/stretchr/testify/assert"
)

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()

	s := &TripSession{
		UserID:      7,
		RegionID:    3,
		RegionName:  "제주",
		StartDate:   "2025-03-01",
		EndDate:     "2025-03-02",
		PeopleCount: 2,
		Keywords:    []string{"힐링"},
		Schedule: models.Schedule{
			"day1": {{SpotID: 11, Day: 1, Name: "성산일출봉", Selected: true}},
			"day2": {{SpotID: 12, Day: 2, Name: "협재해수욕장", Selected: true}},
		},
	}
	assert.NoError(t, SaveSession(ctx, kv, "sid-1", s))

	got, err := LoadSession(ctx, kv, "sid-1")
	assert.NoError(t, err)
	assert.Equal(t, s.RegionName, got.RegionName)
	assert.Equal(t, s.Keywords, got.Keywords)
	assert.Len(t, got.Schedule["day1"], 1)
	assert.Equal(t, "성산일출봉", got.Schedule["day1"][0].Name)

	_, err = LoadSession(ctx, kv, "other")
	assert.Equal(t, ErrNotFound, err)
}

// Метка "план уже сохранен": выставили, прочитали, откатили
func TestSavedPlanMarker(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()

	id, exists, err := GetSavedPlanMarker(ctx, kv, 7, "2025-03-01", "제주")
	assert.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, uint(0), id)

	assert.NoError(t, SetSavedPlanMarker(ctx, kv, 7, "2025-03-01", "제주", 42))

	id, exists, err = GetSavedPlanMarker(ctx, kv, 7, "2025-03-01", "제주")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, uint(42), id)

	// Другая пара (дата, регион) метку не видит
	_, exists, err = GetSavedPlanMarker(ctx, kv, 7, "2025-04-01", "제주")
	assert.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, RollbackSavedPlanMarker(ctx, kv, 7, "2025-03-01", "제주"))
	_, exists, err = GetSavedPlanMarker(ctx, kv, 7, "2025-03-01", "제주")
	assert.NoError(t, err)
	assert.False(t, exists)
}

// Метка с id 0 - сохранение идет: она видна как поставленная
func TestSavedPlanMarkerInFlight(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()

	assert.NoError(t, SetSavedPlanMarker(ctx, kv, 7, "2025-03-01", "제주", 0))

	id, exists, err := GetSavedPlanMarker(ctx, kv, 7, "2025-03-01", "제주")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, uint(0), id)
}

func TestPendingPaymentUnit(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()

	p := &PendingPayment{
		UserID:    7,
		PlanID:    42,
		OrderID:   "plan42-abc123",
		Provider:  "kakao",
		Amount:    49000,
		UsePoints: 1000,
		TID:       "T1234567890",
		Snapshot:  TripSession{RegionName: "제주", StartDate: "2025-03-01"},
	}
	assert.NoError(t, SavePendingPayment(ctx, kv, "sid-1", p))

	got, err := LoadPendingPayment(ctx, kv, "sid-1")
	assert.NoError(t, err)
	assert.Equal(t, "T1234567890", got.TID)
	assert.Equal(t, int64(1000), got.UsePoints)
	assert.Equal(t, "제주", got.Snapshot.RegionName)

	// Повторная запись молча затирает предыдущую (известная гонка двух вкладок)
	p2 := *p
	p2.TID = "T999"
	assert.NoError(t, SavePendingPayment(ctx, kv, "sid-1", &p2))
	got, err = LoadPendingPayment(ctx, kv, "sid-1")
	assert.NoError(t, err)
	assert.Equal(t, "T999", got.TID)

	assert.NoError(t, DeletePendingPayment(ctx, kv, "sid-1"))
	_, err = LoadPendingPayment(ctx, kv, "sid-1")
	assert.Equal(t, ErrNotFound, err)
}

func TestPaymentDetailRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()

	d := &PaymentDetail{
		PlanID:     42,
		OrderID:    "plan42-abc123",
		Provider:   "kakao",
		Amount:     49000,
		UsedPoints: 1000,
		RegionName: "제주",
	}
	assert.NoError(t, SavePaymentDetail(ctx, kv, d))

	got, err := LoadPaymentDetail(ctx, kv, 42)
	assert.NoError(t, err)
	assert.Equal(t, int64(1000), got.UsedPoints)
	assert.Equal(t, int64(49000), got.Amount)

	_, err = LoadPaymentDetail(ctx, kv, 43)
	assert.Equal(t, ErrNotFound, err)
}
