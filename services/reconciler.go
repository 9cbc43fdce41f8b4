package services

import (
	"context"

	"tripmoa/store"
	"tripmoa/utils"
)

// ReconcileState - состояние реконсиляции платежа на странице возврата
type ReconcileState string

const (
	StatePending    ReconcileState = "pending"
	StateConfirming ReconcileState = "confirming"
	StateConfirmed  ReconcileState = "confirmed"
	StateFailed     ReconcileState = "failed"
)

// ApproveResult - результат подтверждения у провайдера
type ApproveResult struct {
	ApproveRef   string
	EarnedPoints int64
	ApprovedAt   string
}

// ApproveFunc обменивает токен провайдера на подтвержденный платеж
type ApproveFunc func(p *store.PendingPayment, token string) (*ApproveResult, error)

// ReconcileOutcome - итог прогона машины состояний
type ReconcileOutcome struct {
	State  ReconcileState
	Detail *store.PaymentDetail
	// Отсутствуют данные pending-платежа или токен: сессия истекла,
	// пользователя возвращаем на шаг оплаты. Подтверждение не вызывалось.
	Expired bool
	// Провайдер ответил "уже обрабатывается": считаем дублем прежнего вызова
	// и продолжаем, как будто реконсиляция завершится по нему
	AlreadyProcessing bool
	Reason            string
}

// Reconciler - машина состояний pending -> confirming -> {confirmed, failed}.
// Экземпляр живет в пределах одной загрузки страницы возврата: повторный Run
// того же экземпляра не вызовет второе подтверждение (защита от ремаунта,
// НЕ от двух вкладок - см. DESIGN.md).
type Reconciler struct {
	KV      store.KVStore
	Approve ApproveFunc

	state ReconcileState
	last  ReconcileOutcome
	done  bool
}

func NewReconciler(kv store.KVStore, approve ApproveFunc) *Reconciler {
	return &Reconciler{KV: kv, Approve: approve, state: StatePending}
}

func (r *Reconciler) State() ReconcileState {
	return r.state
}

// Run выполняет один прогон реконсиляции для страницы возврата провайдера.
// Оба исхода терминальны для экземпляра: автоматических повторов нет.
func (r *Reconciler) Run(ctx context.Context, sessionID, token string) ReconcileOutcome {
	// Защита от двойного вызова в пределах одной страницы
	if r.done {
		return r.last
	}

	pending, err := store.LoadPendingPayment(ctx, r.KV, sessionID)
	if err != nil || token == "" || pending.PlanID == 0 {
		if err != nil && err != store.ErrNotFound {
			utils.LogError(err, "Reconciler.LoadPendingPayment")
		}
		// Не переходим в confirming: подтверждение не вызывалось, повторов нет
		r.last = ReconcileOutcome{State: r.state, Expired: true, Reason: "payment session expired"}
		r.done = true
		return r.last
	}

	r.state = StateConfirming
	r.done = true

	result, err := r.Approve(pending, token)
	if err == ErrAlreadyProcessing {
		// Прежний вызов подтверждения еще в полете: ничего не делаем, не падаем
		r.state = StateConfirmed
		r.last = ReconcileOutcome{State: StateConfirmed, AlreadyProcessing: true}
		return r.last
	}
	if err != nil {
		r.state = StateFailed
		r.last = ReconcileOutcome{State: StateFailed, Reason: err.Error()}
		return r.last
	}

	detail := &store.PaymentDetail{
		UserID:       pending.UserID,
		PlanID:       pending.PlanID,
		OrderID:      pending.OrderID,
		Provider:     pending.Provider,
		Amount:       pending.Amount,
		UsedPoints:   pending.UsePoints,
		EarnedPoints: result.EarnedPoints,
		RegionName:   pending.Snapshot.RegionName,
		StartDate:    pending.Snapshot.StartDate,
		EndDate:      pending.Snapshot.EndDate,
		PeopleCount:  pending.Snapshot.PeopleCount,
		Schedule:     pending.Snapshot.Schedule,
		Bundle:       pending.Snapshot.Bundle,
		ApprovedAt:   result.ApprovedAt,
	}
	if detail.ApprovedAt == "" {
		detail.ApprovedAt = utils.SeoulTime().Format("2006-01-02 15:04:05")
	}

	if err := store.SavePaymentDetail(ctx, r.KV, detail); err != nil {
		utils.LogError(err, "Reconciler.SavePaymentDetail")
	}

	// Все pending-ключи удаляются после подтверждения
	if err := r.KV.Del(ctx, store.PendingKey(sessionID), store.TempPlanKey(pending.UserID)); err != nil {
		utils.LogError(err, "Reconciler.DeletePending")
	}

	r.state = StateConfirmed
	r.last = ReconcileOutcome{State: StateConfirmed, Detail: detail}
	return r.last
}
