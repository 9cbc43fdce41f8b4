package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment - платеж за поездку
type Payment struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	OrderID      string         `json:"order_id" gorm:"uniqueIndex;not null"` // уникальный номер заказа, формат plan{id}-{suffix}
	UserID       uint           `json:"user_id" gorm:"index"`
	PlanID       uint           `json:"plan_id" gorm:"index"`
	Provider     string         `json:"provider" gorm:"not null"`        // kakao, toss, card, vbank
	Amount       int64          `json:"amount" gorm:"not null"`          // итог к оплате в вонах
	UsedPoints   int64          `json:"used_points" gorm:"default:0"`    // списанные баллы
	EarnedPoints int64          `json:"earned_points" gorm:"default:0"`  // начисленные баллы (от провайдера)
	Status       string         `json:"status" gorm:"default:'pending'"` // pending, confirmed, failed, cancelled
	ProviderTID  string         `json:"provider_tid"`                    // tid KakaoPay либо paymentKey Toss
	ApproveRef   string         `json:"approve_ref"`                     // aid KakaoPay / ссылка на чек Toss
	Snapshot     datatypes.JSON `json:"snapshot"`                        // снимок плана на момент оплаты
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// CheckoutRequest - запрос на переход к оплате
type CheckoutRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	UsePoints int64  `json:"use_points"`
	Provider  string `json:"provider" binding:"required"` // kakao, toss, card, vbank
}

// TossConfirmRequest - подтверждение платежа через Toss SDK
type TossConfirmRequest struct {
	SessionID  string `json:"session_id" binding:"required"`
	PaymentKey string `json:"paymentKey" binding:"required"`
	OrderID    string `json:"orderId" binding:"required"`
	Amount     int64  `json:"amount" binding:"required"`
}
