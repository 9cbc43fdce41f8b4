package migrations

import (
	"gorm.io/gorm"
)

// CreatePaymentsTable создает таблицу платежей
func CreatePaymentsTable(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS payments (
			id SERIAL PRIMARY KEY,
			order_id VARCHAR(255) UNIQUE NOT NULL,
			user_id INTEGER,
			plan_id INTEGER,
			provider VARCHAR(20) NOT NULL,
			amount BIGINT NOT NULL,
			used_points BIGINT DEFAULT 0,
			earned_points BIGINT DEFAULT 0,
			status VARCHAR(50) DEFAULT 'pending',
			provider_tid VARCHAR(255),
			approve_ref VARCHAR(255),
			snapshot JSONB,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		);

		CREATE INDEX IF NOT EXISTS idx_payments_order ON payments(order_id);
		CREATE INDEX IF NOT EXISTS idx_payments_user ON payments(user_id);
		CREATE INDEX IF NOT EXISTS idx_payments_plan ON payments(plan_id);
		CREATE INDEX IF NOT EXISTS idx_payments_status ON payments(status);
	`).Error; err != nil {
		return err
	}

	return nil
}
