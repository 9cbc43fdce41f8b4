package database

import (
	"tripmoa/migrations"
	"tripmoa/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Region{},
		&models.SubRegion{},
		&models.Spot{},
		&models.Plan{},
		&models.PlanSpot{},
		&models.Accommodation{},
		&models.Activity{},
		&models.Ticket{},
	); err != nil {
		return err
	}

	// Платежи создаются сырой миграцией (snapshot JSONB)
	if err := migrations.CreatePaymentsTable(db); err != nil {
		return err
	}

	// Индексы для выборок плана по дням
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_plan_spots_plan_day ON plan_spots(plan_id, day)`).Error; err != nil {
		return err
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_spots_region ON spots(region_id)`).Error; err != nil {
		return err
	}

	return nil
}
