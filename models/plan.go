package models

import (
	"time"

	"gorm.io/gorm"
)

// Plan - сохраненный маршрут (день -> остановки), владелец - бэкенд
type Plan struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"not null;index:idx_user_plans"`
	RegionID    uint           `json:"region_id" gorm:"not null"`
	RegionName  string         `json:"region_name" gorm:"not null"`
	SubRegion   string         `json:"sub_region"`
	StartDate   string         `json:"start_date" gorm:"type:varchar(10);not null"`
	EndDate     string         `json:"end_date" gorm:"type:varchar(10);not null"`
	PeopleCount int            `json:"people_count" gorm:"default:1"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	Spots []PlanSpot `json:"spots,omitempty" gorm:"foreignKey:PlanID"`
}

// PlanSpot - остановка внутри плана
type PlanSpot struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	PlanID uint `json:"plan_id" gorm:"not null;index:idx_plan_spots"`
	SpotID uint `json:"spot_id" gorm:"not null"`
	Day    int  `json:"day" gorm:"not null"`

	Spot Spot `json:"spot,omitempty" gorm:"foreignKey:SpotID;references:ID"`
}

// StopItem - остановка в дневном расписании (формат обмена с фронтом)
type StopItem struct {
	SpotID   uint   `json:"spot_id"`
	Day      int    `json:"day"`
	Category string `json:"category"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Price    int64  `json:"price"`
	Selected bool   `json:"is_selected"`
}

// Schedule - расписание по дням: "day1" -> упорядоченный список остановок
type Schedule map[string][]StopItem

// SavePlanRequest - запрос на сохранение плана
type SavePlanRequest struct {
	UserID      uint           `json:"userId" binding:"required"`
	RegionName  string         `json:"regionName" binding:"required"`
	RegionID    uint           `json:"regionId" binding:"required"`
	StartDate   string         `json:"startDate" binding:"required"`
	EndDate     string         `json:"endDate" binding:"required"`
	PeopleCount int            `json:"peopleCount"`
	Spots       []SavePlanSpot `json:"spots" binding:"required,min=1"`
}

type SavePlanSpot struct {
	SpotID uint `json:"spotId" binding:"required"`
	Day    int  `json:"day" binding:"required"`
}

// RecommendRequest - запрос рекомендации маршрута
type RecommendRequest struct {
	Region           string   `json:"region" binding:"required"`
	SubRegion        string   `json:"subRegion"`
	SelectedKeywords []string `json:"selectedKeywords"`
	PeopleCount      int      `json:"peopleCount"`
	StartDate        string   `json:"startDate" binding:"required"`
	EndDate          string   `json:"endDate" binding:"required"`
}
