package models

import "gorm.io/gorm"

// Region - регион назначения. Name - короткое имя, которым оперирует фронт
// ("제주"), MapID - идентификатор области на карте ("jeju").
type Region struct {
	gorm.Model
	Name  string `json:"name" gorm:"uniqueIndex;not null"`
	MapID string `json:"map_id" gorm:"uniqueIndex"`
}

// SubRegion - район внутри региона; недействителен вне своего региона
type SubRegion struct {
	gorm.Model
	RegionID uint   `json:"region_id" gorm:"not null;index"`
	Name     string `json:"name" gorm:"not null"`

	Region Region `json:"-" gorm:"foreignKey:RegionID;references:ID"`
}

// Spot - точка интереса из каталога, привязана к региону
type Spot struct {
	gorm.Model
	RegionID uint   `json:"region_id" gorm:"not null;index"`
	Name     string `json:"name" gorm:"not null"`
	Category string `json:"category"`
	Address  string `json:"address"`
	// Теги через запятую, по ним рекомендация подбирает остановки
	Tags string `json:"tags"`
}
