package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Email     *string `json:"email" gorm:"uniqueIndex"`
	Nickname  *string `json:"nickname"`
	Password  string  `json:"-"`
	Confirmed bool    `json:"confirmed" gorm:"default:false"`
	Role      string  `json:"role" gorm:"default:user"`
	// Баланс бонусных баллов, списывается при оплате и пополняется при подтверждении
	Points int64 `json:"points" gorm:"default:0"`
}
