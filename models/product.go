package models

import "gorm.io/gorm"

// Accommodation - проживание; цена за ночь
type Accommodation struct {
	gorm.Model
	RegionID   uint   `json:"region_id" gorm:"index"`
	RegionName string `json:"region_name" gorm:"index"`
	Name       string `json:"name" gorm:"not null"`
	Address    string `json:"address"`
	Price      int64  `json:"price" gorm:"not null"` // воны за ночь
	Tags       string `json:"tags"`                  // теги через запятую
	URL        string `json:"url"`
}

// Activity - активность; цена за человека
type Activity struct {
	gorm.Model
	RegionID   uint   `json:"region_id" gorm:"index"`
	RegionName string `json:"region_name" gorm:"index"`
	Name       string `json:"name" gorm:"not null"`
	Address    string `json:"address"`
	Price      int64  `json:"price" gorm:"not null"` // воны за человека
	Tags       string `json:"tags"`
	URL        string `json:"url"`
}

// Ticket - входной билет; цена за человека
type Ticket struct {
	gorm.Model
	RegionID   uint   `json:"region_id" gorm:"index"`
	RegionName string `json:"region_name" gorm:"index"`
	Name       string `json:"name" gorm:"not null"`
	Address    string `json:"address"`
	Price      int64  `json:"price" gorm:"not null"` // воны за человека
	Tags       string `json:"tags"`
	URL        string `json:"url"`
}

// BundleItem - выбранный продукт в составе пакета
type BundleItem struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Tags  string `json:"tags"`
}

// ProductBundle - до одного продукта каждой категории; отсутствующая
// категория в пакет не входит
type ProductBundle struct {
	Accommodation *BundleItem `json:"accommodation,omitempty"`
	Activity      *BundleItem `json:"activity,omitempty"`
	Ticket        *BundleItem `json:"ticket,omitempty"`
}

// Фиксированная политика пакета: жилье на 2 ночи, активность и билет на человека
const BundleNights = 2

// Subtotal считает стоимость пакета: жилье x 2 ночи, активность и билет x число человек
func (pb *ProductBundle) Subtotal(peopleCount int) int64 {
	if peopleCount < 1 {
		peopleCount = 1
	}
	var total int64
	if pb.Accommodation != nil {
		total += pb.Accommodation.Price * BundleNights
	}
	if pb.Activity != nil {
		total += pb.Activity.Price * int64(peopleCount)
	}
	if pb.Ticket != nil {
		total += pb.Ticket.Price * int64(peopleCount)
	}
	return total
}
