package models

import "time"

type Product struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Description string     `json:"description"`
	Price       float64    `gorm:"not null" json:"price"`
	Discount    float64    `json:"discount"` // percent, 0..100
	Images      []string   `gorm:"serializer:json" json:"images"`
	CategoryID  *uint      `json:"category_id"`
	Category    *Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	InStock     bool       `gorm:"default:true" json:"in_stock"`
	Dimensions  Dimensions `gorm:"embedded;embeddedPrefix:dim_" json:"dimensions"`
	Material    string     `json:"material"`
	Color       string     `json:"color"`
	Weight      float64    `json:"weight"`
	Featured    bool       `json:"featured"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Dimensions embedded in Product, centimetres
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}
