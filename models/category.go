package models

import "time"

type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"unique;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Featured    bool      `json:"featured"`
	ParentID    *uint     `json:"parent_id"`
	Parent      *Category `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
