package models

import "time"

// Page is a static content page (about, delivery, contacts).
type Page struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FooterSection struct {
	ID        uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string       `gorm:"not null" json:"title"`
	SortOrder int          `gorm:"not null;default:0" json:"sort_order"`
	Links     []FooterLink `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"links"`
}

type FooterLink struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	SectionID uint   `gorm:"index;not null" json:"section_id"`
	Title     string `gorm:"not null" json:"title"`
	URL       string `gorm:"not null" json:"url"`
	SortOrder int    `gorm:"not null;default:0" json:"sort_order"`
}
