package models

import "time"

type Link struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"index;type:text" json:"text"`
	ShortText string    `gorm:"index;size:64" json:"short_text"`
	Expired   time.Time `json:"expired"`
	OwnerID   uint      `json:"owner_id"`
}
