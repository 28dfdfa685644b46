package models

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"index;size:80" json:"username"`
	Email    string `gorm:"size:120" json:"email"`
	Password string `gorm:"size:255" json:"-"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
	IsAdmin  bool   `gorm:"default:false" json:"is_admin"`
	Links    []Link `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"links,omitempty"`
}
