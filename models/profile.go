package models

import "gorm.io/gorm"

// AuthorProfile stores the author details stamped onto generated covers.
type AuthorProfile struct {
	gorm.Model
	UserID        uint   `gorm:"index;not null"`
	AuthorName    string `gorm:"size:120;not null"`
	StudentNumber string `gorm:"size:40"`
	University    string `gorm:"size:160"`
	Faculty       string `gorm:"size:160"`
	Program       string `gorm:"size:160"`
	ClassName     string `gorm:"size:80"`
	Lecturer      string `gorm:"size:120"`
}
