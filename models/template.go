package models

import "gorm.io/gorm"

// CoverTemplate is a reusable cover layout. Layout holds the renderer's JSON
// description of the page (positions, fonts, logo slot).
type CoverTemplate struct {
	gorm.Model
	Name      string `gorm:"uniqueIndex;size:120;not null"`
	PaperSize string `gorm:"size:10;not null;default:A4"`
	Layout    string `gorm:"type:text;not null"`
	CreatedBy uint   `gorm:"index"`
}
