package db

import "time"

// GeneratedProfile points at the most recently published CV document.
// Rows are written by the CV generator only.
type GeneratedProfile struct {
	ID        uint    `gorm:"primaryKey"`
	CVURL     *string `gorm:"column:cv_url"`
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`
}

// TableName 指定自定义表名。
func (GeneratedProfile) TableName() string {
	return "generated_profiles"
}
