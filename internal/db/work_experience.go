package db

import "time"

// WorkExperience 记录一段工作经历
// StartDate/EndDate 使用 ISO 日期文本 (YYYY-MM-DD)，与排序规则保持一致
// PublishedAt 为空表示草稿，前台不可见
type WorkExperience struct {
	ID           uint   `gorm:"primaryKey"`
	Company      string `gorm:"not null"`
	Position     string `gorm:"not null"`
	Location     *string
	StartDate    string `gorm:"not null;index"`
	EndDate      *string
	Current      bool
	Description  string  `gorm:"type:text"`
	Achievements *string `gorm:"type:text"`
	Technologies *string `gorm:"type:text"`
	Order        *int    `gorm:"column:order"`
	CompanyURL   *string
	PublishedAt  *time.Time `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName 指定自定义表名。
func (WorkExperience) TableName() string {
	return "work_experiences"
}
