package db

import "time"

// ContactRequest 保存前台联系表单提交的内容
// 新建时 PublishedAt 为空，即草稿状态，由后台人工处理
type ContactRequest struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:255;not null"`
	Email       string  `gorm:"size:255;not null"`
	Company     *string `gorm:"size:255"`
	Subject     string  `gorm:"size:255;not null"`
	Message     string  `gorm:"type:text;not null"`
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName 返回自定义表名，避免冲突
func (ContactRequest) TableName() string {
	return "contact_requests"
}
