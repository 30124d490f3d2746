package db

import "time"

// Introduction 保存简历头部的个人信息
// Skills 以 JSON 数组文本存储，读取时容错解析
// 表中可能存在多行，最近更新的一行视为当前值
type Introduction struct {
	ID        uint   `gorm:"primaryKey"`
	FullName  string `gorm:"not null"`
	Title     string `gorm:"not null"`
	Email     string `gorm:"not null"`
	Phone     *string
	Location  *string
	Website   *string
	Linkedin  *string
	Github    *string
	Summary   string  `gorm:"type:text"`
	Skills    *string `gorm:"type:text"`
	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`
}

// TableName 指定自定义表名。
func (Introduction) TableName() string {
	return "introductions"
}
