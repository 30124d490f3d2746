package db

import "time"

// Blog 定义了博客文章模型
type Blog struct {
	ID               uint   `gorm:"primaryKey"`
	Title            string `gorm:"not null"`
	Slug             string `gorm:"uniqueIndex;not null"`
	Description      string
	Content          string `gorm:"type:text"`
	FeaturedImageURL *string
	PublishedDate    *string
	Tags             *string `gorm:"type:text"`
	Author           *string
	ReadingTime      *int
	PublishedAt      *time.Time `gorm:"index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName 指定自定义表名。
func (Blog) TableName() string {
	return "blogs"
}
