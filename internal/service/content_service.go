package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/model"
	"gorm.io/gorm"
)

// isoMillis matches JavaScript's Date.toISOString so stored timestamps read the same
// way the frontend expects.
const isoMillis = "2006-01-02T15:04:05.000Z"

// blogPublishOrder sorts by published_date, falling back to published_at. Both sides of the
// COALESCE must be text on postgres.
const blogPublishOrder = "COALESCE(NULLIF(published_date, ''), CAST(published_at AS TEXT)) DESC, id DESC"

// ContentService reads published portfolio content and reshapes rows into
// `{ id, attributes }` entries.
type ContentService struct {
	db *gorm.DB
}

// BlogPage is one page of published blogs plus the total published count.
type BlogPage struct {
	Items []model.Entry[model.Blog]
	Total int64
}

// NewContentService returns a new ContentService instance.
func NewContentService(gdb *gorm.DB) *ContentService {
	return &ContentService{db: gdb}
}

// FetchIntroduction returns the most recently updated introduction, or nil when the
// table is empty.
func (s *ContentService) FetchIntroduction() (*model.Entry[model.Introduction], error) {
	var row db.Introduction
	if err := s.db.Order("updated_at DESC, id DESC").Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch introduction: %w", err)
	}

	entry := introductionEntry(row)
	return &entry, nil
}

// FetchWorkExperiences returns every published experience, newest first.
func (s *ContentService) FetchWorkExperiences() ([]model.Entry[model.WorkExperience], error) {
	var rows []db.WorkExperience
	if err := s.db.Where("published_at IS NOT NULL").
		Order(`start_date DESC, COALESCE("order", 0) DESC`).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch work experiences: %w", err)
	}

	items := make([]model.Entry[model.WorkExperience], 0, len(rows))
	for _, row := range rows {
		items = append(items, workExperienceEntry(row))
	}
	return items, nil
}

// FetchBlogs returns a 1-indexed page of published blogs ordered by their effective
// publish date.
func (s *ContentService) FetchBlogs(page, pageSize int) (*BlogPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	result := &BlogPage{}
	if err := s.db.Model(&db.Blog{}).Where("published_at IS NOT NULL").Count(&result.Total).Error; err != nil {
		return nil, fmt.Errorf("count blogs: %w", err)
	}

	offset := (page - 1) * pageSize

	var rows []db.Blog
	if err := s.db.Where("published_at IS NOT NULL").
		Order(blogPublishOrder).
		Limit(pageSize).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}

	result.Items = make([]model.Entry[model.Blog], 0, len(rows))
	for _, row := range rows {
		result.Items = append(result.Items, blogEntry(row))
	}
	return result, nil
}

// FetchBlogBySlug returns the published blog with exactly this slug, or nil.
func (s *ContentService) FetchBlogBySlug(slug string) (*model.Entry[model.Blog], error) {
	var row db.Blog
	if err := s.db.Where("slug = ? AND published_at IS NOT NULL", slug).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch blog by slug: %w", err)
	}

	entry := blogEntry(row)
	return &entry, nil
}

// FetchGeneratedProfile returns the current CV pointer row, or nil.
func (s *ContentService) FetchGeneratedProfile() (*model.Entry[model.GeneratedProfile], error) {
	var row db.GeneratedProfile
	if err := s.db.Order("updated_at DESC, id DESC").Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch generated profile: %w", err)
	}

	return &model.Entry[model.GeneratedProfile]{
		ID:         row.ID,
		Attributes: model.GeneratedProfile{CVURL: row.CVURL},
	}, nil
}

// UpsertGeneratedProfileURL points the current pointer row at url, inserting a row when
// none exists. Two concurrent first calls can both insert; readers always take the
// latest row so the extra row is harmless.
func (s *ContentService) UpsertGeneratedProfileURL(url string) (uint, error) {
	existing, err := s.FetchGeneratedProfile()
	if err != nil {
		return 0, err
	}

	if existing != nil {
		if err := s.db.Model(&db.GeneratedProfile{}).
			Where("id = ?", existing.ID).
			Updates(map[string]interface{}{"cv_url": url, "updated_at": time.Now()}).Error; err != nil {
			return 0, fmt.Errorf("update generated profile: %w", err)
		}
		return existing.ID, nil
	}

	row := db.GeneratedProfile{CVURL: &url}
	if err := s.db.Create(&row).Error; err != nil {
		return 0, fmt.Errorf("create generated profile: %w", err)
	}
	return row.ID, nil
}

func introductionEntry(row db.Introduction) model.Entry[model.Introduction] {
	return model.Entry[model.Introduction]{
		ID: row.ID,
		Attributes: model.Introduction{
			FullName: row.FullName,
			Title:    row.Title,
			Email:    row.Email,
			Phone:    row.Phone,
			Location: row.Location,
			Website:  row.Website,
			Linkedin: row.Linkedin,
			Github:   row.Github,
			Summary:  row.Summary,
			Skills:   parseJSONArray(row.Skills),
			Avatar:   model.NewMediaField(row.AvatarURL),
		},
	}
}

func workExperienceEntry(row db.WorkExperience) model.Entry[model.WorkExperience] {
	order := 0
	if row.Order != nil {
		order = *row.Order
	}

	return model.Entry[model.WorkExperience]{
		ID: row.ID,
		Attributes: model.WorkExperience{
			Company:      row.Company,
			Position:     row.Position,
			Location:     row.Location,
			StartDate:    row.StartDate,
			EndDate:      row.EndDate,
			Current:      row.Current,
			Description:  row.Description,
			Achievements: parseJSONArray(row.Achievements),
			Technologies: parseJSONArray(row.Technologies),
			Order:        order,
			CompanyURL:   row.CompanyURL,
		},
	}
}

func blogEntry(row db.Blog) model.Entry[model.Blog] {
	publishedDate := row.PublishedDate
	if (publishedDate == nil || *publishedDate == "") && row.PublishedAt != nil {
		formatted := row.PublishedAt.UTC().Format(isoMillis)
		publishedDate = &formatted
	}

	return model.Entry[model.Blog]{
		ID: row.ID,
		Attributes: model.Blog{
			Title:         row.Title,
			Slug:          row.Slug,
			Description:   row.Description,
			Content:       row.Content,
			FeaturedImage: model.NewMediaField(row.FeaturedImageURL),
			PublishedDate: publishedDate,
			Tags:          parseJSONArray(row.Tags),
			Author:        row.Author,
			ReadingTime:   row.ReadingTime,
		},
	}
}

// parseJSONArray decodes a JSON-array-of-strings column. Anything else, including
// malformed text, reads as absent.
func parseJSONArray(raw *string) []string {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}

	var values []string
	if err := json.Unmarshal([]byte(*raw), &values); err != nil {
		return nil
	}
	if values == nil {
		return nil
	}
	return values
}

// encodeJSONArray is the inverse of parseJSONArray; nil stays NULL.
func encodeJSONArray(values []string) *string {
	if values == nil {
		return nil
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	text := string(encoded)
	return &text
}
