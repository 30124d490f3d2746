package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/model"
	"gorm.io/gorm"
)

var (
	// ErrEntryNotFound 在要修改的内容不存在时返回
	ErrEntryNotFound = errors.New("entry not found")
	// ErrEditorInvalidInput 在内容缺少必填字段时返回
	ErrEditorInvalidInput = errors.New("invalid content input")
	// ErrSlugTaken 在博客 slug 已被占用时返回
	ErrSlugTaken = errors.New("slug already in use")
)

// EditorService is the content mutation boundary used by the admin API. Every successful
// write is announced on the events bus.
type EditorService struct {
	db     *gorm.DB
	events *ContentEvents
}

// NewEditorService 构造 EditorService，events 可以为 nil
func NewEditorService(gdb *gorm.DB, events *ContentEvents) *EditorService {
	return &EditorService{db: gdb, events: events}
}

// IntroductionInput 描述创建或更新个人介绍时可设置的字段
type IntroductionInput struct {
	FullName  string
	Title     string
	Email     string
	Phone     *string
	Location  *string
	Website   *string
	Linkedin  *string
	Github    *string
	Summary   string
	Skills    []string
	AvatarURL *string
}

// WorkExperienceInput 描述工作经历字段；Publish 为 nil 时新建默认发布、更新保持原状态
type WorkExperienceInput struct {
	Company      string
	Position     string
	Location     *string
	StartDate    string
	EndDate      *string
	Current      bool
	Description  string
	Achievements []string
	Technologies []string
	Order        *int
	CompanyURL   *string
	Publish      *bool
}

// BlogInput 描述博客字段；ReadingTime 为空时按正文长度估算
type BlogInput struct {
	Title            string
	Slug             string
	Description      string
	Content          string
	FeaturedImageURL *string
	PublishedDate    *string
	Tags             []string
	Author           *string
	ReadingTime      *int
	Publish          *bool
}

// CreateIntroduction inserts a new introduction row, which becomes the current one.
func (s *EditorService) CreateIntroduction(input IntroductionInput) (*model.Entry[model.Introduction], error) {
	if err := validateIntroductionInput(input); err != nil {
		return nil, err
	}

	var row db.Introduction
	applyIntroductionInput(&row, input)
	if err := s.db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create introduction: %w", err)
	}

	s.emit(KindIntroduction, ActionCreate, row.ID)
	entry := introductionEntry(row)
	return &entry, nil
}

// UpdateIntroduction overwrites an introduction row.
func (s *EditorService) UpdateIntroduction(id uint, input IntroductionInput) (*model.Entry[model.Introduction], error) {
	if err := validateIntroductionInput(input); err != nil {
		return nil, err
	}

	var row db.Introduction
	if err := s.find(&row, id); err != nil {
		return nil, err
	}

	applyIntroductionInput(&row, input)
	if err := s.db.Save(&row).Error; err != nil {
		return nil, fmt.Errorf("update introduction: %w", err)
	}

	s.emit(KindIntroduction, ActionUpdate, row.ID)
	entry := introductionEntry(row)
	return &entry, nil
}

// DeleteIntroduction removes an introduction row.
func (s *EditorService) DeleteIntroduction(id uint) error {
	if err := s.remove(&db.Introduction{}, id); err != nil {
		return err
	}
	s.emit(KindIntroduction, ActionDelete, id)
	return nil
}

// CreateWorkExperience inserts a work experience.
func (s *EditorService) CreateWorkExperience(input WorkExperienceInput) (*model.Entry[model.WorkExperience], error) {
	if err := validateWorkExperienceInput(input); err != nil {
		return nil, err
	}

	var row db.WorkExperience
	applyWorkExperienceInput(&row, input)
	row.PublishedAt = resolvePublishedAt(nil, input.Publish, true)
	if err := s.db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create work experience: %w", err)
	}

	s.emit(KindWorkExperience, ActionCreate, row.ID)
	entry := workExperienceEntry(row)
	return &entry, nil
}

// UpdateWorkExperience overwrites a work experience.
func (s *EditorService) UpdateWorkExperience(id uint, input WorkExperienceInput) (*model.Entry[model.WorkExperience], error) {
	if err := validateWorkExperienceInput(input); err != nil {
		return nil, err
	}

	var row db.WorkExperience
	if err := s.find(&row, id); err != nil {
		return nil, err
	}

	applyWorkExperienceInput(&row, input)
	row.PublishedAt = resolvePublishedAt(row.PublishedAt, input.Publish, false)
	if err := s.db.Save(&row).Error; err != nil {
		return nil, fmt.Errorf("update work experience: %w", err)
	}

	s.emit(KindWorkExperience, ActionUpdate, row.ID)
	entry := workExperienceEntry(row)
	return &entry, nil
}

// DeleteWorkExperience removes a work experience.
func (s *EditorService) DeleteWorkExperience(id uint) error {
	if err := s.remove(&db.WorkExperience{}, id); err != nil {
		return err
	}
	s.emit(KindWorkExperience, ActionDelete, id)
	return nil
}

// CreateBlog inserts a blog post.
func (s *EditorService) CreateBlog(input BlogInput) (*model.Entry[model.Blog], error) {
	if err := validateBlogInput(input); err != nil {
		return nil, err
	}
	if err := s.ensureSlugAvailable(strings.TrimSpace(input.Slug), 0); err != nil {
		return nil, err
	}

	var row db.Blog
	applyBlogInput(&row, input)
	row.PublishedAt = resolvePublishedAt(nil, input.Publish, true)
	if err := s.db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}

	s.emit(KindBlog, ActionCreate, row.ID)
	entry := blogEntry(row)
	return &entry, nil
}

// UpdateBlog overwrites a blog post.
func (s *EditorService) UpdateBlog(id uint, input BlogInput) (*model.Entry[model.Blog], error) {
	if err := validateBlogInput(input); err != nil {
		return nil, err
	}

	var row db.Blog
	if err := s.find(&row, id); err != nil {
		return nil, err
	}
	if err := s.ensureSlugAvailable(strings.TrimSpace(input.Slug), id); err != nil {
		return nil, err
	}

	applyBlogInput(&row, input)
	row.PublishedAt = resolvePublishedAt(row.PublishedAt, input.Publish, false)
	if err := s.db.Save(&row).Error; err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}

	s.emit(KindBlog, ActionUpdate, row.ID)
	entry := blogEntry(row)
	return &entry, nil
}

// DeleteBlog removes a blog post.
func (s *EditorService) DeleteBlog(id uint) error {
	if err := s.remove(&db.Blog{}, id); err != nil {
		return err
	}
	s.emit(KindBlog, ActionDelete, id)
	return nil
}

func (s *EditorService) emit(kind ContentKind, action ContentAction, id uint) {
	s.events.Publish(ContentEvent{Kind: kind, Action: action, ID: id})
}

func (s *EditorService) find(dst interface{}, id uint) error {
	if err := s.db.First(dst, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("find entry: %w", err)
	}
	return nil
}

func (s *EditorService) remove(value interface{}, id uint) error {
	result := s.db.Delete(value, id)
	if result.Error != nil {
		return fmt.Errorf("delete entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (s *EditorService) ensureSlugAvailable(slug string, exceptID uint) error {
	var count int64
	query := s.db.Model(&db.Blog{}).Where("slug = ?", slug)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("check slug: %w", err)
	}
	if count > 0 {
		return ErrSlugTaken
	}
	return nil
}

func validateIntroductionInput(input IntroductionInput) error {
	if strings.TrimSpace(input.FullName) == "" {
		return fmt.Errorf("%w: fullName is required", ErrEditorInvalidInput)
	}
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrEditorInvalidInput)
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrEditorInvalidInput)
	}
	if !IsValidEmail(email) {
		return fmt.Errorf("%w: email is invalid", ErrEditorInvalidInput)
	}
	return nil
}

func validateWorkExperienceInput(input WorkExperienceInput) error {
	if strings.TrimSpace(input.Company) == "" {
		return fmt.Errorf("%w: company is required", ErrEditorInvalidInput)
	}
	if strings.TrimSpace(input.Position) == "" {
		return fmt.Errorf("%w: position is required", ErrEditorInvalidInput)
	}
	if strings.TrimSpace(input.StartDate) == "" {
		return fmt.Errorf("%w: startDate is required", ErrEditorInvalidInput)
	}
	return nil
}

func validateBlogInput(input BlogInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrEditorInvalidInput)
	}
	if strings.TrimSpace(input.Slug) == "" {
		return fmt.Errorf("%w: slug is required", ErrEditorInvalidInput)
	}
	return nil
}

func applyIntroductionInput(row *db.Introduction, input IntroductionInput) {
	row.FullName = strings.TrimSpace(input.FullName)
	row.Title = strings.TrimSpace(input.Title)
	row.Email = strings.TrimSpace(input.Email)
	row.Phone = optionalText(input.Phone)
	row.Location = optionalText(input.Location)
	row.Website = optionalText(input.Website)
	row.Linkedin = optionalText(input.Linkedin)
	row.Github = optionalText(input.Github)
	row.Summary = strings.TrimSpace(input.Summary)
	row.Skills = encodeJSONArray(input.Skills)
	row.AvatarURL = optionalText(input.AvatarURL)
}

func applyWorkExperienceInput(row *db.WorkExperience, input WorkExperienceInput) {
	row.Company = strings.TrimSpace(input.Company)
	row.Position = strings.TrimSpace(input.Position)
	row.Location = optionalText(input.Location)
	row.StartDate = strings.TrimSpace(input.StartDate)
	row.EndDate = optionalText(input.EndDate)
	row.Current = input.Current
	row.Description = strings.TrimSpace(input.Description)
	row.Achievements = encodeJSONArray(input.Achievements)
	row.Technologies = encodeJSONArray(input.Technologies)
	row.Order = input.Order
	row.CompanyURL = optionalText(input.CompanyURL)
}

func applyBlogInput(row *db.Blog, input BlogInput) {
	row.Title = strings.TrimSpace(input.Title)
	row.Slug = strings.TrimSpace(input.Slug)
	row.Description = strings.TrimSpace(input.Description)
	row.Content = input.Content
	row.FeaturedImageURL = optionalText(input.FeaturedImageURL)
	row.PublishedDate = optionalText(input.PublishedDate)
	row.Tags = encodeJSONArray(input.Tags)
	row.Author = optionalText(input.Author)

	if input.ReadingTime != nil {
		minutes := *input.ReadingTime
		row.ReadingTime = &minutes
	} else if minutes := calculateReadingTime(input.Content); minutes > 0 {
		row.ReadingTime = &minutes
	} else {
		row.ReadingTime = nil
	}
}

// resolvePublishedAt keeps the current publish marker unless publish is set explicitly.
func resolvePublishedAt(current *time.Time, publish *bool, defaultPublish bool) *time.Time {
	want := defaultPublish
	if publish != nil {
		want = *publish
	} else if current != nil {
		return current
	}

	if !want {
		return nil
	}
	if current != nil {
		return current
	}
	now := time.Now().UTC()
	return &now
}

func optionalText(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func calculateReadingTime(content string) int {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return 0
	}

	runes := []rune(trimmed)
	minutes := len(runes) / 400
	if len(runes)%400 != 0 {
		minutes++
	}
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
