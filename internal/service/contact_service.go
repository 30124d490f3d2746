package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/model"
	"gorm.io/gorm"
)

var (
	// ErrContactInvalidInput 在联系表单数据不合法时返回
	ErrContactInvalidInput = errors.New("invalid contact request")
	// ErrContactMissingFields 缺少必填字段
	ErrContactMissingFields = fmt.Errorf("%w: Missing required fields", ErrContactInvalidInput)
	// ErrContactInvalidEmail 邮箱格式不正确
	ErrContactInvalidEmail = fmt.Errorf("%w: Invalid email format", ErrContactInvalidInput)
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactService 负责保存前台提交的联系请求
type ContactService struct {
	db *gorm.DB
}

// NewContactService 构造 ContactService
func NewContactService(gdb *gorm.DB) *ContactService {
	return &ContactService{db: gdb}
}

// ContactRequestInput 描述一次联系表单提交
// Company 为可选字段，其余均为必填
type ContactRequestInput struct {
	Name    string
	Email   string
	Company *string
	Subject string
	Message string
}

// ContactRequestList 后台分页列表
type ContactRequestList struct {
	Items []model.Entry[model.ContactRequest]
	Total int64
}

// IsValidEmail reports whether value looks like local@domain.tld.
func IsValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// Create 校验并保存联系请求，新记录处于草稿状态
func (s *ContactService) Create(input ContactRequestInput) (*model.Entry[model.ContactRequest], error) {
	attrs, err := normalizeContactInput(input)
	if err != nil {
		return nil, err
	}

	row := db.ContactRequest{
		Name:    attrs.Name,
		Email:   attrs.Email,
		Company: attrs.Company,
		Subject: attrs.Subject,
		Message: attrs.Message,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create contact request: %w", err)
	}

	return &model.Entry[model.ContactRequest]{ID: row.ID, Attributes: attrs}, nil
}

// List 返回联系请求，最新的在前
func (s *ContactService) List(page, pageSize int) (*ContactRequestList, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	result := &ContactRequestList{}
	if err := s.db.Model(&db.ContactRequest{}).Count(&result.Total).Error; err != nil {
		return nil, fmt.Errorf("count contact requests: %w", err)
	}

	var rows []db.ContactRequest
	if err := s.db.Order("created_at DESC, id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list contact requests: %w", err)
	}

	result.Items = make([]model.Entry[model.ContactRequest], 0, len(rows))
	for _, row := range rows {
		result.Items = append(result.Items, model.Entry[model.ContactRequest]{
			ID: row.ID,
			Attributes: model.ContactRequest{
				Name:    row.Name,
				Email:   row.Email,
				Company: row.Company,
				Subject: row.Subject,
				Message: row.Message,
			},
		})
	}
	return result, nil
}

func normalizeContactInput(input ContactRequestInput) (model.ContactRequest, error) {
	attrs := model.ContactRequest{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	}
	if input.Company != nil {
		if company := strings.TrimSpace(*input.Company); company != "" {
			attrs.Company = &company
		}
	}

	if attrs.Name == "" || attrs.Email == "" || attrs.Subject == "" || attrs.Message == "" {
		return attrs, ErrContactMissingFields
	}
	if !IsValidEmail(attrs.Email) {
		return attrs, ErrContactInvalidEmail
	}
	return attrs, nil
}
