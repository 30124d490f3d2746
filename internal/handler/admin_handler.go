package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/model"
	"github.com/portfolio/internal/service"
)

type introductionPayload struct {
	FullName  string   `json:"fullName"`
	Title     string   `json:"title"`
	Email     string   `json:"email"`
	Phone     *string  `json:"phone"`
	Location  *string  `json:"location"`
	Website   *string  `json:"website"`
	Linkedin  *string  `json:"linkedin"`
	Github    *string  `json:"github"`
	Summary   string   `json:"summary"`
	Skills    []string `json:"skills"`
	AvatarURL *string  `json:"avatarUrl"`
}

func (p introductionPayload) toInput() service.IntroductionInput {
	return service.IntroductionInput{
		FullName:  p.FullName,
		Title:     p.Title,
		Email:     p.Email,
		Phone:     p.Phone,
		Location:  p.Location,
		Website:   p.Website,
		Linkedin:  p.Linkedin,
		Github:    p.Github,
		Summary:   p.Summary,
		Skills:    p.Skills,
		AvatarURL: p.AvatarURL,
	}
}

type workExperiencePayload struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Location     *string  `json:"location"`
	StartDate    string   `json:"startDate"`
	EndDate      *string  `json:"endDate"`
	Current      bool     `json:"current"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
	Technologies []string `json:"technologies"`
	Order        *int     `json:"order"`
	CompanyURL   *string  `json:"companyUrl"`
	Publish      *bool    `json:"publish"`
}

func (p workExperiencePayload) toInput() service.WorkExperienceInput {
	return service.WorkExperienceInput{
		Company:      p.Company,
		Position:     p.Position,
		Location:     p.Location,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		Current:      p.Current,
		Description:  p.Description,
		Achievements: p.Achievements,
		Technologies: p.Technologies,
		Order:        p.Order,
		CompanyURL:   p.CompanyURL,
		Publish:      p.Publish,
	}
}

type blogPayload struct {
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	Description      string   `json:"description"`
	Content          string   `json:"content"`
	FeaturedImageURL *string  `json:"featuredImageUrl"`
	PublishedDate    *string  `json:"publishedDate"`
	Tags             []string `json:"tags"`
	Author           *string  `json:"author"`
	ReadingTime      *int     `json:"readingTime"`
	Publish          *bool    `json:"publish"`
}

func (p blogPayload) toInput() service.BlogInput {
	return service.BlogInput{
		Title:            p.Title,
		Slug:             p.Slug,
		Description:      p.Description,
		Content:          p.Content,
		FeaturedImageURL: p.FeaturedImageURL,
		PublishedDate:    p.PublishedDate,
		Tags:             p.Tags,
		Author:           p.Author,
		ReadingTime:      p.ReadingTime,
		Publish:          p.Publish,
	}
}

// CreateIntroduction 新建个人介绍
func (a *API) CreateIntroduction(c *gin.Context) {
	var payload introductionPayload
	if !bindJSON(c, &payload, "Invalid request body") {
		return
	}
	entry, err := a.editor.CreateIntroduction(payload.toInput())
	if err != nil {
		handleEditorError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSingleResponse(entry))
}

// UpdateIntroduction 更新个人介绍
func (a *API) UpdateIntroduction(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var payload introductionPayload
	if !bindJSON(c, &payload, "Invalid request body") {
		return
	}
	entry, err := a.editor.UpdateIntroduction(id, payload.toInput())
	if err != nil {
		handleEditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSingleResponse(entry))
}

// DeleteIntroduction 删除个人介绍
func (a *API) DeleteIntroduction(c *gin.Context) {
	a.deleteEntry(c, a.editor.DeleteIntroduction)
}

// CreateWorkExperience 新建工作经历
func (a *API) CreateWorkExperience(c *gin.Context) {
	var payload workExperiencePayload
	if !bindJSON(c, &payload, "Invalid request body") {
		return
	}
	entry, err := a.editor.CreateWorkExperience(payload.toInput())
	if err != nil {
		handleEditorError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSingleResponse(entry))
}

// UpdateWorkExperience 更新工作经历
func (a *API) UpdateWorkExperience(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var payload workExperiencePayload
	if !bindJSON(c, &payload, "Invalid request body") {
		return
	}
	entry, err := a.editor.UpdateWorkExperience(id, payload.toInput())
	if err != nil {
		handleEditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSingleResponse(entry))
}

// DeleteWorkExperience 删除工作经历
func (a *API) DeleteWorkExperience(c *gin.Context) {
	a.deleteEntry(c, a.editor.DeleteWorkExperience)
}

// CreateBlog 新建博客
func (a *API) CreateBlog(c *gin.Context) {
	var payload blogPayload
	if !bindJSON(c, &payload, "Invalid request body") {
		return
	}
	entry, err := a.editor.CreateBlog(payload.toInput())
	if err != nil {
		handleEditorError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSingleResponse(entry))
}

// UpdateBlog 更新博客
func (a *API) UpdateBlog(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var payload blogPayload
	if !bindJSON(c, &payload, "Invalid request body") {
		return
	}
	entry, err := a.editor.UpdateBlog(id, payload.toInput())
	if err != nil {
		handleEditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSingleResponse(entry))
}

// DeleteBlog 删除博客
func (a *API) DeleteBlog(c *gin.Context) {
	a.deleteEntry(c, a.editor.DeleteBlog)
}

// ListContactRequests 后台查看联系请求
func (a *API) ListContactRequests(c *gin.Context) {
	page := parseLeadingInt(queryFirst(c, "pagination[page]", "page"), 1)
	pageSize := parseLeadingInt(queryFirst(c, "pagination[pageSize]", "pageSize"), 25)

	list, err := a.contacts.List(page, pageSize)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewCollectionResponse(list.Items, model.NewPagination(list.Total, page, pageSize)))
}

func (a *API) deleteEntry(c *gin.Context, remove func(uint) error) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := remove(id); err != nil {
		handleEditorError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func handleEditorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEditorInvalidInput):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEntryNotFound):
		respondError(c, http.StatusNotFound, "Not Found")
	case errors.Is(err, service.ErrSlugTaken):
		respondError(c, http.StatusConflict, err.Error())
	default:
		respondInternalError(c, err)
	}
}
