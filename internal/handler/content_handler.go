package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/model"
	"github.com/portfolio/internal/view"
)

// GetIntroduction returns the current introduction or `{data: null}`.
func (a *API) GetIntroduction(c *gin.Context) {
	entry, err := a.content.FetchIntroduction()
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSingleResponse(entry))
}

// GetGeneratedProfile returns the pointer to the last published CV.
func (a *API) GetGeneratedProfile(c *gin.Context) {
	entry, err := a.content.FetchGeneratedProfile()
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSingleResponse(entry))
}

// GetWorkExperiences returns every published experience as a single page.
func (a *API) GetWorkExperiences(c *gin.Context) {
	items, err := a.content.FetchWorkExperiences()
	if err != nil {
		respondInternalError(c, err)
		return
	}

	n := len(items)
	pageSize := n
	if pageSize < 1 {
		pageSize = 1
	}
	c.JSON(http.StatusOK, model.NewCollectionResponse(items, model.NewPagination(int64(n), 1, pageSize)))
}

// GetBlogs lists published blogs, or looks one up by slug.
func (a *API) GetBlogs(c *gin.Context) {
	if slug := queryFirst(c, "filters[slug][$eq]", "slug"); slug != "" {
		a.getBlogBySlug(c, slug)
		return
	}

	page := parseLeadingInt(queryFirst(c, "pagination[page]", "page"), 1)
	pageSize := parseLeadingInt(queryFirst(c, "pagination[pageSize]", "pageSize"), 10)

	result, err := a.content.FetchBlogs(page, pageSize)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewCollectionResponse(result.Items, model.NewPagination(result.Total, page, pageSize)))
}

func (a *API) getBlogBySlug(c *gin.Context, slug string) {
	entry, err := a.content.FetchBlogBySlug(slug)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	items := []model.Entry[model.Blog]{}
	if entry != nil {
		rendered, err := view.RenderMarkdown(entry.Attributes.Content)
		if err != nil {
			respondInternalError(c, err)
			return
		}
		entry.Attributes.ContentHTML = &rendered
		items = append(items, *entry)
	}

	c.JSON(http.StatusOK, model.NewCollectionResponse(items, model.NewPagination(int64(len(items)), 1, max(len(items), 1))))
}
