package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/service"
	"gorm.io/gorm"
)

// Options carries the optional collaborators of an API.
type Options struct {
	// AdminToken 为空且 AdminTokenBcrypt 为空时，生成接口不做鉴权，后台接口不注册
	AdminToken       string
	AdminTokenBcrypt string
	Events           *service.ContentEvents
	Generator        *service.CVGenerator
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	content   *service.ContentService
	contacts  *service.ContactService
	editor    *service.EditorService
	generator *service.CVGenerator
	auth      adminCredential
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) *API {
	content := service.NewContentService(gdb)

	generator := opts.Generator
	if generator == nil {
		generator = service.NewCVGenerator(content)
	}

	return &API{
		db:        gdb,
		content:   content,
		contacts:  service.NewContactService(gdb),
		editor:    service.NewEditorService(gdb, opts.Events),
		generator: generator,
		auth:      newAdminCredential(opts.AdminToken, opts.AdminTokenBcrypt),
	}
}

// AdminEnabled reports whether an admin secret is configured.
func (a *API) AdminEnabled() bool {
	return a.auth.configured()
}

// Health pings the database.
func (a *API) Health(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
