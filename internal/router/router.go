package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/portfolio/internal/handler"
)

// Options 控制路由中与部署相关的部分
type Options struct {
	// FilesDir 非空时以 FilesPath 为前缀只读暴露本地存储的简历文件
	FilesDir  string
	FilesPath string
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(handler.RequestLogger(), handler.Recovery())
	r.NoRoute(handler.NotFound)

	if dir := strings.TrimSpace(opts.FilesDir); dir != "" {
		path := "/" + strings.Trim(strings.TrimSpace(opts.FilesPath), "/")
		if path == "/" {
			path = "/files"
		}
		r.Static(path, dir)
	}

	r.GET("/cv.html", api.ShowCV)

	public := r.Group("/api")
	{
		public.GET("/health", api.Health)
		public.GET("/introduction", api.GetIntroduction)
		public.GET("/generated-profile", api.GetGeneratedProfile)
		public.GET("/work-experiences", api.GetWorkExperiences)
		public.GET("/blogs", api.GetBlogs)
		public.POST("/contact-requests", api.CreateContactRequest)
		public.POST("/cv-generator/generate", api.AdminRequired(), api.GenerateCV)
	}

	// 只有配置了管理密钥才开放内容管理接口
	if api.AdminEnabled() {
		admin := r.Group("/api/admin")
		admin.Use(api.AdminRequired())
		{
			admin.POST("/introductions", api.CreateIntroduction)
			admin.PUT("/introductions/:id", api.UpdateIntroduction)
			admin.DELETE("/introductions/:id", api.DeleteIntroduction)

			admin.POST("/work-experiences", api.CreateWorkExperience)
			admin.PUT("/work-experiences/:id", api.UpdateWorkExperience)
			admin.DELETE("/work-experiences/:id", api.DeleteWorkExperience)

			admin.POST("/blogs", api.CreateBlog)
			admin.PUT("/blogs/:id", api.UpdateBlog)
			admin.DELETE("/blogs/:id", api.DeleteBlog)

			admin.GET("/contact-requests", api.ListContactRequests)
		}
	}

	return r
}

// WithCORS wraps next with CORS handling. No origins means any origin is allowed.
func WithCORS(next http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-KEY", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})(next)
}
