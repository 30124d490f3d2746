package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr  string
	Port        string
	DatabaseURL string
	GinMode     string
	CorsOrigins []string

	AdminToken       string
	AdminTokenBcrypt string

	CVStorage      string
	CVStorageDir   string
	CVFilesPath    string
	CVBucket       string
	S3Endpoint     string
	S3Region       string
	PublicBaseURL  string
	CVPublicPrefix string
	CVRenderPDF    bool
	ChromePath     string
}

const (
	// StorageDisabled keeps generated CVs in memory only.
	StorageDisabled = ""
	// StorageFS writes generated CVs below CVStorageDir.
	StorageFS = "fs"
	// StorageS3 writes generated CVs to an S3 compatible bucket (R2, MinIO, AWS).
	StorageS3 = "s3"
)

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := envOr("PORT", "8080")

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	return AppConfig{
		ListenAddr:       listenAddr,
		Port:             port,
		DatabaseURL:      envOr("DATABASE_URL", "portfolio.db"),
		GinMode:          ginMode(os.Getenv("GIN_MODE")),
		CorsOrigins:      parseCSV(os.Getenv("CORS_ORIGINS")),
		AdminToken:       strings.TrimSpace(os.Getenv("ADMIN_TOKEN")),
		AdminTokenBcrypt: strings.TrimSpace(os.Getenv("ADMIN_TOKEN_BCRYPT")),
		CVStorage:        strings.ToLower(strings.TrimSpace(os.Getenv("CV_STORAGE"))),
		CVStorageDir:     envOr("CV_STORAGE_DIR", "storage/cv"),
		CVFilesPath:      envOr("CV_FILES_PATH", "/files"),
		CVBucket:         strings.TrimSpace(os.Getenv("CV_BUCKET")),
		S3Endpoint:       strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
		S3Region:         envOr("S3_REGION", "auto"),
		PublicBaseURL:    strings.TrimSpace(os.Getenv("PUBLIC_BASE_URL")),
		CVPublicPrefix:   envOr("CV_PUBLIC_PREFIX", "/public"),
		CVRenderPDF:      envOrBool("CV_RENDER_PDF", false),
		ChromePath:       strings.TrimSpace(os.Getenv("CHROME_PATH")),
	}
}

// AdminSecretConfigured reports whether privileged endpoints require a credential.
func (c AppConfig) AdminSecretConfigured() bool {
	return c.AdminToken != "" || c.AdminTokenBcrypt != ""
}

// ginMode 只接受 gin 认识的模式，其余回退到 release
func ginMode(raw string) string {
	switch mode := strings.ToLower(strings.TrimSpace(raw)); mode {
	case "debug", "release", "test":
		return mode
	default:
		return "release"
	}
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
