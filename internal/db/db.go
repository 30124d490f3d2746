package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

// Models lists every table managed by AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&Introduction{},
		&WorkExperience{},
		&Blog{},
		&GeneratedProfile{},
		&ContactRequest{},
	}
}

// Init 初始化数据库连接并执行自动迁移。
// dsn 为空时将回退到默认值 portfolio.db。
func Init(dsn string) error {
	gdb, err := Open(dsn)
	if err != nil {
		return err
	}

	if err := gdb.AutoMigrate(Models()...); err != nil {
		return err
	}

	DB = gdb
	return nil
}

// Open selects the postgres driver for postgres:// URLs and sqlite for everything else.
func Open(dsn string) (*gorm.DB, error) {
	path := strings.TrimSpace(dsn)
	if path == "" {
		path = "portfolio.db"
	}

	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	if isPostgresURL(path) {
		return gorm.Open(postgres.Open(path), cfg)
	}

	if err := ensureParentDir(path); err != nil {
		return nil, err
	}
	return gorm.Open(sqlite.Open(path), cfg)
}

func isPostgresURL(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") || strings.Contains(path, ":memory:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
