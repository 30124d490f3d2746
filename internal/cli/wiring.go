package cli

import (
	"context"
	"log"

	"github.com/pkg/errors"
	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/pdf"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/storage"
)

// newGenerator builds the CV generator described by cfg on top of the global database.
func newGenerator(ctx context.Context, cfg config.AppConfig) (*service.CVGenerator, storage.Bucket, error) {
	bucket, err := storage.NewFromConfig(ctx, cfg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "configure cv storage")
	}

	opts := []service.CVGeneratorOption{
		service.WithBucket(bucket),
		service.WithPublicPrefix(cfg.CVPublicPrefix),
		service.WithPublicBaseURL(cfg.PublicBaseURL),
	}
	if cfg.CVRenderPDF {
		if bucket == nil {
			log.Printf("[cv] CV_RENDER_PDF ignored: no CV_STORAGE configured")
		} else {
			opts = append(opts, service.WithPDFRenderer(pdf.NewChromeRenderer(cfg.ChromePath)))
		}
	}

	return service.NewCVGenerator(service.NewContentService(db.DB), opts...), bucket, nil
}

func initDatabase(cfg config.AppConfig) error {
	if err := db.Init(cfg.DatabaseURL); err != nil {
		return errors.Wrap(err, "initialize database")
	}
	return nil
}
