package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/portfolio/internal/model"
	"github.com/portfolio/internal/storage"
	"github.com/portfolio/internal/view"
)

// DefaultCVPrefix is used when no public prefix is configured.
const DefaultCVPrefix = "/public"

// CVSource is the subset of ContentService the generator needs.
type CVSource interface {
	FetchIntroduction() (*model.Entry[model.Introduction], error)
	FetchWorkExperiences() ([]model.Entry[model.WorkExperience], error)
	UpsertGeneratedProfileURL(url string) (uint, error)
}

// PDFRenderer prints a rendered HTML document to PDF.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// CVResult is the outcome of one generation run. PublicURL is nil when publishing is
// disabled; PDFURL is nil when no PDF was stored.
type CVResult struct {
	HTML      string
	PublicURL *string
	PDFURL    *string
}

// CVGenerator renders the CV and, when a bucket is configured, publishes it and records
// the public URL on the generated profile row.
type CVGenerator struct {
	source  CVSource
	bucket  storage.Bucket
	pdf     PDFRenderer
	prefix  string
	baseURL string
	now     func() time.Time
}

// CVGeneratorOption customises a CVGenerator.
type CVGeneratorOption func(*CVGenerator)

// WithBucket enables publishing to bucket. A nil bucket leaves publishing disabled.
func WithBucket(bucket storage.Bucket) CVGeneratorOption {
	return func(g *CVGenerator) { g.bucket = bucket }
}

// WithPDFRenderer stores a PDF companion next to each published document.
func WithPDFRenderer(renderer PDFRenderer) CVGeneratorOption {
	return func(g *CVGenerator) { g.pdf = renderer }
}

// WithPublicPrefix sets the key prefix, e.g. "/public".
func WithPublicPrefix(prefix string) CVGeneratorOption {
	return func(g *CVGenerator) { g.prefix = prefix }
}

// WithPublicBaseURL sets the URL that keys are joined onto.
func WithPublicBaseURL(baseURL string) CVGeneratorOption {
	return func(g *CVGenerator) { g.baseURL = baseURL }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) CVGeneratorOption {
	return func(g *CVGenerator) { g.now = now }
}

// NewCVGenerator builds a generator reading from source.
func NewCVGenerator(source CVSource, opts ...CVGeneratorOption) *CVGenerator {
	g := &CVGenerator{
		source: source,
		prefix: DefaultCVPrefix,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Render fetches the current content and renders the document without publishing it.
func (g *CVGenerator) Render() (string, error) {
	return g.render(g.now())
}

// Generate renders the CV and publishes it when a bucket is configured.
func (g *CVGenerator) Generate(ctx context.Context) (*CVResult, error) {
	now := g.now()
	html, err := g.render(now)
	if err != nil {
		return nil, err
	}

	result := &CVResult{HTML: html}
	if g.bucket == nil {
		return result, nil
	}

	stem := g.objectStem(now)
	key := stem + ".html"
	if err := g.bucket.Put(ctx, key, []byte(html), "text/html"); err != nil {
		return nil, fmt.Errorf("store cv: %w", err)
	}

	publicURL := g.publicURL(key)
	if _, err := g.source.UpsertGeneratedProfileURL(publicURL); err != nil {
		return nil, fmt.Errorf("record cv url: %w", err)
	}
	result.PublicURL = &publicURL
	log.Printf("[cv] published %s", publicURL)

	if g.pdf != nil {
		if pdfURL, err := g.publishPDF(ctx, stem, html); err != nil {
			log.Printf("[cv] pdf companion failed: %v", err)
		} else {
			result.PDFURL = &pdfURL
		}
	}

	return result, nil
}

// HandleContentEvent regenerates the CV in reaction to a content change.
func (g *CVGenerator) HandleContentEvent(ctx context.Context, event ContentEvent) error {
	result, err := g.Generate(ctx)
	if err != nil {
		return fmt.Errorf("regenerate cv after %s: %w", event, err)
	}
	if result.PublicURL == nil {
		log.Printf("[cv] regenerated after %s (publishing disabled)", event)
	}
	return nil
}

func (g *CVGenerator) render(now time.Time) (string, error) {
	intro, err := g.source.FetchIntroduction()
	if err != nil {
		return "", err
	}
	experiences, err := g.source.FetchWorkExperiences()
	if err != nil {
		return "", err
	}

	var introAttrs *model.Introduction
	if intro != nil {
		introAttrs = &intro.Attributes
	}
	attrs := make([]model.WorkExperience, 0, len(experiences))
	for _, entry := range experiences {
		attrs = append(attrs, entry.Attributes)
	}

	return view.RenderCV(introAttrs, attrs, now)
}

func (g *CVGenerator) publishPDF(ctx context.Context, stem, html string) (string, error) {
	body, err := g.pdf.RenderPDF(ctx, html)
	if err != nil {
		return "", err
	}
	key := stem + ".pdf"
	if err := g.bucket.Put(ctx, key, body, "application/pdf"); err != nil {
		return "", err
	}
	return g.publicURL(key), nil
}

// objectStem returns "{prefix}/cv-{timestamp}" with the extension left off.
func (g *CVGenerator) objectStem(now time.Time) string {
	stamp := now.UTC().Format(isoMillis)
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)

	prefix := strings.Trim(strings.TrimSpace(g.prefix), "/")
	if prefix == "" {
		return "cv-" + stamp
	}
	return prefix + "/cv-" + stamp
}

func (g *CVGenerator) publicURL(key string) string {
	base := strings.TrimRight(strings.TrimSpace(g.baseURL), "/")
	if base == "" {
		return key
	}
	return base + "/" + key
}
