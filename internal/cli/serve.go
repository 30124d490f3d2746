package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/handler"
	"github.com/portfolio/internal/router"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/storage"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	// 不带子命令时直接启动服务
	rootCmd.RunE = serveCmd.RunE
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	if err := initDatabase(cfg); err != nil {
		return err
	}

	generator, bucket, err := newGenerator(parent, cfg)
	if err != nil {
		return err
	}

	// 个人介绍或工作经历变更后异步重新生成简历
	events := service.NewContentEvents()
	events.SubscribeKinds(generator.HandleContentEvent, service.KindIntroduction, service.KindWorkExperience)

	api := handler.NewAPI(db.DB, handler.Options{
		AdminToken:       cfg.AdminToken,
		AdminTokenBcrypt: cfg.AdminTokenBcrypt,
		Events:           events,
		Generator:        generator,
	})
	if !cfg.AdminSecretConfigured() {
		log.Printf("[serve] ADMIN_TOKEN not set: cv generation is open and admin routes are disabled")
	}

	routerOpts := router.Options{FilesPath: cfg.CVFilesPath}
	if fileBucket, ok := bucket.(*storage.FileBucket); ok {
		routerOpts.FilesDir = fileBucket.Root()
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router.WithCORS(router.SetupRouter(api, routerOpts), cfg.CorsOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[serve] listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return errors.Wrap(err, "run server")
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[serve] shutdown: %v", err)
	}
	events.Wait()
	log.Printf("[serve] stopped")
	return nil
}
