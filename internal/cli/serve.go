package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"photo-editor/internal/api"
	"photo-editor/internal/core/image"
	"photo-editor/internal/infrastructure/storage"
	"photo-editor/internal/pkg/common"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		port      int
		uploadDir string
		staticDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the photo editing HTTP API",
		Example: `  # Start server on the configured port (default 5003)
  photo-editor serve

  # Custom port and upload directory
  photo-editor serve --port 8080 --upload-dir /data/uploads`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("upload-dir") {
				cfg.Storage.UploadDir = uploadDir
			}
			if cmd.Flags().Changed("static-dir") {
				cfg.Server.StaticDir = staticDir
			}

			common.LogInfo("載入設定",
				zap.String("upload_dir", cfg.Storage.UploadDir),
				zap.Strings("allowed_extensions", cfg.Storage.AllowedExtensions),
				zap.Int64("max_upload_bytes", cfg.Storage.MaxUploadBytes),
			)

			store, err := storage.New(cfg.Storage.UploadDir, storage.Options{
				AllowedExtensions: cfg.Storage.AllowedExtensions,
				VerifyContent:     cfg.Storage.VerifyContent,
			})
			if err != nil {
				common.LogError("Failed to open upload dir", zap.Error(err))
				return err
			}

			svc := image.NewService(store, image.Codec{
				JPEGQuality:     cfg.Codec.JPEGQuality,
				AutoOrientation: cfg.Codec.AutoOrientation,
			})

			router, err := api.SetupRouter(cfg, store, svc)
			if err != nil {
				common.LogError("Failed to setup router", zap.Error(err))
				return err
			}

			srv := &http.Server{
				Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
				Handler:      router,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				IdleTimeout:  cfg.Server.IdleTimeout,
			}

			serverErr := make(chan error, 1)
			go func() {
				common.LogInfo("啟動應用",
					zap.String("version", cfg.App.Version),
					zap.String("env", cfg.App.Env),
					zap.String("addr", srv.Addr),
				)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			select {
			case <-cmd.Context().Done():
				common.LogInfo("Shutting down server...")

				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := srv.Shutdown(ctx); err != nil {
					common.LogError("Server forced to shutdown", zap.Error(err))
					return err
				}
				common.LogInfo("Server exited")
				return nil
			case err := <-serverErr:
				common.LogError("Failed to start server", zap.Error(err))
				return err
			}
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 5003, "Port to listen on")
	cmd.Flags().StringVar(&uploadDir, "upload-dir", "uploads", "Directory holding uploaded and derived images")
	cmd.Flags().StringVar(&staticDir, "static-dir", "", "Serve a front-end from this directory at /")

	return cmd
}
