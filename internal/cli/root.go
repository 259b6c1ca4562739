// Package cli 命令列入口：serve 啟動 HTTP 服務，adjust 與 crop 直接處理本機檔案。
package cli

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"photo-editor/internal/infrastructure/config"
	"photo-editor/internal/pkg/common"
)

// app 子命令共用的狀態，在 PersistentPreRunE 中初始化
type app struct {
	fs  afero.Fs
	cfg *config.Config

	logLevel string
	logFile  string
}

// NewRootCmd 創建根命令，使用作業系統檔案系統
func NewRootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs}

	cmd := &cobra.Command{
		Use:   "photo-editor",
		Short: "Upload, adjust and crop photos over HTTP",
		Long: `photo-editor stores uploaded PNG/JPEG images in a flat upload directory and
produces edited_ and cropped_ copies on request.

Use "serve" for the HTTP API, or "adjust" / "crop" to process local files
with the same pipeline.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = a.logLevel
			}
			if cmd.Flags().Changed("log-file") {
				cfg.LogFile = a.logFile
			}
			if err := common.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			common.Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Also write JSON logs to this file (empty disables)")

	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newAdjustCmd(a))
	cmd.AddCommand(newCropCmd(a))

	return cmd
}
