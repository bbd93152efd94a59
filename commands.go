package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"edu_platform_backend/internal/app"
	"edu_platform_backend/internal/config"
	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/schema"
	"edu_platform_backend/internal/util"
	"edu_platform_backend/pkg/database"
	"edu_platform_backend/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	var configDir string

	root := &cobra.Command{
		Use:           "edu-platform",
		Short:         "Educational platform backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configDir, "config", "configs", "配置目录，读取其中的 config.yaml")

	// 不带子命令时等同于 serve，--migrate / --migrate-only 同样可用
	serve := newServeCmd(&configDir)
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(
		serve,
		newMigrateCmd(&configDir),
		newValidateCmd(),
		newKindsCmd(),
		newTokenCmd(&configDir),
	)
	return root
}

func newServeCmd(configDir *string) *cobra.Command {
	var migrate, migrateOnly bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configDir)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			// 设置迁移标志
			cfg.ForceMigrate = migrate || migrateOnly
			cfg.MigrateOnly = migrateOnly

			application := app.NewApp(cfg)
			defer logger.Log.Sync()

			// 迁移完成后直接退出
			if migrateOnly {
				logger.Log.Info("Migration finished, exiting")
				return nil
			}

			application.Run(filepath.Join(*configDir, "config.yaml"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	cmd.Flags().BoolVar(&migrateOnly, "migrate-only", false, "只执行数据库迁移，完成后退出")
	return cmd
}

func newMigrateCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configDir)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger.InitLogger(cfg)
			defer logger.Log.Sync()

			db, err := database.InitDB(&cfg.Database, false)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			logger.Log.Info("Database migrated", zap.String("type", string(cfg.Database.Type)))
			return nil
		},
	}
}

// validateReport 单个文件的校验结果
type validateReport struct {
	File   string                  `json:"file"`
	Valid  bool                    `json:"valid"`
	Error  string                  `json:"error,omitempty"`
	Errors schema.ValidationErrors `json:"errors,omitempty"`
}

func newValidateCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "validate --kind KIND FILE...",
		Short: "Validate JSON or YAML records against a record kind",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := schema.New(kind); err != nil {
				return err
			}

			reports := make([]validateReport, 0, len(args))
			failed := 0
			for _, file := range args {
				r := validateFile(kind, file)
				if !r.Valid {
					failed++
				}
				reports = append(reports, r)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(reports); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed validation", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "记录类型，见 kinds 子命令")
	cmd.MarkFlagRequired("kind")
	return cmd
}

func validateFile(kind, file string) validateReport {
	r := validateReport{File: file}
	data, err := os.ReadFile(file)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	if _, err := schema.Decode(kind, data, schema.FormatFromPath(file)); err != nil {
		if ve, ok := schema.AsValidationErrors(err); ok {
			r.Errors = ve
		} else {
			r.Error = err.Error()
		}
		return r
	}
	r.Valid = true
	return r
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List record kinds accepted by validate",
		Run: func(cmd *cobra.Command, args []string) {
			for _, k := range schema.Kinds() {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
		},
	}
}

func newTokenCmd(configDir *string) *cobra.Command {
	var sub, role string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed access token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := model.UserRole(role)
			if !r.IsValid() {
				return fmt.Errorf("invalid role %q", role)
			}
			cfg, err := config.LoadConfig(*configDir)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if ttl == 0 {
				ttl = cfg.JWT.ExpireTime
			}

			token, err := util.GenerateJWT(sub, r, cfg.JWT.Secret, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&sub, "sub", "", "用户ID")
	cmd.Flags().StringVar(&role, "role", string(model.RoleStudent), "student / instructor / admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "有效期，默认使用配置中的 expire_hours")
	cmd.MarkFlagRequired("sub")
	return cmd
}
