package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/yoshkaflow-backend/internal/app"
	"github.com/yungbote/yoshkaflow-backend/internal/data/configs"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := app.NewViper()
	var configFile string

	loadConfig := func() (app.Config, error) {
		if configFile != "" {
			v.SetConfigFile(configFile)
		}
		return app.Load(v)
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Run(ctx)
		},
	}
	serve.Flags().Int("port", 8080, "HTTP listen port")
	_ = v.BindPFlag("server.port", serve.Flags().Lookup("port"))
	serve.Flags().Bool("auto-migrate", true, "migrate the store before serving")
	_ = v.BindPFlag("migrate.auto", serve.Flags().Lookup("auto-migrate"))

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Create tables, indexes and foreign keys from the entity registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.AutoMigrate = true
			log, err := logger.NewWithOptions(cfg.Log.Mode, cfg.Log.Options())
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer log.Sync()

			dc, err := app.OpenData(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			if sqlDB, err := dc.DB().DB(); err == nil {
				defer sqlDB.Close()
			}
			log.Info("migration complete", "tables", dc.Definition().Tables())
			return nil
		},
	}

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the entity registry as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, err := configs.Definition()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(def); err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}
			return enc.Close()
		},
	}

	root := &cobra.Command{
		Use:           "yoshkaflow",
		Short:         "Product research backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          serve.RunE,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (default ./config.yaml)")
	root.AddCommand(serve, migrate, schemaCmd)
	root.SetContext(context.Background())
	return root
}
