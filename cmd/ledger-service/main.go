// Команда ledger-service запускает POS ledger: HTTP и gRPC API, outbox relay и метрики.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vladislavdragonenkov/posledger/internal/app"
	"github.com/vladislavdragonenkov/posledger/internal/version"
)

// runService подменяется в тестах.
var runService = app.Run

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.WithError(err).Error("ledger-service exited with error")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string
	v := viper.New()

	root := &cobra.Command{
		Use:           "ledger-service",
		Short:         "POS sale ledger service",
		Version:       version.Current().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to YAML config file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP, gRPC and metrics listeners",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, v, configFile)
			if err != nil {
				return err
			}
			if err := app.ConfigureLogger(log.StandardLogger(), cfg); err != nil {
				return err
			}
			return serveLedger(cmd.Context(), cfg)
		},
	}
	addServeFlags(serve)

	showConfig := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, v, configFile)
			if err != nil {
				return err
			}
			return printConfig(cmd.OutOrStdout(), cfg)
		},
	}
	addServeFlags(showConfig)

	root.AddCommand(serve, showConfig)
	root.RunE = serve.RunE
	addServeFlags(root)
	return root
}

// addServeFlags объявляет флаги; имя флага совпадает с ключом конфигурации с точностью до `-`/`_`.
func addServeFlags(cmd *cobra.Command) {
	def := app.DefaultConfig()
	flags := cmd.Flags()
	flags.String("grpc-addr", def.GRPCAddr, "gRPC listen address")
	flags.String("http-addr", def.HTTPAddr, "HTTP API listen address")
	flags.String("metrics-addr", def.MetricsAddr, "metrics and health listen address")
	flags.String("storage-driver", string(def.StorageDriver), "storage driver: memory|postgres|sqlite")
	flags.String("postgres-dsn", def.PostgresDSN, "PostgreSQL DSN")
	flags.String("sqlite-path", def.SQLitePath, "SQLite database file")
	flags.String("void-policy", def.VoidPolicy, "stock on void: restock|keep-stock")
	flags.String("kafka-brokers", def.KafkaBrokers, "comma-separated Kafka brokers; empty relays outbox to log")
	flags.String("log-level", def.LogLevel, "log level")
	flags.String("log-format", def.LogFormat, "log format: text|json")
}

func loadConfig(cmd *cobra.Command, v *viper.Viper, configFile string) (app.Config, error) {
	var bindErr error
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if flag.Name == "config" || flag.Name == "help" || flag.Name == "version" {
			return
		}
		if err := v.BindPFlag(strings.ReplaceAll(flag.Name, "-", "_"), flag); err != nil && bindErr == nil {
			bindErr = fmt.Errorf("bind flag %s: %w", flag.Name, err)
		}
	})
	if bindErr != nil {
		return app.Config{}, bindErr
	}
	return app.LoadConfig(v, configFile)
}

func serveLedger(ctx context.Context, cfg app.Config) error {
	log.WithFields(version.Current().Fields()).WithFields(log.Fields{
		"grpc_addr":      cfg.GRPCAddr,
		"http_addr":      cfg.HTTPAddr,
		"metrics_addr":   cfg.MetricsAddr,
		"storage_driver": cfg.StorageDriver,
		"void_policy":    cfg.VoidPolicy,
	}).Info("starting ledger-service")

	if err := runService(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info("ledger-service stopped")
	return nil
}

func printConfig(w io.Writer, cfg app.Config) error {
	out, err := cfg.YAML()
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
