package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/groblegark/bingod/internal/backup"
	"github.com/groblegark/bingod/internal/config"
	"github.com/groblegark/bingod/internal/events"
	"github.com/groblegark/bingod/internal/server"
	"github.com/groblegark/bingod/internal/store/jsonfile"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bingo HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		slog.SetDefault(logger)

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir = dataDir
		}

		store, err := jsonfile.New(cfg.DataDir, logger)
		if err != nil {
			return err
		}

		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				store.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (BINGO_NATS_URL not set)")
		}

		bingoServer := server.NewBingoServer(store, publisher, server.Options{
			WebDir:       cfg.WebDir,
			DefaultUI:    &cfg.DefaultUI,
			DefaultRules: &cfg.DefaultRules,
		})

		// Bind before announcing: the configured addr may carry port 0, so
		// the real URL is only known after Listen.
		lis, err := net.Listen("tcp", cfg.HTTPAddr)
		if err != nil {
			publisher.Close()
			store.Close()
			return err
		}
		url := listenURL(lis.Addr())

		if err := writeURLFile(cfg.RuntimeDir, url); err != nil {
			logger.Warn("failed to write url file", "err", err)
		}

		httpServer := &http.Server{Handler: bingoServer.NewHTTPHandler()}
		go func() {
			logger.Info("HTTP server listening", "url", url)
			if err := httpServer.Serve(lis); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Start backup scheduler if an interval and destination are configured.
		var scheduler *backup.Scheduler
		if cfg.BackupInterval > 0 && cfg.BackupS3Bucket != "" {
			dest, err := backup.NewS3Destination(
				context.Background(),
				cfg.BackupS3Bucket,
				cfg.BackupS3Key,
				cfg.BackupS3Region,
				cfg.BackupS3Endpoint,
			)
			if err != nil {
				logger.Error("failed to create S3 backup destination", "err", err)
			} else {
				scheduler = backup.NewScheduler(store, []backup.Destination{dest}, cfg.BackupInterval, logger)
				scheduler.Start()
				logger.Info("backup scheduler started", "interval", cfg.BackupInterval, "bucket", cfg.BackupS3Bucket)
			}
		}

		logger.Info("bingo server started", "url", url, "data_dir", store.DataDir())

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		if scheduler != nil {
			scheduler.Stop()
			logger.Info("backup scheduler stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if err := store.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}
		return nil
	},
}

// listenURL builds a browsable URL from the bound listener address,
// normalizing the unspecified address to localhost.
func listenURL(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "http://" + addr.String()
	}
	if host == "::" || host == "0.0.0.0" || host == "" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s", net.JoinHostPort(host, port))
}

// writeURLFile records the server's URL in <runtimeDir>/url.txt so wrapper
// scripts can find the live instance.
func writeURLFile(runtimeDir, url string) error {
	if runtimeDir == "" {
		return nil
	}
	if err := os.MkdirAll(runtimeDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(runtimeDir, "url.txt"), []byte(url+"\n"), 0o644)
}
