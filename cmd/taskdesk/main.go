package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/taskdesk/taskdesk/controller"
	"github.com/taskdesk/taskdesk/domain"
	"github.com/taskdesk/taskdesk/internal/config"
	"github.com/taskdesk/taskdesk/internal/infrastructure/kvstore"
	"github.com/taskdesk/taskdesk/internal/services"
	"github.com/taskdesk/taskdesk/internal/services/lifecycle"
	"github.com/taskdesk/taskdesk/internal/ui"
	"github.com/taskdesk/taskdesk/pkg/logger"
	"github.com/taskdesk/taskdesk/repository/kv"
)

func main() {
	exportOnly := flag.Bool("export", false, "write a backup snapshot and exit")
	importPath := flag.String("import", "", "restore a backup snapshot and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// The terminal belongs to the view, so interactive runs log to a file.
	logCfg := logger.Config{Level: cfg.Logger.Level, Encoding: cfg.Logger.Encoding}
	var zapLogger *zap.Logger
	if *exportOnly || *importPath != "" {
		zapLogger, err = logger.New(logCfg)
	} else {
		zapLogger, err = logger.NewFile(logCfg, "./data/taskdesk.log")
	}
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	store, err := kvstore.Open(cfg.Storage.Path, cfg.Storage.AppID, cfg.Storage.SchemaVersion)
	if err != nil {
		zapLogger.Fatal("failed to open store", zap.Error(err))
	}
	manager.Register("store", func(ctx context.Context) error {
		return store.Close()
	})

	exporter := services.NewExporter(store, cfg.Backup.Dir, zapLogger)

	switch {
	case *exportOnly:
		path, err := exporter.Export()
		if err != nil {
			zapLogger.Fatal("export failed", zap.Error(err))
		}
		fmt.Println(path)
		shutdown(manager, zapLogger)
		return
	case *importPath != "":
		if err := exporter.Import(*importPath); err != nil {
			zapLogger.Fatal("import failed", zap.Error(err))
		}
		fmt.Println("restored", *importPath)
		shutdown(manager, zapLogger)
		return
	}

	userRepo := kv.NewUserRepository(store)
	taskRepo := kv.NewTaskRepository(store, userRepo)

	if cfg.Seed.DemoUsers {
		if err := services.SeedDemoUsers(appCtx, userRepo, zapLogger); err != nil {
			zapLogger.Warn("seeding skipped", zap.Error(err))
		}
	}

	session := domain.NewSession()
	userCtl := controller.NewUserController(userRepo, session, zapLogger)
	taskCtl := controller.NewTaskController(taskRepo, session, zapLogger)

	if cfg.Backup.Enabled {
		scheduler := services.NewBackupScheduler(exporter, cfg.Backup.Interval, zapLogger)
		scheduler.Start()
		manager.Register("backup_scheduler", func(ctx context.Context) error {
			scheduler.Stop(ctx)
			return nil
		})
	}

	err = ui.Run(appCtx, ui.Options{
		Users:       userCtl,
		Tasks:       taskCtl,
		DueSoonDays: cfg.Tasks.DueSoonWindowDays,
		Export:      exporter.Export,
	})
	if err != nil && appCtx.Err() == nil {
		zapLogger.Error("view exited with error", zap.Error(err))
	}

	shutdown(manager, zapLogger)
}

func shutdown(manager *lifecycle.Manager, zapLogger *zap.Logger) {
	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
		os.Exit(1)
	}
}
