package main

import (
	"context"
	"log"
	"time"

	"github.com/CodeLab-25-26J-102/workspace-backend/config"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/bootstrap"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/execution"
)

const serviceName = "workspace-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:      cfg.Database.DSN(),
		MaxConns: int32(cfg.Database.MaxConns),
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if rdb == nil {
		log.Println("REDIS_ADDR not set, run quota enforcement disabled")
	}

	judge := execution.NewClient(
		cfg.Judge.URL,
		cfg.Judge.AuthToken,
		time.Duration(cfg.Judge.TimeoutSeconds)*time.Second,
	)

	watcher := execution.NewHealthWatcher(judge)
	watcher.Start()
	defer watcher.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:   serviceName,
		Version:       cfg.App.Version,
		CORSOrigins:   cfg.Server.CORSOrigins,
		RunsPerMinute: cfg.Judge.RunsPerMinute,
		DB:            db,
		Redis:         rdb,
		Judge:         judge,
		JudgeStatus:   watcher,
	})

	log.Printf("%s %s listening on :%s", serviceName, cfg.App.Version, cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
