package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"medicine_recommender/internal/catalog"
	"medicine_recommender/internal/logger"
	"medicine_recommender/internal/metrics"
	"medicine_recommender/internal/nodes"
	"medicine_recommender/internal/recommend"
	"medicine_recommender/internal/server"
	"medicine_recommender/internal/workflow"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := InitServerConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		logger.Fatal("Failed to parse flags: %v", err)
	}

	logger.Init(os.Stdout, cfg.Server.LogFormat)
	logger.SetDebug(cfg.DebugEnabled())
	if !cfg.DebugEnabled() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. 加载静态数据，维度不一致直接退出
	cat, matrix, err := catalog.Load(cfg.Paths.Catalog, cfg.Paths.Similarity)
	if err != nil {
		logger.Fatal("Failed to load medicine data: %v", err)
	}
	metrics.CatalogSize.Set(float64(cat.Len()))
	logger.Info("Loaded %d medicines from %s", cat.Len(), cfg.Paths.Catalog)

	// 2. 初始化推荐器
	rec, err := recommend.NewRecommender(cat, matrix)
	if err != nil {
		logger.Fatal("Failed to init recommender: %v", err)
	}

	// 3. 初始化 Pipeline Engine
	engine, err := newEngine(cfg.Paths.Pipelines, nodes.NewRegistry(rec))
	if err != nil {
		logger.Fatal("Failed to init engine: %v", err)
	}

	// 4. 启动 HTTP Server
	srv := server.NewServer(rec, engine, server.Options{
		DefaultScene: cfg.Server.Scene,
		Accuracy:     cfg.Server.Accuracy,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting HTTP server on port %s...", cfg.Server.Port)
	if err := srv.Run(ctx, ":"+cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server failed: %v", err)
	}
	logger.Info("Server stopped")
}

// newEngine 未配置 pipelines 文件时使用内置场景
func newEngine(path string, registry *workflow.Registry) (*workflow.Engine, error) {
	if path == "" {
		return workflow.NewEngineFromConfig(nodes.DefaultPipelines(), registry)
	}
	return workflow.NewEngine(path, registry)
}
