package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"medicine_recommender/internal/logger"
	"medicine_recommender/internal/metrics"
	"medicine_recommender/internal/model"
	"medicine_recommender/internal/recommend"
	"medicine_recommender/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Catalog 提供下拉框所需的药品名列表
type Catalog interface {
	Names() []string
}

// Options 服务器的可选项
type Options struct {
	DefaultScene   string        // 页面使用的场景
	Accuracy       float64       // 页面展示的模型准确率
	RequestTimeout time.Duration // 单次推荐的超时时间
}

// Server 代表 HTTP 服务器
type Server struct {
	router  *gin.Engine
	catalog Catalog
	engine  *workflow.Engine
	opts    Options
}

// NewServer 创建新的 HTTP 服务器
func NewServer(cat Catalog, engine *workflow.Engine, opts Options) *Server {
	if opts.DefaultScene == "" {
		opts.DefaultScene = "medicine"
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}

	s := &Server{
		router:  gin.New(),
		catalog: cat,
		engine:  engine,
		opts:    opts,
	}
	s.router.Use(gin.Recovery(), s.requestLogger(), s.corsMiddleware())
	s.router.SetHTMLTemplate(pageTemplate)
	s.setupRoutes()
	return s
}

// Handler 返回底层 http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器，ctx 结束时优雅退出
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "medicines": len(s.catalog.Names())})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	v1.GET("/medicines", s.handleMedicines)
	v1.GET("/scenes", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"scenes": s.engine.Scenes()})
	})

	// 推荐接口 - 使用路径参数传递 scene
	v1.GET("/recommend/:scene", s.handleRecommend)
	v1.POST("/recommend/:scene", s.handleRecommend)
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requestLogger 记录请求日志和耗时指标
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header("X-Request-ID", requestID)
		c.Set("request_id", requestID)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		duration := time.Since(start)

		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).
			Observe(duration.Seconds())

		logger.Get().Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", duration).
			Msg("http request")
	}
}

func (s *Server) handleMedicines(c *gin.Context) {
	names := s.catalog.Names()
	c.JSON(http.StatusOK, gin.H{
		"count":     len(names),
		"medicines": names,
	})
}

type RecommendRequest struct {
	Medicine string `json:"medicine" form:"medicine" binding:"required"`
}

// handleRecommend 处理推荐请求
// GET  /api/v1/recommend/:scene?medicine=...
// POST /api/v1/recommend/:scene  {"medicine": "..."}
func (s *Server) handleRecommend(c *gin.Context) {
	scene := c.Param("scene")

	var req RecommendRequest
	var err error
	if c.Request.Method == http.MethodPost {
		err = c.ShouldBindJSON(&req)
	} else {
		err = c.ShouldBindQuery(&req)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	items, err := s.recommend(c.Request.Context(), scene, req.Medicine)
	if err != nil {
		status, msg := errorStatus(err, scene, req.Medicine)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scene":    scene,
		"medicine": req.Medicine,
		"items":    items,
	})
}

// recommend 执行场景对应的 Pipeline
func (s *Server) recommend(ctx context.Context, scene, medicine string) ([]*model.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.RequestTimeout)
	defer cancel()

	wfCtx := workflow.NewContext(ctx, medicine)
	wfCtx.Config["scene"] = scene

	err := s.engine.Run(wfCtx, scene)
	for _, line := range wfCtx.Logs() {
		logger.Debug("[%s] %s", scene, line)
	}

	switch {
	case err == nil:
		metrics.RecordRecommendation(scene, "ok")
	case errors.Is(err, recommend.ErrNotFound):
		metrics.RecordRecommendation(scene, "not_found")
		return nil, err
	default:
		metrics.RecordRecommendation(scene, "error")
		logger.Error("recommendation failed for scene %s: %v", scene, err)
		return nil, err
	}

	return wfCtx.GetCandidates(), nil
}

// errorStatus 将错误映射为 HTTP 状态码和提示信息
func errorStatus(err error, scene, medicine string) (int, string) {
	switch {
	case errors.Is(err, recommend.ErrNotFound):
		return http.StatusNotFound, fmt.Sprintf("medicine '%s' not found", medicine)
	case errors.Is(err, workflow.ErrPipelineNotFound):
		return http.StatusNotFound, fmt.Sprintf("scene '%s' not supported", scene)
	case errors.Is(err, recommend.ErrInvalidK):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, fmt.Sprintf("recommendation failed: %v", err)
	}
}
