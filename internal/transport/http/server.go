package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cerebro/internal/auth"
	"cerebro/internal/config"
	"cerebro/internal/logger"
	"cerebro/internal/market"
	"cerebro/internal/signal"
	"cerebro/internal/store"
	"cerebro/internal/store/botlog"
	"cerebro/internal/trading"

	"github.com/gin-gonic/gin"
)

// Server 提供平台 HTTP API（交易/信号/策略/认证/报表/线索/钱包）。
type Server struct {
	addr   string
	router *gin.Engine
}

// ServerConfig 描述 HTTP 服务的依赖。
type ServerConfig struct {
	Addr    string
	AppName string
	Brand   config.BrandConfig

	Store   store.Store
	BotLogs *botlog.Store
	Auth    *auth.Service
	Trade   *trading.Service
	Market  *market.Service
	Signals *signal.Service
}

// NewServer 构建 HTTP server（不启动监听）。
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("http server requires a store")
	}
	if cfg.Trade == nil || cfg.Market == nil || cfg.Signals == nil || cfg.Auth == nil {
		return nil, errors.New("http server requires trade, market, signal and auth services")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":9880"
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "app": cfg.AppName})
	})
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": cfg.AppName + " API",
			"version": "1.0.0",
			"health":  "/healthz",
		})
	})
	router.GET("/api/config/white-label", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"brand_name":      cfg.Brand.Name,
			"primary_color":   cfg.Brand.PrimaryColor,
			"secondary_color": cfg.Brand.SecondaryColor,
			"accent_color":    cfg.Brand.AccentColor,
		})
	})

	api := router.Group("/api")
	registerAuthRoutes(api.Group("/auth"), cfg.Auth)
	registerTradeRoutes(api.Group("/trade"), cfg.Trade, cfg.Market)
	registerSignalRoutes(api.Group("/signals"), cfg.Store.Signals(), cfg.Signals)
	registerStrategyRoutes(api.Group("/strategies"), cfg.Store.Strategies(), cfg.Store.Users())
	registerReportRoutes(api.Group("/reports"), cfg.Store, cfg.BotLogs)
	registerRequestRoutes(api.Group("/requests"), cfg.Store.Leads())
	registerWalletRoutes(api.Group("/wallet"), cfg.Store.Wallet())

	return &Server{addr: cfg.Addr, router: router}, nil
}

// Start 监听并阻塞到 ctx 取消，随后优雅退出。
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("http server listening on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

// Handler exposes the underlying router, used by httptest in API tests.
func (s *Server) Handler() http.Handler { return s.router }
