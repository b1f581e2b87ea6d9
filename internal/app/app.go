package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cerebro/internal/auth"
	"cerebro/internal/config"
	binancegw "cerebro/internal/gateway/binance"
	"cerebro/internal/logger"
	"cerebro/internal/market"
	"cerebro/internal/pubsub"
	"cerebro/internal/signal"
	"cerebro/internal/store"
	"cerebro/internal/store/botlog"
	"cerebro/internal/store/sqlite"
	"cerebro/internal/trading"
	httpapi "cerebro/internal/transport/http"

	"golang.org/x/sync/errgroup"
)

// App 负责应用级编排：加载配置→初始化依赖→启动 HTTP 与信号调度。
type App struct {
	cfg *config.Config

	store     store.Store
	botLogs   *botlog.Store
	redis     *pubsub.Redis // nil when not configured
	httpSrv   *httpapi.Server
	signalSvc *signal.Service
	interval  time.Duration
}

// NewApp 根据配置构建应用对象（不启动）。
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)

	st, err := sqlite.NewSqliteStore(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	botLogs, err := botlog.Open(cfg.Database.BotLogPath)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("open bot log store: %w", err)
	}

	var publisher pubsub.Publisher = pubsub.Noop{}
	var redisPub *pubsub.Redis
	if cfg.Redis.Enabled {
		redisPub, err = pubsub.NewRedis(cfg.Redis.URL)
		if err != nil {
			// 发布通道是尽力而为的，连不上不拦启动
			logger.Warnf("redis unavailable, events will be dropped: %v", err)
		} else {
			publisher = redisPub
			logger.Infof("connected to redis at %s", cfg.Redis.URL)
		}
	}

	liveSources := make(map[string]market.Source, len(cfg.Market.Live))
	for _, live := range cfg.Market.Live {
		name := strings.ToLower(strings.TrimSpace(live.Name))
		liveSources[name] = binancegw.New(binancegw.Config{
			RESTBaseURL: live.RESTBaseURL,
			HTTPTimeout: time.Duration(live.TimeoutSeconds) * time.Second,
		})
		logger.Infof("live market source configured for %s", name)
	}
	marketSvc := market.NewService(liveSources)

	fillDelay := time.Duration(cfg.Trading.FillDelaySeconds * float64(time.Second))
	book := trading.NewBook(publisher, fillDelay, cfg.Trading.FallbackPrice)
	tradeSvc := trading.NewService(book, botLogs)

	generator := signal.NewGenerator(nil)
	signalSvc := signal.NewService(generator, st.Signals(), publisher, signal.Config{
		Topic:         cfg.Signals.Topic,
		Symbols:       cfg.Signals.Symbols,
		Exchanges:     cfg.Signals.Exchanges,
		SeedSymbols:   cfg.Signals.SeedSymbols,
		SeedExchanges: cfg.Signals.SeedExchanges,
	}, nil)

	authSvc := auth.NewService(st.Users(), cfg.Auth.SecretKey,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	httpSrv, err := httpapi.NewServer(httpapi.ServerConfig{
		Addr:    cfg.App.HTTPAddr,
		AppName: cfg.Brand.Name + " Platform",
		Brand:   cfg.Brand,
		Store:   st,
		BotLogs: botLogs,
		Auth:    authSvc,
		Trade:   tradeSvc,
		Market:  marketSvc,
		Signals: signalSvc,
	})
	if err != nil {
		botLogs.Close()
		st.Close()
		return nil, fmt.Errorf("build http server: %w", err)
	}

	interval, _ := config.ParseIntervalDuration(cfg.Signals.Interval)
	return &App{
		cfg:       cfg,
		store:     st,
		botLogs:   botLogs,
		redis:     redisPub,
		httpSrv:   httpSrv,
		signalSvc: signalSvc,
		interval:  interval,
	}, nil
}

// Run 启动 HTTP 服务与信号调度器，阻塞到 ctx 取消。
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}
	defer a.close()

	if err := a.seedIfEmpty(ctx); err != nil {
		logger.Errorf("initial signal seeding failed: %v", err)
	}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := a.httpSrv.Start(ctx); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		scheduler := signal.NewIntervalScheduler(ctx, a.interval)
		scheduler.Name = "signals"
		scheduler.Start(func() {
			persisted, published := a.signalSvc.RunBatch(ctx)
			logger.Debugf("signal batch done: persisted=%d published=%d", persisted, published)
		})
		return nil
	})

	return group.Wait()
}

// seedIfEmpty 首次启动时填充初始信号，已有数据则跳过。
func (a *App) seedIfEmpty(ctx context.Context) error {
	count, err := a.store.Signals().Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Debugf("signals table already populated (%d rows), skip seeding", count)
		return nil
	}
	seeded, err := a.signalSvc.SeedInitialSignals(ctx, a.cfg.Signals.SeedCount)
	if err != nil {
		return err
	}
	logger.Infof("seeded %d signals on first start", seeded)
	return nil
}

func (a *App) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Warnf("redis close: %v", err)
		}
	}
	if a.botLogs != nil {
		if err := a.botLogs.Close(); err != nil {
			logger.Warnf("bot log store close: %v", err)
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			logger.Warnf("store close: %v", err)
		}
	}
}
