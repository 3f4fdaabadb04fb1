// Command demo serves a page showing flashed and instant notifications.
//
// Messages posted to /notify/{type} are flashed and shown after the redirect;
// with mode=instant they are only streamed to open pages over /stream.
// Flashes are kept in Redis when REDIS_URL is set, in an encrypted cookie
// otherwise.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/notification/pkg/config"
	"github.com/dmitrymomot/notification/pkg/cookie"
	"github.com/dmitrymomot/notification/pkg/flash"
	"github.com/dmitrymomot/notification/pkg/httpserver"
	"github.com/dmitrymomot/notification/pkg/logger"
	"github.com/dmitrymomot/notification/pkg/notification"
	"github.com/dmitrymomot/notification/pkg/notification/view"
	"github.com/dmitrymomot/notification/pkg/redis"
	"github.com/dmitrymomot/notification/pkg/requestid"
)

type appConfig struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"APP_NAME" envDefault:"notification-demo"`
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("demo stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		app       appConfig
		notifyCfg notification.Config
		cookieCfg cookie.Config
		flashCfg  flash.Config
		redisCfg  redis.Config
		httpCfg   httpserver.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&app) },
		func() error { return config.Load(&notifyCfg) },
		func() error { return config.Load(&cookieCfg) },
		func() error { return config.Load(&flashCfg) },
		func() error { return config.Load(&redisCfg) },
		func() error { return config.Load(&httpCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}
	if notifyCfg.ContainersFile != "" {
		if err := config.LoadFile(notifyCfg.ContainersFile, &notifyCfg); err != nil {
			return err
		}
	}

	log := logger.New(
		logger.WithEnvironment(app.Env, app.ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	cookies, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return err
	}

	live := notification.NewBroadcastDispatcher(16, notification.WithBroadcastLogger(log))
	serverOpts := []httpserver.Option{
		httpserver.WithLogger(log),
		httpserver.WithStopHook(func(context.Context) error { return live.Close() }),
	}

	var (
		store  flash.Store
		checks []func(context.Context) error
	)
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		store = flash.NewRedisStore(client, cookies, flashCfg.StoreOptions()...)
		checks = append(checks, redis.Healthcheck(client))
		serverOpts = append(serverOpts, httpserver.WithStopHook(func(context.Context) error { return client.Close() }))
		log.Info("flash store: redis")
	} else {
		store = flash.NewCookieStore(cookies, flashCfg.StoreOptions()...)
		log.Info("flash store: cookie")
	}

	r := newRouter(routerDeps{
		store:   store,
		cookies: cookies,
		config:  notifyCfg,
		live:    live,
		checks:  checks,
		logger:  log,
	})
	return httpserver.New(httpCfg, serverOpts...).Run(ctx, r)
}

type routerDeps struct {
	store   flash.Store
	cookies *cookie.Manager
	config  notification.Config
	live    *notification.BroadcastDispatcher
	checks  []func(context.Context) error
	logger  *slog.Logger
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientID(d.cookies, d.logger))
	r.Get("/health/live", httpserver.HealthCheckHandler(d.logger))
	r.Get("/health/ready", httpserver.HealthCheckHandler(d.logger, d.checks...))
	r.Get("/stream", view.Stream(d.live, d.config.DefaultContainer, "#live",
		view.WithStreamScope(clientFromRequest),
		view.WithStreamLogger(d.logger),
	))
	r.Group(func(r chi.Router) {
		r.Use(flash.Middleware(d.store, d.config,
			flash.WithLogger(d.logger),
			flash.WithRequestDispatcher(func(r *http.Request) notification.Dispatcher {
				return d.live.Scope(clientFromRequest(r))
			}),
		))
		r.Get("/", home)
		r.Post("/notify/{type}", notify(d.logger))
	})
	return r
}
