package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/smoralesdev/cartaqr-backend/api/controllers"
	"github.com/smoralesdev/cartaqr-backend/api/routes"
	"github.com/smoralesdev/cartaqr-backend/internal/auth"
	"github.com/smoralesdev/cartaqr-backend/internal/invitaciones"
	"github.com/smoralesdev/cartaqr-backend/internal/locales"
	"github.com/smoralesdev/cartaqr-backend/internal/menu"
	"github.com/smoralesdev/cartaqr-backend/internal/pedidos"
	"github.com/smoralesdev/cartaqr-backend/internal/solicitudes"
	"github.com/smoralesdev/cartaqr-backend/internal/users"
	"github.com/smoralesdev/cartaqr-backend/pkg/auth/session"
	"github.com/smoralesdev/cartaqr-backend/pkg/config"
	"github.com/smoralesdev/cartaqr-backend/pkg/db"
	"github.com/smoralesdev/cartaqr-backend/pkg/logger"
	"github.com/smoralesdev/cartaqr-backend/pkg/mailer"
	"github.com/smoralesdev/cartaqr-backend/pkg/metrics"
	"github.com/smoralesdev/cartaqr-backend/pkg/migrate"
	"github.com/smoralesdev/cartaqr-backend/pkg/pubsub"
	"github.com/smoralesdev/cartaqr-backend/pkg/realtime"
	"github.com/smoralesdev/cartaqr-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	readyChecks := []controllers.NamedPinger{
		{Name: "postgres", Pinger: dbClient},
		{Name: "redis", Pinger: redisClient},
	}

	var notifier realtime.Notifier = realtime.NoopNotifier{}
	if cfg.GCP.ProjectID != "" {
		pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()

		notifier, err = realtime.NewPubSubNotifier(
			pubsubClient.EventsPublisher(),
			logg,
			metrics.NewNotifierMetrics(registry),
		)
		if err != nil {
			logg.Error(context.Background(), "failed to create realtime notifier", err)
			os.Exit(1)
		}
		readyChecks = append(readyChecks, controllers.NamedPinger{Name: "pubsub", Pinger: pubsubClient})
	} else {
		logg.Warn(context.Background(), "gcp project not configured, realtime events disabled")
	}

	var mail mailer.Mailer = mailer.NoopMailer{}
	if cfg.SMTP.Enabled() {
		smtp, err := mailer.NewSMTP(cfg.SMTP, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create mailer", err)
			os.Exit(1)
		}
		mail = smtp
	} else {
		logg.Warn(context.Background(), "smtp not configured, outbound mail disabled")
	}

	usersRepo := users.NewRepository(dbClient.DB())
	localesRepo := locales.NewRepository(dbClient.DB())
	menuRepo := menu.NewRepository(dbClient.DB())
	pedidosRepo := pedidos.NewRepository(dbClient.DB())
	invitacionesRepo := invitaciones.NewRepository(dbClient.DB())
	solicitudesRepo := solicitudes.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	menuService, err := menu.NewService(localesRepo, menuRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create menu service", err)
		os.Exit(1)
	}

	pedidosService, err := pedidos.NewService(pedidosRepo, localesRepo, menuRepo, dbClient, notifier)
	if err != nil {
		logg.Error(context.Background(), "failed to create pedidos service", err)
		os.Exit(1)
	}

	invitacionesService, err := invitaciones.NewService(
		invitacionesRepo,
		localesRepo,
		usersRepo,
		menuRepo,
		dbClient,
		mail,
		invitaciones.Config{TTL: cfg.Invitaciones.TTL, PublicURL: cfg.App.PublicURL},
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create invitaciones service", err)
		os.Exit(1)
	}

	solicitudesService, err := solicitudes.NewService(solicitudesRepo, invitacionesService, mail)
	if err != nil {
		logg.Error(context.Background(), "failed to create solicitudes service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:              cfg,
			Logger:              logg,
			Sessions:            sessionManager,
			Limiter:             redisClient,
			Registry:            registry,
			AuthService:         authService,
			MenuService:         menuService,
			PedidosService:      pedidosService,
			InvitacionesService: invitacionesService,
			SolicitudesService:  solicitudesService,
			ReadyChecks:         readyChecks,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
