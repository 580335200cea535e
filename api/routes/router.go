package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smoralesdev/cartaqr-backend/api/controllers"
	"github.com/smoralesdev/cartaqr-backend/api/middleware"
	"github.com/smoralesdev/cartaqr-backend/internal/auth"
	"github.com/smoralesdev/cartaqr-backend/internal/invitaciones"
	"github.com/smoralesdev/cartaqr-backend/internal/menu"
	"github.com/smoralesdev/cartaqr-backend/internal/pedidos"
	"github.com/smoralesdev/cartaqr-backend/internal/solicitudes"
	"github.com/smoralesdev/cartaqr-backend/pkg/auth/session"
	"github.com/smoralesdev/cartaqr-backend/pkg/config"
	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
	"github.com/smoralesdev/cartaqr-backend/pkg/logger"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Sessions session.AccessSessionChecker
	Limiter  middleware.RateLimiter
	Registry *prometheus.Registry

	AuthService         auth.Service
	MenuService         menu.Service
	PedidosService      pedidos.Service
	InvitacionesService invitaciones.Service
	SolicitudesService  solicitudes.Service

	ReadyChecks []controllers.NamedPinger
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.PublicURL),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.ReadyChecks...))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	// Public surface: QR menu, order submission, onboarding.
	r.Route("/api", func(r chi.Router) {
		r.Get("/locales/{slug}/menu", controllers.MenuBySlug(deps.MenuService, logg))
		r.Post("/pedidos", controllers.PedidoCreate(deps.PedidosService, logg))
		r.Get("/invitaciones/{token}", controllers.InvitacionValidate(deps.InvitacionesService, logg))
		r.Post("/registro/completar", controllers.RegistroCompletar(deps.InvitacionesService, logg))
		r.Post("/solicitudes", controllers.SolicitudSubmit(deps.SolicitudesService, logg))

		r.With(middleware.AuthRateLimit(loginPolicy, deps.Limiter, logg)).
			Post("/auth/login", controllers.AuthLogin(deps.AuthService, logg))

		// Panel surface: tenant-scoped order management.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

			r.Post("/auth/logout", controllers.AuthLogout(deps.AuthService, logg))

			r.Group(func(r chi.Router) {
				r.Use(
					middleware.RequireCapability(enums.CapManagePedidos, logg),
					middleware.RequireLocal(logg),
				)
				r.Get("/pedidos", controllers.PedidoList(deps.PedidosService, logg))
				r.Get("/pedidos/{pedidoID}", controllers.PedidoGet(deps.PedidosService, logg))
				r.Put("/pedidos/{pedidoID}/estado", controllers.PedidoUpdateEstado(deps.PedidosService, logg))
				r.Put("/pedidos/{pedidoID}/confirmar-pago", controllers.PedidoConfirmarPago(deps.PedidosService, logg))
			})

			// Superadmin surface: tenant onboarding review.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCapability(enums.CapReviewSolicitudes, logg))
				r.Get("/solicitudes", controllers.SolicitudList(deps.SolicitudesService, logg))
				r.Post("/solicitudes/{solicitudID}/aceptar", controllers.SolicitudAccept(deps.SolicitudesService, logg))
				r.Post("/solicitudes/{solicitudID}/rechazar", controllers.SolicitudReject(deps.SolicitudesService, logg))
				r.Post("/solicitudes/{solicitudID}/regenerar-invitacion", controllers.SolicitudRegenerateInvitation(deps.SolicitudesService, logg))
			})
		})
	})

	return r
}
