package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smoralesdev/cartaqr-backend/api/controllers"
	internalauth "github.com/smoralesdev/cartaqr-backend/internal/auth"
	"github.com/smoralesdev/cartaqr-backend/internal/invitaciones"
	"github.com/smoralesdev/cartaqr-backend/internal/menu"
	"github.com/smoralesdev/cartaqr-backend/internal/pedidos"
	"github.com/smoralesdev/cartaqr-backend/internal/solicitudes"
	pkgauth "github.com/smoralesdev/cartaqr-backend/pkg/auth"
	"github.com/smoralesdev/cartaqr-backend/pkg/config"
	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
	"github.com/smoralesdev/cartaqr-backend/pkg/logger"
	"github.com/smoralesdev/cartaqr-backend/pkg/pagination"
)

type stubAuthService struct{}

func (stubAuthService) Login(context.Context, internalauth.LoginRequest) (*internalauth.LoginResponse, error) {
	return &internalauth.LoginResponse{AccessToken: "stub-token", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (stubAuthService) Logout(context.Context, string) error { return nil }

type stubMenuService struct{}

func (stubMenuService) GetBySlug(_ context.Context, slug string) (*menu.MenuResponse, error) {
	return &menu.MenuResponse{Local: menu.LocalSummary{Slug: slug}}, nil
}

type stubPedidosService struct{}

func (stubPedidosService) Create(context.Context, pedidos.CreatePedidoInput) (*pedidos.PedidoDTO, error) {
	return &pedidos.PedidoDTO{ID: uuid.New()}, nil
}

func (stubPedidosService) UpdateStatus(context.Context, uuid.UUID, uuid.UUID, string) (*pedidos.PedidoDTO, error) {
	return &pedidos.PedidoDTO{}, nil
}

func (stubPedidosService) ConfirmPayment(context.Context, uuid.UUID, uuid.UUID, string) (*pedidos.PedidoDTO, error) {
	return &pedidos.PedidoDTO{}, nil
}

func (stubPedidosService) Get(context.Context, uuid.UUID, uuid.UUID) (*pedidos.PedidoDTO, error) {
	return &pedidos.PedidoDTO{}, nil
}

func (stubPedidosService) List(context.Context, uuid.UUID, pagination.Params, pedidos.PedidoFilters) (*pedidos.PedidoList, error) {
	return &pedidos.PedidoList{}, nil
}

type stubInvitacionesService struct{}

func (stubInvitacionesService) Issue(context.Context, invitaciones.IssueInput) (*models.Invitacion, error) {
	return &models.Invitacion{}, nil
}

func (stubInvitacionesService) Validate(_ context.Context, token string) (*invitaciones.ValidationResult, error) {
	return &invitaciones.ValidationResult{Email: "nuevo@cartaqr.app", Rol: enums.RolAdmin}, nil
}

func (stubInvitacionesService) Consume(context.Context, invitaciones.ConsumeInput) (*invitaciones.ConsumeResult, error) {
	return &invitaciones.ConsumeResult{LocalID: uuid.New(), Slug: "la-trattoria"}, nil
}

func (stubInvitacionesService) Regenerate(context.Context, string) (*models.Invitacion, error) {
	return &models.Invitacion{}, nil
}

func (stubInvitacionesService) RegenerateForSolicitud(context.Context, uuid.UUID) (*models.Invitacion, error) {
	return &models.Invitacion{}, nil
}

type stubSolicitudesService struct{}

func (stubSolicitudesService) Submit(context.Context, solicitudes.SubmitInput) (*solicitudes.SolicitudDTO, error) {
	return &solicitudes.SolicitudDTO{ID: uuid.New()}, nil
}

func (stubSolicitudesService) List(context.Context, solicitudes.SolicitudFilters) ([]solicitudes.SolicitudDTO, error) {
	return []solicitudes.SolicitudDTO{}, nil
}

func (stubSolicitudesService) Accept(context.Context, uuid.UUID) (*solicitudes.AcceptResult, error) {
	return &solicitudes.AcceptResult{}, nil
}

func (stubSolicitudesService) Reject(context.Context, uuid.UUID) (*solicitudes.SolicitudDTO, error) {
	return &solicitudes.SolicitudDTO{}, nil
}

func (stubSolicitudesService) RegenerateInvitation(context.Context, uuid.UUID) (*models.Invitacion, error) {
	return &models.Invitacion{}, nil
}

type stubSessionChecker struct{ active bool }

func (s stubSessionChecker) HasSession(context.Context, string) (bool, error) {
	return s.active, nil
}

type fakeLimiter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newFakeLimiter() *fakeLimiter {
	return &fakeLimiter{counts: make(map[string]int64)}
}

func (f *fakeLimiter) FixedWindowAllow(_ context.Context, scope string, limit int64, _ time.Duration) (bool, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[scope]++
	return f.counts[scope] <= limit, f.counts[scope], nil
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return context.DeadlineExceeded }

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080", PublicURL: "http://localhost:3000"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "cartaqr-test",
			ExpirationMinutes: 60,
			SessionTTLMinutes: 120,
		},
		AuthRateLimit: config.AuthRateLimitConfig{
			LoginWindow:     time.Minute,
			LoginIPLimit:    2,
			LoginEmailLimit: 2,
		},
	}
}

func newTestRouter(t *testing.T, mutate func(*Deps)) http.Handler {
	t.Helper()

	deps := Deps{
		Config:              testConfig(),
		Logger:              logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard}),
		Sessions:            stubSessionChecker{active: true},
		Limiter:             newFakeLimiter(),
		AuthService:         stubAuthService{},
		MenuService:         stubMenuService{},
		PedidosService:      stubPedidosService{},
		InvitacionesService: stubInvitacionesService{},
		SolicitudesService:  stubSolicitudesService{},
	}
	if mutate != nil {
		mutate(&deps)
	}
	return NewRouter(deps)
}

func mintToken(t *testing.T, rol enums.Rol, localID *uuid.UUID) string {
	t.Helper()

	token, err := pkgauth.MintAccessToken(testConfig().JWT, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID:  uuid.New(),
		LocalID: localID,
		Rol:     rol,
		JTI:     uuid.NewString(),
	})
	require.NoError(t, err)
	return token
}

func doRequest(router http.Handler, method, path, body, bearer string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPublicRoutesAreReachable(t *testing.T) {
	router := newTestRouter(t, nil)
	localID := uuid.New()
	productoID := uuid.New()

	cases := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "live", method: http.MethodGet, path: "/health/live", wantStatus: http.StatusOK},
		{name: "menu by slug", method: http.MethodGet, path: "/api/locales/la-trattoria/menu", wantStatus: http.StatusOK},
		{name: "validate invitation", method: http.MethodGet, path: "/api/invitaciones/sometoken", wantStatus: http.StatusOK},
		{
			name:       "submit solicitud",
			method:     http.MethodPost,
			path:       "/api/solicitudes",
			body:       `{"nombre_negocio":"La Trattoria","email":"dueno@trattoria.pe"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:   "create pedido",
			method: http.MethodPost,
			path:   "/api/pedidos",
			body: `{"local_id":"` + localID.String() + `","nombre_cliente":"Maria","telefono":"+51999888777",` +
				`"items":[{"producto_id":"` + productoID.String() + `","cantidad":2}]}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "complete registration",
			method:     http.MethodPost,
			path:       "/api/registro/completar",
			body:       `{"token":"sometoken","local":{"nombre":"La Trattoria","slug":"la-trattoria"},"usuario":{"nombre":"Maria","password":"supersecreta"}}`,
			wantStatus: http.StatusCreated,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(router, tc.method, tc.path, tc.body, "")
			assert.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestPanelRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t, nil)

	for _, path := range []string{"/api/pedidos", "/api/solicitudes"} {
		rec := doRequest(router, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := doRequest(router, http.MethodPost, "/api/auth/logout", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPanelRoutesRejectRevokedSession(t *testing.T) {
	router := newTestRouter(t, func(d *Deps) {
		d.Sessions = stubSessionChecker{active: false}
	})
	localID := uuid.New()

	rec := doRequest(router, http.MethodGet, "/api/pedidos", "", mintToken(t, enums.RolAdmin, &localID))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCapabilityGatesPerRole(t *testing.T) {
	router := newTestRouter(t, nil)
	localID := uuid.New()

	staff := mintToken(t, enums.RolStaff, &localID)
	superadmin := mintToken(t, enums.RolSuperadmin, nil)

	// Staff manage orders but never review signups.
	rec := doRequest(router, http.MethodGet, "/api/pedidos", "", staff)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(router, http.MethodGet, "/api/solicitudes", "", staff)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/solicitudes", "", superadmin)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(router, http.MethodPost, "/api/solicitudes/"+uuid.NewString()+"/aceptar", "", superadmin)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestPedidosRequireLocalScope(t *testing.T) {
	router := newTestRouter(t, nil)

	// A superadmin token carries no local and cannot hit tenant-scoped routes.
	rec := doRequest(router, http.MethodGet, "/api/pedidos", "", mintToken(t, enums.RolSuperadmin, nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLoginIsRateLimitedPerIP(t *testing.T) {
	router := newTestRouter(t, nil)
	body := `{"email":"maria@trattoria.pe","password":"supersecreta"}`

	for i := 0; i < 2; i++ {
		rec := doRequest(router, http.MethodPost, "/api/auth/login", body, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := doRequest(router, http.MethodPost, "/api/auth/login", body, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestReadinessReportsFailedDependencies(t *testing.T) {
	router := newTestRouter(t, func(d *Deps) {
		d.ReadyChecks = []controllers.NamedPinger{
			{Name: "postgres", Pinger: okPinger{}},
			{Name: "redis", Pinger: failingPinger{}},
		}
	})

	rec := doRequest(router, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "redis")
	assert.NotContains(t, rec.Body.String(), "postgres")
}

func TestMetricsEndpointExposedWithRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	router := newTestRouter(t, func(d *Deps) {
		d.Registry = registry
	})

	rec := doRequest(router, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	bare := newTestRouter(t, nil)
	rec = doRequest(bare, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
