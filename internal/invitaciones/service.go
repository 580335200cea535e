package invitaciones

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smoralesdev/cartaqr-backend/internal/locales"
	"github.com/smoralesdev/cartaqr-backend/internal/menu"
	"github.com/smoralesdev/cartaqr-backend/internal/users"
	"github.com/smoralesdev/cartaqr-backend/pkg/db"
	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
	pkgerrors "github.com/smoralesdev/cartaqr-backend/pkg/errors"
	"github.com/smoralesdev/cartaqr-backend/pkg/mailer"
	"github.com/smoralesdev/cartaqr-backend/pkg/security"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Config holds the tunables for invitation issuance.
type Config struct {
	TTL       time.Duration
	PublicURL string
}

type service struct {
	repo        Repository
	localesRepo locales.Repository
	usersRepo   users.Repository
	menuRepo    menu.Repository
	tx          txRunner
	mail        mailer.Mailer
	cfg         Config
	now         func() time.Time
}

// NewService builds the invitation service with the required dependencies.
func NewService(repo Repository, localesRepo locales.Repository, usersRepo users.Repository, menuRepo menu.Repository, tx txRunner, mail mailer.Mailer, cfg Config) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invitaciones repository required")
	}
	if localesRepo == nil {
		return nil, fmt.Errorf("locales repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if menuRepo == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if mail == nil {
		return nil, fmt.Errorf("mailer required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 7 * 24 * time.Hour
	}
	return &service{
		repo:        repo,
		localesRepo: localesRepo,
		usersRepo:   usersRepo,
		menuRepo:    menuRepo,
		tx:          tx,
		mail:        mail,
		cfg:         cfg,
		now:         time.Now,
	}, nil
}

func (s *service) Issue(ctx context.Context, input IssueInput) (*models.Invitacion, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
	}
	rol := input.Rol
	if rol == "" {
		rol = enums.RolAdmin
	}
	if !rol.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid rol")
	}

	token, err := security.GenerateInvitationToken()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate token")
	}

	invitacion := &models.Invitacion{
		ID:          uuid.New(),
		Token:       token,
		Email:       email,
		Rol:         rol,
		Usado:       false,
		ExpiraEn:    s.now().UTC().Add(s.cfg.TTL),
		SolicitudID: input.SolicitudID,
	}
	created, err := s.repo.Create(ctx, invitacion)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist invitacion")
	}

	s.sendInvitationMail(ctx, created, input.NombreNegocio)
	return created, nil
}

func (s *service) Validate(ctx context.Context, token string) (*ValidationResult, error) {
	invitacion, err := s.lookup(ctx, token)
	if err != nil {
		return nil, err
	}
	return &ValidationResult{
		Email:    invitacion.Email,
		Rol:      invitacion.Rol,
		ExpiraEn: invitacion.ExpiraEn,
	}, nil
}

func (s *service) Consume(ctx context.Context, input ConsumeInput) (*ConsumeResult, error) {
	if err := validateConsume(&input); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Usuario.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var result *ConsumeResult
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		invitacion, err := s.lookupTx(ctx, tx, input.Token)
		if err != nil {
			return err
		}

		local, err := s.localesRepo.WithTx(tx).Create(ctx, &models.Local{
			ID:          uuid.New(),
			Nombre:      input.Local.Nombre,
			Slug:        input.Local.Slug,
			Descripcion: input.Local.Descripcion,
			Direccion:   input.Local.Direccion,
			Telefono:    input.Local.Telefono,
			Activo:      true,
		})
		if err != nil {
			// No pre-check: uniqueness is enforced by the constraint and
			// mapped here, so two concurrent registrations cannot both win.
			if db.IsUniqueViolation(err, "idx_locales_slug") {
				return pkgerrors.New(pkgerrors.CodeConflict, "slug already in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create local")
		}

		usuario, err := s.usersRepo.WithTx(tx).Create(ctx, users.CreateUsuarioDTO{
			LocalID:      &local.ID,
			Nombre:       input.Usuario.Nombre,
			Email:        invitacion.Email,
			PasswordHash: hash,
			Rol:          invitacion.Rol,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create usuario")
		}

		if err := s.repo.WithTx(tx).MarkUsed(ctx, invitacion.ID, local.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark invitacion used")
		}

		if err := s.menuRepo.WithTx(tx).CreateCategorias(ctx, menu.DefaultCategorias(local.ID)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed categorias")
		}

		result = &ConsumeResult{
			LocalID: local.ID,
			Slug:    local.Slug,
			Usuario: users.FromModel(usuario),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Regenerate(ctx context.Context, prevToken string) (*models.Invitacion, error) {
	prev, err := s.find(ctx, prevToken)
	if err != nil {
		return nil, err
	}
	if prev.Usado {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "invitacion already used")
	}

	token, err := security.GenerateInvitationToken()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate token")
	}

	var created *models.Invitacion
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		now := s.now().UTC()
		if err := repo.ExpireNow(ctx, prev.ID, now); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "expire invitacion")
		}
		created, err = repo.Create(ctx, &models.Invitacion{
			ID:          uuid.New(),
			Token:       token,
			Email:       prev.Email,
			Rol:         prev.Rol,
			Usado:       false,
			ExpiraEn:    now.Add(s.cfg.TTL),
			SolicitudID: prev.SolicitudID,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist invitacion")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sendInvitationMail(ctx, created, "")
	return created, nil
}

// RegenerateForSolicitud reissues the most recent invitation tied to a
// signup request.
func (s *service) RegenerateForSolicitud(ctx context.Context, solicitudID uuid.UUID) (*models.Invitacion, error) {
	prev, err := s.repo.FindLatestBySolicitud(ctx, solicitudID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invitacion not found for solicitud")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invitacion")
	}
	return s.Regenerate(ctx, prev.Token)
}

func (s *service) find(ctx context.Context, token string) (*models.Invitacion, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "token required")
	}
	invitacion, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invitacion not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invitacion")
	}
	return invitacion, nil
}

// lookup returns the invitation only when it is still redeemable. Exactly
// one of NotFound, Conflict (used), Expired, or success comes back.
func (s *service) lookup(ctx context.Context, token string) (*models.Invitacion, error) {
	invitacion, err := s.find(ctx, token)
	if err != nil {
		return nil, err
	}
	if invitacion.Usado {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "invitacion already used")
	}
	// A token is redeemable strictly before expira_en.
	if !invitacion.ExpiraEn.After(s.now().UTC()) {
		return nil, pkgerrors.New(pkgerrors.CodeExpired, "invitacion expired")
	}
	return invitacion, nil
}

func (s *service) lookupTx(ctx context.Context, tx *gorm.DB, token string) (*models.Invitacion, error) {
	invitacion, err := s.repo.WithTx(tx).FindByToken(ctx, strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invitacion not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invitacion")
	}
	if invitacion.Usado {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "invitacion already used")
	}
	if !invitacion.ExpiraEn.After(s.now().UTC()) {
		return nil, pkgerrors.New(pkgerrors.CodeExpired, "invitacion expired")
	}
	return invitacion, nil
}

func (s *service) sendInvitationMail(ctx context.Context, invitacion *models.Invitacion, nombreNegocio string) {
	if nombreNegocio == "" {
		nombreNegocio = "tu negocio"
	}
	link := fmt.Sprintf("%s/registro?token=%s", strings.TrimRight(s.cfg.PublicURL, "/"), invitacion.Token)
	ttlDays := int(s.cfg.TTL.Hours() / 24)
	subject, body := mailer.InvitationBody(nombreNegocio, link, ttlDays)
	s.mail.Send(ctx, invitacion.Email, subject, body)
}

func validateConsume(input *ConsumeInput) error {
	input.Token = strings.TrimSpace(input.Token)
	if input.Token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "token required")
	}

	input.Local.Nombre = strings.TrimSpace(input.Local.Nombre)
	input.Local.Slug = strings.TrimSpace(strings.ToLower(input.Local.Slug))
	if input.Local.Nombre == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "nombre de local required")
	}
	if !slugRe.MatchString(input.Local.Slug) {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid slug").
			WithDetails(map[string]string{"slug": input.Local.Slug})
	}

	input.Usuario.Nombre = strings.TrimSpace(input.Usuario.Nombre)
	if input.Usuario.Nombre == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "nombre de usuario required")
	}
	if len(input.Usuario.Password) < 8 {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	return nil
}
