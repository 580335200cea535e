package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
)

// Invitacion is a single-use onboarding token issued when a signup request
// is accepted. LocalID is attached when the token is consumed.
type Invitacion struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Token       string     `gorm:"column:token;type:text;not null;uniqueIndex"`
	Email       string     `gorm:"column:email;not null"`
	Rol         enums.Rol  `gorm:"column:rol;type:text;not null;default:'admin'"`
	Usado       bool       `gorm:"column:usado;not null;default:false"`
	ExpiraEn    time.Time  `gorm:"column:expira_en;not null"`
	LocalID     *uuid.UUID `gorm:"column:local_id;type:uuid"`
	SolicitudID *uuid.UUID `gorm:"column:solicitud_id;type:uuid"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the Spanish plural used by the schema.
func (Invitacion) TableName() string {
	return "invitaciones"
}
