package model

import (
	"time"

	"github.com/google/uuid"
)

// Status de etapa.
const (
	EtapaPendente    = "pendente"
	EtapaEmAndamento = "em_andamento"
	EtapaConcluida   = "concluida"
)

// Etapa is a named manufacturing phase of a reference (corte, costura,
// acabamento…) with its own deadline. Creation order is significant: the
// "active" stage of a reference is the first non-done stage in creation
// order, so repositories must always list stages ordered by CreatedAt and
// nothing downstream may re-sort them by date or name.
type Etapa struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReferenciaID uuid.UUID `gorm:"type:uuid;index;not null"`
	Nome         string    `gorm:"not null"`
	Status       string    `gorm:"type:varchar(20);not null;default:'pendente'"`
	DataInicio   *time.Time
	// Prazo is the stage deadline; nil means no deadline tracking.
	Prazo     *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	Referencia *Referencia `gorm:"foreignKey:ReferenciaID"`
}

func (Etapa) TableName() string { return "etapas" }
