package model

import (
	"time"

	"github.com/google/uuid"
)

// Lancamento is a dated production entry for a reference. The log is
// append-only: entries are never edited, only created or wiped in bulk
// for a whole reference.
type Lancamento struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReferenciaID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Quantidade     int       `gorm:"not null"`
	DataLancamento time.Time `gorm:"index;not null"`
	Status         string    `gorm:"type:varchar(20);not null;default:'normal'"`
	Observacoes    *string
	CreatedAt      time.Time

	Referencia *Referencia `gorm:"foreignKey:ReferenciaID"`
}

func (Lancamento) TableName() string { return "lancamentos" }
