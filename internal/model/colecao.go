package model

import (
	"time"

	"github.com/google/uuid"
)

// Status de coleção.
const (
	ColecaoNormal       = "normal"
	ColecaoAtrasada     = "atrasada"
	ColecaoFinalizada   = "finalizada"
	ColecaoDesabilitada = "desabilitada"
)

// Colecao is a seasonal product line grouping multiple references.
// Disabled collections are excluded from every aggregate and report.
type Colecao struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome           string    `gorm:"not null"`
	Codigo         string    `gorm:"uniqueIndex;not null"`
	DataInicio     *time.Time
	DataFim        *time.Time
	Status         string `gorm:"type:varchar(20);not null;default:'normal'"`
	MetaQuantidade int    `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Referencias []Referencia `gorm:"foreignKey:ColecaoID"`
}

func (Colecao) TableName() string { return "colecoes" }
