package model

import (
	"time"

	"github.com/google/uuid"
)

// Status de referência.
const (
	ReferenciaNormal                = "normal"
	ReferenciaFinalizada            = "finalizada"
	ReferenciaArquivada             = "arquivada"
	ReferenciaAtrasoDesenvolvimento = "atraso_desenvolvimento"
	ReferenciaAtrasoLogistica       = "atraso_logistica"
	ReferenciaEmProducao            = "em_producao"
)

// Referencia is a single product/SKU tracked for production.
//
// QuantidadeProduzida is a denormalized running total: every Lancamento
// increments it atomically inside the same transaction that creates the
// entry. The reconciliation operation recomputes it from the entry log
// when drift is suspected (see ProducaoService.ReconciliarQuantidade).
type Referencia struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ColecaoID           uuid.UUID `gorm:"type:uuid;index;not null"`
	Codigo              string    `gorm:"index;not null"`
	Nome                string    `gorm:"not null"`
	Status              string    `gorm:"type:varchar(30);not null;default:'normal'"`
	QuantidadeProduzida int       `gorm:"not null;default:0"`
	QuantidadePrevista  int       `gorm:"not null;default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Colecao     *Colecao     `gorm:"foreignKey:ColecaoID"`
	Etapas      []Etapa      `gorm:"foreignKey:ReferenciaID"`
	Lancamentos []Lancamento `gorm:"foreignKey:ReferenciaID"`
}

func (Referencia) TableName() string { return "referencias" }
