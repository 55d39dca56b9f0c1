package model

import (
	"time"

	"github.com/google/uuid"
)

// LogAtividade records who did what on which entity. Writes are
// best-effort: a failed log write never fails the primary operation.
type LogAtividade struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID  *uuid.UUID `gorm:"type:uuid;index"`
	Acao       string     `gorm:"type:varchar(30);not null"` // criar | atualizar | excluir | desabilitar | reconciliar
	Entidade   string     `gorm:"type:varchar(30);not null"` // colecao | referencia | etapa | lancamento | usuario
	EntidadeID *uuid.UUID `gorm:"type:uuid"`
	Descricao  string
	CreatedAt  time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

func (LogAtividade) TableName() string { return "logs_atividade" }
