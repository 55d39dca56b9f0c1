package dto

import "time"

// ─── Etapas ──────────────────────────────────────────────────────────────────

type CriarEtapaRequest struct {
	ReferenciaID string     `json:"referencia_id" validate:"required,uuid"`
	Nome         string     `json:"nome"          validate:"required,min=2,max=100"`
	DataInicio   *time.Time `json:"data_inicio"`
	Prazo        *time.Time `json:"prazo"`
}

type AtualizarEtapaRequest struct {
	Nome       string     `json:"nome"        validate:"omitempty,min=2,max=100"`
	Status     string     `json:"status"      validate:"omitempty,oneof=pendente em_andamento concluida"`
	DataInicio *time.Time `json:"data_inicio"`
	Prazo      *time.Time `json:"prazo"`
}

type EtapaResponse struct {
	ID           string     `json:"id"`
	ReferenciaID string     `json:"referencia_id"`
	Nome         string     `json:"nome"`
	Status       string     `json:"status"`
	DataInicio   *time.Time `json:"data_inicio"`
	Prazo        *time.Time `json:"prazo"`
	// Classe is the derived display class (concluida, atrasada,
	// prazo_proximo, em_andamento, pendente).
	Classe string `json:"classe"`
}

// ─── Lançamentos ─────────────────────────────────────────────────────────────

type RegistrarLancamentoRequest struct {
	ReferenciaID   string    `json:"referencia_id"   validate:"required,uuid"`
	Quantidade     int       `json:"quantidade"      validate:"required,gt=0"`
	DataLancamento time.Time `json:"data_lancamento" validate:"required"`
	Observacoes    *string   `json:"observacoes"`
}

type LancamentoResponse struct {
	ID             string    `json:"id"`
	ReferenciaID   string    `json:"referencia_id"`
	Quantidade     int       `json:"quantidade"`
	DataLancamento time.Time `json:"data_lancamento"`
	Status         string    `json:"status"`
	Observacoes    *string   `json:"observacoes"`
	// TotalReferencia is the reference's running total after this entry.
	TotalReferencia int `json:"total_referencia"`
}
