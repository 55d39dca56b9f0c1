package dto

type CriarReferenciaRequest struct {
	ColecaoID          string `json:"colecao_id"          validate:"required,uuid"`
	Codigo             string `json:"codigo"              validate:"required,min=1,max=30"`
	Nome               string `json:"nome"                validate:"required,min=2,max=100"`
	QuantidadePrevista int    `json:"quantidade_prevista" validate:"min=0"`
}

type AtualizarReferenciaRequest struct {
	Nome               string `json:"nome"                validate:"omitempty,min=2,max=100"`
	Status             string `json:"status"              validate:"omitempty,oneof=normal finalizada arquivada atraso_desenvolvimento atraso_logistica em_producao"`
	QuantidadePrevista *int   `json:"quantidade_prevista" validate:"omitempty,min=0"`
}

type ReferenciaResponse struct {
	ID                  string          `json:"id"`
	ColecaoID           string          `json:"colecao_id"`
	Codigo              string          `json:"codigo"`
	Nome                string          `json:"nome"`
	Status              string          `json:"status"`
	QuantidadeProduzida int             `json:"quantidade_produzida"`
	QuantidadePrevista  int             `json:"quantidade_prevista"`
	Percentual          int             `json:"percentual"`
	EtapaAtiva          *EtapaAtivaView `json:"etapa_ativa,omitempty"`
	Etapas              []EtapaResponse `json:"etapas,omitempty"`
}

// EtapaAtivaView mirrors analytics.EtapaAtivaInfo on the wire.
type EtapaAtivaView struct {
	Nome            string `json:"nome"`
	Status          string `json:"status"`
	Urgente         bool   `json:"urgente"`
	TodasConcluidas bool   `json:"todas_concluidas"`
}

type ReferenciaListResponse struct {
	Data  []ReferenciaResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// ReconciliacaoResponse reports the outcome of a produced-total audit.
type ReconciliacaoResponse struct {
	ReferenciaID string `json:"referencia_id"`
	Anterior     int    `json:"anterior"`
	Recalculado  int    `json:"recalculado"`
	Divergencia  int    `json:"divergencia"`
	Corrigido    bool   `json:"corrigido"`
}
