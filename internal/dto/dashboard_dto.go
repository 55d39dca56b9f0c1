package dto

import (
	"time"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/analytics"
)

// VisaoGeralResponse is the payload behind the operational dashboard.
type VisaoGeralResponse struct {
	Resumo       analytics.ResumoRelatorio `json:"resumo"`
	Colecoes     []ColecaoProgressoView    `json:"colecoes"`
	SerieDiaria  []analytics.PontoDiario   `json:"serie_diaria"`
	TopProducao  []TopProducaoView         `json:"top_producao"`
	Alertas      []analytics.EtapaAtrasada `json:"alertas"`
	AtualizadoEm time.Time                 `json:"atualizado_em"`
}

type ColecaoProgressoView struct {
	ID          string                 `json:"id"`
	Nome        string                 `json:"nome"`
	Status      string                 `json:"status"`
	Produzido   int                    `json:"produzido"`
	Previsto    int                    `json:"previsto"`
	Percentual  int                    `json:"percentual"`
	Referencias []ReferenciaResumoView `json:"referencias"`
}

type ReferenciaResumoView struct {
	ID         string          `json:"id"`
	Codigo     string          `json:"codigo"`
	Nome       string          `json:"nome"`
	Produzido  int             `json:"produzido"`
	Previsto   int             `json:"previsto"`
	Percentual int             `json:"percentual"`
	EtapaAtiva *EtapaAtivaView `json:"etapa_ativa,omitempty"`
}

type TopProducaoView struct {
	Codigo    string `json:"codigo"`
	Nome      string `json:"nome"`
	Produzido int    `json:"produzido"`
}

// PainelTVResponse is the snapshot pushed to the factory-floor display.
type PainelTVResponse struct {
	Resumo       analytics.ResumoRelatorio `json:"resumo"`
	Colecoes     []ColecaoProgressoView    `json:"colecoes"`
	Alertas      []analytics.EtapaAtrasada `json:"alertas"`
	AtualizadoEm time.Time                 `json:"atualizado_em"`
}

// GerencialResponse carries the management-level analytics per collection.
type GerencialResponse struct {
	Colecoes     []ColecaoGerencialView `json:"colecoes"`
	AtualizadoEm time.Time              `json:"atualizado_em"`
}

type ColecaoGerencialView struct {
	ID           string                   `json:"id"`
	Nome         string                   `json:"nome"`
	Status       string                   `json:"status"`
	Meta         int                      `json:"meta"`
	Produzido    int                      `json:"produzido"`
	Percentual   int                      `json:"percentual"`
	SerieSemanal []analytics.PontoSemanal `json:"serie_semanal"`
	Burnup       []analytics.PontoBurnup  `json:"burnup"`
	Capacidade   *analytics.Capacidade    `json:"capacidade,omitempty"`
}
