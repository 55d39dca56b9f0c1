package dto

import "time"

type CriarColecaoRequest struct {
	Nome           string     `json:"nome"            validate:"required,min=2,max=100"`
	Codigo         string     `json:"codigo"          validate:"required,min=1,max=30"`
	DataInicio     *time.Time `json:"data_inicio"`
	DataFim        *time.Time `json:"data_fim"`
	MetaQuantidade int        `json:"meta_quantidade" validate:"min=0"`
}

type AtualizarColecaoRequest struct {
	Nome           string     `json:"nome"            validate:"omitempty,min=2,max=100"`
	DataInicio     *time.Time `json:"data_inicio"`
	DataFim        *time.Time `json:"data_fim"`
	Status         string     `json:"status"          validate:"omitempty,oneof=normal atrasada finalizada desabilitada"`
	MetaQuantidade *int       `json:"meta_quantidade" validate:"omitempty,min=0"`
}

type ColecaoResponse struct {
	ID               string     `json:"id"`
	Nome             string     `json:"nome"`
	Codigo           string     `json:"codigo"`
	DataInicio       *time.Time `json:"data_inicio"`
	DataFim          *time.Time `json:"data_fim"`
	Status           string     `json:"status"`
	MetaQuantidade   int        `json:"meta_quantidade"`
	Produzido        int        `json:"produzido"`
	Previsto         int        `json:"previsto"`
	Percentual       int        `json:"percentual"`
	TotalReferencias int        `json:"total_referencias"`
}
