package dto

import "time"

type LogAtividadeResponse struct {
	ID       string    `json:"id"`
	Usuario  string    `json:"usuario"`
	Acao     string    `json:"acao"`
	Entidade string    `json:"entidade"`
	Detalhes *string   `json:"detalhes,omitempty"`
	CriadoEm time.Time `json:"criado_em"`
}

type LogListResponse struct {
	Data  []LogAtividadeResponse `json:"data"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}
