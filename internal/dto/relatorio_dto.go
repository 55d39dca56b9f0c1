package dto

// EnvioRelatorioResponse tallies a daily report dispatch. A partial
// failure still counts the successful recipients.
type EnvioRelatorioResponse struct {
	Ignorado bool                `json:"ignorado"`
	Motivo   string              `json:"motivo,omitempty"`
	Enviados int                 `json:"enviados"`
	Falhas   int                 `json:"falhas"`
	Detalhes []EnvioDestinatario `json:"detalhes,omitempty"`
}

type EnvioDestinatario struct {
	Destinatario string `json:"destinatario"`
	Enviado      bool   `json:"enviado"`
	Erro         string `json:"erro,omitempty"`
}
