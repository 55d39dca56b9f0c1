package worker

// relatorio_worker.go
// Processes daily-report jobs from QueueRelatorio: assembles the report,
// renders the PDF and emails it to the configured recipients.

import (
	"context"
	"encoding/json"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/service"

	"github.com/rs/zerolog/log"
)

// RelatorioJobPayload is the job envelope sent to QueueRelatorio.
type RelatorioJobPayload struct {
	Origem string `json:"origem"` // cron | manual
}

// RelatorioWorker dispatches the daily report through RelatorioService.
type RelatorioWorker struct {
	svc service.RelatorioService
}

func NewRelatorioWorker(svc service.RelatorioService) *RelatorioWorker {
	return &RelatorioWorker{svc: svc}
}

// Process runs one report dispatch. The weekday gate lives in the
// service, so a weekend job degrades to a logged no-op instead of an
// error.
func (w *RelatorioWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload RelatorioJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("relatorio_worker: invalid payload")
		return err
	}

	resp, err := w.svc.EnviarDiario(ctx)
	if err != nil {
		log.Error().Err(err).Str("origem", payload.Origem).Msg("relatorio_worker: dispatch failed")
		return err
	}

	if resp.Ignorado {
		log.Info().Str("motivo", resp.Motivo).Msg("relatorio_worker: dispatch skipped")
		return nil
	}
	log.Info().
		Str("origem", payload.Origem).
		Int("enviados", resp.Enviados).
		Int("falhas", resp.Falhas).
		Msg("relatorio_worker: report dispatched")
	return nil
}
