package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/analytics"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/dto"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/repository"

	"github.com/rs/zerolog/log"
)

// Mailer sends one message with an optional file attachment. The SMTP
// implementation lives in infra; tests plug a fake.
type Mailer interface {
	Enviar(para, assunto, corpoHTML, anexo string) error
}

// GeradorPDF renders the daily report to disk and returns the file path.
type GeradorPDF interface {
	Gerar(rel *analytics.Relatorio) (string, error)
}

type RelatorioService interface {
	// Montar assembles the current report snapshot without side effects.
	Montar(ctx context.Context) (*analytics.Relatorio, error)
	// EnviarDiario generates the PDF and emails it to every configured
	// recipient. Weekends are skipped. One failed recipient does not stop
	// the others; the response tallies both outcomes.
	EnviarDiario(ctx context.Context) (*dto.EnvioRelatorioResponse, error)
}

type relatorioService struct {
	colecaoRep    repository.ColecaoRepository
	etapaRep      repository.EtapaRepository
	mailer        Mailer
	pdf           GeradorPDF
	destinatarios []string
	agora         func() time.Time
}

func NewRelatorioService(
	colecaoRep repository.ColecaoRepository,
	etapaRep repository.EtapaRepository,
	mailer Mailer,
	pdf GeradorPDF,
	destinatarios []string,
) RelatorioService {
	return &relatorioService{
		colecaoRep:    colecaoRep,
		etapaRep:      etapaRep,
		mailer:        mailer,
		pdf:           pdf,
		destinatarios: destinatarios,
		agora:         time.Now,
	}
}

func (s *relatorioService) Montar(ctx context.Context) (*analytics.Relatorio, error) {
	agora := s.agora()
	colecoes, err := s.colecaoRep.ListAtivas(ctx)
	if err != nil {
		return nil, err
	}
	atrasadas, err := s.etapaRep.ListAtrasadas(ctx, agora)
	if err != nil {
		return nil, err
	}
	return analytics.MontarRelatorio(colecoes, atrasadas, agora), nil
}

func (s *relatorioService) EnviarDiario(ctx context.Context) (*dto.EnvioRelatorioResponse, error) {
	agora := s.agora()
	if !analytics.DiaUtil(agora) {
		log.Info().Time("agora", agora).Msg("relatório diário ignorado: fim de semana")
		return &dto.EnvioRelatorioResponse{Ignorado: true, Motivo: "fim de semana"}, nil
	}
	if len(s.destinatarios) == 0 {
		return &dto.EnvioRelatorioResponse{Ignorado: true, Motivo: "nenhum destinatário configurado"}, nil
	}

	rel, err := s.Montar(ctx)
	if err != nil {
		return nil, err
	}

	anexo := ""
	if s.pdf != nil {
		anexo, err = s.pdf.Gerar(rel)
		if err != nil {
			return nil, fmt.Errorf("falha ao gerar PDF do relatório: %w", err)
		}
	}

	assunto := "Relatório Diário de Produção — " + agora.Format("02/01/2006")
	corpo := corpoEmailRelatorio(rel)

	resp := &dto.EnvioRelatorioResponse{}
	for _, dest := range s.destinatarios {
		det := dto.EnvioDestinatario{Destinatario: dest}
		if err := s.mailer.Enviar(dest, assunto, corpo, anexo); err != nil {
			det.Erro = err.Error()
			resp.Falhas++
			log.Error().Err(err).Str("destinatario", dest).Msg("falha ao enviar relatório diário")
		} else {
			det.Enviado = true
			resp.Enviados++
		}
		resp.Detalhes = append(resp.Detalhes, det)
	}

	log.Info().
		Int("enviados", resp.Enviados).
		Int("falhas", resp.Falhas).
		Msg("relatório diário despachado")
	return resp, nil
}

func corpoEmailRelatorio(rel *analytics.Relatorio) string {
	var b strings.Builder
	b.WriteString("<h2>Relatório Diário de Produção</h2>")
	b.WriteString(fmt.Sprintf("<p>Gerado em %s</p>", rel.GeradoEm.Format("02/01/2006 15:04")))
	b.WriteString(fmt.Sprintf(
		"<p>Coleções ativas: <b>%d</b> &middot; Referências: <b>%d</b> &middot; Produzido: <b>%d/%d</b> (%d%%)</p>",
		rel.Resumo.TotalColecoes, rel.Resumo.TotalReferencias,
		rel.Resumo.TotalProduzido, rel.Resumo.TotalPrevisto, rel.Resumo.PercentualGeral))

	b.WriteString("<h3>Coleções</h3><table border=\"1\" cellpadding=\"4\"><tr><th>Coleção</th><th>Produzido</th><th>Previsto</th><th>%</th></tr>")
	for _, c := range rel.Colecoes {
		b.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%d</td><td>%d</td><td>%d%%</td></tr>",
			c.Nome, c.Produzido, c.Previsto, c.Percentual))
	}
	b.WriteString("</table>")

	if len(rel.EtapasAtrasadas) > 0 {
		b.WriteString("<h3>Etapas atrasadas</h3><table border=\"1\" cellpadding=\"4\"><tr><th>Referência</th><th>Etapa</th><th>Prazo</th><th>Dias de atraso</th></tr>")
		for _, e := range rel.EtapasAtrasadas {
			b.WriteString(fmt.Sprintf("<tr><td>%s — %s</td><td>%s</td><td>%s</td><td>%d</td></tr>",
				e.ReferenciaCodigo, e.ReferenciaNome, e.Etapa, e.Prazo.Format("02/01/2006"), e.DiasAtraso))
		}
		b.WriteString("</table>")
	} else {
		b.WriteString("<p>Nenhuma etapa atrasada.</p>")
	}
	return b.String()
}
