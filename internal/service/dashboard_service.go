package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/analytics"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/dto"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/model"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	tvSnapshotKey = "tv:snapshot"
	tvSnapshotTTL = 30 * time.Second

	topProducaoLimite = 5
)

type DashboardService interface {
	VisaoGeral(ctx context.Context) (*dto.VisaoGeralResponse, error)
	// PainelTV serves the factory-floor display. The snapshot is cached in
	// Redis for a short TTL because every TV client polls it.
	PainelTV(ctx context.Context) (*dto.PainelTVResponse, error)
	Gerencial(ctx context.Context) (*dto.GerencialResponse, error)
}

type dashboardService struct {
	colecaoRep repository.ColecaoRepository
	refRep     repository.ReferenciaRepository
	etapaRep   repository.EtapaRepository
	lancRep    repository.LancamentoRepository
	rdb        *redis.Client
	agora      func() time.Time
}

func NewDashboardService(
	colecaoRep repository.ColecaoRepository,
	refRep repository.ReferenciaRepository,
	etapaRep repository.EtapaRepository,
	lancRep repository.LancamentoRepository,
	rdb *redis.Client,
) DashboardService {
	return &dashboardService{
		colecaoRep: colecaoRep,
		refRep:     refRep,
		etapaRep:   etapaRep,
		lancRep:    lancRep,
		rdb:        rdb,
		agora:      time.Now,
	}
}

func (s *dashboardService) VisaoGeral(ctx context.Context) (*dto.VisaoGeralResponse, error) {
	agora := s.agora()

	colecoes, err := s.colecaoRep.ListAtivas(ctx)
	if err != nil {
		return nil, err
	}
	atrasadas, err := s.etapaRep.ListAtrasadas(ctx, agora)
	if err != nil {
		return nil, err
	}

	rel := analytics.MontarRelatorio(colecoes, nil, agora)

	resp := &dto.VisaoGeralResponse{
		Resumo:       rel.Resumo,
		Colecoes:     colecoesToProgressoViews(colecoes, agora),
		Alertas:      analytics.RankearEtapasAtrasadas(atrasadas, agora, analytics.LimiteRankingAlertas),
		AtualizadoEm: agora,
	}

	desde := agora.AddDate(0, 0, -analytics.JanelaSerieDiariaDias)
	lancamentos, err := s.lancRep.ListDesde(ctx, desde)
	if err != nil {
		return nil, err
	}
	resp.SerieDiaria = analytics.SerieDiaria(lancamentos, analytics.JanelaSerieDiariaDias)

	// Without recent entries the chart area shows the production ranking
	// instead of an empty plot.
	if len(resp.SerieDiaria) == 0 {
		top, err := s.refRep.TopPorProduzido(ctx, topProducaoLimite)
		if err != nil {
			return nil, err
		}
		resp.TopProducao = make([]dto.TopProducaoView, 0, len(top))
		for i := range top {
			resp.TopProducao = append(resp.TopProducao, dto.TopProducaoView{
				Codigo:    top[i].Codigo,
				Nome:      top[i].Nome,
				Produzido: top[i].QuantidadeProduzida,
			})
		}
	}

	return resp, nil
}

func (s *dashboardService) PainelTV(ctx context.Context) (*dto.PainelTVResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, tvSnapshotKey).Bytes(); err == nil {
			var cached dto.PainelTVResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	agora := s.agora()
	colecoes, err := s.colecaoRep.ListAtivas(ctx)
	if err != nil {
		return nil, err
	}
	atrasadas, err := s.etapaRep.ListAtrasadas(ctx, agora)
	if err != nil {
		return nil, err
	}

	rel := analytics.MontarRelatorio(colecoes, nil, agora)
	resp := &dto.PainelTVResponse{
		Resumo:       rel.Resumo,
		Colecoes:     colecoesToProgressoViews(colecoes, agora),
		Alertas:      analytics.RankearEtapasAtrasadas(atrasadas, agora, analytics.LimiteRankingAlertas),
		AtualizadoEm: agora,
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, tvSnapshotKey, raw, tvSnapshotTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("falha ao cachear snapshot do painel TV")
			}
		}
	}
	return resp, nil
}

func (s *dashboardService) Gerencial(ctx context.Context) (*dto.GerencialResponse, error) {
	agora := s.agora()
	colecoes, err := s.colecaoRep.ListAtivas(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.GerencialResponse{
		Colecoes:     make([]dto.ColecaoGerencialView, 0, len(colecoes)),
		AtualizadoEm: agora,
	}
	for i := range colecoes {
		c := &colecoes[i]
		lancamentos, err := s.lancRep.ListByColecao(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		prog := analytics.ProgressoColecao(c)
		semanal := analytics.SerieSemanal(lancamentos)

		view := dto.ColecaoGerencialView{
			ID:           c.ID.String(),
			Nome:         c.Nome,
			Status:       c.Status,
			Meta:         c.MetaQuantidade,
			Produzido:    prog.Produzido,
			Percentual:   analytics.Percentual(prog.Produzido, c.MetaQuantidade),
			SerieSemanal: semanal,
			Burnup:       analytics.SerieBurnup(semanal, c.MetaQuantidade),
		}
		if c.MetaQuantidade > 0 {
			medidor := analytics.MedidorCapacidade(c.MetaQuantidade, prog.Produzido, lancamentos)
			view.Capacidade = &medidor
		}
		resp.Colecoes = append(resp.Colecoes, view)
	}
	return resp, nil
}

func colecoesToProgressoViews(colecoes []model.Colecao, agora time.Time) []dto.ColecaoProgressoView {
	views := make([]dto.ColecaoProgressoView, 0, len(colecoes))
	for i := range colecoes {
		c := &colecoes[i]
		if c.Status == model.ColecaoDesabilitada {
			continue
		}
		prog := analytics.ProgressoColecao(c)
		view := dto.ColecaoProgressoView{
			ID:          c.ID.String(),
			Nome:        c.Nome,
			Status:      c.Status,
			Produzido:   prog.Produzido,
			Previsto:    prog.Previsto,
			Percentual:  prog.Percentual,
			Referencias: make([]dto.ReferenciaResumoView, 0, len(c.Referencias)),
		}
		for j := range c.Referencias {
			r := &c.Referencias[j]
			refView := dto.ReferenciaResumoView{
				ID:         r.ID.String(),
				Codigo:     r.Codigo,
				Nome:       r.Nome,
				Produzido:  r.QuantidadeProduzida,
				Previsto:   r.QuantidadePrevista,
				Percentual: analytics.Percentual(r.QuantidadeProduzida, r.QuantidadePrevista),
			}
			if info := analytics.EtapaAtiva(r.Etapas, agora); info != nil {
				refView.EtapaAtiva = &dto.EtapaAtivaView{
					Nome:            info.Nome,
					Status:          info.Status,
					Urgente:         info.Urgente,
					TodasConcluidas: info.TodasConcluidas,
				}
			}
			view.Referencias = append(view.Referencias, refView)
		}
		views = append(views, view)
	}
	return views
}
