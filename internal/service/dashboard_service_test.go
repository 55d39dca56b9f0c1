package service

import (
	"context"
	"testing"
	"time"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDashboardSvc(colecoes []model.Colecao, lancamentos []model.Lancamento, top []model.Referencia) *dashboardService {
	lancRep := &stubLancamentoRepo{entries: lancamentos}
	refRep := newStubReferenciaRepo(lancRep)
	refRep.top = top
	colecaoRep := &stubColecaoRepo{colecoes: colecoes}
	etapaRep := &stubEtapaRepo{}
	svc := NewDashboardService(colecaoRep, refRep, etapaRep, lancRep, nil).(*dashboardService)
	svc.agora = func() time.Time { return segunda }
	return svc
}

func TestVisaoGeralComSerieDiaria(t *testing.T) {
	colecoes := []model.Colecao{{
		ID:     uuid.New(),
		Nome:   "Verão 2026",
		Status: model.ColecaoNormal,
		Referencias: []model.Referencia{
			{ID: uuid.New(), Codigo: "REF-001", QuantidadeProduzida: 40, QuantidadePrevista: 100},
		},
	}}
	lancamentos := []model.Lancamento{
		{ID: uuid.New(), Quantidade: 25, DataLancamento: segunda.AddDate(0, 0, -2)},
		{ID: uuid.New(), Quantidade: 15, DataLancamento: segunda.AddDate(0, 0, -1)},
	}

	svc := buildDashboardSvc(colecoes, lancamentos, nil)
	resp, err := svc.VisaoGeral(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Resumo.TotalColecoes)
	assert.Equal(t, 40, resp.Resumo.TotalProduzido)
	assert.Len(t, resp.SerieDiaria, 2)
	assert.Empty(t, resp.TopProducao, "ranking só aparece quando a série está vazia")
}

func TestVisaoGeralSemLancamentosUsaRanking(t *testing.T) {
	colecoes := []model.Colecao{{
		ID:     uuid.New(),
		Nome:   "Verão 2026",
		Status: model.ColecaoNormal,
	}}
	top := []model.Referencia{
		{Codigo: "REF-002", Nome: "Saia Plissada", QuantidadeProduzida: 90},
		{Codigo: "REF-001", Nome: "Vestido Midi", QuantidadeProduzida: 40},
	}

	svc := buildDashboardSvc(colecoes, nil, top)
	resp, err := svc.VisaoGeral(context.Background())
	require.NoError(t, err)

	assert.Empty(t, resp.SerieDiaria)
	require.Len(t, resp.TopProducao, 2)
	assert.Equal(t, "REF-002", resp.TopProducao[0].Codigo)
}

func TestPainelTVSemRedisConsultaDireto(t *testing.T) {
	colecoes := []model.Colecao{{
		ID:     uuid.New(),
		Nome:   "Verão 2026",
		Status: model.ColecaoNormal,
		Referencias: []model.Referencia{
			{ID: uuid.New(), Codigo: "REF-001", QuantidadeProduzida: 40, QuantidadePrevista: 100},
		},
	}}

	svc := buildDashboardSvc(colecoes, nil, nil)
	resp, err := svc.PainelTV(context.Background())
	require.NoError(t, err)

	assert.Equal(t, segunda, resp.AtualizadoEm)
	require.Len(t, resp.Colecoes, 1)
	assert.Equal(t, 40, resp.Colecoes[0].Produzido)
}

func TestGerencialCalculaCapacidade(t *testing.T) {
	colecaoID := uuid.New()
	colecoes := []model.Colecao{{
		ID:             colecaoID,
		Nome:           "Verão 2026",
		Status:         model.ColecaoNormal,
		MetaQuantidade: 1000,
		Referencias: []model.Referencia{
			{ID: uuid.New(), Codigo: "REF-001", QuantidadeProduzida: 200, QuantidadePrevista: 500},
		},
	}}
	lancamentos := []model.Lancamento{
		{ID: uuid.New(), Quantidade: 120, DataLancamento: segunda.AddDate(0, 0, -10)},
		{ID: uuid.New(), Quantidade: 80, DataLancamento: segunda.AddDate(0, 0, -1)},
	}

	svc := buildDashboardSvc(colecoes, lancamentos, nil)
	resp, err := svc.Gerencial(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Colecoes, 1)
	view := resp.Colecoes[0]
	assert.Equal(t, 1000, view.Meta)
	assert.Equal(t, 200, view.Produzido)
	assert.Equal(t, 20, view.Percentual)
	require.NotNil(t, view.Capacidade)
	assert.NotEmpty(t, view.Capacidade.Classificacao)
	assert.NotEmpty(t, view.Burnup)
}
