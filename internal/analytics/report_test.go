package analytics

import (
	"testing"
	"time"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func etapaAtrasadaHa(dias int, nome string) model.Etapa {
	prazo := agora.AddDate(0, 0, -dias)
	return model.Etapa{
		ID:     uuid.New(),
		Nome:   nome,
		Status: model.EtapaEmAndamento,
		Prazo:  &prazo,
	}
}

func TestMontarRelatorio(t *testing.T) {
	colecoes := []model.Colecao{
		{
			Nome: "Verão 2026", Codigo: "VER26", Status: model.ColecaoNormal,
			Referencias: []model.Referencia{
				{QuantidadeProduzida: 50, QuantidadePrevista: 100, Status: model.ReferenciaEmProducao},
				{QuantidadeProduzida: 10, QuantidadePrevista: 0, Status: model.ReferenciaFinalizada},
				{QuantidadeProduzida: 50, QuantidadePrevista: 50, Status: model.ReferenciaArquivada},
			},
		},
		{
			Nome: "Inverno 2026", Codigo: "INV26", Status: model.ColecaoDesabilitada,
			Referencias: []model.Referencia{
				{QuantidadeProduzida: 999, QuantidadePrevista: 999},
			},
		},
	}

	rel := MontarRelatorio(colecoes, nil, agora)

	// Coleção desabilitada fica fora de tudo
	require.Len(t, rel.Colecoes, 1)
	linha := rel.Colecoes[0]
	assert.Equal(t, 110, linha.Produzido)
	assert.Equal(t, 150, linha.Previsto)
	assert.Equal(t, 73, linha.Percentual)
	assert.Equal(t, 1, linha.Finalizadas)
	assert.Equal(t, 1, linha.EmProducao) // nem finalizada nem arquivada

	// Totais do sistema vêm da passada por coleção
	assert.Equal(t, 1, rel.Resumo.TotalColecoes)
	assert.Equal(t, 3, rel.Resumo.TotalReferencias)
	assert.Equal(t, 110, rel.Resumo.TotalProduzido)
	assert.Equal(t, 150, rel.Resumo.TotalPrevisto)
	assert.Equal(t, 73, rel.Resumo.PercentualGeral)
	assert.Equal(t, agora, rel.GeradoEm)
	assert.Empty(t, rel.EtapasAtrasadas)
}

func TestEtapasAtrasadasOrdenacaoEFiltro(t *testing.T) {
	prazoFuturo := agora.AddDate(0, 0, 3)
	etapas := []model.Etapa{
		etapaAtrasadaHa(10, "Corte"),
		etapaAtrasadaHa(5, "Costura"),
		{Nome: "Concluída antiga", Status: model.EtapaConcluida, Prazo: func() *time.Time {
			p := agora.AddDate(0, 0, -30)
			return &p
		}()},
		{Nome: "No prazo", Status: model.EtapaPendente, Prazo: &prazoFuturo},
		etapaAtrasadaHa(20, "Acabamento"),
	}

	lista := EtapasAtrasadas(etapas, agora, LimiteEtapasRelatorio)
	require.Len(t, lista, 3)
	// Prazo ascendente: a mais antiga (20 dias) primeiro
	assert.Equal(t, "Acabamento", lista[0].Etapa)
	assert.Equal(t, "Corte", lista[1].Etapa)
	assert.Equal(t, "Costura", lista[2].Etapa)
	assert.Equal(t, 20, lista[0].DiasAtraso)
}

func TestEtapasAtrasadasLimite(t *testing.T) {
	var etapas []model.Etapa
	for i := 1; i <= 30; i++ {
		etapas = append(etapas, etapaAtrasadaHa(i, "Etapa"))
	}
	assert.Len(t, EtapasAtrasadas(etapas, agora, 20), 20)
	assert.Len(t, RankearEtapasAtrasadas(etapas, agora, 15), 15)
}

func TestRankearEtapasAtrasadas(t *testing.T) {
	// Atrasos de 10, 5, 20, 1 e 15 dias → ranking decrescente 20,15,10,5,1
	etapas := []model.Etapa{
		etapaAtrasadaHa(10, "A"),
		etapaAtrasadaHa(5, "B"),
		etapaAtrasadaHa(20, "C"),
		etapaAtrasadaHa(1, "D"),
		etapaAtrasadaHa(15, "E"),
	}

	ranking := RankearEtapasAtrasadas(etapas, agora, LimiteRankingAlertas)
	require.Len(t, ranking, 5)
	dias := []int{ranking[0].DiasAtraso, ranking[1].DiasAtraso, ranking[2].DiasAtraso,
		ranking[3].DiasAtraso, ranking[4].DiasAtraso}
	assert.Equal(t, []int{20, 15, 10, 5, 1}, dias)

	// A listagem do relatório (prazo ascendente) produz a mesma ordem para
	// este conjunto, mas é verificada por chave própria.
	lista := EtapasAtrasadas(etapas, agora, LimiteEtapasRelatorio)
	nomes := []string{lista[0].Etapa, lista[1].Etapa, lista[2].Etapa, lista[3].Etapa, lista[4].Etapa}
	assert.Equal(t, []string{"C", "E", "A", "B", "D"}, nomes)
}

func TestRankearEmpateMantemOrdemOriginal(t *testing.T) {
	etapas := []model.Etapa{
		etapaAtrasadaHa(7, "Primeira"),
		etapaAtrasadaHa(7, "Segunda"),
		etapaAtrasadaHa(7, "Terceira"),
	}
	ranking := RankearEtapasAtrasadas(etapas, agora, 15)
	require.Len(t, ranking, 3)
	assert.Equal(t, "Primeira", ranking[0].Etapa)
	assert.Equal(t, "Segunda", ranking[1].Etapa)
	assert.Equal(t, "Terceira", ranking[2].Etapa)
}

func TestEtapaAtrasadaContexto(t *testing.T) {
	prazo := agora.AddDate(0, 0, -2)
	etapas := []model.Etapa{{
		Nome:   "Costura",
		Status: model.EtapaPendente,
		Prazo:  &prazo,
		Referencia: &model.Referencia{
			Codigo: "REF-001",
			Nome:   "Vestido Midi",
			Colecao: &model.Colecao{
				Nome: "Verão 2026",
			},
		},
	}}
	lista := EtapasAtrasadas(etapas, agora, 20)
	require.Len(t, lista, 1)
	assert.Equal(t, "REF-001", lista[0].ReferenciaCodigo)
	assert.Equal(t, "Vestido Midi", lista[0].ReferenciaNome)
	assert.Equal(t, "Verão 2026", lista[0].Colecao)
}
