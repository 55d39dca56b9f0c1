package analytics

import (
	"testing"
	"time"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lancamento(dia time.Time, qtd int) model.Lancamento {
	return model.Lancamento{Quantidade: qtd, DataLancamento: dia}
}

func TestPercentualPrevistoZero(t *testing.T) {
	// previsto <= 0 → sempre 0%, independente do produzido
	assert.Equal(t, 0, Percentual(0, 0))
	assert.Equal(t, 0, Percentual(500, 0))
	assert.Equal(t, 0, Percentual(500, -10))
}

func TestPercentualLimitado(t *testing.T) {
	assert.Equal(t, 50, Percentual(50, 100))
	assert.Equal(t, 73, Percentual(110, 150))
	// produzido acima do previsto satura em 100
	assert.Equal(t, 100, Percentual(300, 100))
	assert.Equal(t, 0, Percentual(-5, 100))
}

func TestProgressoColecaoSomaTodasReferencias(t *testing.T) {
	c := &model.Colecao{
		Referencias: []model.Referencia{
			{QuantidadeProduzida: 50, QuantidadePrevista: 100},
			{QuantidadeProduzida: 10, QuantidadePrevista: 0, Status: model.ReferenciaArquivada},
			{QuantidadeProduzida: 50, QuantidadePrevista: 50},
		},
	}
	prog := ProgressoColecao(c)
	assert.Equal(t, 110, prog.Produzido)
	assert.Equal(t, 150, prog.Previsto)
	assert.Equal(t, 73, prog.Percentual) // round(110/150*100)
	assert.Equal(t, 3, prog.TotalReferencias)
}

func TestProgressoColecaoUmaReferencia(t *testing.T) {
	// Ida e volta: coleção com uma referência replica o par da referência.
	ref := model.Referencia{QuantidadeProduzida: 42, QuantidadePrevista: 90}
	c := &model.Colecao{Referencias: []model.Referencia{ref}}

	prog := ProgressoColecao(c)
	refProg := ProgressoReferencia(&ref)
	assert.Equal(t, refProg.Produzido, prog.Produzido)
	assert.Equal(t, refProg.Previsto, prog.Previsto)
	assert.Equal(t, refProg.Percentual, prog.Percentual)
}

func TestProgressoColecaoVazia(t *testing.T) {
	prog := ProgressoColecao(&model.Colecao{})
	assert.Equal(t, 0, prog.Produzido)
	assert.Equal(t, 0, prog.Percentual)
	assert.Equal(t, 0, prog.TotalReferencias)
}

func TestSerieDiaria(t *testing.T) {
	dia := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	ls := []model.Lancamento{
		lancamento(dia.Add(9*time.Hour), 30),
		lancamento(dia.Add(16*time.Hour), 20), // mesmo dia, turnos diferentes
		lancamento(dia.AddDate(0, 0, 1), 40),
		lancamento(dia.AddDate(0, 0, -1), 10),
	}
	serie := SerieDiaria(ls, 14)
	require.Len(t, serie, 3)
	assert.Equal(t, 10, serie[0].Total)
	assert.Equal(t, 50, serie[1].Total) // 30+20 agrupados no dia local
	assert.Equal(t, 40, serie[2].Total)
	assert.True(t, serie[0].Data.Before(serie[1].Data))
}

func TestSerieDiariaJanela(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.Local)
	var ls []model.Lancamento
	for i := 0; i < 30; i++ {
		ls = append(ls, lancamento(base.AddDate(0, 0, i), i+1))
	}
	serie := SerieDiaria(ls, 14)
	require.Len(t, serie, 14)
	// Mantém os 14 ÚLTIMOS dias
	assert.Equal(t, 17, serie[0].Total)
	assert.Equal(t, 30, serie[13].Total)
}

func TestSerieDiariaVazia(t *testing.T) {
	serie := SerieDiaria(nil, 14)
	assert.Empty(t, serie)
}

func TestSerieSemanal(t *testing.T) {
	// 2026-03-02 é segunda; semana inicia no domingo 2026-03-01
	segunda := time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)
	ls := []model.Lancamento{
		lancamento(segunda, 100),
		lancamento(segunda.AddDate(0, 0, 3), 50),  // mesma semana
		lancamento(segunda.AddDate(0, 0, 7), 200), // semana seguinte
	}
	serie := SerieSemanal(ls)
	require.Len(t, serie, 2)
	assert.Equal(t, 150, serie[0].Total)
	assert.Equal(t, 200, serie[1].Total)
	assert.Equal(t, time.Sunday, serie[0].InicioSemana.Weekday())
}

func TestSerieBurnup(t *testing.T) {
	inicio := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	semanal := []PontoSemanal{
		{InicioSemana: inicio, Total: 100},
		{InicioSemana: inicio.AddDate(0, 0, 7), Total: 150},
		{InicioSemana: inicio.AddDate(0, 0, 14), Total: 50},
	}
	burnup := SerieBurnup(semanal, 600)
	require.Len(t, burnup, 3)

	assert.Equal(t, 100, burnup[0].ProduzidoAcumulado)
	assert.Equal(t, 250, burnup[1].ProduzidoAcumulado)
	assert.Equal(t, 300, burnup[2].ProduzidoAcumulado)

	// Reta ideal: round(600*i/2) → 0, 300, 600
	assert.Equal(t, 0, burnup[0].MetaIdeal)
	assert.Equal(t, 300, burnup[1].MetaIdeal)
	assert.Equal(t, 600, burnup[2].MetaIdeal)
}

func TestSerieBurnupUmaSemana(t *testing.T) {
	semanal := []PontoSemanal{{InicioSemana: time.Now(), Total: 80}}
	burnup := SerieBurnup(semanal, 500)
	require.Len(t, burnup, 1)
	assert.Equal(t, 500, burnup[0].MetaIdeal)
}

func TestMedidorCapacidadeSemLancamentos(t *testing.T) {
	cap := MedidorCapacidade(1000, 0, nil)
	// ritmo atual 0, necessário 1000/20=50, razão 0 → atrasado
	assert.True(t, cap.RitmoAtual.IsZero())
	assert.Equal(t, "50", cap.RitmoNecessario.String())
	assert.True(t, cap.Razao.IsZero())
	assert.Equal(t, CapacidadeAtrasado, cap.Classificacao)
}

func TestMedidorCapacidadeMetaAtingida(t *testing.T) {
	dia := time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local)
	ls := []model.Lancamento{
		lancamento(dia, 500),
		lancamento(dia.AddDate(0, 0, 10), 600),
	}
	cap := MedidorCapacidade(1000, 1100, ls)
	// restante <= 0 → ritmo necessário = ritmo atual → razão 1 → adiantado
	assert.True(t, cap.RitmoAtual.Equal(cap.RitmoNecessario))
	assert.True(t, cap.Razao.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, CapacidadeAdiantado, cap.Classificacao)
}

func TestMedidorCapacidadePisoDeDias(t *testing.T) {
	// 40 dias decorridos → piso = max(20, 20) = 20
	dia := time.Date(2026, 1, 1, 8, 0, 0, 0, time.Local)
	ls := []model.Lancamento{
		lancamento(dia, 100),
		lancamento(dia.AddDate(0, 0, 40), 100),
	}
	cap := MedidorCapacidade(1000, 200, ls)
	// atual = 200/40 = 5; necessário = 800/20 = 40; razão = 0.13 → atrasado
	assert.Equal(t, "5", cap.RitmoAtual.String())
	assert.Equal(t, "40", cap.RitmoNecessario.String())
	assert.Equal(t, CapacidadeAtrasado, cap.Classificacao)
}

func TestMedidorCapacidadeClassificacaoAtencao(t *testing.T) {
	// 20 dias decorridos → piso = 20; produzido 460 de 1000 → restante 540
	// necessário = 540/20 = 27; atual = 460/20 = 23 → razão ≈ 0.85
	dia := time.Date(2026, 2, 1, 8, 0, 0, 0, time.Local)
	ls := []model.Lancamento{
		lancamento(dia, 200),
		lancamento(dia.AddDate(0, 0, 20), 260),
	}
	cap := MedidorCapacidade(1000, 460, ls)
	assert.Equal(t, CapacidadeAtencao, cap.Classificacao)
}
