package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/model"
	"github.com/shopspring/decimal"
)

// JanelaSerieDiariaDias is the default lookback of the daily chart.
const JanelaSerieDiariaDias = 14

// Progresso is the produced/forecast pair of an entity plus its clamped
// completion percentage.
type Progresso struct {
	Produzido  int `json:"produzido"`
	Previsto   int `json:"previsto"`
	Percentual int `json:"percentual"`
}

// ProgressoAgregado is a collection-level rollup over all child references.
type ProgressoAgregado struct {
	Progresso
	TotalReferencias int `json:"total_referencias"`
}

// Percentual computes clamp(round(produzido/previsto*100), 0, 100).
// A forecast of zero (or negative) is always 0% — never a division error.
func Percentual(produzido, previsto int) int {
	if previsto <= 0 {
		return 0
	}
	p := int(math.Round(float64(produzido) / float64(previsto) * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// ProgressoReferencia is a direct pass-through of the reference's running
// totals.
func ProgressoReferencia(ref *model.Referencia) Progresso {
	return Progresso{
		Produzido:  ref.QuantidadeProduzida,
		Previsto:   ref.QuantidadePrevista,
		Percentual: Percentual(ref.QuantidadeProduzida, ref.QuantidadePrevista),
	}
}

// ProgressoColecao sums produced and forecast quantities across ALL child
// references regardless of their individual status. Excluding disabled
// collections is the caller's job (repositories never fetch them for
// aggregates).
func ProgressoColecao(c *model.Colecao) ProgressoAgregado {
	var produzido, previsto int
	for i := range c.Referencias {
		produzido += c.Referencias[i].QuantidadeProduzida
		previsto += c.Referencias[i].QuantidadePrevista
	}
	return ProgressoAgregado{
		Progresso: Progresso{
			Produzido:  produzido,
			Previsto:   previsto,
			Percentual: Percentual(produzido, previsto),
		},
		TotalReferencias: len(c.Referencias),
	}
}

// PontoDiario is one day's total in the daily production chart.
type PontoDiario struct {
	Data  time.Time `json:"data"`
	Total int       `json:"total"`
}

// SerieDiaria groups entries by local calendar date, sums quantities per
// day and returns the last janelaDias buckets in ascending date order.
// An empty entry set yields an empty series — the dashboard then falls
// back to the per-reference ranking view, which is designed behavior,
// not an error path.
func SerieDiaria(lancamentos []model.Lancamento, janelaDias int) []PontoDiario {
	if janelaDias <= 0 {
		janelaDias = JanelaSerieDiariaDias
	}
	totais := make(map[time.Time]int)
	for i := range lancamentos {
		totais[dataLocal(lancamentos[i].DataLancamento)] += lancamentos[i].Quantidade
	}

	pontos := make([]PontoDiario, 0, len(totais))
	for data, total := range totais {
		pontos = append(pontos, PontoDiario{Data: data, Total: total})
	}
	sort.Slice(pontos, func(i, j int) bool { return pontos[i].Data.Before(pontos[j].Data) })

	if len(pontos) > janelaDias {
		pontos = pontos[len(pontos)-janelaDias:]
	}
	return pontos
}

// PontoSemanal is one week's total, keyed by the Sunday that starts it.
type PontoSemanal struct {
	InicioSemana time.Time `json:"inicio_semana"`
	Total        int       `json:"total"`
}

// SerieSemanal buckets entries by week start, ascending.
func SerieSemanal(lancamentos []model.Lancamento) []PontoSemanal {
	totais := make(map[time.Time]int)
	for i := range lancamentos {
		totais[inicioSemana(lancamentos[i].DataLancamento)] += lancamentos[i].Quantidade
	}

	pontos := make([]PontoSemanal, 0, len(totais))
	for inicio, total := range totais {
		pontos = append(pontos, PontoSemanal{InicioSemana: inicio, Total: total})
	}
	sort.Slice(pontos, func(i, j int) bool { return pontos[i].InicioSemana.Before(pontos[j].InicioSemana) })
	return pontos
}

// PontoBurnup compares cumulative production against a straight-line
// ideal trajectory toward the collection target.
type PontoBurnup struct {
	Rotulo             string `json:"rotulo"`
	ProduzidoAcumulado int    `json:"produzido_acumulado"`
	MetaIdeal          int    `json:"meta_ideal"`
}

// SerieBurnup builds the burnup chart from the weekly series: running
// cumulative sum on one axis, round(meta*i/(N-1)) as the ideal reference
// at bucket i (a single bucket gets the full target).
func SerieBurnup(semanal []PontoSemanal, metaTotal int) []PontoBurnup {
	n := len(semanal)
	pontos := make([]PontoBurnup, 0, n)
	acumulado := 0
	for i, p := range semanal {
		acumulado += p.Total
		ideal := metaTotal
		if n > 1 {
			ideal = int(math.Round(float64(metaTotal) * float64(i) / float64(n-1)))
		}
		pontos = append(pontos, PontoBurnup{
			Rotulo:             p.InicioSemana.Format("02/01"),
			ProduzidoAcumulado: acumulado,
			MetaIdeal:          ideal,
		})
	}
	return pontos
}

// Classificações do medidor de capacidade.
const (
	CapacidadeAdiantado = "adiantado"
	CapacidadeAtencao   = "atencao"
	CapacidadeAtrasado  = "atrasado"
)

// Capacidade projects whether the target will be met at the current pace.
type Capacidade struct {
	RitmoAtual      decimal.Decimal `json:"ritmo_atual"`
	RitmoNecessario decimal.Decimal `json:"ritmo_necessario"`
	Razao           decimal.Decimal `json:"razao"`
	Classificacao   string          `json:"classificacao"`
}

var (
	umDecimal        = decimal.NewFromInt(1)
	limiarAtencao    = decimal.NewFromFloat(0.85)
	pisoDiasRestante = 20.0
)

// MedidorCapacidade compares the actual daily rate (produced over elapsed
// worked days) with the rate required to finish the remaining quantity.
// The remaining-days floor of max(elapsed/2, 20) dampens the required rate
// while a collection is young; the floor is part of the contract.
func MedidorCapacidade(metaTotal, produzidoTotal int, lancamentos []model.Lancamento) Capacidade {
	diasTrabalhados := 1
	if len(lancamentos) > 0 {
		primeiro := lancamentos[0].DataLancamento
		ultimo := lancamentos[0].DataLancamento
		for i := range lancamentos[1:] {
			d := lancamentos[i+1].DataLancamento
			if d.Before(primeiro) {
				primeiro = d
			}
			if d.After(ultimo) {
				ultimo = d
			}
		}
		if dias := diasEntre(primeiro, ultimo); dias > diasTrabalhados {
			diasTrabalhados = dias
		}
	}

	ritmoAtual := decimal.NewFromInt(int64(produzidoTotal)).Div(decimal.NewFromInt(int64(diasTrabalhados)))

	restante := metaTotal - produzidoTotal
	ritmoNecessario := ritmoAtual
	if restante > 0 {
		diasRestantes := float64(diasTrabalhados) * 0.5
		if diasRestantes < pisoDiasRestante {
			diasRestantes = pisoDiasRestante
		}
		ritmoNecessario = decimal.NewFromInt(int64(restante)).Div(decimal.NewFromFloat(diasRestantes))
	}

	razao := decimal.Zero
	if !ritmoNecessario.IsZero() {
		razao = ritmoAtual.Div(ritmoNecessario)
	}

	classificacao := CapacidadeAtrasado
	switch {
	case razao.GreaterThanOrEqual(umDecimal):
		classificacao = CapacidadeAdiantado
	case razao.GreaterThanOrEqual(limiarAtencao):
		classificacao = CapacidadeAtencao
	}

	return Capacidade{
		RitmoAtual:      ritmoAtual.Round(2),
		RitmoNecessario: ritmoNecessario.Round(2),
		Razao:           razao.Round(2),
		Classificacao:   classificacao,
	}
}
