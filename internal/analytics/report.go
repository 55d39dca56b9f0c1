package analytics

import (
	"sort"
	"time"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/model"
	"github.com/google/uuid"
)

// Limites das listagens de etapas atrasadas.
const (
	LimiteEtapasRelatorio = 20 // tabela do relatório diário
	LimiteRankingAlertas  = 15 // ranking da tela de alertas
)

// ResumoRelatorio holds the system-wide totals. They are accumulated from
// the per-collection pass in MontarRelatorio — never recomputed from raw
// rows — so the summary and the collection table can never disagree.
type ResumoRelatorio struct {
	TotalColecoes    int `json:"total_colecoes"`
	TotalReferencias int `json:"total_referencias"`
	TotalProduzido   int `json:"total_produzido"`
	TotalPrevisto    int `json:"total_previsto"`
	PercentualGeral  int `json:"percentual_geral"`
}

// ColecaoRelatorio is one row of the per-collection table.
type ColecaoRelatorio struct {
	ID               uuid.UUID `json:"id"`
	Nome             string    `json:"nome"`
	Codigo           string    `json:"codigo"`
	Status           string    `json:"status"`
	Produzido        int       `json:"produzido"`
	Previsto         int       `json:"previsto"`
	Percentual       int       `json:"percentual"`
	TotalReferencias int       `json:"total_referencias"`
	Finalizadas      int       `json:"finalizadas"`
	EmProducao       int       `json:"em_producao"`
}

// EtapaAtrasada is one overdue stage with enough context to be listed on
// its own (report table, alert ranking, email body).
type EtapaAtrasada struct {
	ID               uuid.UUID `json:"id"`
	Etapa            string    `json:"etapa"`
	Status           string    `json:"status"`
	Prazo            time.Time `json:"prazo"`
	DiasAtraso       int       `json:"dias_atraso"`
	ReferenciaCodigo string    `json:"referencia_codigo"`
	ReferenciaNome   string    `json:"referencia_nome"`
	Colecao          string    `json:"colecao"`
}

// Relatorio is the immutable document consumed by the PDF renderer, the
// email body and the on-screen report table. It carries no behavior.
type Relatorio struct {
	Resumo          ResumoRelatorio    `json:"resumo"`
	Colecoes        []ColecaoRelatorio `json:"colecoes"`
	EtapasAtrasadas []EtapaAtrasada    `json:"etapas_atrasadas"`
	GeradoEm        time.Time          `json:"gerado_em"`
}

// MontarRelatorio assembles the daily report from a snapshot of
// collections (with references preloaded) and stages (with reference and
// collection preloaded). Disabled collections are skipped entirely.
func MontarRelatorio(colecoes []model.Colecao, etapas []model.Etapa, geradoEm time.Time) *Relatorio {
	rel := &Relatorio{
		Colecoes:        make([]ColecaoRelatorio, 0, len(colecoes)),
		EtapasAtrasadas: EtapasAtrasadas(etapas, geradoEm, LimiteEtapasRelatorio),
		GeradoEm:        geradoEm,
	}

	for i := range colecoes {
		c := &colecoes[i]
		if c.Status == model.ColecaoDesabilitada {
			continue
		}
		prog := ProgressoColecao(c)

		linha := ColecaoRelatorio{
			ID:               c.ID,
			Nome:             c.Nome,
			Codigo:           c.Codigo,
			Status:           c.Status,
			Produzido:        prog.Produzido,
			Previsto:         prog.Previsto,
			Percentual:       prog.Percentual,
			TotalReferencias: prog.TotalReferencias,
		}
		for j := range c.Referencias {
			r := &c.Referencias[j]
			if r.Status == model.ReferenciaFinalizada {
				linha.Finalizadas++
			}
			if r.Status != model.ReferenciaFinalizada && r.Status != model.ReferenciaArquivada {
				linha.EmProducao++
			}
		}
		rel.Colecoes = append(rel.Colecoes, linha)

		rel.Resumo.TotalColecoes++
		rel.Resumo.TotalReferencias += prog.TotalReferencias
		rel.Resumo.TotalProduzido += prog.Produzido
		rel.Resumo.TotalPrevisto += prog.Previsto
	}
	rel.Resumo.PercentualGeral = Percentual(rel.Resumo.TotalProduzido, rel.Resumo.TotalPrevisto)

	return rel
}

// EtapasAtrasadas lists overdue stages (not done, deadline passed) in
// deadline-ascending order: the longest-overdue rows come first because
// they carry the earliest deadlines. Used by the daily report.
func EtapasAtrasadas(etapas []model.Etapa, agora time.Time, limite int) []EtapaAtrasada {
	atrasadas := filtrarAtrasadas(etapas, agora)
	sort.SliceStable(atrasadas, func(i, j int) bool {
		return atrasadas[i].Prazo.Before(atrasadas[j].Prazo)
	})
	return limitar(atrasadas, limite)
}

// RankearEtapasAtrasadas orders overdue stages by days late, worst first.
// Ties keep the original fetch order (stable sort — never re-sorted by
// name or code). Used by the in-app alert ranking; kept distinct from
// EtapasAtrasadas because the two views read differently even though the
// sort keys usually agree.
func RankearEtapasAtrasadas(etapas []model.Etapa, agora time.Time, limite int) []EtapaAtrasada {
	atrasadas := filtrarAtrasadas(etapas, agora)
	sort.SliceStable(atrasadas, func(i, j int) bool {
		return atrasadas[i].DiasAtraso > atrasadas[j].DiasAtraso
	})
	return limitar(atrasadas, limite)
}

func filtrarAtrasadas(etapas []model.Etapa, agora time.Time) []EtapaAtrasada {
	result := make([]EtapaAtrasada, 0, len(etapas))
	for i := range etapas {
		e := &etapas[i]
		if e.Status != model.EtapaPendente && e.Status != model.EtapaEmAndamento {
			continue
		}
		if !Atrasada(e.Prazo, agora) {
			continue
		}
		linha := EtapaAtrasada{
			ID:         e.ID,
			Etapa:      e.Nome,
			Status:     e.Status,
			Prazo:      *e.Prazo,
			DiasAtraso: diasDeAtraso(*e.Prazo, agora),
		}
		if e.Referencia != nil {
			linha.ReferenciaCodigo = e.Referencia.Codigo
			linha.ReferenciaNome = e.Referencia.Nome
			if e.Referencia.Colecao != nil {
				linha.Colecao = e.Referencia.Colecao.Nome
			}
		}
		result = append(result, linha)
	}
	return result
}

func limitar(etapas []EtapaAtrasada, limite int) []EtapaAtrasada {
	if limite > 0 && len(etapas) > limite {
		return etapas[:limite]
	}
	return etapas
}
