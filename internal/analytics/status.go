// Package analytics is the pure computation core of the PCP: status
// derivation, production aggregation and daily-report assembly.
//
// Every function here takes the current time as a parameter and performs
// no I/O, so the whole package is deterministic under test. Inputs are
// treated as an immutable snapshot already fetched (and already ordered,
// where order matters) by the caller.
package analytics

import (
	"math"
	"time"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/model"
)

// JanelaPrazoProximoDias is the default forward window for the
// "prazo próximo" warning on stage deadlines.
const JanelaPrazoProximoDias = 5

// Classes de exibição de uma etapa (dashboard e painel TV).
const (
	ClasseConcluida    = "concluida"
	ClasseAtrasada     = "atrasada"
	ClassePrazoProximo = "prazo_proximo"
	ClasseEmAndamento  = "em_andamento"
	ClassePendente     = "pendente"
)

// rotuloTodasConcluidas is the synthetic stage name shown when every
// stage of a reference is done.
const rotuloTodasConcluidas = "Concluído"

// Atrasada reports whether the deadline passed. A nil deadline is never late.
func Atrasada(prazo *time.Time, agora time.Time) bool {
	return prazo != nil && prazo.Before(agora)
}

// PrazoProximo reports whether the deadline falls within the next
// janelaDias days. Past deadlines (a full day or more) are not "próximo":
// they are late, and Atrasada takes precedence wherever both are checked.
func PrazoProximo(prazo *time.Time, agora time.Time, janelaDias int) bool {
	if prazo == nil {
		return false
	}
	dias := int(prazo.Sub(agora).Hours() / 24)
	return dias >= 0 && dias <= janelaDias
}

// ClasseEtapa derives the display class of a stage. Precedence:
// concluida > atrasada > prazo_proximo > em_andamento > pendente.
func ClasseEtapa(status string, prazo *time.Time, agora time.Time) string {
	switch status {
	case model.EtapaConcluida:
		return ClasseConcluida
	case model.EtapaEmAndamento:
		if Atrasada(prazo, agora) {
			return ClasseAtrasada
		}
		if PrazoProximo(prazo, agora, JanelaPrazoProximoDias) {
			return ClassePrazoProximo
		}
		return ClasseEmAndamento
	default:
		return ClassePendente
	}
}

// EtapaAtivaInfo describes the stage a reference is currently at.
type EtapaAtivaInfo struct {
	Nome            string `json:"nome"`
	Status          string `json:"status"`
	Urgente         bool   `json:"urgente"`
	TodasConcluidas bool   `json:"todas_concluidas"`
}

// EtapaAtiva finds the active stage of a reference: the FIRST stage in
// creation order whose status is pendente or em_andamento. The slice must
// arrive in creation order and is never re-sorted — "first created", not
// "most overdue", is the tie-break policy. When every stage is done a
// synthetic completed marker is returned; nil only happens on a stage list
// with unknown statuses and no open stage (defensive).
func EtapaAtiva(etapas []model.Etapa, agora time.Time) *EtapaAtivaInfo {
	todas := true
	for i := range etapas {
		if etapas[i].Status != model.EtapaConcluida {
			todas = false
			break
		}
	}
	if todas {
		return &EtapaAtivaInfo{Nome: rotuloTodasConcluidas, Status: model.EtapaConcluida, TodasConcluidas: true}
	}

	for i := range etapas {
		e := &etapas[i]
		if e.Status != model.EtapaPendente && e.Status != model.EtapaEmAndamento {
			continue
		}
		urgente := e.Status == model.EtapaEmAndamento &&
			(Atrasada(e.Prazo, agora) || PrazoProximo(e.Prazo, agora, JanelaPrazoProximoDias))
		return &EtapaAtivaInfo{Nome: e.Nome, Status: e.Status, Urgente: urgente}
	}
	return nil
}

// diasDeAtraso returns how many days late a deadline is, rounding any
// started day up.
func diasDeAtraso(prazo time.Time, agora time.Time) int {
	return int(math.Ceil(agora.Sub(prazo).Hours() / 24))
}
