package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/dto"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/model"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubLogs records actions without touching any repository.
type stubLogs struct {
	registros []string
}

func (s *stubLogs) Registrar(_ context.Context, _ *uuid.UUID, acao, entidade string, _ *uuid.UUID, _ string) {
	s.registros = append(s.registros, acao+":"+entidade)
}

func (s *stubLogs) Listar(_ context.Context, _, _ int) (*dto.LogListResponse, error) {
	return &dto.LogListResponse{}, nil
}

var _ LogService = (*stubLogs)(nil)

// stubLancamentoRepo is an in-memory LancamentoRepository.
type stubLancamentoRepo struct {
	entries []model.Lancamento
}

func (r *stubLancamentoRepo) CreateTx(_ *gorm.DB, l *model.Lancamento) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.entries = append(r.entries, *l)
	return nil
}

func (r *stubLancamentoRepo) ListByReferencia(_ context.Context, referenciaID uuid.UUID) ([]model.Lancamento, error) {
	var out []model.Lancamento
	for _, l := range r.entries {
		if l.ReferenciaID == referenciaID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubLancamentoRepo) ListByColecao(_ context.Context, _ uuid.UUID) ([]model.Lancamento, error) {
	return r.entries, nil
}

func (r *stubLancamentoRepo) ListDesde(_ context.Context, desde time.Time) ([]model.Lancamento, error) {
	var out []model.Lancamento
	for _, l := range r.entries {
		if !l.DataLancamento.Before(desde) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubLancamentoRepo) SumByReferenciaTx(_ *gorm.DB, referenciaID uuid.UUID) (int, error) {
	soma := 0
	for _, l := range r.entries {
		if l.ReferenciaID == referenciaID {
			soma += l.Quantidade
		}
	}
	return soma, nil
}

func (r *stubLancamentoRepo) DeleteByReferenciaTx(_ *gorm.DB, referenciaID uuid.UUID) error {
	kept := r.entries[:0]
	for _, l := range r.entries {
		if l.ReferenciaID != referenciaID {
			kept = append(kept, l)
		}
	}
	r.entries = kept
	return nil
}

var _ repository.LancamentoRepository = (*stubLancamentoRepo)(nil)

// stubReferenciaRepo is an in-memory ReferenciaRepository backed by the
// same entry slice as the lancamento stub, so reconciliation sees a
// consistent picture.
type stubReferenciaRepo struct {
	refs map[uuid.UUID]*model.Referencia
	lanc *stubLancamentoRepo
	top  []model.Referencia
}

func newStubReferenciaRepo(lanc *stubLancamentoRepo) *stubReferenciaRepo {
	return &stubReferenciaRepo{refs: make(map[uuid.UUID]*model.Referencia), lanc: lanc}
}

func (r *stubReferenciaRepo) Create(_ context.Context, ref *model.Referencia) error {
	if ref.ID == uuid.Nil {
		ref.ID = uuid.New()
	}
	r.refs[ref.ID] = ref
	return nil
}

func (r *stubReferenciaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Referencia, error) {
	ref, ok := r.refs[id]
	if !ok {
		return nil, errors.New("not found")
	}
	// GORM hands back a detached row; mirror that so a later increment
	// never mutates a struct the caller already holds.
	copia := *ref
	return &copia, nil
}

func (r *stubReferenciaRepo) ListByColecao(_ context.Context, colecaoID uuid.UUID) ([]model.Referencia, error) {
	var out []model.Referencia
	for _, ref := range r.refs {
		if ref.ColecaoID == colecaoID {
			out = append(out, *ref)
		}
	}
	return out, nil
}

func (r *stubReferenciaRepo) List(_ context.Context, _, _ int) ([]model.Referencia, int64, error) {
	var out []model.Referencia
	for _, ref := range r.refs {
		out = append(out, *ref)
	}
	return out, int64(len(out)), nil
}

func (r *stubReferenciaRepo) Update(_ context.Context, ref *model.Referencia) error {
	r.refs[ref.ID] = ref
	return nil
}

func (r *stubReferenciaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.refs, id)
	return nil
}

func (r *stubReferenciaRepo) TopPorProduzido(_ context.Context, limit int) ([]model.Referencia, error) {
	if len(r.top) > limit {
		return r.top[:limit], nil
	}
	return r.top, nil
}

func (r *stubReferenciaRepo) IncrementarProduzidoTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	ref, ok := r.refs[id]
	if !ok {
		return errors.New("not found")
	}
	ref.QuantidadeProduzida += delta
	return nil
}

func (r *stubReferenciaRepo) DefinirProduzidoTx(_ *gorm.DB, id uuid.UUID, valor int) error {
	ref, ok := r.refs[id]
	if !ok {
		return errors.New("not found")
	}
	ref.QuantidadeProduzida = valor
	return nil
}

func (r *stubReferenciaRepo) SumLancamentos(_ context.Context, id uuid.UUID) (int, error) {
	return r.lanc.SumByReferenciaTx(nil, id)
}

func (r *stubReferenciaRepo) DB() *gorm.DB { return nil }

var _ repository.ReferenciaRepository = (*stubReferenciaRepo)(nil)

// stubEtapaRepo is an in-memory EtapaRepository.
type stubEtapaRepo struct {
	etapas []model.Etapa
}

func (r *stubEtapaRepo) Create(_ context.Context, e *model.Etapa) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.etapas = append(r.etapas, *e)
	return nil
}

func (r *stubEtapaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Etapa, error) {
	for i := range r.etapas {
		if r.etapas[i].ID == id {
			return &r.etapas[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubEtapaRepo) ListByReferencia(_ context.Context, referenciaID uuid.UUID) ([]model.Etapa, error) {
	var out []model.Etapa
	for _, e := range r.etapas {
		if e.ReferenciaID == referenciaID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubEtapaRepo) Update(_ context.Context, e *model.Etapa) error {
	for i := range r.etapas {
		if r.etapas[i].ID == e.ID {
			r.etapas[i] = *e
			return nil
		}
	}
	return errors.New("not found")
}

func (r *stubEtapaRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.etapas {
		if r.etapas[i].ID == id {
			r.etapas = append(r.etapas[:i], r.etapas[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubEtapaRepo) CountByReferencia(_ context.Context, referenciaID uuid.UUID) (int64, error) {
	var count int64
	for _, e := range r.etapas {
		if e.ReferenciaID == referenciaID {
			count++
		}
	}
	return count, nil
}

func (r *stubEtapaRepo) ListAtrasadas(_ context.Context, agora time.Time) ([]model.Etapa, error) {
	var out []model.Etapa
	for _, e := range r.etapas {
		if e.Status == model.EtapaConcluida {
			continue
		}
		if e.Prazo != nil && e.Prazo.Before(agora) {
			out = append(out, e)
		}
	}
	return out, nil
}

var _ repository.EtapaRepository = (*stubEtapaRepo)(nil)

// ── Fixtures ──────────────────────────────────────────────────────────────────

func buildProducaoSvc() (*producaoService, *stubReferenciaRepo, *stubEtapaRepo, *stubLancamentoRepo, *stubLogs) {
	lancRep := &stubLancamentoRepo{}
	refRep := newStubReferenciaRepo(lancRep)
	etapaRep := &stubEtapaRepo{}
	logs := &stubLogs{}
	svc := NewProducaoService(refRep, etapaRep, lancRep, logs).(*producaoService)
	return svc, refRep, etapaRep, lancRep, logs
}

func seedReferencia(refRep *stubReferenciaRepo, produzido int) *model.Referencia {
	ref := &model.Referencia{
		ID:                  uuid.New(),
		ColecaoID:           uuid.New(),
		Codigo:              "REF-001",
		Nome:                "Vestido Midi",
		Status:              model.ReferenciaNormal,
		QuantidadeProduzida: produzido,
		QuantidadePrevista:  100,
	}
	refRep.refs[ref.ID] = ref
	return ref
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRegistrarLancamentoIncrementaTotal(t *testing.T) {
	svc, refRep, _, lancRep, logs := buildProducaoSvc()
	ref := seedReferencia(refRep, 10)

	resp, err := svc.RegistrarLancamento(context.Background(), nil, dto.RegistrarLancamentoRequest{
		ReferenciaID:   ref.ID.String(),
		Quantidade:     5,
		DataLancamento: time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, 15, resp.TotalReferencia)
	assert.Equal(t, 15, refRep.refs[ref.ID].QuantidadeProduzida)
	assert.Len(t, lancRep.entries, 1)
	assert.Contains(t, logs.registros, "criar:lancamento")
}

func TestRegistrarLancamentoTotalAcumulaEntreLancamentos(t *testing.T) {
	svc, refRep, _, _, _ := buildProducaoSvc()
	ref := seedReferencia(refRep, 10)

	esperados := []int{15, 22, 30}
	for i, q := range []int{5, 7, 8} {
		resp, err := svc.RegistrarLancamento(context.Background(), nil, dto.RegistrarLancamentoRequest{
			ReferenciaID:   ref.ID.String(),
			Quantidade:     q,
			DataLancamento: time.Now(),
		})
		require.NoError(t, err)
		assert.Equal(t, esperados[i], resp.TotalReferencia)
	}
	assert.Equal(t, 30, refRep.refs[ref.ID].QuantidadeProduzida)
}

func TestRegistrarLancamentoColecaoDesabilitada(t *testing.T) {
	svc, refRep, _, _, _ := buildProducaoSvc()
	ref := seedReferencia(refRep, 0)
	ref.Colecao = &model.Colecao{Status: model.ColecaoDesabilitada}

	_, err := svc.RegistrarLancamento(context.Background(), nil, dto.RegistrarLancamentoRequest{
		ReferenciaID:   ref.ID.String(),
		Quantidade:     5,
		DataLancamento: time.Now(),
	})
	require.Error(t, err)
	assert.Equal(t, 0, refRep.refs[ref.ID].QuantidadeProduzida)
}

func TestLimparLancamentosZeraTotal(t *testing.T) {
	svc, refRep, _, lancRep, _ := buildProducaoSvc()
	ref := seedReferencia(refRep, 0)

	for _, q := range []int{10, 20} {
		_, err := svc.RegistrarLancamento(context.Background(), nil, dto.RegistrarLancamentoRequest{
			ReferenciaID:   ref.ID.String(),
			Quantidade:     q,
			DataLancamento: time.Now(),
		})
		require.NoError(t, err)
	}
	require.Equal(t, 30, refRep.refs[ref.ID].QuantidadeProduzida)

	require.NoError(t, svc.LimparLancamentos(context.Background(), nil, ref.ID))

	assert.Empty(t, lancRep.entries)
	assert.Equal(t, 0, refRep.refs[ref.ID].QuantidadeProduzida)
}

func TestReconciliarQuantidadeCorrigeDivergencia(t *testing.T) {
	svc, refRep, _, lancRep, logs := buildProducaoSvc()
	ref := seedReferencia(refRep, 50)
	lancRep.entries = append(lancRep.entries, model.Lancamento{
		ID: uuid.New(), ReferenciaID: ref.ID, Quantidade: 40, DataLancamento: time.Now(),
	})

	resp, err := svc.ReconciliarQuantidade(context.Background(), nil, ref.ID)
	require.NoError(t, err)

	assert.Equal(t, 50, resp.Anterior)
	assert.Equal(t, 40, resp.Recalculado)
	assert.Equal(t, -10, resp.Divergencia)
	assert.True(t, resp.Corrigido)
	assert.Equal(t, 40, refRep.refs[ref.ID].QuantidadeProduzida)
	assert.Contains(t, logs.registros, "reconciliar:referencia")
}

func TestReconciliarQuantidadeSemDivergencia(t *testing.T) {
	svc, refRep, _, lancRep, logs := buildProducaoSvc()
	ref := seedReferencia(refRep, 40)
	lancRep.entries = append(lancRep.entries, model.Lancamento{
		ID: uuid.New(), ReferenciaID: ref.ID, Quantidade: 40, DataLancamento: time.Now(),
	})

	resp, err := svc.ReconciliarQuantidade(context.Background(), nil, ref.ID)
	require.NoError(t, err)

	assert.Zero(t, resp.Divergencia)
	assert.False(t, resp.Corrigido)
	assert.NotContains(t, logs.registros, "reconciliar:referencia")
}

func TestCriarEtapaComecaPendente(t *testing.T) {
	svc, refRep, etapaRep, _, _ := buildProducaoSvc()
	ref := seedReferencia(refRep, 0)
	prazo := time.Now().AddDate(0, 0, 10)

	resp, err := svc.CriarEtapa(context.Background(), nil, dto.CriarEtapaRequest{
		ReferenciaID: ref.ID.String(),
		Nome:         "Corte",
		Prazo:        &prazo,
	})
	require.NoError(t, err)

	assert.Equal(t, model.EtapaPendente, resp.Status)
	assert.Len(t, etapaRep.etapas, 1)
}
