package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/dto"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/model"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingLogRepo always fails, to prove audit writes never break the
// primary operation.
type failingLogRepo struct{}

func (r *failingLogRepo) Create(_ context.Context, _ *model.LogAtividade) error {
	return errors.New("db down")
}

func (r *failingLogRepo) List(_ context.Context, _, _ int) ([]model.LogAtividade, int64, error) {
	return nil, 0, errors.New("db down")
}

var _ repository.LogRepository = (*failingLogRepo)(nil)

func TestCriarColecaoComecaNormal(t *testing.T) {
	repo := &stubColecaoRepo{refCount: map[uuid.UUID]int64{}}
	svc := NewColecaoService(repo, &stubLogs{})

	resp, err := svc.Criar(context.Background(), nil, dto.CriarColecaoRequest{
		Nome:           "Inverno 2026",
		Codigo:         "INV26",
		MetaQuantidade: 500,
	})
	require.NoError(t, err)

	assert.Equal(t, model.ColecaoNormal, resp.Status)
	assert.Equal(t, 500, resp.MetaQuantidade)
	assert.Len(t, repo.colecoes, 1)
}

func TestExcluirColecaoComReferenciasBloqueado(t *testing.T) {
	id := uuid.New()
	repo := &stubColecaoRepo{
		colecoes: []model.Colecao{{ID: id, Nome: "Verão 2026", Status: model.ColecaoNormal}},
		refCount: map[uuid.UUID]int64{id: 3},
	}
	svc := NewColecaoService(repo, &stubLogs{})

	err := svc.Excluir(context.Background(), nil, id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "referências vinculadas")
	assert.Len(t, repo.colecoes, 1)
}

func TestDesabilitarColecao(t *testing.T) {
	id := uuid.New()
	repo := &stubColecaoRepo{
		colecoes: []model.Colecao{{ID: id, Nome: "Verão 2026", Status: model.ColecaoNormal}},
		refCount: map[uuid.UUID]int64{id: 3},
	}
	logs := &stubLogs{}
	svc := NewColecaoService(repo, logs)

	require.NoError(t, svc.Desabilitar(context.Background(), nil, id))

	assert.Equal(t, model.ColecaoDesabilitada, repo.colecoes[0].Status)
	assert.Contains(t, logs.registros, "desabilitar:colecao")
}

func TestFalhaDeLogNaoQuebraOperacao(t *testing.T) {
	repo := &stubColecaoRepo{refCount: map[uuid.UUID]int64{}}
	svc := NewColecaoService(repo, NewLogService(&failingLogRepo{}))

	_, err := svc.Criar(context.Background(), nil, dto.CriarColecaoRequest{
		Nome:   "Inverno 2026",
		Codigo: "INV26",
	})
	assert.NoError(t, err)
}

func TestExcluirReferenciaComEtapasBloqueado(t *testing.T) {
	lancRep := &stubLancamentoRepo{}
	refRep := newStubReferenciaRepo(lancRep)
	ref := seedReferencia(refRep, 0)
	etapaRep := &stubEtapaRepo{etapas: []model.Etapa{
		{ID: uuid.New(), ReferenciaID: ref.ID, Nome: "Corte", Status: model.EtapaPendente},
	}}
	colecaoRep := &stubColecaoRepo{refCount: map[uuid.UUID]int64{}}
	svc := NewReferenciaService(refRep, colecaoRep, etapaRep, &stubLogs{})

	err := svc.Excluir(context.Background(), nil, ref.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "etapas de produção vinculadas")
	assert.Contains(t, refRep.refs, ref.ID)
}
