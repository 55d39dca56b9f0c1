package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/dto"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/model"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProducaoService interface {
	// Etapas
	CriarEtapa(ctx context.Context, usuarioID *uuid.UUID, req dto.CriarEtapaRequest) (*dto.EtapaResponse, error)
	AtualizarEtapa(ctx context.Context, usuarioID *uuid.UUID, id uuid.UUID, req dto.AtualizarEtapaRequest) (*dto.EtapaResponse, error)
	ExcluirEtapa(ctx context.Context, usuarioID *uuid.UUID, id uuid.UUID) error
	ListarEtapas(ctx context.Context, referenciaID uuid.UUID) ([]dto.EtapaResponse, error)

	// Lançamentos
	RegistrarLancamento(ctx context.Context, usuarioID *uuid.UUID, req dto.RegistrarLancamentoRequest) (*dto.LancamentoResponse, error)
	ListarLancamentos(ctx context.Context, referenciaID uuid.UUID) ([]dto.LancamentoResponse, error)
	LimparLancamentos(ctx context.Context, usuarioID *uuid.UUID, referenciaID uuid.UUID) error

	// ReconciliarQuantidade audits the cached running total of a
	// reference against the sum of its entries and fixes any drift.
	ReconciliarQuantidade(ctx context.Context, usuarioID *uuid.UUID, referenciaID uuid.UUID) (*dto.ReconciliacaoResponse, error)
}

type producaoService struct {
	refRep   repository.ReferenciaRepository
	etapaRep repository.EtapaRepository
	lancRep  repository.LancamentoRepository
	logs     LogService
	agora    func() time.Time
}

func NewProducaoService(
	refRep repository.ReferenciaRepository,
	etapaRep repository.EtapaRepository,
	lancRep repository.LancamentoRepository,
	logs LogService,
) ProducaoService {
	return &producaoService{
		refRep:   refRep,
		etapaRep: etapaRep,
		lancRep:  lancRep,
		logs:     logs,
		agora:    time.Now,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Etapas ───────────────────────────────────────────────────────────────────

func (s *producaoService) CriarEtapa(ctx context.Context, usuarioID *uuid.UUID, req dto.CriarEtapaRequest) (*dto.EtapaResponse, error) {
	refID, err := uuid.Parse(req.ReferenciaID)
	if err != nil {
		return nil, errors.New("referencia_id inválido")
	}
	if _, err := s.refRep.FindByID(ctx, refID); err != nil {
		return nil, errors.New("referência não encontrada")
	}
	e := &model.Etapa{
		ReferenciaID: refID,
		Nome:         req.Nome,
		Status:       model.EtapaPendente,
		DataInicio:   req.DataInicio,
		Prazo:        req.Prazo,
	}
	if err := s.etapaRep.Create(ctx, e); err != nil {
		return nil, err
	}
	s.logs.Registrar(ctx, usuarioID, "criar", "etapa", &e.ID, "Etapa "+e.Nome+" criada")
	resp := etapaToResponse(e, s.agora())
	return &resp, nil
}

func (s *producaoService) AtualizarEtapa(ctx context.Context, usuarioID *uuid.UUID, id uuid.UUID, req dto.AtualizarEtapaRequest) (*dto.EtapaResponse, error) {
	e, err := s.etapaRep.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("etapa não encontrada")
	}
	if req.Nome != "" {
		e.Nome = req.Nome
	}
	if req.Status != "" {
		e.Status = req.Status
	}
	if req.DataInicio != nil {
		e.DataInicio = req.DataInicio
	}
	if req.Prazo != nil {
		e.Prazo = req.Prazo
	}
	if err := s.etapaRep.Update(ctx, e); err != nil {
		return nil, err
	}
	s.logs.Registrar(ctx, usuarioID, "atualizar", "etapa", &e.ID, "Etapa "+e.Nome+" atualizada")
	resp := etapaToResponse(e, s.agora())
	return &resp, nil
}

func (s *producaoService) ExcluirEtapa(ctx context.Context, usuarioID *uuid.UUID, id uuid.UUID) error {
	e, err := s.etapaRep.FindByID(ctx, id)
	if err != nil {
		return errors.New("etapa não encontrada")
	}
	if err := s.etapaRep.Delete(ctx, id); err != nil {
		return err
	}
	s.logs.Registrar(ctx, usuarioID, "excluir", "etapa", &id, "Etapa "+e.Nome+" excluída")
	return nil
}

func (s *producaoService) ListarEtapas(ctx context.Context, referenciaID uuid.UUID) ([]dto.EtapaResponse, error) {
	etapas, err := s.etapaRep.ListByReferencia(ctx, referenciaID)
	if err != nil {
		return nil, err
	}
	agora := s.agora()
	resp := make([]dto.EtapaResponse, 0, len(etapas))
	for i := range etapas {
		resp = append(resp, etapaToResponse(&etapas[i], agora))
	}
	return resp, nil
}

// ── Lançamentos ──────────────────────────────────────────────────────────────

// RegistrarLancamento creates the entry and bumps the reference's running
// total in the SAME transaction. The cached total therefore never lags
// the entry log except through external writes, which the reconciliation
// operation exists to repair.
func (s *producaoService) RegistrarLancamento(ctx context.Context, usuarioID *uuid.UUID, req dto.RegistrarLancamentoRequest) (*dto.LancamentoResponse, error) {
	refID, err := uuid.Parse(req.ReferenciaID)
	if err != nil {
		return nil, errors.New("referencia_id inválido")
	}
	ref, err := s.refRep.FindByID(ctx, refID)
	if err != nil {
		return nil, errors.New("referência não encontrada")
	}
	if ref.Colecao != nil && ref.Colecao.Status == model.ColecaoDesabilitada {
		return nil, errors.New("coleção desabilitada não aceita lançamentos")
	}

	lanc := &model.Lancamento{
		ReferenciaID:   refID,
		Quantidade:     req.Quantidade,
		DataLancamento: req.DataLancamento,
		Status:         "normal",
		Observacoes:    req.Observacoes,
	}

	txErr := runTx(ctx, s.refRep.DB(), func(tx *gorm.DB) error {
		if err := s.lancRep.CreateTx(tx, lanc); err != nil {
			return err
		}
		return s.refRep.IncrementarProduzidoTx(tx, refID, req.Quantidade)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.logs.Registrar(ctx, usuarioID, "criar", "lancamento", &lanc.ID,
		fmt.Sprintf("Lançamento de %d peças na referência %s", req.Quantidade, ref.Codigo))

	// Re-read after the increment so the reported total also reflects
	// entries committed concurrently since the first read.
	total := ref.QuantidadeProduzida + req.Quantidade
	if atualizada, err := s.refRep.FindByID(ctx, refID); err == nil {
		total = atualizada.QuantidadeProduzida
	}

	return &dto.LancamentoResponse{
		ID:              lanc.ID.String(),
		ReferenciaID:    refID.String(),
		Quantidade:      lanc.Quantidade,
		DataLancamento:  lanc.DataLancamento,
		Status:          lanc.Status,
		Observacoes:     lanc.Observacoes,
		TotalReferencia: total,
	}, nil
}

func (s *producaoService) ListarLancamentos(ctx context.Context, referenciaID uuid.UUID) ([]dto.LancamentoResponse, error) {
	ls, err := s.lancRep.ListByReferencia(ctx, referenciaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.LancamentoResponse, 0, len(ls))
	for i := range ls {
		l := &ls[i]
		resp = append(resp, dto.LancamentoResponse{
			ID:             l.ID.String(),
			ReferenciaID:   l.ReferenciaID.String(),
			Quantidade:     l.Quantidade,
			DataLancamento: l.DataLancamento,
			Status:         l.Status,
			Observacoes:    l.Observacoes,
		})
	}
	return resp, nil
}

// LimparLancamentos wipes the whole entry log of a reference and deducts
// the wiped sum from the running total, atomically.
func (s *producaoService) LimparLancamentos(ctx context.Context, usuarioID *uuid.UUID, referenciaID uuid.UUID) error {
	ref, err := s.refRep.FindByID(ctx, referenciaID)
	if err != nil {
		return errors.New("referência não encontrada")
	}

	txErr := runTx(ctx, s.refRep.DB(), func(tx *gorm.DB) error {
		soma, err := s.lancRep.SumByReferenciaTx(tx, referenciaID)
		if err != nil {
			return err
		}
		if err := s.lancRep.DeleteByReferenciaTx(tx, referenciaID); err != nil {
			return err
		}
		return s.refRep.IncrementarProduzidoTx(tx, referenciaID, -soma)
	})
	if txErr != nil {
		return txErr
	}

	s.logs.Registrar(ctx, usuarioID, "excluir", "lancamento", &referenciaID,
		"Lançamentos da referência "+ref.Codigo+" removidos")
	return nil
}

// ── Reconciliação ────────────────────────────────────────────────────────────

func (s *producaoService) ReconciliarQuantidade(ctx context.Context, usuarioID *uuid.UUID, referenciaID uuid.UUID) (*dto.ReconciliacaoResponse, error) {
	ref, err := s.refRep.FindByID(ctx, referenciaID)
	if err != nil {
		return nil, errors.New("referência não encontrada")
	}

	recalculado, err := s.refRep.SumLancamentos(ctx, referenciaID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReconciliacaoResponse{
		ReferenciaID: referenciaID.String(),
		Anterior:     ref.QuantidadeProduzida,
		Recalculado:  recalculado,
		Divergencia:  recalculado - ref.QuantidadeProduzida,
	}
	if resp.Divergencia == 0 {
		return resp, nil
	}

	txErr := runTx(ctx, s.refRep.DB(), func(tx *gorm.DB) error {
		return s.refRep.DefinirProduzidoTx(tx, referenciaID, recalculado)
	})
	if txErr != nil {
		return nil, txErr
	}
	resp.Corrigido = true

	s.logs.Registrar(ctx, usuarioID, "reconciliar", "referencia", &referenciaID,
		fmt.Sprintf("Quantidade da referência %s corrigida de %d para %d", ref.Codigo, resp.Anterior, recalculado))
	return resp, nil
}
