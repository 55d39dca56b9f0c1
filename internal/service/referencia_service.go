package service

import (
	"context"
	"errors"
	"time"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/analytics"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/dto"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/model"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/repository"

	"github.com/google/uuid"
)

type ReferenciaService interface {
	Criar(ctx context.Context, usuarioID *uuid.UUID, req dto.CriarReferenciaRequest) (*dto.ReferenciaResponse, error)
	Buscar(ctx context.Context, id uuid.UUID) (*dto.ReferenciaResponse, error)
	ListarPorColecao(ctx context.Context, colecaoID uuid.UUID) ([]dto.ReferenciaResponse, error)
	Listar(ctx context.Context, page, limit int) (*dto.ReferenciaListResponse, error)
	Atualizar(ctx context.Context, usuarioID *uuid.UUID, id uuid.UUID, req dto.AtualizarReferenciaRequest) (*dto.ReferenciaResponse, error)
	Excluir(ctx context.Context, usuarioID *uuid.UUID, id uuid.UUID) error
}

type referenciaService struct {
	repo       repository.ReferenciaRepository
	colecaoRep repository.ColecaoRepository
	etapaRep   repository.EtapaRepository
	logs       LogService
	agora      func() time.Time
}

func NewReferenciaService(
	repo repository.ReferenciaRepository,
	colecaoRep repository.ColecaoRepository,
	etapaRep repository.EtapaRepository,
	logs LogService,
) ReferenciaService {
	return &referenciaService{
		repo:       repo,
		colecaoRep: colecaoRep,
		etapaRep:   etapaRep,
		logs:       logs,
		agora:      time.Now,
	}
}

func (s *referenciaService) Criar(ctx context.Context, usuarioID *uuid.UUID, req dto.CriarReferenciaRequest) (*dto.ReferenciaResponse, error) {
	colecaoID, err := uuid.Parse(req.ColecaoID)
	if err != nil {
		return nil, errors.New("colecao_id inválido")
	}
	if _, err := s.colecaoRep.FindByID(ctx, colecaoID); err != nil {
		return nil, errors.New("coleção não encontrada")
	}
	ref := &model.Referencia{
		ColecaoID:          colecaoID,
		Codigo:             req.Codigo,
		Nome:               req.Nome,
		Status:             model.ReferenciaNormal,
		QuantidadePrevista: req.QuantidadePrevista,
	}
	if err := s.repo.Create(ctx, ref); err != nil {
		return nil, err
	}
	s.logs.Registrar(ctx, usuarioID, "criar", "referencia", &ref.ID, "Referência "+ref.Codigo+" criada")
	resp := s.referenciaToResponse(ref)
	return &resp, nil
}

func (s *referenciaService) Buscar(ctx context.Context, id uuid.UUID) (*dto.ReferenciaResponse, error) {
	ref, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("referência não encontrada")
	}
	resp := s.referenciaToResponse(ref)
	return &resp, nil
}

func (s *referenciaService) ListarPorColecao(ctx context.Context, colecaoID uuid.UUID) ([]dto.ReferenciaResponse, error) {
	refs, err := s.repo.ListByColecao(ctx, colecaoID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ReferenciaResponse, len(refs))
	for i := range refs {
		resp[i] = s.referenciaToResponse(&refs[i])
	}
	return resp, nil
}

func (s *referenciaService) Listar(ctx context.Context, page, limit int) (*dto.ReferenciaListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	refs, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReferenciaResponse, 0, len(refs))
	for i := range refs {
		items = append(items, s.referenciaToResponse(&refs[i]))
	}
	return &dto.ReferenciaListResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *referenciaService) Atualizar(ctx context.Context, usuarioID *uuid.UUID, id uuid.UUID, req dto.AtualizarReferenciaRequest) (*dto.ReferenciaResponse, error) {
	ref, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("referência não encontrada")
	}
	if req.Nome != "" {
		ref.Nome = req.Nome
	}
	if req.Status != "" {
		ref.Status = req.Status
	}
	if req.QuantidadePrevista != nil {
		ref.QuantidadePrevista = *req.QuantidadePrevista
	}
	if err := s.repo.Update(ctx, ref); err != nil {
		return nil, err
	}
	s.logs.Registrar(ctx, usuarioID, "atualizar", "referencia", &ref.ID, "Referência "+ref.Codigo+" atualizada")
	resp := s.referenciaToResponse(ref)
	return &resp, nil
}

// Excluir refuses to delete a reference that still has production stages.
// Stages must be removed first so no schedule history disappears silently.
func (s *referenciaService) Excluir(ctx context.Context, usuarioID *uuid.UUID, id uuid.UUID) error {
	ref, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("referência não encontrada")
	}
	count, err := s.etapaRep.CountByReferencia(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("existem etapas de produção vinculadas")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logs.Registrar(ctx, usuarioID, "excluir", "referencia", &id, "Referência "+ref.Codigo+" excluída")
	return nil
}

func (s *referenciaService) referenciaToResponse(ref *model.Referencia) dto.ReferenciaResponse {
	agora := s.agora()
	resp := dto.ReferenciaResponse{
		ID:                  ref.ID.String(),
		ColecaoID:           ref.ColecaoID.String(),
		Codigo:              ref.Codigo,
		Nome:                ref.Nome,
		Status:              ref.Status,
		QuantidadeProduzida: ref.QuantidadeProduzida,
		QuantidadePrevista:  ref.QuantidadePrevista,
		Percentual:          analytics.Percentual(ref.QuantidadeProduzida, ref.QuantidadePrevista),
	}
	if len(ref.Etapas) > 0 {
		if info := analytics.EtapaAtiva(ref.Etapas, agora); info != nil {
			resp.EtapaAtiva = &dto.EtapaAtivaView{
				Nome:            info.Nome,
				Status:          info.Status,
				Urgente:         info.Urgente,
				TodasConcluidas: info.TodasConcluidas,
			}
		}
		resp.Etapas = make([]dto.EtapaResponse, 0, len(ref.Etapas))
		for i := range ref.Etapas {
			resp.Etapas = append(resp.Etapas, etapaToResponse(&ref.Etapas[i], agora))
		}
	}
	return resp
}

func etapaToResponse(e *model.Etapa, agora time.Time) dto.EtapaResponse {
	return dto.EtapaResponse{
		ID:           e.ID.String(),
		ReferenciaID: e.ReferenciaID.String(),
		Nome:         e.Nome,
		Status:       e.Status,
		DataInicio:   e.DataInicio,
		Prazo:        e.Prazo,
		Classe:       analytics.ClasseEtapa(e.Status, e.Prazo, agora),
	}
}
