package service

import (
	"context"
	"errors"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/analytics"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/dto"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/model"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/repository"

	"github.com/google/uuid"
)

type ColecaoService interface {
	Criar(ctx context.Context, usuarioID *uuid.UUID, req dto.CriarColecaoRequest) (*dto.ColecaoResponse, error)
	Buscar(ctx context.Context, id uuid.UUID) (*dto.ColecaoResponse, error)
	Listar(ctx context.Context, incluirDesabilitadas bool) ([]dto.ColecaoResponse, error)
	Atualizar(ctx context.Context, usuarioID *uuid.UUID, id uuid.UUID, req dto.AtualizarColecaoRequest) (*dto.ColecaoResponse, error)
	Desabilitar(ctx context.Context, usuarioID *uuid.UUID, id uuid.UUID) error
	Excluir(ctx context.Context, usuarioID *uuid.UUID, id uuid.UUID) error
}

type colecaoService struct {
	repo repository.ColecaoRepository
	logs LogService
}

func NewColecaoService(repo repository.ColecaoRepository, logs LogService) ColecaoService {
	return &colecaoService{repo: repo, logs: logs}
}

func (s *colecaoService) Criar(ctx context.Context, usuarioID *uuid.UUID, req dto.CriarColecaoRequest) (*dto.ColecaoResponse, error) {
	c := &model.Colecao{
		Nome:           req.Nome,
		Codigo:         req.Codigo,
		DataInicio:     req.DataInicio,
		DataFim:        req.DataFim,
		Status:         model.ColecaoNormal,
		MetaQuantidade: req.MetaQuantidade,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logs.Registrar(ctx, usuarioID, "criar", "colecao", &c.ID, "Coleção "+c.Nome+" criada")
	resp := colecaoToResponse(c)
	return &resp, nil
}

func (s *colecaoService) Buscar(ctx context.Context, id uuid.UUID) (*dto.ColecaoResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("coleção não encontrada")
	}
	resp := colecaoToResponse(c)
	return &resp, nil
}

func (s *colecaoService) Listar(ctx context.Context, incluirDesabilitadas bool) ([]dto.ColecaoResponse, error) {
	colecoes, err := s.repo.List(ctx, incluirDesabilitadas)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ColecaoResponse, len(colecoes))
	for i := range colecoes {
		resp[i] = colecaoToResponse(&colecoes[i])
	}
	return resp, nil
}

func (s *colecaoService) Atualizar(ctx context.Context, usuarioID *uuid.UUID, id uuid.UUID, req dto.AtualizarColecaoRequest) (*dto.ColecaoResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("coleção não encontrada")
	}
	if req.Nome != "" {
		c.Nome = req.Nome
	}
	if req.DataInicio != nil {
		c.DataInicio = req.DataInicio
	}
	if req.DataFim != nil {
		c.DataFim = req.DataFim
	}
	if req.Status != "" {
		c.Status = req.Status
	}
	if req.MetaQuantidade != nil {
		c.MetaQuantidade = *req.MetaQuantidade
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.logs.Registrar(ctx, usuarioID, "atualizar", "colecao", &c.ID, "Coleção "+c.Nome+" atualizada")
	resp := colecaoToResponse(c)
	return &resp, nil
}

// Desabilitar takes a collection out of every aggregate and report
// without losing its history. This is the preferred removal path.
func (s *colecaoService) Desabilitar(ctx context.Context, usuarioID *uuid.UUID, id uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("coleção não encontrada")
	}
	if err := s.repo.Desabilitar(ctx, id); err != nil {
		return err
	}
	s.logs.Registrar(ctx, usuarioID, "desabilitar", "colecao", &id, "Coleção "+c.Nome+" desabilitada")
	return nil
}

// Excluir is a hard delete, only allowed for empty collections.
func (s *colecaoService) Excluir(ctx context.Context, usuarioID *uuid.UUID, id uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("coleção não encontrada")
	}
	count, err := s.repo.CountReferencias(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("existem referências vinculadas; desabilite a coleção em vez de excluí-la")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logs.Registrar(ctx, usuarioID, "excluir", "colecao", &id, "Coleção "+c.Nome+" excluída")
	return nil
}

func colecaoToResponse(c *model.Colecao) dto.ColecaoResponse {
	prog := analytics.ProgressoColecao(c)
	return dto.ColecaoResponse{
		ID:               c.ID.String(),
		Nome:             c.Nome,
		Codigo:           c.Codigo,
		DataInicio:       c.DataInicio,
		DataFim:          c.DataFim,
		Status:           c.Status,
		MetaQuantidade:   c.MetaQuantidade,
		Produzido:        prog.Produzido,
		Previsto:         prog.Previsto,
		Percentual:       prog.Percentual,
		TotalReferencias: prog.TotalReferencias,
	}
}
