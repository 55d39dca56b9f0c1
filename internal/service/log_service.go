package service

import (
	"context"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/dto"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/model"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type LogService interface {
	// Registrar is best-effort: a failed write is logged and swallowed so
	// the primary operation never fails because of auditing.
	Registrar(ctx context.Context, usuarioID *uuid.UUID, acao, entidade string, entidadeID *uuid.UUID, descricao string)
	Listar(ctx context.Context, page, limit int) (*dto.LogListResponse, error)
}

type logService struct {
	repo repository.LogRepository
}

func NewLogService(repo repository.LogRepository) LogService {
	return &logService{repo: repo}
}

func (s *logService) Registrar(ctx context.Context, usuarioID *uuid.UUID, acao, entidade string, entidadeID *uuid.UUID, descricao string) {
	entry := &model.LogAtividade{
		UsuarioID:  usuarioID,
		Acao:       acao,
		Entidade:   entidade,
		EntidadeID: entidadeID,
		Descricao:  descricao,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		log.Warn().Err(err).
			Str("acao", acao).
			Str("entidade", entidade).
			Msg("falha ao gravar log de atividade")
	}
}

func (s *logService) Listar(ctx context.Context, page, limit int) (*dto.LogListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	logs, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LogAtividadeResponse, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		usuario := ""
		if l.Usuario != nil {
			usuario = l.Usuario.Nome
		}
		var detalhes *string
		if l.Descricao != "" {
			d := l.Descricao
			detalhes = &d
		}
		items = append(items, dto.LogAtividadeResponse{
			ID:       l.ID.String(),
			Usuario:  usuario,
			Acao:     l.Acao,
			Entidade: l.Entidade,
			Detalhes: detalhes,
			CriadoEm: l.CreatedAt,
		})
	}
	return &dto.LogListResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}
