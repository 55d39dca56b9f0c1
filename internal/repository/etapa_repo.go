package repository

import (
	"context"
	"time"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EtapaRepository interface {
	Create(ctx context.Context, e *model.Etapa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Etapa, error)
	// ListByReferencia returns the stages in creation order; callers must
	// not re-sort them.
	ListByReferencia(ctx context.Context, referenciaID uuid.UUID) ([]model.Etapa, error)
	Update(ctx context.Context, e *model.Etapa) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByReferencia(ctx context.Context, referenciaID uuid.UUID) (int64, error)
	// ListAtrasadas fetches open stages with a deadline before agora, for
	// the report listing and the alert ranking. Stages of disabled
	// collections are excluded at the query.
	ListAtrasadas(ctx context.Context, agora time.Time) ([]model.Etapa, error)
}

type etapaRepo struct{ db *gorm.DB }

func NewEtapaRepository(db *gorm.DB) EtapaRepository { return &etapaRepo{db: db} }

func (r *etapaRepo) Create(ctx context.Context, e *model.Etapa) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *etapaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Etapa, error) {
	var e model.Etapa
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *etapaRepo) ListByReferencia(ctx context.Context, referenciaID uuid.UUID) ([]model.Etapa, error) {
	var etapas []model.Etapa
	err := r.db.WithContext(ctx).
		Where("referencia_id = ?", referenciaID).
		Order("created_at ASC").
		Find(&etapas).Error
	return etapas, err
}

func (r *etapaRepo) Update(ctx context.Context, e *model.Etapa) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *etapaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Etapa{}, id).Error
}

func (r *etapaRepo) CountByReferencia(ctx context.Context, referenciaID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Etapa{}).
		Where("referencia_id = ?", referenciaID).Count(&count).Error
	return count, err
}

func (r *etapaRepo) ListAtrasadas(ctx context.Context, agora time.Time) ([]model.Etapa, error) {
	var etapas []model.Etapa
	err := r.db.WithContext(ctx).
		Joins("JOIN referencias ON referencias.id = etapas.referencia_id").
		Joins("JOIN colecoes ON colecoes.id = referencias.colecao_id AND colecoes.status <> ?", model.ColecaoDesabilitada).
		Where("etapas.status IN ?", []string{model.EtapaPendente, model.EtapaEmAndamento}).
		Where("etapas.prazo IS NOT NULL AND etapas.prazo < ?", agora).
		Preload("Referencia").
		Preload("Referencia.Colecao").
		Order("etapas.created_at ASC").
		Find(&etapas).Error
	return etapas, err
}
