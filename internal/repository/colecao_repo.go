package repository

import (
	"context"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ColecaoRepository defines the data access contract for collections.
// Services depend on this interface, not on the concrete GORM
// implementation, enabling clean unit testing via in-memory fakes.
type ColecaoRepository interface {
	Create(ctx context.Context, c *model.Colecao) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Colecao, error)
	List(ctx context.Context, incluirDesabilitadas bool) ([]model.Colecao, error)
	// ListAtivas returns non-disabled collections with references (and their
	// stages in creation order) preloaded — the snapshot every aggregate
	// and the daily report are computed from.
	ListAtivas(ctx context.Context) ([]model.Colecao, error)
	Update(ctx context.Context, c *model.Colecao) error
	Desabilitar(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountReferencias(ctx context.Context, id uuid.UUID) (int64, error)
}

type colecaoRepo struct{ db *gorm.DB }

func NewColecaoRepository(db *gorm.DB) ColecaoRepository { return &colecaoRepo{db: db} }

func (r *colecaoRepo) Create(ctx context.Context, c *model.Colecao) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *colecaoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Colecao, error) {
	var c model.Colecao
	err := r.db.WithContext(ctx).
		Preload("Referencias").
		Preload("Referencias.Etapas", etapasEmOrdemDeCriacao).
		First(&c, id).Error
	return &c, err
}

func (r *colecaoRepo) List(ctx context.Context, incluirDesabilitadas bool) ([]model.Colecao, error) {
	var colecoes []model.Colecao
	q := r.db.WithContext(ctx).Model(&model.Colecao{})
	if !incluirDesabilitadas {
		q = q.Where("status <> ?", model.ColecaoDesabilitada)
	}
	err := q.Order("created_at DESC").Find(&colecoes).Error
	return colecoes, err
}

func (r *colecaoRepo) ListAtivas(ctx context.Context) ([]model.Colecao, error) {
	var colecoes []model.Colecao
	err := r.db.WithContext(ctx).
		Where("status <> ?", model.ColecaoDesabilitada).
		Preload("Referencias").
		Preload("Referencias.Etapas", etapasEmOrdemDeCriacao).
		Order("created_at ASC").
		Find(&colecoes).Error
	return colecoes, err
}

func (r *colecaoRepo) Update(ctx context.Context, c *model.Colecao) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *colecaoRepo) Desabilitar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Colecao{}).
		Where("id = ?", id).
		Update("status", model.ColecaoDesabilitada).Error
}

func (r *colecaoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Colecao{}, id).Error
}

func (r *colecaoRepo) CountReferencias(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Referencia{}).
		Where("colecao_id = ?", id).Count(&count).Error
	return count, err
}

// etapasEmOrdemDeCriacao keeps every preloaded stage list in creation
// order — the active-stage rule depends on it.
func etapasEmOrdemDeCriacao(db *gorm.DB) *gorm.DB {
	return db.Order("etapas.created_at ASC")
}
