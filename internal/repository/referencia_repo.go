package repository

import (
	"context"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReferenciaRepository interface {
	Create(ctx context.Context, ref *model.Referencia) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Referencia, error)
	ListByColecao(ctx context.Context, colecaoID uuid.UUID) ([]model.Referencia, error)
	List(ctx context.Context, page, limit int) ([]model.Referencia, int64, error)
	Update(ctx context.Context, ref *model.Referencia) error
	Delete(ctx context.Context, id uuid.UUID) error
	// TopPorProduzido feeds the ranking fallback when the daily series has
	// no data yet.
	TopPorProduzido(ctx context.Context, limit int) ([]model.Referencia, error)

	// Used inside transactions — callers must pass the tx instance.
	IncrementarProduzidoTx(tx *gorm.DB, id uuid.UUID, delta int) error
	DefinirProduzidoTx(tx *gorm.DB, id uuid.UUID, valor int) error

	// SumLancamentos recomputes the produced total from the entry log, for
	// reconciliation against the cached running total.
	SumLancamentos(ctx context.Context, id uuid.UUID) (int, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type referenciaRepo struct{ db *gorm.DB }

func NewReferenciaRepository(db *gorm.DB) ReferenciaRepository { return &referenciaRepo{db: db} }

func (r *referenciaRepo) Create(ctx context.Context, ref *model.Referencia) error {
	return r.db.WithContext(ctx).Create(ref).Error
}

func (r *referenciaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Referencia, error) {
	var ref model.Referencia
	err := r.db.WithContext(ctx).
		Preload("Colecao").
		Preload("Etapas", etapasEmOrdemDeCriacao).
		First(&ref, id).Error
	return &ref, err
}

func (r *referenciaRepo) ListByColecao(ctx context.Context, colecaoID uuid.UUID) ([]model.Referencia, error) {
	var refs []model.Referencia
	err := r.db.WithContext(ctx).
		Where("colecao_id = ?", colecaoID).
		Preload("Etapas", etapasEmOrdemDeCriacao).
		Order("codigo ASC").
		Find(&refs).Error
	return refs, err
}

func (r *referenciaRepo) List(ctx context.Context, page, limit int) ([]model.Referencia, int64, error) {
	var refs []model.Referencia
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Referencia{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := q.Preload("Colecao").Order("codigo ASC").Limit(limit).Offset(offset).Find(&refs).Error
	return refs, total, err
}

func (r *referenciaRepo) Update(ctx context.Context, ref *model.Referencia) error {
	return r.db.WithContext(ctx).Save(ref).Error
}

func (r *referenciaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Referencia{}, id).Error
}

func (r *referenciaRepo) TopPorProduzido(ctx context.Context, limit int) ([]model.Referencia, error) {
	var refs []model.Referencia
	err := r.db.WithContext(ctx).
		Joins("JOIN colecoes ON colecoes.id = referencias.colecao_id AND colecoes.status <> ?", model.ColecaoDesabilitada).
		Order("referencias.quantidade_produzida DESC").
		Limit(limit).
		Find(&refs).Error
	return refs, err
}

func (r *referenciaRepo) IncrementarProduzidoTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Referencia{}).Where("id = ?", id).
		Update("quantidade_produzida", gorm.Expr("quantidade_produzida + ?", delta)).Error
}

func (r *referenciaRepo) DefinirProduzidoTx(tx *gorm.DB, id uuid.UUID, valor int) error {
	return tx.Model(&model.Referencia{}).Where("id = ?", id).
		Update("quantidade_produzida", valor).Error
}

func (r *referenciaRepo) SumLancamentos(ctx context.Context, id uuid.UUID) (int, error) {
	var soma int
	err := r.db.WithContext(ctx).Model(&model.Lancamento{}).
		Where("referencia_id = ?", id).
		Select("COALESCE(SUM(quantidade), 0)").
		Scan(&soma).Error
	return soma, err
}

func (r *referenciaRepo) DB() *gorm.DB { return r.db }
