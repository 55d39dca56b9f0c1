package repository

import (
	"context"
	"time"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LancamentoRepository interface {
	// CreateTx inserts an entry inside an open transaction. The caller is
	// responsible for incrementing the parent's running total in the SAME
	// transaction.
	CreateTx(tx *gorm.DB, l *model.Lancamento) error
	ListByReferencia(ctx context.Context, referenciaID uuid.UUID) ([]model.Lancamento, error)
	ListByColecao(ctx context.Context, colecaoID uuid.UUID) ([]model.Lancamento, error)
	// ListDesde fetches entries of active collections dated on or after
	// desde, across all references — input of the daily series.
	ListDesde(ctx context.Context, desde time.Time) ([]model.Lancamento, error)
	SumByReferenciaTx(tx *gorm.DB, referenciaID uuid.UUID) (int, error)
	DeleteByReferenciaTx(tx *gorm.DB, referenciaID uuid.UUID) error
}

type lancamentoRepo struct{ db *gorm.DB }

func NewLancamentoRepository(db *gorm.DB) LancamentoRepository { return &lancamentoRepo{db: db} }

func (r *lancamentoRepo) CreateTx(tx *gorm.DB, l *model.Lancamento) error {
	return tx.Create(l).Error
}

func (r *lancamentoRepo) ListByReferencia(ctx context.Context, referenciaID uuid.UUID) ([]model.Lancamento, error) {
	var ls []model.Lancamento
	err := r.db.WithContext(ctx).
		Where("referencia_id = ?", referenciaID).
		Order("data_lancamento ASC").
		Find(&ls).Error
	return ls, err
}

func (r *lancamentoRepo) ListByColecao(ctx context.Context, colecaoID uuid.UUID) ([]model.Lancamento, error) {
	var ls []model.Lancamento
	err := r.db.WithContext(ctx).
		Joins("JOIN referencias ON referencias.id = lancamentos.referencia_id").
		Where("referencias.colecao_id = ?", colecaoID).
		Order("lancamentos.data_lancamento ASC").
		Find(&ls).Error
	return ls, err
}

func (r *lancamentoRepo) ListDesde(ctx context.Context, desde time.Time) ([]model.Lancamento, error) {
	var ls []model.Lancamento
	err := r.db.WithContext(ctx).
		Joins("JOIN referencias ON referencias.id = lancamentos.referencia_id").
		Joins("JOIN colecoes ON colecoes.id = referencias.colecao_id AND colecoes.status <> ?", model.ColecaoDesabilitada).
		Where("lancamentos.data_lancamento >= ?", desde).
		Order("lancamentos.data_lancamento ASC").
		Find(&ls).Error
	return ls, err
}

func (r *lancamentoRepo) SumByReferenciaTx(tx *gorm.DB, referenciaID uuid.UUID) (int, error) {
	var soma int
	err := tx.Model(&model.Lancamento{}).
		Where("referencia_id = ?", referenciaID).
		Select("COALESCE(SUM(quantidade), 0)").
		Scan(&soma).Error
	return soma, err
}

func (r *lancamentoRepo) DeleteByReferenciaTx(tx *gorm.DB, referenciaID uuid.UUID) error {
	return tx.Where("referencia_id = ?", referenciaID).Delete(&model.Lancamento{}).Error
}
