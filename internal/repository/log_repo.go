package repository

import (
	"context"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/model"
	"gorm.io/gorm"
)

type LogRepository interface {
	Create(ctx context.Context, l *model.LogAtividade) error
	List(ctx context.Context, page, limit int) ([]model.LogAtividade, int64, error)
}

type logRepo struct{ db *gorm.DB }

func NewLogRepository(db *gorm.DB) LogRepository { return &logRepo{db: db} }

func (r *logRepo) Create(ctx context.Context, l *model.LogAtividade) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *logRepo) List(ctx context.Context, page, limit int) ([]model.LogAtividade, int64, error) {
	var logs []model.LogAtividade
	var total int64

	q := r.db.WithContext(ctx).Model(&model.LogAtividade{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := q.Preload("Usuario").Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error
	return logs, total, err
}
