package repository

import (
	"context"

	"github.com/amirclear/shelf-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DetectionRepository stores and retrieves detection runs. Runs are always
// scoped to their owning user.
type DetectionRepository interface {
	Create(ctx context.Context, d *model.DetectionRun) error
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*model.DetectionRun, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.DetectionRun, int64, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type detectionRepo struct{ db *gorm.DB }

func NewDetectionRepository(db *gorm.DB) DetectionRepository { return &detectionRepo{db: db} }

func (r *detectionRepo) Create(ctx context.Context, d *model.DetectionRun) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *detectionRepo) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*model.DetectionRun, error) {
	var d model.DetectionRun
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&d).Error
	return &d, err
}

func (r *detectionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.DetectionRun, int64, error) {
	var runs []model.DetectionRun
	var total int64
	q := r.db.WithContext(ctx).Model(&model.DetectionRun{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Find(&runs).Error
	return runs, total, err
}

func (r *detectionRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.DetectionRun{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
