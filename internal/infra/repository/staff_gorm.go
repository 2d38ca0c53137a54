package repository

import (
	"context"

	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"

	"gorm.io/gorm"
)

type StaffGormRepository struct {
	db *gorm.DB
}

func NewStaffGormRepository(db *gorm.DB) *StaffGormRepository {
	return &StaffGormRepository{db: db}
}

func (r *StaffGormRepository) List(ctx context.Context) ([]model.Staff, error) {
	var staff []model.Staff
	if err := r.db.WithContext(ctx).Order("id asc").Find(&staff).Error; err != nil {
		return []model.Staff{}, err
	}
	return staff, nil
}

func (r *StaffGormRepository) Create(ctx context.Context, s model.Staff) (model.Staff, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.Staff{}, err
	}
	return s, nil
}
