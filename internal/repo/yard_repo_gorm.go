package repo

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"motomap-api/internal/domain"
)

type YardRepo struct{ db *gorm.DB }

func NewYardRepo(db *gorm.DB) *YardRepo { return &YardRepo{db: db} }

// List orders by id ascending so page boundaries stay stable between calls.
func (r *YardRepo) List(offset, limit int) ([]domain.Yard, int64, error) {
	var total int64
	if err := r.db.Model(&domain.Yard{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var yards []domain.Yard
	if err := r.db.Order("id ASC").Offset(offset).Limit(limit).Find(&yards).Error; err != nil {
		return nil, 0, err
	}
	return yards, total, nil
}

func (r *YardRepo) FindByID(id uint) (*domain.Yard, error) {
	var y domain.Yard
	err := r.db.First(&y, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &y, nil
}

func (r *YardRepo) FindByIDWithReaders(id uint) (*domain.Yard, error) {
	var y domain.Yard
	err := r.db.Preload("Readers").First(&y, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &y, nil
}

func (r *YardRepo) Exists(id uint) (bool, error) {
	var n int64
	err := r.db.Model(&domain.Yard{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *YardRepo) ExistsByNameAddress(name, address string, excludeID uint) (bool, error) {
	q := r.db.Model(&domain.Yard{}).Where("name = ? AND address = ?", name, address)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *YardRepo) DependentCounts(id uint) (int64, int64, error) {
	var readers, motorcycles int64
	if err := r.db.Model(&domain.Reader{}).Where("yard_id = ?", id).Count(&readers).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.Model(&domain.Motorcycle{}).Where("yard_id = ?", id).Count(&motorcycles).Error; err != nil {
		return 0, 0, err
	}
	return readers, motorcycles, nil
}

func (r *YardRepo) Create(y *domain.Yard) error {
	return r.db.Omit(clause.Associations).Create(y).Error
}

func (r *YardRepo) Update(y *domain.Yard) error {
	return r.db.Omit(clause.Associations).Save(y).Error
}

func (r *YardRepo) Delete(id uint) error {
	return r.db.Delete(&domain.Yard{}, "id = ?", id).Error
}
