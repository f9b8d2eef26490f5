package repo

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"motomap-api/internal/domain"
)

type MotorcycleRepo struct{ db *gorm.DB }

func NewMotorcycleRepo(db *gorm.DB) *MotorcycleRepo { return &MotorcycleRepo{db: db} }

func (r *MotorcycleRepo) List(offset, limit int) ([]domain.Motorcycle, int64, error) {
	var total int64
	if err := r.db.Model(&domain.Motorcycle{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var motos []domain.Motorcycle
	if err := r.db.Order("id ASC").Offset(offset).Limit(limit).Find(&motos).Error; err != nil {
		return nil, 0, err
	}
	return motos, total, nil
}

func (r *MotorcycleRepo) FindByID(id uint) (*domain.Motorcycle, error) {
	var m domain.Motorcycle
	err := r.db.First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MotorcycleRepo) FindByTag(tagID string) (*domain.Motorcycle, error) {
	var m domain.Motorcycle
	err := r.db.First(&m, "tag_id = ?", tagID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MotorcycleRepo) ExistsByTag(tagID string, excludeID uint) (bool, error) {
	q := r.db.Model(&domain.Motorcycle{}).Where("tag_id = ?", tagID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

// ClearLastSeenReader nulls the last-seen reference on every motorcycle
// pointing at the reader, so deleting a reader never strands the column.
func (r *MotorcycleRepo) ClearLastSeenReader(readerID uint) error {
	return r.db.Model(&domain.Motorcycle{}).
		Where("last_seen_reader_id = ?", readerID).
		Update("last_seen_reader_id", nil).Error
}

func (r *MotorcycleRepo) Create(m *domain.Motorcycle) error {
	return r.db.Omit(clause.Associations).Create(m).Error
}

func (r *MotorcycleRepo) Update(m *domain.Motorcycle) error {
	return r.db.Omit(clause.Associations).Save(m).Error
}

func (r *MotorcycleRepo) Delete(id uint) error {
	return r.db.Delete(&domain.Motorcycle{}, "id = ?", id).Error
}
