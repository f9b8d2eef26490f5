package repo

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"motomap-api/internal/domain"
)

type ReaderRepo struct{ db *gorm.DB }

func NewReaderRepo(db *gorm.DB) *ReaderRepo { return &ReaderRepo{db: db} }

func (r *ReaderRepo) List(offset, limit int) ([]domain.Reader, int64, error) {
	var total int64
	if err := r.db.Model(&domain.Reader{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var readers []domain.Reader
	if err := r.db.Preload("Yard").Order("id ASC").Offset(offset).Limit(limit).Find(&readers).Error; err != nil {
		return nil, 0, err
	}
	return readers, total, nil
}

func (r *ReaderRepo) FindByID(id uint) (*domain.Reader, error) {
	var rd domain.Reader
	err := r.db.Preload("Yard").First(&rd, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rd, nil
}

func (r *ReaderRepo) Exists(id uint) (bool, error) {
	var n int64
	err := r.db.Model(&domain.Reader{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *ReaderRepo) ExistsBySerial(serial string, excludeID uint) (bool, error) {
	q := r.db.Model(&domain.Reader{}).Where("serial_number = ?", serial)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

// Writes omit associations so a populated Yard field is never upserted.
func (r *ReaderRepo) Create(rd *domain.Reader) error {
	return r.db.Omit(clause.Associations).Create(rd).Error
}

func (r *ReaderRepo) Update(rd *domain.Reader) error {
	return r.db.Omit(clause.Associations).Save(rd).Error
}

func (r *ReaderRepo) Delete(id uint) error {
	return r.db.Delete(&domain.Reader{}, "id = ?", id).Error
}
