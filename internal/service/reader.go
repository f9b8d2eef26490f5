package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"motomap-api/internal/domain"
	"motomap-api/internal/repo"
)

type ReaderService struct{ db *gorm.DB }

func NewReaderService(db *gorm.DB) *ReaderService { return &ReaderService{db: db} }

func (s *ReaderService) List(ctx context.Context, offset, limit int) ([]domain.Reader, int64, error) {
	return repo.NewReaderRepo(s.db.WithContext(ctx)).List(offset, limit)
}

func (s *ReaderService) Get(ctx context.Context, id uint) (*domain.Reader, error) {
	rd, err := repo.NewReaderRepo(s.db.WithContext(ctx)).FindByID(id)
	if err != nil {
		return nil, err
	}
	if rd == nil {
		return nil, NotFound("reader not found")
	}
	return rd, nil
}

func (s *ReaderService) Create(ctx context.Context, serial, location string, yardID uint) (*domain.Reader, error) {
	var created *domain.Reader
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		readers := repo.NewReaderRepo(tx)
		yards := repo.NewYardRepo(tx)

		// yardId comes from the request body, so a dangling reference is a
		// validation failure rather than a 404.
		yard, err := yards.FindByID(yardID)
		if err != nil {
			return err
		}
		if yard == nil {
			return FieldRef("yardId", "yard not found")
		}
		dup, err := readers.ExistsBySerial(serial, 0)
		if err != nil {
			return err
		}
		if dup {
			return Conflict("serial number already exists")
		}

		rd := &domain.Reader{
			SerialNumber:        serial,
			LocationDescription: location,
			YardID:              yardID,
		}
		if err := readers.Create(rd); err != nil {
			if isDupKey(err) {
				return Conflict("serial number already exists")
			}
			return err
		}
		rd.Yard = *yard
		created = rd
		return nil
	})
	return created, err
}

// Update replaces all mutable fields; the serial uniqueness check excludes
// the reader's own prior value.
func (s *ReaderService) Update(ctx context.Context, id uint, serial, location string, yardID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		readers := repo.NewReaderRepo(tx)
		yards := repo.NewYardRepo(tx)

		rd, err := readers.FindByID(id)
		if err != nil {
			return err
		}
		if rd == nil {
			return NotFound("reader not found")
		}
		ok, err := yards.Exists(yardID)
		if err != nil {
			return err
		}
		if !ok {
			return FieldRef("yardId", "yard not found")
		}
		dup, err := readers.ExistsBySerial(serial, id)
		if err != nil {
			return err
		}
		if dup {
			return Conflict("serial number already exists")
		}

		now := time.Now().UTC()
		rd.SerialNumber = serial
		rd.LocationDescription = location
		rd.YardID = yardID
		rd.UpdatedAt = &now
		if err := readers.Update(rd); err != nil {
			if isDupKey(err) {
				return Conflict("serial number already exists")
			}
			return err
		}
		return nil
	})
}

// Delete removes the reader and nulls any motorcycle's last-seen reference
// to it in the same transaction, so the column never dangles.
func (s *ReaderService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		readers := repo.NewReaderRepo(tx)
		ok, err := readers.Exists(id)
		if err != nil {
			return err
		}
		if !ok {
			return NotFound("reader not found")
		}
		if err := repo.NewMotorcycleRepo(tx).ClearLastSeenReader(id); err != nil {
			return err
		}
		return readers.Delete(id)
	})
}
