package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"motomap-api/internal/domain"
	"motomap-api/internal/repo"
)

type MotorcycleService struct{ db *gorm.DB }

func NewMotorcycleService(db *gorm.DB) *MotorcycleService { return &MotorcycleService{db: db} }

func (s *MotorcycleService) List(ctx context.Context, offset, limit int) ([]domain.Motorcycle, int64, error) {
	return repo.NewMotorcycleRepo(s.db.WithContext(ctx)).List(offset, limit)
}

func (s *MotorcycleService) Get(ctx context.Context, id uint) (*domain.Motorcycle, error) {
	m, err := repo.NewMotorcycleRepo(s.db.WithContext(ctx)).FindByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, NotFound("motorcycle not found")
	}
	return m, nil
}

func (s *MotorcycleService) Create(ctx context.Context, plate, model, tagID string, yardID *uint) (*domain.Motorcycle, error) {
	var created *domain.Motorcycle
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		motos := repo.NewMotorcycleRepo(tx)

		dup, err := motos.ExistsByTag(tagID, 0)
		if err != nil {
			return err
		}
		if dup {
			return Conflict("tag id already exists")
		}
		if err := s.checkYardRef(tx, yardID); err != nil {
			return err
		}

		m := &domain.Motorcycle{Plate: plate, Model: model, TagID: tagID, YardID: yardID}
		if err := motos.Create(m); err != nil {
			if isDupKey(err) {
				return Conflict("tag id already exists")
			}
			return err
		}
		created = m
		return nil
	})
	return created, err
}

// Update replaces plate, model, tag and yard assignment. Last-seen tracking
// fields are only written through RecordSighting.
func (s *MotorcycleService) Update(ctx context.Context, id uint, plate, model, tagID string, yardID *uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		motos := repo.NewMotorcycleRepo(tx)

		m, err := motos.FindByID(id)
		if err != nil {
			return err
		}
		if m == nil {
			return NotFound("motorcycle not found")
		}
		dup, err := motos.ExistsByTag(tagID, id)
		if err != nil {
			return err
		}
		if dup {
			return Conflict("tag id already exists")
		}
		if err := s.checkYardRef(tx, yardID); err != nil {
			return err
		}

		m.Plate = plate
		m.Model = model
		m.TagID = tagID
		m.YardID = yardID
		if err := motos.Update(m); err != nil {
			if isDupKey(err) {
				return Conflict("tag id already exists")
			}
			return err
		}
		return nil
	})
}

func (s *MotorcycleService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		motos := repo.NewMotorcycleRepo(tx)
		m, err := motos.FindByID(id)
		if err != nil {
			return err
		}
		if m == nil {
			return NotFound("motorcycle not found")
		}
		return motos.Delete(id)
	})
}

// RecordSighting stores a reader observation of a tag: the motorcycle's
// last-seen timestamp and last-seen reader are updated in one transaction.
func (s *MotorcycleService) RecordSighting(ctx context.Context, readerID uint, tagID string, at time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		readers := repo.NewReaderRepo(tx)
		motos := repo.NewMotorcycleRepo(tx)

		ok, err := readers.Exists(readerID)
		if err != nil {
			return err
		}
		if !ok {
			return NotFound("reader not found")
		}
		m, err := motos.FindByTag(tagID)
		if err != nil {
			return err
		}
		if m == nil {
			return NotFound("no motorcycle registered for this tag")
		}

		m.LastSeenAt = &at
		m.LastSeenReaderID = &readerID
		return motos.Update(m)
	})
}

func (s *MotorcycleService) checkYardRef(tx *gorm.DB, yardID *uint) error {
	if yardID == nil {
		return nil
	}
	ok, err := repo.NewYardRepo(tx).Exists(*yardID)
	if err != nil {
		return err
	}
	if !ok {
		return FieldRef("yardId", "yard not found")
	}
	return nil
}
