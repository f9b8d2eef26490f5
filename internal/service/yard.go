package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"motomap-api/internal/domain"
	"motomap-api/internal/repo"
)

type YardService struct{ db *gorm.DB }

func NewYardService(db *gorm.DB) *YardService { return &YardService{db: db} }

// YardWithCounts pairs a yard with its dependent row counts for list views.
type YardWithCounts struct {
	domain.Yard
	ReaderCount     int64
	MotorcycleCount int64
}

func (s *YardService) List(ctx context.Context, offset, limit int) ([]YardWithCounts, int64, error) {
	r := repo.NewYardRepo(s.db.WithContext(ctx))
	yards, total, err := r.List(offset, limit)
	if err != nil {
		return nil, 0, err
	}

	// One grouped query per dependent table instead of a count per row.
	readerCounts, err := s.countByYard(ctx, &domain.Reader{})
	if err != nil {
		return nil, 0, err
	}
	motoCounts, err := s.countByYard(ctx, &domain.Motorcycle{})
	if err != nil {
		return nil, 0, err
	}

	out := make([]YardWithCounts, 0, len(yards))
	for _, y := range yards {
		out = append(out, YardWithCounts{
			Yard:            y,
			ReaderCount:     readerCounts[y.ID],
			MotorcycleCount: motoCounts[y.ID],
		})
	}
	return out, total, nil
}

func (s *YardService) countByYard(ctx context.Context, model any) (map[uint]int64, error) {
	type row struct {
		YardID uint
		N      int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(model).
		Select("yard_id, COUNT(*) as n").
		Where("yard_id IS NOT NULL").
		Group("yard_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	m := make(map[uint]int64, len(rows))
	for _, r := range rows {
		m[r.YardID] = r.N
	}
	return m, nil
}

func (s *YardService) Get(ctx context.Context, id uint) (*YardWithCounts, error) {
	r := repo.NewYardRepo(s.db.WithContext(ctx))
	y, err := r.FindByIDWithReaders(id)
	if err != nil {
		return nil, err
	}
	if y == nil {
		return nil, NotFound("yard not found")
	}
	_, motos, err := r.DependentCounts(id)
	if err != nil {
		return nil, err
	}
	return &YardWithCounts{
		Yard:            *y,
		ReaderCount:     int64(len(y.Readers)),
		MotorcycleCount: motos,
	}, nil
}

func (s *YardService) Create(ctx context.Context, name, address string) (*domain.Yard, error) {
	var created *domain.Yard
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := repo.NewYardRepo(tx)
		dup, err := r.ExistsByNameAddress(name, address, 0)
		if err != nil {
			return err
		}
		if dup {
			return Conflict("a yard with this name and address already exists")
		}
		y := &domain.Yard{Name: name, Address: address}
		if err := r.Create(y); err != nil {
			if isDupKey(err) {
				return Conflict("a yard with this name and address already exists")
			}
			return err
		}
		created = y
		return nil
	})
	return created, err
}

// Update is a full replacement of the mutable fields.
func (s *YardService) Update(ctx context.Context, id uint, name, address string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := repo.NewYardRepo(tx)
		y, err := r.FindByID(id)
		if err != nil {
			return err
		}
		if y == nil {
			return NotFound("yard not found")
		}
		dup, err := r.ExistsByNameAddress(name, address, id)
		if err != nil {
			return err
		}
		if dup {
			return Conflict("a yard with this name and address already exists")
		}
		now := time.Now().UTC()
		y.Name = name
		y.Address = address
		y.UpdatedAt = &now
		if err := r.Update(y); err != nil {
			if isDupKey(err) {
				return Conflict("a yard with this name and address already exists")
			}
			return err
		}
		return nil
	})
}

// Delete is blocked, not cascaded, while readers or motorcycles still
// reference the yard.
func (s *YardService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := repo.NewYardRepo(tx)
		ok, err := r.Exists(id)
		if err != nil {
			return err
		}
		if !ok {
			return NotFound("yard not found")
		}
		readers, motos, err := r.DependentCounts(id)
		if err != nil {
			return err
		}
		if readers > 0 || motos > 0 {
			return BadRequest("yard has associated readers or motorcycles and cannot be deleted")
		}
		return r.Delete(id)
	})
}
