package domain

import "time"

// Yard is a physical storage lot containing readers and motorcycles.
// The (name, address) pair is unique across all yards.
type Yard struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:100;not null;uniqueIndex:uq_yards_name_address" json:"name"`
	Address   string     `gorm:"size:200;not null;uniqueIndex:uq_yards_name_address" json:"address"`
	CreatedAt time.Time  `json:"createdAt"`
	// Null until the first update; written by the service, not gorm.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`

	Readers     []Reader     `gorm:"foreignKey:YardID" json:"-"`
	Motorcycles []Motorcycle `gorm:"foreignKey:YardID" json:"-"`
}

func (Yard) TableName() string { return "yards" }

type YardRepository interface {
	List(offset, limit int) ([]Yard, int64, error)
	FindByID(id uint) (*Yard, error)
	// FindByIDWithReaders also loads the yard's readers for the detail view.
	FindByIDWithReaders(id uint) (*Yard, error)
	Exists(id uint) (bool, error)
	ExistsByNameAddress(name, address string, excludeID uint) (bool, error)
	// DependentCounts reports how many readers and motorcycles reference the yard.
	DependentCounts(id uint) (readers int64, motorcycles int64, err error)
	Create(y *Yard) error
	Update(y *Yard) error
	Delete(id uint) error
}
