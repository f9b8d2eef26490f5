package domain

import "time"

// Motorcycle is a tracked vehicle. The broadcast tag id is globally unique;
// yard and last-seen reader references are optional.
type Motorcycle struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Plate            string     `gorm:"size:20;not null" json:"plate"`
	Model            string     `gorm:"size:100;not null" json:"model"`
	TagID            string     `gorm:"column:tag_id;size:100;not null;uniqueIndex" json:"tagId"`
	YardID           *uint      `gorm:"index" json:"yardId,omitempty"`
	LastSeenAt       *time.Time `json:"lastSeenAt,omitempty"`
	LastSeenReaderID *uint      `gorm:"index" json:"lastSeenReaderId,omitempty"`

	Yard           *Yard   `gorm:"foreignKey:YardID" json:"-"`
	LastSeenReader *Reader `gorm:"foreignKey:LastSeenReaderID" json:"-"`
}

func (Motorcycle) TableName() string { return "motorcycles" }

type MotorcycleRepository interface {
	List(offset, limit int) ([]Motorcycle, int64, error)
	FindByID(id uint) (*Motorcycle, error)
	FindByTag(tagID string) (*Motorcycle, error)
	ExistsByTag(tagID string, excludeID uint) (bool, error)
	ClearLastSeenReader(readerID uint) error
	Create(m *Motorcycle) error
	Update(m *Motorcycle) error
	Delete(id uint) error
}
