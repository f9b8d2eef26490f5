package domain

import "time"

// Reader is a fixed RFID/BLE device that detects motorcycle tags within a
// yard. Serial numbers are unique across all readers and every reader
// belongs to exactly one yard.
type Reader struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	SerialNumber        string     `gorm:"size:100;not null;uniqueIndex" json:"serialNumber"`
	LocationDescription string     `gorm:"size:200;not null" json:"locationDescription"`
	YardID              uint       `gorm:"index;not null" json:"yardId"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`

	Yard Yard `gorm:"foreignKey:YardID" json:"-"`
}

func (Reader) TableName() string { return "readers" }

type ReaderRepository interface {
	// List preloads the owning yard for display names.
	List(offset, limit int) ([]Reader, int64, error)
	FindByID(id uint) (*Reader, error)
	Exists(id uint) (bool, error)
	ExistsBySerial(serial string, excludeID uint) (bool, error)
	Create(r *Reader) error
	Update(r *Reader) error
	Delete(id uint) error
}
