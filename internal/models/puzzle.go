package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Puzzle struct {
	ID                  string     `gorm:"type:varchar(36);primarykey" json:"id"`
	Title               string     `gorm:"type:varchar(100);not null" json:"title"`
	PiecesNumber        *int       `json:"piecesNumber,omitempty"`
	Size                string     `gorm:"type:varchar(255)" json:"size,omitempty"`
	Manufacturer        string     `gorm:"type:varchar(255)" json:"manufacturer,omitempty"`
	LastPlayed          *time.Time `json:"lastPlayed,omitempty"`
	Location            string     `gorm:"type:varchar(255)" json:"location,omitempty"`
	Complete            *bool      `json:"complete,omitempty"`
	MissingPiecesNumber *int       `json:"missingPiecesNumber,omitempty"`
	PrivateNote         string     `gorm:"type:text" json:"privateNote,omitempty"`
	SharedNote          string     `gorm:"type:text" json:"sharedNote,omitempty"`
	IsPrivate           bool       `gorm:"not null" json:"isPrivate"`
	IsLentOut           bool       `gorm:"not null" json:"isLentOut"`
	LentOutTo           string     `gorm:"type:varchar(255)" json:"lentOutTo,omitempty"`
	ImageKey            string     `gorm:"type:varchar(255)" json:"-"`
	ImageContentType    string     `gorm:"type:varchar(100)" json:"-"`
	OwnerID             string     `gorm:"type:varchar(36);not null;index" json:"owner"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

func (p *Puzzle) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// HasImage reports whether an image is stored for the puzzle.
func (p *Puzzle) HasImage() bool {
	return p.ImageKey != ""
}
