package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovieResponse records two users' answers about the same movie. A slot
// whose user was deleted holds constants.RemovedUserID.
type MovieResponse struct {
	ID               string    `gorm:"type:varchar(36);primarykey" json:"id"`
	MovieID          string    `gorm:"type:varchar(100);not null" json:"movieId"`
	User1ID          string    `gorm:"column:user1_id;type:varchar(36);not null" json:"user1Id"`
	User1Answered    bool      `gorm:"column:user1_answered;not null;default:false" json:"user1Answered"`
	User1AnsweredYes bool      `gorm:"column:user1_answered_yes;not null;default:false" json:"user1AnsweredYes"`
	User2ID          string    `gorm:"column:user2_id;type:varchar(36);not null" json:"user2Id"`
	User2Answered    bool      `gorm:"column:user2_answered;not null;default:false" json:"user2Answered"`
	User2AnsweredYes bool      `gorm:"column:user2_answered_yes;not null;default:false" json:"user2AnsweredYes"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (m *MovieResponse) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Slot identifies one of the two user positions of a MovieResponse.
type Slot int

const (
	SlotUser1 Slot = 1
	SlotUser2 Slot = 2
)

// SlotOf returns the slot userID occupies, or 0 when it is in neither.
func (m *MovieResponse) SlotOf(userID string) Slot {
	switch userID {
	case m.User1ID:
		return SlotUser1
	case m.User2ID:
		return SlotUser2
	default:
		return 0
	}
}

// Columns returns the user id, answered and answered-yes column names of
// the slot.
func (s Slot) Columns() (userID, answered, answeredYes string) {
	if s == SlotUser2 {
		return "user2_id", "user2_answered", "user2_answered_yes"
	}
	return "user1_id", "user1_answered", "user1_answered_yes"
}
