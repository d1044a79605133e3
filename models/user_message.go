package models

import (
	"time"

	"gorm.io/datatypes"
)

// UserMessage is one exchanged (user text, bot reply) pair.
type UserMessage struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"index;not null" json:"user_id"`
	Message  string `gorm:"type:text" json:"message"`
	Response string `gorm:"type:text" json:"response"`
	// buttons / custom payload that came with the reply, kept for history replay
	Payload   datatypes.JSON `gorm:"column:payload" json:"payload,omitempty"`
	Timestamp time.Time      `gorm:"autoCreateTime;index" json:"timestamp"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
