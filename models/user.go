package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultAvatar is the media-relative path every new profile starts with.
const DefaultAvatar = "avatars/default.png"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:254" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:255" json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	Profile *UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

// UserProfile is 1:1 with User and only carries the avatar reference.
type UserProfile struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	UserID uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	Avatar *string `gorm:"size:255" json:"avatar,omitempty"`
}

// AfterCreate gives every new user a profile in the same transaction.
func (u *User) AfterCreate(tx *gorm.DB) error {
	if u.Profile != nil {
		return nil
	}
	avatar := DefaultAvatar
	profile := &UserProfile{UserID: u.ID, Avatar: &avatar}
	if err := tx.Create(profile).Error; err != nil {
		return err
	}
	u.Profile = profile
	return nil
}
