package models

import "time"

type HotelBooking struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	HotelName   string    `gorm:"column:hotel_name;size:255;not null" json:"hotel_name"`
	CheckInDate time.Time `gorm:"column:check_in_date;type:date" json:"check_in_date"`
	Nights      int       `json:"nights"`
	Guests      int       `json:"guests"`
	CreatedAt   time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
