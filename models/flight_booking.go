package models

import "time"

type FlightBooking struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Departure   string    `gorm:"size:100;not null" json:"departure"`
	Destination string    `gorm:"size:100;not null" json:"destination"`
	TravelDate  time.Time `gorm:"column:travel_date;type:date" json:"travel_date"`
	CreatedAt   time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
