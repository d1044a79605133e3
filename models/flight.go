package models

import "time"

type Flight struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	FlightNumber   string    `gorm:"column:flight_number;size:20;uniqueIndex;not null" json:"flight_number"`
	Origin         string    `gorm:"size:100" json:"origin"`
	Destination    string    `gorm:"size:100" json:"destination"`
	DepartureTime  time.Time `gorm:"column:departure_time" json:"departure_time"`
	Price          float64   `gorm:"type:decimal(10,2)" json:"price"`
	SeatsAvailable int       `gorm:"column:seats_available" json:"seats_available"`
}
