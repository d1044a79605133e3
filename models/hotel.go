package models

// DefaultHotelImage stands in for a hotel without an image of its own.
const DefaultHotelImage = "hotel_images/default.webp"

type Hotel struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"size:100;not null" json:"name"`
	Location      string  `gorm:"size:100;index" json:"location"`
	Rating        float64 `gorm:"type:decimal(3,1)" json:"rating"`
	PricePerNight float64 `gorm:"column:price_per_night;type:decimal(8,2)" json:"price_per_night"`
	Amenities     string  `gorm:"type:text" json:"amenities"`
	// media-relative path, e.g. "hotel_images/manali.webp"
	Image *string `gorm:"size:255" json:"image,omitempty"`
}
