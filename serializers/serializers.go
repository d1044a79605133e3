// Package serializers maps models to the JSON records served by the API.
package serializers

import (
	"time"

	"travel-backend/models"
	"travel-backend/utils"
)

const dateLayout = "2006-01-02"

type UserRecord struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url"`
}

// CombinedUser merges the user with its profile avatar. A missing profile or
// avatar yields a null avatar_url.
func CombinedUser(u models.User, base utils.MediaBase) UserRecord {
	rec := UserRecord{ID: u.ID, Username: u.Username, Email: u.Email}
	if u.Profile != nil {
		rec.AvatarURL = base.OptionalURL(u.Profile.Avatar)
	}
	return rec
}

type TravelPackageRecord struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Destination  string `json:"destination"`
	Description  string `json:"description"`
	Price        string `json:"price"`
	DurationDays int    `json:"duration_days"`
	Category     string `json:"category"`
}

func TravelPackage(p models.TravelPackage) TravelPackageRecord {
	return TravelPackageRecord{
		ID:           p.ID,
		Name:         p.Name,
		Destination:  p.Destination,
		Description:  p.Description,
		Price:        utils.FormatPrice(p.Price),
		DurationDays: p.DurationDays,
		Category:     string(p.Category),
	}
}

func TravelPackages(list []models.TravelPackage) []TravelPackageRecord {
	out := make([]TravelPackageRecord, 0, len(list))
	for _, p := range list {
		out = append(out, TravelPackage(p))
	}
	return out
}

type HotelRecord struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Location      string `json:"location"`
	Rating        string `json:"rating"`
	PricePerNight string `json:"price_per_night"`
	Amenities     string `json:"amenities"`
	Image         string `json:"image"`
}

func Hotel(h models.Hotel, base utils.MediaBase) HotelRecord {
	return HotelRecord{
		ID:            h.ID,
		Name:          h.Name,
		Location:      h.Location,
		Rating:        utils.FormatRating(h.Rating),
		PricePerNight: utils.FormatPrice(h.PricePerNight),
		Amenities:     h.Amenities,
		Image:         base.URL(utils.HotelImage(h)),
	}
}

func Hotels(list []models.Hotel, base utils.MediaBase) []HotelRecord {
	out := make([]HotelRecord, 0, len(list))
	for _, h := range list {
		out = append(out, Hotel(h, base))
	}
	return out
}

type FlightRecord struct {
	ID             uint      `json:"id"`
	FlightNumber   string    `json:"flight_number"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departure_time"`
	Price          string    `json:"price"`
	SeatsAvailable int       `json:"seats_available"`
}

func Flight(f models.Flight) FlightRecord {
	return FlightRecord{
		ID:             f.ID,
		FlightNumber:   f.FlightNumber,
		Origin:         f.Origin,
		Destination:    f.Destination,
		DepartureTime:  f.DepartureTime,
		Price:          utils.FormatPrice(f.Price),
		SeatsAvailable: f.SeatsAvailable,
	}
}

func Flights(list []models.Flight) []FlightRecord {
	out := make([]FlightRecord, 0, len(list))
	for _, f := range list {
		out = append(out, Flight(f))
	}
	return out
}

type BookingRecord struct {
	ID          uint       `json:"id"`
	User        UserRecord `json:"user"`
	BookingType string     `json:"booking_type"`
	ReferenceID string     `json:"reference_id"`
	BookedOn    time.Time  `json:"booked_on"`
	Status      string     `json:"status"`
}

// Booking expects b.User to be loaded (with its profile for the avatar).
func Booking(b models.Booking, base utils.MediaBase) BookingRecord {
	return BookingRecord{
		ID:          b.ID,
		User:        CombinedUser(b.User, base),
		BookingType: string(b.BookingType),
		ReferenceID: b.ReferenceID,
		BookedOn:    b.BookedOn,
		Status:      b.Status,
	}
}

func Bookings(list []models.Booking, base utils.MediaBase) []BookingRecord {
	out := make([]BookingRecord, 0, len(list))
	for _, b := range list {
		out = append(out, Booking(b, base))
	}
	return out
}

type HotelBookingRecord struct {
	ID          uint      `json:"id"`
	HotelName   string    `json:"hotel_name"`
	CheckInDate string    `json:"check_in_date"`
	Nights      int       `json:"nights"`
	Guests      int       `json:"guests"`
	CreatedAt   time.Time `json:"created_at"`
}

func HotelBooking(b models.HotelBooking) HotelBookingRecord {
	return HotelBookingRecord{
		ID:          b.ID,
		HotelName:   b.HotelName,
		CheckInDate: b.CheckInDate.Format(dateLayout),
		Nights:      b.Nights,
		Guests:      b.Guests,
		CreatedAt:   b.CreatedAt,
	}
}

type FlightBookingRecord struct {
	ID          uint      `json:"id"`
	Departure   string    `json:"departure"`
	Destination string    `json:"destination"`
	TravelDate  string    `json:"travel_date"`
	CreatedAt   time.Time `json:"created_at"`
}

func FlightBooking(b models.FlightBooking) FlightBookingRecord {
	return FlightBookingRecord{
		ID:          b.ID,
		Departure:   b.Departure,
		Destination: b.Destination,
		TravelDate:  b.TravelDate.Format(dateLayout),
		CreatedAt:   b.CreatedAt,
	}
}

type UserMessageRecord struct {
	ID        uint        `json:"id"`
	User      UserRecord  `json:"user"`
	Message   string      `json:"message"`
	Response  string      `json:"response"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func UserMessage(m models.UserMessage, base utils.MediaBase) UserMessageRecord {
	rec := UserMessageRecord{
		ID:        m.ID,
		User:      CombinedUser(m.User, base),
		Message:   m.Message,
		Response:  m.Response,
		Timestamp: m.Timestamp,
	}
	if len(m.Payload) > 0 && string(m.Payload) != "null" {
		rec.Payload = m.Payload
	}
	return rec
}

func UserMessages(list []models.UserMessage, base utils.MediaBase) []UserMessageRecord {
	out := make([]UserMessageRecord, 0, len(list))
	for _, m := range list {
		out = append(out, UserMessage(m, base))
	}
	return out
}
