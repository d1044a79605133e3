// services/booking_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"travel-backend/models"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// BookingService owns the detail tables (hotel_bookings, flight_bookings) and the
// bookings ledger that references them.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// HotelBookingSlots are the validated values of the hotel booking form.
type HotelBookingSlots struct {
	HotelName   string
	CheckInDate string // YYYY-MM-DD
	Nights      int
	Guests      int
}

func (s HotelBookingSlots) complete() bool {
	return strings.TrimSpace(s.HotelName) != "" && strings.TrimSpace(s.CheckInDate) != "" &&
		s.Nights > 0 && s.Guests > 0
}

// FlightBookingSlots are the validated values of the flight booking form.
type FlightBookingSlots struct {
	Departure   string
	Destination string
	TravelDate  string // YYYY-MM-DD
}

func (s FlightBookingSlots) complete() bool {
	return strings.TrimSpace(s.Departure) != "" && strings.TrimSpace(s.Destination) != "" &&
		strings.TrimSpace(s.TravelDate) != ""
}

func parseSlotDate(name, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q", ErrInvalidSlot, name, value)
	}
	return t, nil
}

func (s *BookingService) findUser(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("db error checking user: %w", err)
	}
	return &user, nil
}

// SubmitHotelBooking writes the hotel detail row and its ledger row in one
// transaction. Missing slots or an unknown user return before any write.
func (s *BookingService) SubmitHotelBooking(ctx context.Context, username string, slots HotelBookingSlots) (*models.HotelBooking, *models.Booking, error) {
	if !slots.complete() {
		return nil, nil, ErrMissingSlots
	}
	checkIn, err := parseSlotDate("check_in_date", slots.CheckInDate)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	detail := &models.HotelBooking{
		UserID:      user.ID,
		HotelName:   strings.TrimSpace(slots.HotelName),
		CheckInDate: checkIn,
		Nights:      slots.Nights,
		Guests:      slots.Guests,
	}
	ledger := &models.Booking{
		UserID:      user.ID,
		BookingType: models.BookingTypeHotel,
		Status:      models.BookingStatusConfirmed,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(detail).Error; err != nil {
			return fmt.Errorf("failed to create hotel booking: %w", err)
		}
		ledger.ReferenceID = models.BookingReference{Kind: models.BookingTypeHotel, ID: detail.ID}.String()
		if err := tx.Create(ledger).Error; err != nil {
			return fmt.Errorf("failed to create booking ledger row: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return detail, ledger, nil
}

// SubmitFlightBooking is SubmitHotelBooking for the flight form.
func (s *BookingService) SubmitFlightBooking(ctx context.Context, username string, slots FlightBookingSlots) (*models.FlightBooking, *models.Booking, error) {
	if !slots.complete() {
		return nil, nil, ErrMissingSlots
	}
	travelDate, err := parseSlotDate("travel_date", slots.TravelDate)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	detail := &models.FlightBooking{
		UserID:      user.ID,
		Departure:   strings.TrimSpace(slots.Departure),
		Destination: strings.TrimSpace(slots.Destination),
		TravelDate:  travelDate,
	}
	ledger := &models.Booking{
		UserID:      user.ID,
		BookingType: models.BookingTypeFlight,
		Status:      models.BookingStatusConfirmed,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(detail).Error; err != nil {
			return fmt.Errorf("failed to create flight booking: %w", err)
		}
		ledger.ReferenceID = models.BookingReference{Kind: models.BookingTypeFlight, ID: detail.ID}.String()
		if err := tx.Create(ledger).Error; err != nil {
			return fmt.Errorf("failed to create booking ledger row: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return detail, ledger, nil
}

// ListForUser returns the user's ledger rows, newest first, with the owner preloaded.
func (s *BookingService) ListForUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.WithContext(ctx).
		Preload("User.Profile").
		Where("user_id = ?", userID).
		Order("booked_on DESC").Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

// HotelBookingsForUser returns detail rows newest first.
func (s *BookingService) HotelBookingsForUser(ctx context.Context, userID uint) ([]models.HotelBooking, error) {
	var list []models.HotelBooking
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve hotel bookings: %w", err)
	}
	return list, nil
}

// FlightBookingsForUser returns detail rows newest first.
func (s *BookingService) FlightBookingsForUser(ctx context.Context, userID uint) ([]models.FlightBooking, error) {
	var list []models.FlightBooking
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve flight bookings: %w", err)
	}
	return list, nil
}
