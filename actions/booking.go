package actions

import (
	"context"
	"errors"
	"fmt"

	"travel-backend/models"
	"travel-backend/services"

	"go.uber.org/zap"
)

const (
	MsgHotelMissingInfo  = "⚠️ Booking could not be completed. Missing information."
	MsgFlightMissingInfo = "⚠️ Flight booking failed. Missing departure, destination, or date."
	MsgUserNotFound      = "⚠️ Booking failed. User not found."
)

// Booker is the part of services.BookingService the submit actions need.
type Booker interface {
	SubmitHotelBooking(ctx context.Context, username string, slots services.HotelBookingSlots) (*models.HotelBooking, *models.Booking, error)
	SubmitFlightBooking(ctx context.Context, username string, slots services.FlightBookingSlots) (*models.FlightBooking, *models.Booking, error)
}

type SubmitHotelBooking struct {
	Bookings Booker
}

func (a *SubmitHotelBooking) Name() string { return "action_submit_hotel_booking" }

func (a *SubmitHotelBooking) Run(ctx context.Context, d *Dispatcher, t *Tracker) ([]Event, error) {
	slots := services.HotelBookingSlots{
		HotelName:   t.SlotString("hotel_name"),
		CheckInDate: t.SlotString("check_in_date"),
		Nights:      t.SlotInt("nights"),
		Guests:      t.SlotInt("guests"),
	}

	_, ledger, err := a.Bookings.SubmitHotelBooking(ctx, t.SenderID, slots)
	switch {
	case errors.Is(err, services.ErrMissingSlots), errors.Is(err, services.ErrInvalidSlot):
		d.Utter(MsgHotelMissingInfo)
		return []Event{}, nil
	case errors.Is(err, services.ErrUserNotFound):
		d.Utter(MsgUserNotFound)
		return []Event{}, nil
	case err != nil:
		return nil, err
	}

	zap.L().Info("hotel booking created",
		zap.String("sender", t.SenderID),
		zap.String("reference", ledger.ReferenceID))
	d.Utter(fmt.Sprintf("✅ Booking confirmed at *%s* from *%s* for *%d* nights with *%d* guests.",
		slots.HotelName, slots.CheckInDate, slots.Nights, slots.Guests))
	return []Event{}, nil
}

type SubmitFlightBooking struct {
	Bookings Booker
}

func (a *SubmitFlightBooking) Name() string { return "action_submit_flight_booking" }

func (a *SubmitFlightBooking) Run(ctx context.Context, d *Dispatcher, t *Tracker) ([]Event, error) {
	slots := services.FlightBookingSlots{
		Departure:   t.SlotString("departure"),
		Destination: t.SlotString("destination"),
		TravelDate:  t.SlotString("travel_date"),
	}

	_, ledger, err := a.Bookings.SubmitFlightBooking(ctx, t.SenderID, slots)
	switch {
	case errors.Is(err, services.ErrMissingSlots), errors.Is(err, services.ErrInvalidSlot):
		d.Utter(MsgFlightMissingInfo)
		return []Event{}, nil
	case errors.Is(err, services.ErrUserNotFound):
		d.Utter(MsgUserNotFound)
		return []Event{}, nil
	case err != nil:
		return nil, err
	}

	zap.L().Info("flight booking created",
		zap.String("sender", t.SenderID),
		zap.String("reference", ledger.ReferenceID))
	d.Utter(fmt.Sprintf("✅ Flight booked from *%s* to *%s* on *%s*.",
		slots.Departure, slots.Destination, slots.TravelDate))
	return []Event{}, nil
}
