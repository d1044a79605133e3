package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type BookingType string

const (
	BookingTypeFlight  BookingType = "flight"
	BookingTypeHotel   BookingType = "hotel"
	BookingTypePackage BookingType = "package"
)

const BookingStatusConfirmed = "Confirmed"

// BookingReference points a ledger row at its detail row. It is stored as
// "<Kind>:<id>", e.g. "Hotel:12".
type BookingReference struct {
	Kind BookingType
	ID   uint
}

var referencePrefixes = map[BookingType]string{
	BookingTypeFlight:  "Flight",
	BookingTypeHotel:   "Hotel",
	BookingTypePackage: "Package",
}

func (r BookingReference) String() string {
	prefix, ok := referencePrefixes[r.Kind]
	if !ok {
		prefix = string(r.Kind)
	}
	return fmt.Sprintf("%s:%d", prefix, r.ID)
}

var ErrInvalidReference = errors.New("invalid_booking_reference")

func ParseBookingReference(raw string) (BookingReference, error) {
	prefix, idPart, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return BookingReference{}, fmt.Errorf("%w: %q", ErrInvalidReference, raw)
	}
	id, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil || id == 0 {
		return BookingReference{}, fmt.Errorf("%w: %q", ErrInvalidReference, raw)
	}
	for kind, p := range referencePrefixes {
		if strings.EqualFold(p, prefix) {
			return BookingReference{Kind: kind, ID: uint(id)}, nil
		}
	}
	return BookingReference{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidReference, prefix)
}

// Booking is the type-agnostic ledger row. ReferenceID holds BookingReference.String().
type Booking struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"index;not null" json:"user_id"`
	BookingType BookingType `gorm:"column:booking_type;size:10;not null" json:"booking_type"`
	ReferenceID string      `gorm:"column:reference_id;size:100;not null" json:"reference_id"`
	BookedOn    time.Time   `gorm:"column:booked_on;autoCreateTime" json:"booked_on"`
	Status      string      `gorm:"size:20;default:Confirmed" json:"status"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (b Booking) Reference() (BookingReference, error) {
	return ParseBookingReference(b.ReferenceID)
}
