package actions

import (
	"context"
)

// FormValidation validates the slots of one form. Only slots the form knows
// are touched; every rejection clears the slot and sends one message.
type FormValidation struct {
	name       string
	order      []string
	validators map[string]SlotValidator
}

func NewHotelBookingFormValidation() *FormValidation {
	return &FormValidation{
		name:  "validate_hotel_booking_form",
		order: []string{"check_in_date", "nights", "guests"},
		validators: map[string]SlotValidator{
			"check_in_date": dateSlot(MsgInvalidCheckInDate),
			"nights":        countSlot(MsgInvalidNights),
			"guests":        countSlot(MsgInvalidGuests),
		},
	}
}

func NewFlightBookingFormValidation() *FormValidation {
	return &FormValidation{
		name:  "validate_flight_booking_form",
		order: []string{"travel_date", "departure", "destination"},
		validators: map[string]SlotValidator{
			"travel_date": dateSlot(MsgInvalidTravelDate),
			"departure":   textSlot(MsgMissingDeparture),
			"destination": textSlot(MsgMissingDestination),
		},
	}
}

func (f *FormValidation) Name() string { return f.name }

// candidates returns the slots to validate: those set since the last user
// turn, or every filled form slot when the tracker has no such events.
func (f *FormValidation) candidates(t *Tracker) (map[string]interface{}, []string) {
	if slots, order, ok := t.RecentSlotEvents(); ok {
		return slots, order
	}
	slots := map[string]interface{}{}
	var order []string
	for _, name := range f.order {
		if v := t.Slot(name); v != nil {
			slots[name] = v
			order = append(order, name)
		}
	}
	return slots, order
}

func (f *FormValidation) Run(_ context.Context, d *Dispatcher, t *Tracker) ([]Event, error) {
	slots, order := f.candidates(t)
	events := []Event{}
	for _, name := range order {
		check, ok := f.validators[name]
		if !ok {
			continue
		}
		value, rejection := check(slots[name])
		if rejection != "" {
			d.Utter(rejection)
		}
		events = append(events, SlotSet(name, value))
	}
	return events, nil
}
