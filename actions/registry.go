package actions

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"travel-backend/utils"
)

var ErrUnknownAction = errors.New("unknown_action")

type Action interface {
	Name() string
	Run(ctx context.Context, d *Dispatcher, t *Tracker) ([]Event, error)
}

type Registry struct {
	actions map[string]Action
}

func NewRegistry(list ...Action) *Registry {
	r := &Registry{actions: make(map[string]Action, len(list))}
	for _, a := range list {
		r.actions[a.Name()] = a
	}
	return r
}

// Dependencies wires every action the dialogue engine may call.
type Dependencies struct {
	Bookings Booker
	Catalog  Catalog
	Messages MessageSaver
	Media    utils.MediaBase
}

func NewDefaultRegistry(deps Dependencies) *Registry {
	return NewRegistry(
		NewHotelBookingFormValidation(),
		NewFlightBookingFormValidation(),
		&SubmitHotelBooking{Bookings: deps.Bookings},
		&SubmitFlightBooking{Bookings: deps.Bookings},
		&ShowHotelsByLocation{Catalog: deps.Catalog, Media: deps.Media},
		&ShowTravelPackages{Catalog: deps.Catalog},
		ShowCategories{},
		&ShowDestinations{Catalog: deps.Catalog},
		&PackageDetail{Catalog: deps.Catalog},
		CancelBooking{},
		&SaveMessage{Messages: deps.Messages},
	)
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the requested action. The tracker's sender id falls back to
// the request's when the engine sends it only at the top level.
func (r *Registry) Run(ctx context.Context, req Request) (*Response, error) {
	action, ok := r.actions[req.NextAction]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, req.NextAction)
	}
	tracker := req.Tracker
	if tracker.SenderID == "" {
		tracker.SenderID = req.SenderID
	}

	d := &Dispatcher{}
	events, err := action.Run(ctx, d, &tracker)
	if err != nil {
		return nil, fmt.Errorf("action %s: %w", req.NextAction, err)
	}
	if events == nil {
		events = []Event{}
	}
	responses := d.Messages
	if responses == nil {
		responses = []Message{}
	}
	return &Response{Events: events, Responses: responses}, nil
}
