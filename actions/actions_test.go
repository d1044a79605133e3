package actions

import (
	"context"
	"errors"
	"strings"
	"testing"

	"travel-backend/models"
	"travel-backend/services"
	"travel-backend/utils"
)

// --- fakes ---

type fakeCatalog struct {
	packages  []models.TravelPackage
	hotels    []models.Hotel
	hotelsErr error
	searched  string
}

func (f *fakeCatalog) ListPackages(_ context.Context, _ int) ([]models.TravelPackage, error) {
	return f.packages, nil
}

func (f *fakeCatalog) PackagesByCategory(_ context.Context, category string) ([]models.TravelPackage, error) {
	var out []models.TravelPackage
	for _, p := range f.packages {
		if strings.EqualFold(string(p.Category), category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) PackageByName(_ context.Context, name string) (*models.TravelPackage, error) {
	for _, p := range f.packages {
		if strings.EqualFold(p.Name, name) {
			p := p
			return &p, nil
		}
	}
	return nil, services.ErrPackageNotFound
}

func (f *fakeCatalog) SearchHotels(_ context.Context, location string) ([]models.Hotel, error) {
	f.searched = location
	if f.hotelsErr != nil {
		return nil, f.hotelsErr
	}
	var out []models.Hotel
	for _, h := range f.hotels {
		if strings.Contains(strings.ToLower(h.Location), strings.ToLower(location)) {
			out = append(out, h)
		}
	}
	return out, nil
}

type fakeBooker struct {
	err         error
	hotelSlots  *services.HotelBookingSlots
	flightSlots *services.FlightBookingSlots
	username    string
}

func (f *fakeBooker) SubmitHotelBooking(_ context.Context, username string, slots services.HotelBookingSlots) (*models.HotelBooking, *models.Booking, error) {
	f.username = username
	f.hotelSlots = &slots
	if f.err != nil {
		return nil, nil, f.err
	}
	return &models.HotelBooking{ID: 7}, &models.Booking{ReferenceID: "Hotel:7"}, nil
}

func (f *fakeBooker) SubmitFlightBooking(_ context.Context, username string, slots services.FlightBookingSlots) (*models.FlightBooking, *models.Booking, error) {
	f.username = username
	f.flightSlots = &slots
	if f.err != nil {
		return nil, nil, f.err
	}
	return &models.FlightBooking{ID: 3}, &models.Booking{ReferenceID: "Flight:3"}, nil
}

type fakeSaver struct {
	username, message, response string
	err                         error
	calls                       int
}

func (f *fakeSaver) SaveForUsername(_ context.Context, username, message, response string) (*models.UserMessage, error) {
	f.calls++
	f.username, f.message, f.response = username, message, response
	if f.err != nil {
		return nil, f.err
	}
	return &models.UserMessage{ID: 1}, nil
}

var testPackages = []models.TravelPackage{
	{ID: 1, Name: "Goa Getaway", Destination: "Goa", Description: "Sun and sand", Price: 15000, DurationDays: 4, Category: models.CategoryBeach},
	{ID: 2, Name: "Manali Trek", Destination: "Manali", Description: "Snow peaks", Price: 12000, DurationDays: 5, Category: models.CategoryMountain},
}

func run(t *testing.T, a Action, tracker Tracker) ([]Event, []Message) {
	t.Helper()
	d := &Dispatcher{}
	events, err := a.Run(context.Background(), d, &tracker)
	if err != nil {
		t.Fatalf("%s returned error: %v", a.Name(), err)
	}
	return events, d.Messages
}

// --- form validation ---

func TestHotelFormValidation(t *testing.T) {
	tracker := Tracker{
		SenderID: "alice",
		Events: []Event{
			{"event": "user", "text": "2025-05-01 for 3 nights, 0 guests"},
			SlotSet("check_in_date", "2025-05-01"),
			SlotSet("nights", "3 nights"),
			SlotSet("guests", "0"),
		},
	}
	events, msgs := run(t, NewHotelBookingFormValidation(), tracker)

	want := map[string]interface{}{"check_in_date": "2025-05-01", "nights": 3, "guests": nil}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %v", len(events), len(want), events)
	}
	for _, e := range events {
		name := e["name"].(string)
		if e["value"] != want[name] {
			t.Errorf("slot %s = %v, want %v", name, e["value"], want[name])
		}
	}
	if len(msgs) != 1 || msgs[0].Text != MsgInvalidGuests {
		t.Errorf("expected exactly the guests rejection, got %+v", msgs)
	}
}

func TestFlightFormValidationOnlyRecentSlots(t *testing.T) {
	tracker := Tracker{
		Slots: map[string]interface{}{"departure": "Delhi", "travel_date": "soon"},
		Events: []Event{
			SlotSet("departure", "Delhi"),
			{"event": "user", "text": "tomorrow"},
			SlotSet("travel_date", "tomorrow"),
		},
	}
	events, msgs := run(t, NewFlightBookingFormValidation(), tracker)

	if len(events) != 1 || events[0]["name"] != "travel_date" || events[0]["value"] != nil {
		t.Fatalf("expected only travel_date to be cleared, got %v", events)
	}
	if len(msgs) != 1 || msgs[0].Text != MsgInvalidTravelDate {
		t.Errorf("unexpected messages %+v", msgs)
	}
}

func TestFlightFormValidationFallsBackToFilledSlots(t *testing.T) {
	tracker := Tracker{
		Slots: map[string]interface{}{"departure": "  ", "destination": "Mumbai"},
	}
	events, msgs := run(t, NewFlightBookingFormValidation(), tracker)

	if len(events) != 2 {
		t.Fatalf("expected 2 slot events, got %v", events)
	}
	if len(msgs) != 1 || msgs[0].Text != MsgMissingDeparture {
		t.Errorf("unexpected messages %+v", msgs)
	}
}

// --- submission ---

func TestSubmitHotelBooking(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"confirmed", nil, "✅ Booking confirmed at *Taj Goa* from *2025-05-01* for *3* nights with *2* guests."},
		{"missing slots", services.ErrMissingSlots, MsgHotelMissingInfo},
		{"unknown user", services.ErrUserNotFound, MsgUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booker := &fakeBooker{err: tt.err}
			tracker := Tracker{
				SenderID: "alice",
				Slots: map[string]interface{}{
					"hotel_name":    "Taj Goa",
					"check_in_date": "2025-05-01",
					"nights":        float64(3),
					"guests":        "2",
				},
			}
			events, msgs := run(t, &SubmitHotelBooking{Bookings: booker}, tracker)

			if len(events) != 0 {
				t.Errorf("submission must not set slots, got %v", events)
			}
			if len(msgs) != 1 || msgs[0].Text != tt.wantMsg {
				t.Fatalf("got %+v, want %q", msgs, tt.wantMsg)
			}
			if booker.username != "alice" || booker.hotelSlots.Nights != 3 || booker.hotelSlots.Guests != 2 {
				t.Errorf("unexpected call: user=%q slots=%+v", booker.username, booker.hotelSlots)
			}
		})
	}
}

func TestSubmitFlightBookingSurfacesPersistenceErrors(t *testing.T) {
	booker := &fakeBooker{err: errors.New("disk full")}
	tracker := Tracker{
		SenderID: "bob",
		Slots:    map[string]interface{}{"departure": "Delhi", "destination": "Mumbai", "travel_date": "2025-06-01"},
	}
	d := &Dispatcher{}
	if _, err := (&SubmitFlightBooking{Bookings: booker}).Run(context.Background(), d, &tracker); err == nil {
		t.Fatal("expected the persistence error to be returned")
	}
	if len(d.Messages) != 0 {
		t.Errorf("no message expected on persistence error, got %+v", d.Messages)
	}
}

func TestSubmitFlightBookingMissingInfo(t *testing.T) {
	booker := &fakeBooker{err: services.ErrMissingSlots}
	_, msgs := run(t, &SubmitFlightBooking{Bookings: booker}, Tracker{SenderID: "bob"})
	if len(msgs) != 1 || msgs[0].Text != MsgFlightMissingInfo {
		t.Errorf("got %+v", msgs)
	}
}

// --- catalog ---

func TestShowHotelsByLocation(t *testing.T) {
	img := "hotel_images/goa.webp"
	catalog := &fakeCatalog{hotels: []models.Hotel{
		{ID: 1, Name: "Taj Goa", Location: "Goa", Rating: 4.5, PricePerNight: 8000, Image: &img},
		{ID: 2, Name: "Sea Breeze", Location: "North Goa", Rating: 4, PricePerNight: 3500},
	}}
	action := &ShowHotelsByLocation{Catalog: catalog, Media: utils.MediaBase("http://localhost:8000/media/")}

	t.Run("no location", func(t *testing.T) {
		_, msgs := run(t, action, Tracker{})
		if len(msgs) != 1 || msgs[0].Text != "Please provide a location to search for hotels." {
			t.Errorf("got %+v", msgs)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		_, msgs := run(t, action, Tracker{Slots: map[string]interface{}{"location": "Paris"}})
		if len(msgs) != 1 || msgs[0].Text != "Sorry, no hotels found in Paris." || msgs[0].Custom != nil {
			t.Errorf("expected a plain text message, got %+v", msgs)
		}
	})

	t.Run("cards", func(t *testing.T) {
		_, msgs := run(t, action, Tracker{Slots: map[string]interface{}{"location": "goa"}})
		if len(msgs) != 1 {
			t.Fatalf("got %+v", msgs)
		}
		set, ok := msgs[0].Custom.(utils.CardSet)
		if !ok || set.Type != utils.CardTypeHotels || len(set.Cards) != 2 {
			t.Fatalf("unexpected custom payload %#v", msgs[0].Custom)
		}
		if set.Cards[1].Image != "http://localhost:8000/media/hotel_images/default.webp" {
			t.Errorf("hotel without image must use the default, got %q", set.Cards[1].Image)
		}
		if set.Cards[0].Buttons[0].Payload != `/book_hotel{"hotel_name":"Taj Goa"}` {
			t.Errorf("unexpected payload %q", set.Cards[0].Buttons[0].Payload)
		}
	})

	t.Run("lookup failure", func(t *testing.T) {
		failing := &ShowHotelsByLocation{Catalog: &fakeCatalog{hotelsErr: errors.New("db down")}}
		_, msgs := run(t, failing, Tracker{Slots: map[string]interface{}{"location": "Goa"}})
		if len(msgs) != 1 || msgs[0].Text != "Failed to fetch hotel data. Please try again later." {
			t.Errorf("got %+v", msgs)
		}
	})
}

func TestPackageDetail(t *testing.T) {
	action := &PackageDetail{Catalog: &fakeCatalog{packages: testPackages}}

	t.Run("hit sets location and package", func(t *testing.T) {
		events, msgs := run(t, action, Tracker{Slots: map[string]interface{}{"package_name": "goa getaway"}})
		if len(events) != 2 ||
			events[0]["name"] != "location" || events[0]["value"] != "Goa" ||
			events[1]["name"] != "package_name" || events[1]["value"] != "Goa Getaway" {
			t.Fatalf("unexpected events %v", events)
		}
		if len(msgs) != 1 || len(msgs[0].Buttons) != 3 {
			t.Fatalf("unexpected messages %+v", msgs)
		}
		if !strings.Contains(msgs[0].Text, "📦 *Goa Getaway*") {
			t.Errorf("detail text missing the package name: %q", msgs[0].Text)
		}
	})

	t.Run("miss offers a single way back", func(t *testing.T) {
		events, msgs := run(t, action, Tracker{Slots: map[string]interface{}{"package_name": "Atlantis"}})
		if len(events) != 0 {
			t.Errorf("a miss must not set slots, got %v", events)
		}
		if len(msgs) != 1 || msgs[0].Text != "Sorry, I couldn’t find a travel package named 'Atlantis'." {
			t.Fatalf("unexpected messages %+v", msgs)
		}
		if len(msgs[0].Buttons) != 1 || msgs[0].Buttons[0] != utils.BackToPackagesButton() {
			t.Errorf("expected only the back button, got %+v", msgs[0].Buttons)
		}
	})

	t.Run("no name", func(t *testing.T) {
		_, msgs := run(t, action, Tracker{})
		if len(msgs) != 1 || msgs[0].Text != "Please specify which travel package you're interested in." {
			t.Errorf("got %+v", msgs)
		}
	})
}

func TestShowDestinations(t *testing.T) {
	action := &ShowDestinations{Catalog: &fakeCatalog{packages: testPackages}}

	_, msgs := run(t, action, Tracker{Slots: map[string]interface{}{"category": "Beach"}})
	if len(msgs) != 1 || msgs[0].Text != "Here are the Beach destinations available:" {
		t.Fatalf("got %+v", msgs)
	}
	if len(msgs[0].Buttons) != 1 || msgs[0].Buttons[0].Title != "Goa" ||
		msgs[0].Buttons[0].Payload != `/package_detail{"package_name":"Goa Getaway"}` {
		t.Errorf("unexpected buttons %+v", msgs[0].Buttons)
	}

	_, msgs = run(t, action, Tracker{Slots: map[string]interface{}{"category": "city"}})
	if len(msgs) != 1 || msgs[0].Text != "Sorry, we couldn't find any packages in the city category." {
		t.Errorf("got %+v", msgs)
	}
}

func TestShowTravelPackages(t *testing.T) {
	_, msgs := run(t, &ShowTravelPackages{Catalog: &fakeCatalog{}}, Tracker{})
	if len(msgs) != 1 || msgs[0].Text != "Sorry, no travel packages are currently available." {
		t.Fatalf("got %+v", msgs)
	}

	_, msgs = run(t, &ShowTravelPackages{Catalog: &fakeCatalog{packages: testPackages}}, Tracker{})
	if len(msgs) != 1 || len(msgs[0].Buttons) != 2 {
		t.Fatalf("got %+v", msgs)
	}
	if !strings.Contains(msgs[0].Text, "- Goa Getaway in Goa for 4 days at ₹15000.00") {
		t.Errorf("unexpected listing %q", msgs[0].Text)
	}
}

// --- messages ---

func TestSaveMessage(t *testing.T) {
	saver := &fakeSaver{}
	tracker := Tracker{
		SenderID:      "alice",
		LatestMessage: LatestMessage{Text: "show packages"},
		Events: []Event{
			{"event": "bot", "text": "Older"},
			{"event": "user", "text": "show packages"},
			{"event": "bot", "text": "Here are some available travel packages"},
			{"event": "bot", "text": ""},
		},
	}
	run(t, &SaveMessage{Messages: saver}, tracker)
	if saver.username != "alice" || saver.message != "show packages" || saver.response != "Here are some available travel packages" {
		t.Errorf("unexpected save %+v", saver)
	}

	saver = &fakeSaver{err: services.ErrUserNotFound}
	run(t, &SaveMessage{Messages: saver}, Tracker{SenderID: "ghost"})
	if saver.response != "No response" {
		t.Errorf("expected default response, got %q", saver.response)
	}
}

// --- registry ---

func TestRegistryRun(t *testing.T) {
	r := NewDefaultRegistry(Dependencies{
		Bookings: &fakeBooker{},
		Catalog:  &fakeCatalog{packages: testPackages},
		Messages: &fakeSaver{},
	})

	if _, err := r.Run(context.Background(), Request{NextAction: "action_fly_to_moon"}); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}

	resp, err := r.Run(context.Background(), Request{
		NextAction: "action_cancel_booking",
		SenderID:   "alice",
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Events == nil || len(resp.Responses) != 1 {
		t.Errorf("unexpected response %+v", resp)
	}

	if got := len(r.Names()); got != 11 {
		t.Errorf("expected 11 registered actions, got %d", got)
	}
}

func TestRegistryUsesTopLevelSender(t *testing.T) {
	booker := &fakeBooker{}
	r := NewRegistry(&SubmitFlightBooking{Bookings: booker})
	_, err := r.Run(context.Background(), Request{
		NextAction: "action_submit_flight_booking",
		SenderID:   "carol",
		Tracker:    Tracker{Slots: map[string]interface{}{"departure": "A", "destination": "B", "travel_date": "2025-01-01"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if booker.username != "carol" {
		t.Errorf("sender = %q, want carol", booker.username)
	}
}
