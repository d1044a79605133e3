package utils

import (
	"encoding/json"
	"testing"
	"time"

	"travel-backend/models"
)

func TestIntentPayload(t *testing.T) {
	tests := []struct {
		intent   string
		entities map[string]string
		want     string
	}{
		{"book_flight", nil, "/book_flight"},
		{"/travel_packages", map[string]string{}, "/travel_packages"},
		{"book_hotel", map[string]string{"hotel_name": "Taj Goa"}, `/book_hotel{"hotel_name":"Taj Goa"}`},
		{"book_hotel", map[string]string{"hotel_name": `The "Grand"`}, `/book_hotel{"hotel_name":"The \"Grand\""}`},
	}
	for _, tt := range tests {
		if got := IntentPayload(tt.intent, tt.entities); got != tt.want {
			t.Errorf("IntentPayload(%q) = %q, want %q", tt.intent, got, tt.want)
		}
	}
}

func TestHotelCard(t *testing.T) {
	media := MediaBase("http://localhost:8000/media/")
	own := "hotel_images/taj.webp"

	withImage := HotelCard(models.Hotel{Name: "Taj Goa", Location: "Goa", Rating: 4.5, PricePerNight: 8000, Image: &own}, media)
	if withImage.Image != "http://localhost:8000/media/hotel_images/taj.webp" {
		t.Errorf("image = %q", withImage.Image)
	}
	if withImage.Price != "8000.00" || withImage.Rating == nil || *withImage.Rating != "4.5" {
		t.Errorf("price/rating = %q/%v", withImage.Price, withImage.Rating)
	}
	if len(withImage.Buttons) != 1 || withImage.Buttons[0].Payload != `/book_hotel{"hotel_name":"Taj Goa"}` {
		t.Errorf("buttons = %+v", withImage.Buttons)
	}

	noImage := HotelCard(models.Hotel{Name: "Snow Inn"}, media)
	if noImage.Image != "http://localhost:8000/media/"+models.DefaultHotelImage {
		t.Errorf("default image = %q", noImage.Image)
	}
}

func TestHotelCardKeepsContractKeys(t *testing.T) {
	b, err := json.Marshal(HotelCard(models.Hotel{Name: "Bare Rooms", Location: "Pune"}, MediaBase("http://localhost:8000/media/")))
	if err != nil {
		t.Fatal(err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"image", "title", "subtitle", "rating", "price", "amenities", "buttons"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("hotel card without amenities lost %q: %s", key, b)
		}
	}
	if string(fields["amenities"]) != `""` || string(fields["rating"]) != `"0.0"` {
		t.Errorf("unexpected values: %s", b)
	}
}

func TestFlightCardsJSON(t *testing.T) {
	dep := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
	set := FlightCards([]models.Flight{{FlightNumber: "AI101", Origin: "DEL", Destination: "BOM", DepartureTime: dep, Price: 200, SeatsAvailable: 40}})

	b, err := json.Marshal(set)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Type  string `json:"type"`
		Cards []struct {
			Title     string  `json:"title"`
			Subtitle  string  `json:"subtitle"`
			Departure string  `json:"departure"`
			Seats     string  `json:"seats"`
			Image     *string `json:"image"`
			Rating    *string `json:"rating"`
		} `json:"cards"`
	}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Type != CardTypeFlights || len(decoded.Cards) != 1 {
		t.Fatalf("unexpected %s", b)
	}
	c := decoded.Cards[0]
	if c.Title != "AI101" || c.Subtitle != "DEL to BOM" || c.Departure != "2025-05-01T09:30:00Z" || c.Seats != "40" || c.Image != nil || c.Rating != nil {
		t.Errorf("unexpected card %s", b)
	}
}

func TestCategoryButtons(t *testing.T) {
	buttons := CategoryButtons()
	if len(buttons) != 3 {
		t.Fatalf("got %d buttons", len(buttons))
	}
	if buttons[0].Title != "🏖️ Beach Holidays" || buttons[0].Payload != `/show_destinations{"category":"beach"}` {
		t.Errorf("first button = %+v", buttons[0])
	}
}

func TestPackageDetail(t *testing.T) {
	p := models.TravelPackage{Name: "Goa Getaway", Destination: "Goa", Description: "Sun and sand", Price: 15000, DurationDays: 4}
	want := "📦 *Goa Getaway*\n📍 Destination: Goa\n🗒️ Sun and sand\n💰 Price: ₹15000.00\n⏱️ Duration: 4 days"
	if got := PackageDetailText(p); got != want {
		t.Errorf("PackageDetailText = %q", got)
	}
	buttons := PackageDetailButtons(p)
	if len(buttons) != 3 || buttons[1].Payload != `/search_hotels{"location":"Goa"}` || buttons[2].Payload != "/travel_packages" {
		t.Errorf("buttons = %+v", buttons)
	}
}
