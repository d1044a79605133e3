package utils

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"travel-backend/models"
)

//
// ===========================================================
//  UI PAYLOAD TYPES
// ===========================================================
//

// Button is a quick-reply. Payload is sent back to the dialogue engine verbatim
// when clicked, so it usually carries an intent plus JSON entities.
type Button struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// Card is one carousel entry. Hotel cards always carry image, rating and
// amenities (possibly empty); flight cards carry departure and seats instead.
type Card struct {
	Image     string   `json:"image,omitempty"`
	Title     string   `json:"title"`
	Subtitle  string   `json:"subtitle"`
	Rating    *string  `json:"rating,omitempty"`
	Price     string   `json:"price"`
	Amenities *string  `json:"amenities,omitempty"`
	Departure string   `json:"departure,omitempty"`
	Seats     string   `json:"seats,omitempty"`
	Buttons   []Button `json:"buttons"`
}

const (
	CardTypeHotels  = "hotel_cards"
	CardTypeFlights = "flight_cards"
)

// CardSet is the "custom" payload the chat front-end renders as a carousel.
type CardSet struct {
	Type  string `json:"type"`
	Cards []Card `json:"cards"`
}

//
// ===========================================================
//  PAYLOAD BUILDERS
// ===========================================================
//

// IntentPayload renders `/<intent>{"key":"value"}`. Entities are JSON-encoded so
// names containing quotes stay parseable by the dialogue engine.
func IntentPayload(intent string, entities map[string]string) string {
	intent = "/" + strings.TrimPrefix(strings.TrimSpace(intent), "/")
	if len(entities) == 0 {
		return intent
	}
	b, err := json.Marshal(entities)
	if err != nil {
		return intent
	}
	return intent + string(b)
}

func FormatPrice(v float64) string  { return fmt.Sprintf("%.2f", v) }
func FormatRating(v float64) string { return fmt.Sprintf("%.1f", v) }

// HotelImage returns the hotel's own image path or the shared default.
func HotelImage(h models.Hotel) string {
	if h.Image != nil && strings.TrimSpace(*h.Image) != "" {
		return *h.Image
	}
	return models.DefaultHotelImage
}

func HotelCard(h models.Hotel, media MediaBase) Card {
	rating := FormatRating(h.Rating)
	amenities := h.Amenities
	return Card{
		Image:     media.URL(HotelImage(h)),
		Title:     h.Name,
		Subtitle:  h.Location,
		Rating:    &rating,
		Price:     FormatPrice(h.PricePerNight),
		Amenities: &amenities,
		Buttons: []Button{
			{Title: "Book Now", Payload: IntentPayload("book_hotel", map[string]string{"hotel_name": h.Name})},
		},
	}
}

func HotelCards(hotels []models.Hotel, media MediaBase) CardSet {
	cards := make([]Card, 0, len(hotels))
	for _, h := range hotels {
		cards = append(cards, HotelCard(h, media))
	}
	return CardSet{Type: CardTypeHotels, Cards: cards}
}

func FlightCard(f models.Flight) Card {
	return Card{
		Title:     f.FlightNumber,
		Subtitle:  fmt.Sprintf("%s to %s", f.Origin, f.Destination),
		Price:     FormatPrice(f.Price),
		Departure: f.DepartureTime.Format(time.RFC3339),
		Seats:     fmt.Sprintf("%d", f.SeatsAvailable),
		Buttons: []Button{
			{Title: "Book Now", Payload: IntentPayload("book_flight", map[string]string{"flight_number": f.FlightNumber})},
		},
	}
}

func FlightCards(flights []models.Flight) CardSet {
	cards := make([]Card, 0, len(flights))
	for _, f := range flights {
		cards = append(cards, FlightCard(f))
	}
	return CardSet{Type: CardTypeFlights, Cards: cards}
}

// PackageButton opens the detail view of a package.
func PackageButton(p models.TravelPackage) Button {
	return Button{Title: p.Name, Payload: IntentPayload("package_detail", map[string]string{"package_name": p.Name})}
}

// DestinationButton is PackageButton titled with the destination instead of the package name.
func DestinationButton(p models.TravelPackage) Button {
	b := PackageButton(p)
	b.Title = p.Destination
	return b
}

var categoryIcons = map[models.PackageCategory]string{
	models.CategoryBeach:    "🏖️",
	models.CategoryMountain: "⛰️",
	models.CategoryCity:     "🏙️",
}

func CategoryButtons() []Button {
	buttons := make([]Button, 0, len(models.PackageCategories))
	for _, c := range models.PackageCategories {
		buttons = append(buttons, Button{
			Title:   fmt.Sprintf("%s %ss", categoryIcons[c], c.Label()),
			Payload: IntentPayload("show_destinations", map[string]string{"category": string(c)}),
		})
	}
	return buttons
}

func BackToPackagesButton() Button {
	return Button{Title: "Back to Packages", Payload: "/travel_packages"}
}

// PackageDetailText renders the package summary shown above the detail buttons.
func PackageDetailText(p models.TravelPackage) string {
	return fmt.Sprintf("📦 *%s*\n📍 Destination: %s\n🗒️ %s\n💰 Price: ₹%s\n⏱️ Duration: %d days",
		p.Name, p.Destination, p.Description, FormatPrice(p.Price), p.DurationDays)
}

func PackageDetailButtons(p models.TravelPackage) []Button {
	return []Button{
		{Title: "Book a Flight", Payload: "/book_flight"},
		{Title: "Search Hotels", Payload: IntentPayload("search_hotels", map[string]string{"location": p.Destination})},
		BackToPackagesButton(),
	}
}
