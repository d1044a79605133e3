package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"travel-backend/models"
	"travel-backend/services"
	"travel-backend/utils"

	"go.uber.org/zap"
)

// Catalog is the read side of services.CatalogService.
type Catalog interface {
	ListPackages(ctx context.Context, limit int) ([]models.TravelPackage, error)
	PackagesByCategory(ctx context.Context, category string) ([]models.TravelPackage, error)
	PackageByName(ctx context.Context, name string) (*models.TravelPackage, error)
	SearchHotels(ctx context.Context, location string) ([]models.Hotel, error)
}

type ShowHotelsByLocation struct {
	Catalog Catalog
	Media   utils.MediaBase
}

func (a *ShowHotelsByLocation) Name() string { return "action_show_hotels_by_location" }

func (a *ShowHotelsByLocation) Run(ctx context.Context, d *Dispatcher, t *Tracker) ([]Event, error) {
	location := t.SlotString("location")
	if location == "" {
		d.Utter("Please provide a location to search for hotels.")
		return []Event{}, nil
	}

	hotels, err := a.Catalog.SearchHotels(ctx, location)
	if err != nil {
		zap.L().Error("hotel search failed", zap.String("location", location), zap.Error(err))
		d.Utter("Failed to fetch hotel data. Please try again later.")
		return []Event{}, nil
	}
	if len(hotels) == 0 {
		d.Utter(fmt.Sprintf("Sorry, no hotels found in %s.", location))
		return []Event{}, nil
	}
	d.UtterCustom(utils.HotelCards(hotels, a.Media))
	return []Event{}, nil
}

type ShowTravelPackages struct {
	Catalog Catalog
}

func (a *ShowTravelPackages) Name() string { return "action_show_travel_packages" }

func (a *ShowTravelPackages) Run(ctx context.Context, d *Dispatcher, _ *Tracker) ([]Event, error) {
	packages, err := a.Catalog.ListPackages(ctx, 0)
	if err != nil {
		return nil, err
	}
	if len(packages) == 0 {
		d.Utter("Sorry, no travel packages are currently available.")
		return []Event{}, nil
	}

	var sb strings.Builder
	sb.WriteString("Here are some available travel packages:\n")
	buttons := make([]utils.Button, 0, len(packages))
	for _, p := range packages {
		fmt.Fprintf(&sb, "- %s in %s for %d days at ₹%s\n", p.Name, p.Destination, p.DurationDays, utils.FormatPrice(p.Price))
		buttons = append(buttons, utils.PackageButton(p))
	}
	d.UtterButtons(sb.String(), buttons)
	return []Event{}, nil
}

type ShowCategories struct{}

func (ShowCategories) Name() string { return "action_show_categories" }

func (ShowCategories) Run(_ context.Context, d *Dispatcher, _ *Tracker) ([]Event, error) {
	d.UtterButtons("Choose a travel category:", utils.CategoryButtons())
	return []Event{}, nil
}

type ShowDestinations struct {
	Catalog Catalog
}

func (a *ShowDestinations) Name() string { return "action_show_destinations" }

func (a *ShowDestinations) Run(ctx context.Context, d *Dispatcher, t *Tracker) ([]Event, error) {
	category := t.SlotString("category")
	if category == "" {
		d.Utter("Please specify a category (beach, mountain, city).")
		return []Event{}, nil
	}

	packages, err := a.Catalog.PackagesByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(packages) == 0 {
		d.Utter(fmt.Sprintf("Sorry, we couldn't find any packages in the %s category.", category))
		return []Event{}, nil
	}

	buttons := make([]utils.Button, 0, len(packages))
	for _, p := range packages {
		buttons = append(buttons, utils.DestinationButton(p))
	}
	d.UtterButtons(fmt.Sprintf("Here are the %s destinations available:", category), buttons)
	return []Event{}, nil
}

// PackageDetail shows one package and remembers its destination so a
// following hotel search needs no location.
type PackageDetail struct {
	Catalog Catalog
}

func (a *PackageDetail) Name() string { return "action_package_detail" }

func (a *PackageDetail) Run(ctx context.Context, d *Dispatcher, t *Tracker) ([]Event, error) {
	name := t.SlotString("package_name")
	if name == "" {
		d.Utter("Please specify which travel package you're interested in.")
		return []Event{}, nil
	}

	pkg, err := a.Catalog.PackageByName(ctx, name)
	if errors.Is(err, services.ErrPackageNotFound) {
		d.UtterButtons(fmt.Sprintf("Sorry, I couldn’t find a travel package named '%s'.", name),
			[]utils.Button{utils.BackToPackagesButton()})
		return []Event{}, nil
	}
	if err != nil {
		return nil, err
	}

	d.UtterButtons(utils.PackageDetailText(*pkg), utils.PackageDetailButtons(*pkg))
	return []Event{
		SlotSet("location", pkg.Destination),
		SlotSet("package_name", pkg.Name),
	}, nil
}
