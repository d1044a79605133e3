package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"travel-backend/models"

	"gorm.io/gorm"
)

// CatalogService reads the admin-managed reference data: packages, hotels and flights.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a LIKE pattern matching s anywhere, with '!' as escape char.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// ListPackages returns at most limit packages; limit <= 0 means no limit.
func (s *CatalogService) ListPackages(ctx context.Context, limit int) ([]models.TravelPackage, error) {
	q := s.DB.WithContext(ctx).Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var list []models.TravelPackage
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve travel packages: %w", err)
	}
	return list, nil
}

// PackagesByCategory matches the category case-insensitively.
func (s *CatalogService) PackagesByCategory(ctx context.Context, category string) ([]models.TravelPackage, error) {
	var list []models.TravelPackage
	err := s.DB.WithContext(ctx).
		Where("LOWER(category) = ?", strings.ToLower(strings.TrimSpace(category))).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve %q packages: %w", category, err)
	}
	return list, nil
}

// PackageByName is a case-insensitive exact match; a miss is ErrPackageNotFound.
func (s *CatalogService) PackageByName(ctx context.Context, name string) (*models.TravelPackage, error) {
	var pkg models.TravelPackage
	err := s.DB.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Order("id ASC").
		First(&pkg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to find package %q: %w", name, err)
	}
	return &pkg, nil
}

// SearchHotels returns hotels whose location contains location, ignoring case.
// A blank location returns every hotel.
func (s *CatalogService) SearchHotels(ctx context.Context, location string) ([]models.Hotel, error) {
	q := s.DB.WithContext(ctx).Model(&models.Hotel{})
	if loc := strings.TrimSpace(location); loc != "" {
		q = q.Where("LOWER(location) LIKE ? ESCAPE '!'", containsPattern(loc))
	}
	var list []models.Hotel
	if err := q.Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to search hotels: %w", err)
	}
	return list, nil
}

// ListHotels returns at most limit hotels; limit <= 0 means no limit.
func (s *CatalogService) ListHotels(ctx context.Context, limit int) ([]models.Hotel, error) {
	q := s.DB.WithContext(ctx).Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var list []models.Hotel
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve hotels: %w", err)
	}
	return list, nil
}

// ListFlights returns at most limit flights; limit <= 0 means no limit.
func (s *CatalogService) ListFlights(ctx context.Context, limit int) ([]models.Flight, error) {
	q := s.DB.WithContext(ctx).Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var list []models.Flight
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve flights: %w", err)
	}
	return list, nil
}
