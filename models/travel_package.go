package models

import "strings"

type PackageCategory string

const (
	CategoryBeach    PackageCategory = "beach"
	CategoryMountain PackageCategory = "mountain"
	CategoryCity     PackageCategory = "city"
)

// PackageCategories lists the categories in display order.
var PackageCategories = []PackageCategory{CategoryBeach, CategoryMountain, CategoryCity}

func (c PackageCategory) Valid() bool {
	switch c {
	case CategoryBeach, CategoryMountain, CategoryCity:
		return true
	}
	return false
}

func (c PackageCategory) Label() string {
	switch c {
	case CategoryBeach:
		return "Beach Holiday"
	case CategoryMountain:
		return "Mountain Adventure"
	case CategoryCity:
		return "City Tour"
	}
	return string(c)
}

// ParsePackageCategory accepts any casing ("Beach", "CITY").
func ParsePackageCategory(raw string) (PackageCategory, bool) {
	c := PackageCategory(strings.ToLower(strings.TrimSpace(raw)))
	return c, c.Valid()
}

// TravelPackage is admin-managed reference data.
type TravelPackage struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:100;not null" json:"name"`
	Destination  string          `gorm:"size:100;not null" json:"destination"`
	Description  string          `gorm:"type:text" json:"description"`
	Price        float64         `gorm:"type:decimal(10,2)" json:"price"`
	DurationDays int             `gorm:"column:duration_days" json:"duration_days"`
	Category     PackageCategory `gorm:"size:20;index" json:"category"`
}
