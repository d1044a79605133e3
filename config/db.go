package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"travel-backend/models"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func mustParseTime(layout, value string) time.Time {
	t, err := time.Parse(layout, value)
	if err != nil {
		log.Fatalf("Error parsing time for seeding (%s): %v", value, err)
	}
	return t
}

func strPtr(s string) *string { return &s }

// SeedDatabase fills the reference tables (packages, hotels, flights) when they are empty.
func SeedDatabase(db *gorm.DB) error {
	// ---------------- Travel packages ----------------
	var pkgCount int64
	if err := db.Model(&models.TravelPackage{}).Count(&pkgCount).Error; err != nil {
		return fmt.Errorf("count travel packages: %w", err)
	}
	if pkgCount == 0 {
		packages := []models.TravelPackage{
			{Name: "Goa Beach Escape", Destination: "Goa", Description: "Sun, sand and seafood on the Konkan coast.", Price: 18999, DurationDays: 5, Category: models.CategoryBeach},
			{Name: "Andaman Island Hopper", Destination: "Port Blair", Description: "Havelock, Neil Island and coral snorkelling.", Price: 32999, DurationDays: 6, Category: models.CategoryBeach},
			{Name: "Manali Snow Trail", Destination: "Manali", Description: "Solang valley, Rohtang pass and old Manali cafes.", Price: 15999, DurationDays: 4, Category: models.CategoryMountain},
			{Name: "Leh Ladakh Expedition", Destination: "Leh", Description: "Pangong lake, Nubra valley and Khardung La.", Price: 41999, DurationDays: 8, Category: models.CategoryMountain},
			{Name: "Jaipur Heritage Walk", Destination: "Jaipur", Description: "Amber fort, Hawa Mahal and the old bazaars.", Price: 12999, DurationDays: 3, Category: models.CategoryCity},
			{Name: "Mumbai City Lights", Destination: "Mumbai", Description: "Marine drive, Colaba and a Bollywood studio tour.", Price: 14999, DurationDays: 3, Category: models.CategoryCity},
		}
		if err := db.Create(&packages).Error; err != nil {
			return fmt.Errorf("seed travel packages: %w", err)
		}
		zap.L().Info("🌱 Travel packages seeded", zap.Int("count", len(packages)))
	}

	// ---------------- Hotels ----------------
	var hotelCount int64
	if err := db.Model(&models.Hotel{}).Count(&hotelCount).Error; err != nil {
		return fmt.Errorf("count hotels: %w", err)
	}
	if hotelCount == 0 {
		hotels := []models.Hotel{
			{Name: "Snow Valley Resort", Location: "Manali", Rating: 4.5, PricePerNight: 4500, Amenities: "WiFi, Heater, Mountain view", Image: strPtr("hotel_images/manali.webp")},
			{Name: "Riverside Cottages", Location: "Old Manali", Rating: 4.1, PricePerNight: 2800, Amenities: "WiFi, Breakfast", Image: nil},
			{Name: "Palm Grove Beach Hotel", Location: "Goa", Rating: 4.3, PricePerNight: 6200, Amenities: "Pool, Beach access, Bar", Image: strPtr("hotel_images/goa.webp")},
			{Name: "Pink City Palace", Location: "Jaipur", Rating: 4.7, PricePerNight: 7800, Amenities: "Pool, Spa, Heritage rooms", Image: strPtr("hotel_images/jaipur.webp")},
			{Name: "Sea Breeze Inn", Location: "Mumbai", Rating: 3.9, PricePerNight: 5100, Amenities: "WiFi, Gym", Image: nil},
		}
		if err := db.Create(&hotels).Error; err != nil {
			return fmt.Errorf("seed hotels: %w", err)
		}
		zap.L().Info("🌱 Hotels seeded", zap.Int("count", len(hotels)))
	}

	// ---------------- Flights ----------------
	var flightCount int64
	if err := db.Model(&models.Flight{}).Count(&flightCount).Error; err != nil {
		return fmt.Errorf("count flights: %w", err)
	}
	if flightCount == 0 {
		flights := []models.Flight{
			{FlightNumber: "AI101", Origin: "DEL", Destination: "BOM", DepartureTime: mustParseTime(time.RFC3339, "2026-11-02T06:30:00Z"), Price: 200, SeatsAvailable: 42},
			{FlightNumber: "6E202", Origin: "DEL", Destination: "BLR", DepartureTime: mustParseTime(time.RFC3339, "2026-11-02T09:15:00Z"), Price: 250, SeatsAvailable: 18},
			{FlightNumber: "UK303", Origin: "BOM", Destination: "GOI", DepartureTime: mustParseTime(time.RFC3339, "2026-11-03T13:45:00Z"), Price: 120, SeatsAvailable: 60},
			{FlightNumber: "SG404", Origin: "DEL", Destination: "IXL", DepartureTime: mustParseTime(time.RFC3339, "2026-11-04T05:10:00Z"), Price: 310, SeatsAvailable: 9},
		}
		if err := db.Create(&flights).Error; err != nil {
			return fmt.Errorf("seed flights: %w", err)
		}
		zap.L().Info("🌱 Flights seeded", zap.Int("count", len(flights)))
	}

	return nil
}

func mysqlDSNFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, dbName, nil
}

func resolveMySQLDSN(cfg Config) (string, string, error) {
	raw := strings.TrimSpace(cfg.MySQLURL)
	if raw == "" {
		raw = strings.TrimSpace(cfg.DatabaseURL)
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, strings.TrimSpace(cfg.DBName), nil
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)
	return dsn, cfg.DBName, nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logger.Info
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	}
	return logger.Warn
}

// Migrate creates or updates every table, parents before children.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.TravelPackage{},
		&models.Hotel{},
		&models.Flight{},
		&models.Booking{},
		&models.HotelBooking{},
		&models.FlightBooking{},
		&models.UserMessage{},
	)
}

func ConnectDatabase(cfg Config) (*gorm.DB, error) {
	dsn, dbName, err := resolveMySQLDSN(cfg)
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  !cfg.IsProduction(),
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, fmt.Errorf("open mysql %q: %w", dbName, err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		zap.L().Warn("cannot get raw sql.DB", zap.Error(err))
	}

	if cfg.DBAutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}
	if cfg.DBSeed {
		if err := SeedDatabase(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}
