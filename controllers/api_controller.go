package controllers

import (
	"errors"
	"net/http"
	"strings"

	"travel-backend/middleware"
	"travel-backend/models"
	"travel-backend/serializers"
	"travel-backend/services"
	"travel-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIController serves the read-only JSON lists.
type APIController struct {
	Catalog  *services.CatalogService
	Bookings *services.BookingService
	Messages *services.MessageService
	Users    *services.UserService
}

func NewAPIController(catalog *services.CatalogService, bookings *services.BookingService,
	messages *services.MessageService, users *services.UserService) *APIController {
	return &APIController{Catalog: catalog, Bookings: bookings, Messages: messages, Users: users}
}

func internalError(ctx *gin.Context, what string, err error) {
	zap.L().Error(what, zap.Error(err), zap.String("path", ctx.Request.URL.Path))
	utils.JSONError(ctx, http.StatusInternalServerError, "internal server error")
}

// GET /api/travel-packages[?category=beach]
func (c *APIController) GetTravelPackages(ctx *gin.Context) {
	var (
		list []models.TravelPackage
		err  error
	)
	if raw := strings.TrimSpace(ctx.Query("category")); raw != "" {
		category, ok := models.ParsePackageCategory(raw)
		if !ok {
			utils.JSONError(ctx, http.StatusBadRequest, "category must be one of beach, mountain, city")
			return
		}
		list, err = c.Catalog.PackagesByCategory(ctx.Request.Context(), string(category))
	} else {
		list, err = c.Catalog.ListPackages(ctx.Request.Context(), 0)
	}
	if err != nil {
		internalError(ctx, "list packages", err)
		return
	}
	ctx.JSON(http.StatusOK, serializers.TravelPackages(list))
}

// GET /api/hotels[?location=goa]
func (c *APIController) GetHotels(ctx *gin.Context) {
	list, err := c.Catalog.SearchHotels(ctx.Request.Context(), ctx.Query("location"))
	if err != nil {
		internalError(ctx, "search hotels", err)
		return
	}
	ctx.JSON(http.StatusOK, serializers.Hotels(list, utils.MediaBaseFromRequest(ctx.Request)))
}

// GET /api/flights
func (c *APIController) GetFlights(ctx *gin.Context) {
	list, err := c.Catalog.ListFlights(ctx.Request.Context(), 0)
	if err != nil {
		internalError(ctx, "list flights", err)
		return
	}
	ctx.JSON(http.StatusOK, serializers.Flights(list))
}

// GET /api/bookings
func (c *APIController) GetBookings(ctx *gin.Context) {
	userID, _, _ := middleware.CurrentUser(ctx)
	list, err := c.Bookings.ListForUser(ctx.Request.Context(), userID)
	if err != nil {
		internalError(ctx, "list bookings", err)
		return
	}
	ctx.JSON(http.StatusOK, serializers.Bookings(list, utils.MediaBaseFromRequest(ctx.Request)))
}

// GET /api/bookings/hotels
func (c *APIController) GetHotelBookings(ctx *gin.Context) {
	userID, _, _ := middleware.CurrentUser(ctx)
	list, err := c.Bookings.HotelBookingsForUser(ctx.Request.Context(), userID)
	if err != nil {
		internalError(ctx, "list hotel bookings", err)
		return
	}
	out := make([]serializers.HotelBookingRecord, 0, len(list))
	for _, b := range list {
		out = append(out, serializers.HotelBooking(b))
	}
	ctx.JSON(http.StatusOK, out)
}

// GET /api/bookings/flights
func (c *APIController) GetFlightBookings(ctx *gin.Context) {
	userID, _, _ := middleware.CurrentUser(ctx)
	list, err := c.Bookings.FlightBookingsForUser(ctx.Request.Context(), userID)
	if err != nil {
		internalError(ctx, "list flight bookings", err)
		return
	}
	out := make([]serializers.FlightBookingRecord, 0, len(list))
	for _, b := range list {
		out = append(out, serializers.FlightBooking(b))
	}
	ctx.JSON(http.StatusOK, out)
}

// GET /api/messages
func (c *APIController) GetMessages(ctx *gin.Context) {
	userID, _, _ := middleware.CurrentUser(ctx)
	list, err := c.Messages.ListForUser(ctx.Request.Context(), userID, false)
	if err != nil {
		internalError(ctx, "list messages", err)
		return
	}
	ctx.JSON(http.StatusOK, serializers.UserMessages(list, utils.MediaBaseFromRequest(ctx.Request)))
}

// GET /api/profile
func (c *APIController) GetProfile(ctx *gin.Context) {
	userID, _, _ := middleware.CurrentUser(ctx)
	user, err := c.Users.GetByID(ctx.Request.Context(), userID)
	if errors.Is(err, services.ErrUserNotFound) {
		utils.JSONError(ctx, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		internalError(ctx, "get profile", err)
		return
	}
	ctx.JSON(http.StatusOK, serializers.CombinedUser(*user, utils.MediaBaseFromRequest(ctx.Request)))
}
