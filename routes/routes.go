package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"travel-backend/config"
	"travel-backend/controllers"
	"travel-backend/middleware"
	"travel-backend/utils"
)

func parseCorsOrigins(raw string) []string {
	origins := utils.SplitCSV(raw)
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func methodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
}

func baseEngine() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.RedirectTrailingSlash = false
	r.NoMethod(methodNotAllowed)
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery())
	return r
}

// both registers path with and without the trailing slash the browser client uses.
func both(g gin.IRoutes, method, path string, handlers ...gin.HandlerFunc) {
	g.Handle(method, path, handlers...)
	g.Handle(method, path+"/", handlers...)
}

// Controllers groups everything the web router needs.
type Controllers struct {
	Chat *controllers.ChatController
	API  *controllers.APIController
	Auth *controllers.AuthController
}

// SetupRouter builds the web backend router. Templates are loaded only when
// cfg.TemplatesGlob is set.
func SetupRouter(cfg config.Config, ctl Controllers) *gin.Engine {
	r := baseEngine()

	origins := parseCorsOrigins(cfg.CorsOrigins)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.TemplatesGlob != "" {
		r.LoadHTMLGlob(cfg.TemplatesGlob)
	}
	if cfg.StaticRoot != "" {
		r.Static("/static", cfg.StaticRoot)
	}
	if cfg.MediaRoot != "" {
		r.Static("/media", cfg.MediaRoot)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)
	requireAPIAuth := middleware.RequireAuth(cfg.JWTSecret, "")
	requirePageAuth := middleware.RequireAuth(cfg.JWTSecret, "/login")
	limit := middleware.RateLimit(cfg.ChatRatePerMin)

	// chat relays
	chat := r.Group("", optionalAuth, limit)
	{
		both(chat, http.MethodPost, "/chat", ctl.Chat.Chat)
		both(chat, http.MethodPost, "/chat/ai", ctl.Chat.ChatAI)
		both(chat, http.MethodPost, "/test-api", ctl.Chat.TestAPI)
	}
	both(r, http.MethodPost, "/clear_chat", requireAPIAuth, ctl.Chat.ClearChat)

	// pages
	r.GET("/", requirePageAuth, ctl.Auth.ChatPage)
	both(r, http.MethodGet, "/login", ctl.Auth.LoginPage)
	both(r, http.MethodPost, "/login", ctl.Auth.Login)
	both(r, http.MethodGet, "/signup", ctl.Auth.SignupPage)
	both(r, http.MethodPost, "/signup", ctl.Auth.Signup)
	both(r, http.MethodGet, "/logout", ctl.Auth.Logout)
	both(r, http.MethodPost, "/logout", ctl.Auth.Logout)

	api := r.Group("/api")
	{
		both(api, http.MethodGet, "/travel-packages", ctl.API.GetTravelPackages)
		both(api, http.MethodGet, "/hotels", ctl.API.GetHotels)
		both(api, http.MethodGet, "/flights", ctl.API.GetFlights)

		private := api.Group("", requireAPIAuth)
		{
			both(private, http.MethodGet, "/bookings", ctl.API.GetBookings)
			both(private, http.MethodGet, "/bookings/hotels", ctl.API.GetHotelBookings)
			both(private, http.MethodGet, "/bookings/flights", ctl.API.GetFlightBookings)
			both(private, http.MethodGet, "/messages", ctl.API.GetMessages)
			both(private, http.MethodGet, "/profile", ctl.API.GetProfile)
		}
	}

	return r
}

// SetupActionRouter builds the action server router the dialogue engine calls.
func SetupActionRouter(ac *controllers.ActionController) *gin.Engine {
	r := baseEngine()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/webhook", ac.Webhook)
	r.GET("/actions", ac.List)

	return r
}
