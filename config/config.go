package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values for both the web backend and the action server.
type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	Port        string `mapstructure:"PORT"`
	ActionsPort string `mapstructure:"ACTIONS_PORT"`

	// Database. MYSQL_URL / DATABASE_URL win over the DB_* parts.
	MySQLURL      string `mapstructure:"MYSQL_URL"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	DBUser        string `mapstructure:"DB_USER"`
	DBPass        string `mapstructure:"DB_PASS"`
	DBHost        string `mapstructure:"DB_HOST"`
	DBPort        string `mapstructure:"DB_PORT"`
	DBName        string `mapstructure:"DB_NAME"`
	DBAutoMigrate bool   `mapstructure:"DB_AUTO_MIGRATE"`
	DBSeed        bool   `mapstructure:"DB_SEED"`

	// Dialogue engine (REST channel webhook).
	RasaURL         string        `mapstructure:"RASA_URL"`
	RasaTimeout     time.Duration `mapstructure:"RASA_TIMEOUT"`
	RasaTestTimeout time.Duration `mapstructure:"RASA_TEST_TIMEOUT"`

	// Hosted LLM (chat completions).
	LLMAPIURL  string        `mapstructure:"LLM_API_URL"`
	LLMAPIKey  string        `mapstructure:"LLM_API_KEY"`
	LLMModel   string        `mapstructure:"LLM_MODEL"`
	LLMReferer string        `mapstructure:"LLM_REFERER"`
	LLMTitle   string        `mapstructure:"LLM_TITLE"`
	LLMTimeout time.Duration `mapstructure:"LLM_TIMEOUT"`

	JWTSecret  string        `mapstructure:"JWT_SECRET"`
	SessionTTL time.Duration `mapstructure:"SESSION_TTL"`

	MediaRoot     string `mapstructure:"MEDIA_ROOT"`
	StaticRoot    string `mapstructure:"STATIC_ROOT"`
	TemplatesGlob string `mapstructure:"TEMPLATES_GLOB"`
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL"`

	CorsOrigins    string `mapstructure:"CORS_ORIGINS"`
	ChatRatePerMin int    `mapstructure:"CHAT_RATE_PER_MIN"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", "8000")
	v.SetDefault("ACTIONS_PORT", "5055")

	v.SetDefault("MYSQL_URL", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_NAME", "travel_db")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("DB_SEED", true)

	v.SetDefault("RASA_URL", "http://localhost:5005/webhooks/rest/webhook")
	v.SetDefault("RASA_TIMEOUT", 10*time.Second)
	v.SetDefault("RASA_TEST_TIMEOUT", 30*time.Second)

	v.SetDefault("LLM_API_URL", "https://openrouter.ai/api/v1/chat/completions")
	v.SetDefault("LLM_API_KEY", "")
	v.SetDefault("LLM_MODEL", "deepseek/deepseek-r1-0528:free")
	v.SetDefault("LLM_REFERER", "http://127.0.0.1:8000")
	v.SetDefault("LLM_TITLE", "Qyra Chatbot")
	v.SetDefault("LLM_TIMEOUT", 10*time.Second)

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("SESSION_TTL", 24*time.Hour)

	v.SetDefault("MEDIA_ROOT", "./media")
	v.SetDefault("STATIC_ROOT", "./static")
	v.SetDefault("TEMPLATES_GLOB", "templates/*.html")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8000")

	v.SetDefault("CORS_ORIGINS", "")
	v.SetDefault("CHAT_RATE_PER_MIN", 60)
}

// LoadConfig reads .env (optional), config.yaml (optional) and the environment, in that
// order of increasing precedence.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// the original deployment shipped the LLM key under this name
	if strings.TrimSpace(cfg.LLMAPIKey) == "" {
		cfg.LLMAPIKey = strings.TrimSpace(v.GetString("DEEPSEEK_API_KEY"))
	}

	return cfg
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
