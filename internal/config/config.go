package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	UpstreamURL   string
	RedisAddr     string
	SessionSecret string
	Locale        string
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found, falling back to environment defaults")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	upstream := os.Getenv("UPSTREAM_API_URL")
	if upstream == "" {
		upstream = "http://localhost:3001"
	}

	locale := os.Getenv("DEFAULT_LOCALE")
	if locale == "" {
		locale = "pt"
	}

	return Config{
		Port:          port,
		UpstreamURL:   upstream,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		Locale:        locale,
	}
}
