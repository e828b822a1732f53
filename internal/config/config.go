package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	PaystackSecretKey string
	PaystackBaseURL   string
	CallbackURL       string
	DbUser            string
	DbPassword        string
	DbHost            string
	DbName            string
	SSLMode           string
	DbPort            string
	RedisAddr         string
	Port              int
}

func Load() (*Config, error) {
	// Load .env file (only in development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	baseURL := os.Getenv("PAYSTACK_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}

	return &Config{
		PaystackSecretKey: os.Getenv("PAYSTACK_SECRET_KEY"),
		PaystackBaseURL:   baseURL,
		CallbackURL:       os.Getenv("CALLBACK_URL"),
		DbUser:            os.Getenv("DB_USER"),
		DbPassword:        os.Getenv("DB_PASSWORD"),
		DbHost:            os.Getenv("DB_HOST"),
		DbName:            os.Getenv("DB_NAME"),
		DbPort:            os.Getenv("DB_PORT"),
		SSLMode:           os.Getenv("SSL_MODE"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		Port:              port,
	}, nil
}
