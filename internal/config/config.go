package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries all process-wide settings. The signing secret lives here and
// is handed to the token service at construction, never read through a global.
type Config struct {
	Port     string
	MongoURI string
	MongoDB  string

	JWTSecret string
	TokenTTL  time.Duration

	S3 S3Config
}

// S3Config configures the avatar upload presigner. Endpoint empty means the
// presigner stays disabled.
type S3Config struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

// Load reads .env if present, then the environment. A missing JWT_SECRET is a
// fatal configuration error: the process must refuse to start.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Println("No .env file found, reading from environment variables")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingJWTSecret
	}

	cfg := &Config{
		Port:      getenv("APP_PORT", "3000"),
		MongoURI:  getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getenv("MONGO_DB", "itemboard"),
		JWTSecret: secret,
		TokenTTL:  time.Hour,
		S3: S3Config{
			Endpoint:     os.Getenv("S3_ENDPOINT"),
			Region:       os.Getenv("AWS_REGION"),
			Bucket:       os.Getenv("S3_BUCKET_NAME"),
			AccessKey:    os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey:    os.Getenv("AWS_SECRET_ACCESS_KEY"),
			UsePathStyle: os.Getenv("S3_USE_PATH_STYLE") == "true",
		},
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
