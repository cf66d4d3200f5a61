package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	ServerPort string

	// Empty RedisAddr disables the course catalog cache.
	RedisAddr string

	// Empty StripeSecretKey selects the dummy payment provider.
	StripeSecretKey string

	// Empty S3Bucket selects the dummy storage service.
	S3Bucket  string
	S3Region  string
	CDNDomain string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBDriver:        getEnv("DB_DRIVER", "postgres"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "learning_platform"),
		JWTSecret:       getEnv("JWT_SECRET", "secret"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		S3Bucket:        getEnv("S3_BUCKET_NAME", ""),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		CDNDomain:       getEnv("CLOUDFRONT_DOMAIN", ""),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
