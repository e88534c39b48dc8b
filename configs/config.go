package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	RazorpayKey     string
	RazorpaySecret  string
	RazorpayBaseURL string
	PaymentTimeout  time.Duration

	PushGatewayURL string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		DBSource:  getEnv("DB_SOURCE", "aditya-foods.db"),
		Port:      getEnv("PORT", "8000"),
		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    time.Duration(24) * time.Hour,

		RazorpayKey:     getEnv("RAZORPAY_KEY", "rzp_test_cyicVHrZH1TfRh"),
		RazorpaySecret:  os.Getenv("RAZORPAY_SECRET"),
		RazorpayBaseURL: getEnv("RAZORPAY_BASE_URL", "https://api.razorpay.com"),
		PaymentTimeout:  getDuration("PAYMENT_TIMEOUT", 30*time.Second),

		PushGatewayURL: getEnv("PUSH_GATEWAY_URL", "https://exp.host/--/api/v2/push/send"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid duration for %s: %v", key, err)
	}
	return d
}

// Helper for other packages that must have a value (e.g. seed).
func MustGetEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		log.Fatalf("missing env: %s", key)
	}
	return v
}
