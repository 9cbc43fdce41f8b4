package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	SMTPHost   string
	SMTPPort   string
	SMTPUser   string
	SMTPPass   string
	// AI recommendation provider settings
	RecommendBaseURL string
	RecommendAPIKey  string
	RecommendModel   string
	// KakaoPay settings
	KakaoBaseURL  string
	KakaoAdminKey string
	KakaoCID      string
	// TossPayments settings
	TossBaseURL   string
	TossSecretKey string
	TossClientKey string
	// Публичный адрес сервиса - сюда провайдер возвращает пользователя
	AppBaseURL string
	// Куда отправлять пользователя после обработки возврата
	FrontBaseURL string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return &Config{
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           os.Getenv("DB_PORT"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		Port:             os.Getenv("PORT"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         os.Getenv("SMTP_PORT"),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPass:         os.Getenv("SMTP_PASS"),
		RecommendBaseURL: getenvOrDefault("RECOMMEND_BASE_URL", "https://api.deepseek.com"),
		RecommendAPIKey:  os.Getenv("RECOMMEND_API_KEY"),
		RecommendModel:   getenvOrDefault("RECOMMEND_MODEL", "deepseek-chat"),
		KakaoBaseURL:     getenvOrDefault("KAKAO_BASE_URL", "https://kapi.kakao.com"),
		KakaoAdminKey:    os.Getenv("KAKAO_ADMIN_KEY"),
		KakaoCID:         getenvOrDefault("KAKAO_CID", "TC0ONETIME"),
		TossBaseURL:      getenvOrDefault("TOSS_BASE_URL", "https://api.tosspayments.com"),
		TossSecretKey:    os.Getenv("TOSS_SECRET_KEY"),
		TossClientKey:    os.Getenv("TOSS_CLIENT_KEY"),
		AppBaseURL:       getenvOrDefault("APP_BASE_URL", "http://localhost:8080"),
		FrontBaseURL:     getenvOrDefault("FRONT_BASE_URL", "http://localhost:3000"),
	}
}

// getenvOrDefault returns the environment variable value if set, otherwise returns def
func getenvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
