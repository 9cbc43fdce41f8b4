package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tripmoa/database"
	"tripmoa/routes"
	"tripmoa/services"
	"tripmoa/utils"
)

func main() {
	// Часовой пояс Кореи для всех логов и дат
	seoulLocation, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		seoulLocation = time.FixedZone("KST", 9*60*60)
	}
	time.Local = seoulLocation

	// Загрузка .env
	err = godotenv.Load(".env")
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Файловые логгеры (logs/errors.log, logs/panics.log)
	if err := utils.InitLogger(); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	// Подключение к PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	log.Println("Connected to PostgreSQL")

	// Глобальный *gorm.DB для контроллеров
	utils.SetDB(db)

	// Миграция
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	log.Println("Migration complete")

	// Сидирование справочников
	if err := database.SeedRegions(db); err != nil {
		log.Fatalf("failed to seed regions: %v", err)
	}
	if err := database.SeedSpots(db); err != nil {
		log.Fatalf("failed to seed spots: %v", err)
	}
	if err := database.SeedProducts(db); err != nil {
		log.Fatalf("failed to seed products: %v", err)
	}
	log.Println("Catalogs seeded (if needed)")

	// Крон парсера каталогов асинхронно
	go func() {
		services.StartProductCron(db)
		log.Println("Product catalog cron started")
	}()

	// Подключение к Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     getenvOr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	utils.SetRedis(rdb)
	log.Println("Connected to Redis")

	// Gin роутер со всеми маршрутами
	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server is running on port %s", port)

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func getenvOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
