package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"parking_lot/internal/domain"
)

// LotLayout describes how many spots of each type every floor carries. Spots
// are created from it exactly once, on first start against an empty database.
type LotLayout struct {
	Floors        int
	SpotsPerFloor map[domain.VehicleType]int
}

type Config struct {
	ServerPort string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	LogLevel string

	// Per-hour rates by vehicle type; partial hours are charged as full hours.
	HourlyRates map[domain.VehicleType]float64
	Layout      LotLayout
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBUser:     getEnv("DB_USER", "parking"),
		DBPassword: getEnv("DB_PASSWORD", "parking"),
		DBName:     getEnv("DB_NAME", "parking_lot"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		HourlyRates: map[domain.VehicleType]float64{
			domain.VehicleTypeMotorcycle: getEnvFloat("RATE_MOTORCYCLE_PER_HOUR", 2),
			domain.VehicleTypeCar:        getEnvFloat("RATE_CAR_PER_HOUR", 5),
			domain.VehicleTypeBus:        getEnvFloat("RATE_BUS_PER_HOUR", 10),
		},
		Layout: LotLayout{
			Floors: getEnvInt("LOT_FLOORS", 3),
			SpotsPerFloor: map[domain.VehicleType]int{
				domain.VehicleTypeMotorcycle: getEnvInt("LOT_MOTORCYCLE_SPOTS_PER_FLOOR", 10),
				domain.VehicleTypeCar:        getEnvInt("LOT_CAR_SPOTS_PER_FLOOR", 30),
				domain.VehicleTypeBus:        getEnvInt("LOT_BUS_SPOTS_PER_FLOOR", 5),
			},
		},
	}
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Int("fallback", fallback).Msg("invalid integer in environment, using fallback")
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Float64("fallback", fallback).Msg("invalid float in environment, using fallback")
		return fallback
	}
	return parsed
}
