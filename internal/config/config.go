package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Bonus amounts credited by the registration and referral flows.
var REGISTRATION_BONUS int64 = 2
var REFERRAL_BONUS int64 = 2

// Bootstrap admin ids, treated as admins even before the table is seeded.
var ADMIN_IDS []int64

// Broadcast fan-out parameters.
var BROADCAST_WORKERS = 4
var BROADCAST_RATE_PER_SECOND = 20

var TOP_RATING_COUNT = 20
var EXPORT_MAX_ROWS = 100000

var log = InitLogger()

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

func InitConfig() error {
	err := godotenv.Load()
	if err != nil {
		log.Error("Error loading .env file")
	}

	if v := os.Getenv("REGISTRATION_BONUS"); v != "" {
		REGISTRATION_BONUS, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Error("Error parsing REGISTRATION_BONUS")
			REGISTRATION_BONUS = 2
		}
	}

	if v := os.Getenv("REFERRAL_BONUS"); v != "" {
		REFERRAL_BONUS, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Error("Error parsing REFERRAL_BONUS")
			REFERRAL_BONUS = 2
		}
	}

	if v := os.Getenv("ADMIN_IDS"); v != "" {
		for _, part := range strings.Split(v, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				log.Error("Error parsing ADMIN_IDS entry: ", part)
				continue
			}
			ADMIN_IDS = append(ADMIN_IDS, id)
		}
	}

	if v := os.Getenv("BROADCAST_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			BROADCAST_WORKERS = n
		}
	}

	if v := os.Getenv("BROADCAST_RATE_PER_SECOND"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			BROADCAST_RATE_PER_SECOND = n
		}
	}

	return nil
}

func LoadPostgresConfig() *PostgresConfig {
	return &PostgresConfig{
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		DBName:   os.Getenv("DB_NAME"),
	}
}
