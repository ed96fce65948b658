package configs

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	JWTSecret      string
	AccessTokenTTL time.Duration
	AppTimezone    string
	LogLevel       string
	LogFormat      string
	DB             *gorm.DB
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
	} else {
		log.Info().Msg("✅ .env file berhasil dimuat!")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	AccessTokenTTL = GetDuration("ACCESS_TOKEN_TTL", 24*time.Hour)
	AppTimezone = GetEnv("APP_TIMEZONE", "Asia/Jakarta")
	LogLevel = GetEnv("LOG_LEVEL", "info")
	LogFormat = GetEnv("LOG_FORMAT", "json")

	if JWTSecret == "" {
		log.Error().Msg("❌ JWT_SECRET belum diset!")
	} else {
		log.Info().Msg("✅ JWT_SECRET berhasil dimuat.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetInt(key string, def int) int {
	v := GetEnv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// GetDuration menerima format time.ParseDuration ("90m", "24h").
func GetDuration(key string, def time.Duration) time.Duration {
	v := GetEnv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// Location: zona waktu aplikasi untuk penentuan tahun ajaran.
func Location() *time.Location {
	loc, err := time.LoadLocation(AppTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Now: jam aplikasi (zona waktu AppTimezone).
func Now() time.Time { return time.Now().In(Location()) }

// =======================
// DATABASE CONNECTOR
// =======================
func DSN() string {
	if url := GetEnv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		GetEnv("DB_USER"), GetEnv("DB_PASSWORD"), GetEnv("DB_HOST", "localhost"),
		GetEnv("DB_PORT", "5432"), GetEnv("DB_NAME"), GetEnv("DB_SSLMODE", "disable"))
}

func InitSeederDB() *gorm.DB {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  DSN(),
		PreferSimpleProtocol: true, // ✅ hindari cache prepared statement
	}), &gorm.Config{
		Logger: NewGormLogger(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Gagal koneksi ke database (Seeder)")
	}
	log.Info().Msg("✅ Database (Seeder) terkoneksi.")
	return db
}
