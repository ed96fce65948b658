package database

import (
	"context"
	"time"

	"sarpras_backend/internals/configs"
	pendataanModel "sarpras_backend/internals/features/pendataan/model"
	authModel "sarpras_backend/internals/features/users/auth/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	log := configs.Logger()
	log.Info().Msg("🔌 Koneksi ke PostgreSQL...")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  configs.DSN(),
		PreferSimpleProtocol: true, // cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Gagal konek DB")
	}
	DB = db
	configs.DB = db
	log.Info().Msg("✅ DB connected.")
}

// AutoMigrate: tabel user, blacklist, sekolah & semua data pendataan.
func AutoMigrate() error {
	return DB.AutoMigrate(
		&authModel.UserModel{},
		&authModel.TokenBlacklist{},
		&pendataanModel.SchoolModel{},
		&pendataanModel.StaffCountModel{},
		&pendataanModel.EnrollmentCountModel{},
		&pendataanModel.FacilityModel{},
		&pendataanModel.InfrastructureModel{},
		&pendataanModel.PriorityNeedModel{},
		&pendataanModel.AttachmentModel{},
		&pendataanModel.SchoolStatusLogModel{},
	)
}

func TunePool() {
	log := configs.Logger()
	sqlDB, err := DB.DB()
	if err != nil {
		log.Error().Err(err).Msg("pool tune err")
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	// jalankan ringan supaya koneksi/pool “keisi” & siap
	go func() {
		time.Sleep(500 * time.Millisecond)
		log := configs.Logger()
		if err := ping(); err != nil {
			log.Warn().Err(err).Msg("warm-up ping err")
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
