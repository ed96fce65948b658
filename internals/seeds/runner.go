package seeds

import (
	"sarpras_backend/internals/configs"
	users "sarpras_backend/internals/seeds/users/auth"

	"gorm.io/gorm"
)

func RunAllSeeds(db *gorm.DB) {
	log := configs.Logger()

	//* User
	if err := users.SeedAdminDinas(db, users.AdminSeedFromEnv()); err != nil {
		log.Error().Err(err).Msg("❌ Seed admin dinas gagal")
	}
}
