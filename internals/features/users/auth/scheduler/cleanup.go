package scheduler

import (
	"context"
	"time"

	"sarpras_backend/internals/configs"
	"sarpras_backend/internals/features/users/auth/service"

	"github.com/robfig/cron/v3"
)

const defaultCleanupSpec = "@daily"

// StartBlacklistCleanupScheduler: hapus baris token_blacklist yang sudah expired.
// Jadwal dari TOKEN_BLACKLIST_CLEANUP_CRON (format cron 5 field / descriptor).
func StartBlacklistCleanupScheduler(svc *service.AuthService) (*cron.Cron, error) {
	log := configs.Logger().With().Str("component", "cleanup").Logger()
	spec := configs.GetEnv("TOKEN_BLACKLIST_CLEANUP_CRON", defaultCleanupSpec)

	c := cron.New(cron.WithLocation(configs.Location()))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := svc.PurgeExpired(ctx)
		if err != nil {
			log.Error().Err(err).Msg("[CLEANUP] gagal hapus token kadaluarsa")
			return
		}
		log.Info().Int64("deleted", n).Msg("[CLEANUP] token_blacklist dibersihkan")
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	log.Info().Str("spec", spec).Msg("[CLEANUP] scheduler aktif")
	return c, nil
}
