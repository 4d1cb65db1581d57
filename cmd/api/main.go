package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/sharpcut/booking-api/internal/audit"
	"github.com/sharpcut/booking-api/internal/clock"
	"github.com/sharpcut/booking-api/internal/config"
	dbpkg "github.com/sharpcut/booking-api/internal/db"
	"github.com/sharpcut/booking-api/internal/infra/lock"
	infraRepo "github.com/sharpcut/booking-api/internal/infra/repository"
	"github.com/sharpcut/booking-api/internal/jobs"
	"github.com/sharpcut/booking-api/internal/logger"
	"github.com/sharpcut/booking-api/internal/notify"
	"github.com/sharpcut/booking-api/internal/routes"
	schedule "github.com/sharpcut/booking-api/internal/usecase/schedule"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	db := dbpkg.NewDB(cfg, log)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	locker := lock.NewRedisLocker(redisClient, log)

	var notifier notify.Notifier
	if cfg.TwilioEnabled() {
		notifier = notify.NewTwilioSender(
			cfg.TwilioAccountSID,
			cfg.TwilioAuthToken,
			cfg.TwilioFrom,
			cfg.TwilioWhatsappFrom,
			log,
		)
	} else {
		log.Warn().Msg("twilio credentials missing, notifications go to the log")
		notifier = notify.NewLogSender(log)
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	shopClock := clock.New(cfg.Timezone)
	repo := infraRepo.NewScheduleGormRepository(db)

	svc := schedule.NewService(repo, locker, notifier, auditDispatcher, shopClock, log)

	if !cfg.JobsOff {
		scheduler := jobs.New(repo, svc, notifier, shopClock, clock.Location(cfg.Timezone), log)
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start job scheduler")
		}
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, svc)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
