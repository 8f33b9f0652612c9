package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/argus/internal/db"
	"github.com/Nixie-Tech-LLC/argus/internal/dispatch"
	"github.com/Nixie-Tech-LLC/argus/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/argus/internal/redis"
	"github.com/Nixie-Tech-LLC/argus/internal/settings"
)

func main() {
	env := LoadEnvironment()

	if env.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	// redis backs pairing codes
	redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)

	// MQTT pushes refresh commands to paired devices
	if env.MQTTBrokerURL != "" {
		middleware.SetBrokerURL(env.MQTTBrokerURL)
	}
	if _, err := middleware.CreateMQTTClient("argus-server"); err != nil {
		log.Error().Err(err).Msg("MQTT unavailable, devices fall back to polling")
	}
	defer middleware.CleanupMQTT()

	store := db.NewStore()
	settingsTTL := time.Duration(env.SettingsTTLSeconds) * time.Second
	cache := settings.NewCache(settingsTTL, settings.RedisBacked(db.GetSetting, settingsTTL))

	// scheduled broadcast dispatcher
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dispatch.Run(ctx, time.Duration(env.DispatchIntervalSeconds)*time.Second)

	r := gin.Default()
	RegisterRoutes(r, env, store, cache)

	log.Info().Str("address", env.ServerAddress).Msg("server listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
