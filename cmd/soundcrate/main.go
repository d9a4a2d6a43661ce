package main

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"

	"soundcrate/internal/cache"
	"soundcrate/internal/logging"
	"soundcrate/internal/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stdout,
	})
	logging.SetGlobal(logger)

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	var likeCache cache.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		rdb, err := openRedis(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatal().Err(err).Msg("open redis")
		}
		defer rdb.Close()
		likeCache = cache.NewRedis(rdb)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, like counts are recomputed on every read")
	}

	dataStore := store.New(db)
	handler := newHTTPHandler(cfg, dataStore, likeCache)

	log.Info().Str("addr", cfg.Addr).Msg("API listening")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
