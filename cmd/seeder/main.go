package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/chakronwork/SmartStay/internal/adapters/observability"
	redisad "github.com/chakronwork/SmartStay/internal/adapters/redis"
	"github.com/chakronwork/SmartStay/internal/app"
	"github.com/chakronwork/SmartStay/internal/domain"
	"github.com/chakronwork/SmartStay/internal/shared"
	mysqlrepo "github.com/chakronwork/SmartStay/internal/storage/mysql"
)

type seedRoom struct {
	Name          string  `json:"name"`
	PricePerNight float64 `json:"price_per_night"`
	Capacity      int     `json:"capacity"`
	ImageURL      *string `json:"image_url"`
	Facilities    string  `json:"facilities"`
}

type seedHotel struct {
	domain.Hotel
	Rooms []seedRoom `json:"rooms"`
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("file", cfg.SeedFile).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	raw, err := os.ReadFile(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("read seed file failed")
	}
	var fixture []seedHotel
	if err := json.Unmarshal(raw, &fixture); err != nil {
		log.Fatal().Err(err).Msg("parse seed file failed")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	seeder := app.NewSeedService(repo, repo, repo, cache)

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, entry := range fixture {
		entry := entry

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(h seedHotel) {
			defer wg.Done()
			defer sem.Release(int64(1))

			rooms := make([]domain.NewRoom, 0, len(h.Rooms))
			for _, r := range h.Rooms {
				rooms = append(rooms, domain.NewRoom{
					HotelID:       h.ID,
					Name:          r.Name,
					PricePerNight: r.PricePerNight,
					Capacity:      r.Capacity,
					ImageURL:      r.ImageURL,
					Facilities:    r.Facilities,
				})
			}
			if err := seeder.SeedHotel(ctx, h.Hotel, rooms); err != nil {
				log.Warn().Int64("id", h.ID).Err(err).Msg("seed failed")
				return
			}
			log.Info().Int64("id", h.ID).Str("name", h.Name).Msg("seed ok")
		}(entry)
	}

	wg.Wait()

	if cfg.AdminEmail != "" {
		if err := seeder.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPass); err != nil {
			log.Fatal().Err(err).Msg("admin provisioning failed")
		}
		log.Info().Str("email", cfg.AdminEmail).Msg("admin account ready")
	}

	log.Info().Msg("seeding completed")
}
