package main

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"tourflow/internal/adapters/observability"
	redisad "tourflow/internal/adapters/redis"
	"tourflow/internal/app"
	"tourflow/internal/domain"
	"tourflow/internal/shared"
	mysqlrepo "tourflow/internal/storage/mysql"
)

type seedUser struct {
	email    string
	username string
	fullName string
	operator bool
	admin    bool
}

var seedUsers = []seedUser{
	{email: "admin@tourflow.dev", username: "admin", fullName: "Site Admin", admin: true},
	{email: "operator@tourflow.dev", username: "operator", fullName: "Tour Operator", operator: true},
	{email: "alice@tourflow.dev", username: "alice", fullName: "Alice Turner"},
	{email: "bob@tourflow.dev", username: "bob", fullName: "Bob Reyes"},
	{email: "carol@tourflow.dev", username: "carol", fullName: "Carol Nakamura"},
}

var seedDestinations = []app.CreateDestinationInput{
	{Title: "Santorini Escape", Description: "Cliffside villages and caldera sunsets.", Location: "Santorini, Greece", Price: 1200},
	{Title: "Kyoto Temples", Description: "A week among shrines, gardens and tea houses.", Location: "Kyoto, Japan", Price: 950},
	{Title: "Patagonia Trek", Description: "Guided hiking through Torres del Paine.", Location: "Patagonia, Chile", Price: 1800},
	{Title: "Sahara Nights", Description: "Camel caravan and desert camp under the stars.", Location: "Merzouga, Morocco", Price: 700},
	{Title: "Reykjavik Lights", Description: "Northern lights, glaciers and hot springs.", Location: "Reykjavik, Iceland", Price: 1400},
	{Title: "Amalfi Coast Drive", Description: "Coastal towns, lemon groves and sea food.", Location: "Amalfi, Italy", Price: 1000},
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Int("workers", cfg.Workers).Msg("seeder starting")

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

	catalog := app.NewCatalogService(repo, cache, cfg.CacheTTL)
	bookings := app.NewBookingService(repo, repo)
	reviews := app.NewReviewService(repo, repo, repo, cache)

	users := make([]domain.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		u, err := ensureUser(ctx, repo, su)
		if err != nil {
			log.Fatal().Str("email", su.email).Err(err).Msg("seed user failed")
		}
		users = append(users, u)
	}
	operator := users[1]
	travelers := users[2:]

	// destinations seed concurrently; bookings and reviews for each
	// destination follow within the same worker.
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for i, in := range seedDestinations {
		i, in := i, in

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(int64(1))

			dest, err := catalog.Create(ctx, operator, in)
			if err != nil {
				log.Warn().Str("title", in.Title).Err(err).Msg("seed destination failed")
				return
			}

			traveler := travelers[i%len(travelers)]
			if err := seedBookingAndReview(ctx, bookings, reviews, traveler, dest, 3+float64(i%3)); err != nil {
				log.Warn().Int64("destination", dest.ID).Err(err).Msg("seed booking failed")
				return
			}
			log.Info().Int64("id", dest.ID).Str("title", dest.Title).Msg("seeded")
		}()
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}

func ensureUser(ctx context.Context, repo domain.UserRepository, su seedUser) (domain.User, error) {
	u, err := repo.GetUserByEmail(ctx, su.email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	name := su.fullName
	u = domain.User{
		Email:        su.email,
		Username:     su.username,
		PasswordHash: string(hash),
		FullName:     &name,
		IsActive:     true,
		IsOperator:   su.operator,
		IsAdmin:      su.admin,
	}
	id, err := repo.CreateUser(ctx, u)
	if err != nil {
		return domain.User{}, err
	}
	u.ID = id
	return u, nil
}

func seedBookingAndReview(ctx context.Context, bookings *app.BookingService, reviews *app.ReviewService, traveler domain.User, dest domain.Destination, rating float64) error {
	v, err := bookings.Create(ctx, traveler, app.CreateBookingInput{
		DestinationID: dest.ID,
		TravelDate:    time.Now().UTC().AddDate(0, 1, 0),
		Travelers:     2,
		ContactEmail:  traveler.Email,
	})
	if err != nil {
		return err
	}
	if _, err := bookings.Confirm(ctx, traveler, v.ID); err != nil {
		return err
	}
	_, err = reviews.Submit(ctx, traveler, app.SubmitReviewInput{
		DestinationID: dest.ID,
		Rating:        rating,
		Comment:       "Seeded demo review.",
	})
	return err
}
