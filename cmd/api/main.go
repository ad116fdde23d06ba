package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	server "hostel_manager/internal/adapters/http_server"
	"hostel_manager/internal/adapters/memory"
	"hostel_manager/internal/adapters/observability"
	rediskv "hostel_manager/internal/adapters/redis"
	"hostel_manager/internal/adapters/rest"
	"hostel_manager/internal/app"
	"hostel_manager/internal/domain"
	"hostel_manager/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	transports := buildTransports(cfg)

	hotels := app.NewHotels(transports[app.HotelsName], log.Logger)
	rooms := app.NewRooms(transports[app.RoomsName], log.Logger)
	reservations := app.NewReservations(transports[app.ReservationsName], log.Logger)
	subscriptions := app.NewSubscriptions(transports[app.SubscriptionsName], log.Logger)
	users := app.NewUsers(transports[app.UsersName], log.Logger)

	var kv domain.KVStore = rediskv.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if cfg.Backend == "memory" {
		kv = memory.NewKV()
	}
	session := app.NewSession(users, kv, cfg.SessionKey, log.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	session.Restore(ctx)
	if err := app.RefreshAll(ctx, hotels, rooms, reservations, subscriptions, users); err != nil {
		log.Warn().Err(err).Msg("warm fetch interrupted")
	}
	cancel()
	log.Info().
		Int("hotels", len(hotels.Items())).
		Int("rooms", len(rooms.Items())).
		Int("reservations", len(reservations.Items())).
		Int("users", len(users.Items())).
		Msg("collections warmed")

	q := &app.QueryService{
		Hotels:        hotels,
		Rooms:         rooms,
		Reservations:  reservations,
		Subscriptions: subscriptions,
		Users:         users,
		Session:       session,
	}

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q})

	log.Info().Str("addr", cfg.HTTPAddr).Str("backend", cfg.Backend).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

func buildTransports(cfg shared.Config) map[string]domain.Transport {
	names := map[string]string{
		app.UsersName:         cfg.UsersPath,
		app.HotelsName:        cfg.HotelsPath,
		app.RoomsName:         cfg.RoomsPath,
		app.ReservationsName:  cfg.ReservationsPath,
		app.SubscriptionsName: cfg.SubscriptionsPath,
	}
	out := make(map[string]domain.Transport, len(names))
	if cfg.Backend == "memory" {
		seed := memory.DemoSeed()
		for name := range names {
			out[name] = memory.New(name, seed[name])
		}
		return out
	}
	for name, path := range names {
		out[name] = rest.New(cfg.APIBase, path, cfg.APIRPS)
	}
	return out
}
