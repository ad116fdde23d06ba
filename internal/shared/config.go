package shared

import (
	"os"
	"strconv"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	// Backend selects the transport: "rest" against APIBase, or "memory"
	// with the demo seed for local development.
	Backend string
	APIBase string
	APIRPS  int

	UsersPath         string
	HotelsPath        string
	RoomsPath         string
	ReservationsPath  string
	SubscriptionsPath string

	RedisAddr string
	RedisPass string
	RedisDB   int

	SessionKey string
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	return Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),

		Backend: env("BACKEND", "rest"),
		APIBase: env("API_BASE_URL", "http://localhost:3000"),
		APIRPS:  atoi("API_RPS", 10),

		UsersPath:         env("USERS_ENDPOINT_PATH", "/users"),
		HotelsPath:        env("HOTELS_ENDPOINT_PATH", "/hotels"),
		RoomsPath:         env("ROOMS_ENDPOINT_PATH", "/rooms"),
		ReservationsPath:  env("RESERVATIONS_ENDPOINT_PATH", "/reservations"),
		SubscriptionsPath: env("SUBSCRIPTIONS_ENDPOINT_PATH", "/subscriptions"),

		RedisAddr: env("REDIS_ADDR", "localhost:6379"),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),

		SessionKey: env("SESSION_KEY", "hostel:session"),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
