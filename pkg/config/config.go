package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	PGDSN string `envconfig:"PG_DSN" required:"true"`
	// RabbitMQ: change feed of the prenotazioni table
	RabbitURL    string `envconfig:"RABBIT_URL" required:"true"`
	FeedExchange string `envconfig:"FEED_EXCHANGE" default:"prenotazioni.exchange"`
	FeedQueue    string `envconfig:"FEED_QUEUE" default:""` // empty = per-instance queue name
	// JWT: client token embedded in the served pages
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`
	TokenTTLMin int    `envconfig:"TOKEN_TTL_MIN" default:"720"`
	// Network
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	Env string `envconfig:"ENV" default:"development"`
}

func Load() (App, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
