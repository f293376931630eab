// Package config loads process configuration from the environment,
// with a best-effort .env file for local development.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr  string `env:"YAMB_ADDR" envDefault:":3001"`
	Debug bool   `env:"YAMB_DEBUG"`
}

func Load() (Config, error) {
	_ = godotenv.Load()
	return env.ParseAs[Config]()
}
