package request

import (
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries the caller's delivery-service identity. AppID is embedded
// in every request body; APIKey and BaseURL are for whatever transport the
// caller puts the body on and are never serialized by this package.
type Config struct {
	AppID   string `env:"PUSH_APP_ID,required,notEmpty"`
	APIKey  string `env:"PUSH_API_KEY,required,notEmpty"`
	BaseURL string `env:"PUSH_BASE_URL" envDefault:"https://api.onesignal.com"`
}

var dotenvOnce sync.Once

// LoadConfig reads Config from the environment, loading a .env file first
// if one exists.
func LoadConfig() (Config, error) {
	dotenvOnce.Do(func() {
		// A missing .env file is fine; the variables may be set directly.
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

// MustLoadConfig is LoadConfig that panics on failure, for callers that
// cannot start without delivery-service credentials.
func MustLoadConfig() Config {
	cfg, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return cfg
}
