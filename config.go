package main

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Host                  string        `env:"HOST"`
	Port                  int           `env:"PORT,default=8080" validate:"min=1,max=65535"`
	LogLevel              string        `env:"LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`
	GinMode               string        `env:"GIN_MODE,default=debug" validate:"oneof=debug release test"`
	ContactSendDelay      time.Duration `env:"CONTACT_SEND_DELAY,default=700ms" validate:"min=1ms"`
	ContactNoticeDuration time.Duration `env:"CONTACT_NOTICE_DURATION,default=3s" validate:"min=1ms"`
	ContactSessionTTL     time.Duration `env:"CONTACT_SESSION_TTL,default=30m" validate:"min=1s"`
	ContactSweepInterval  time.Duration `env:"CONTACT_SWEEP_INTERVAL,default=1m" validate:"min=1s"`
	ContactToEmail        string        `env:"CONTACT_TO_EMAIL,default=zachkordaspotter@gmail.com" validate:"required,email"`
}

var validate = validator.New()

func loadConfig() (Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
