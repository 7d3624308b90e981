package config

import (
	"os"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName  string
	Port     string
	Env      string
	Debug    bool
	Currency string
	// Actor recorded on ledger entries when the caller supplies none
	DefaultActor string
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		currency := os.Getenv("CURRENCY")
		if currency == "" {
			currency = "GHS"
		}
		actor := os.Getenv("DEFAULT_ACTOR")
		if actor == "" {
			actor = "system"
		}
		AppConfig = &Config{
			AppName:      os.Getenv("APP_NAME"),
			Port:         os.Getenv("PORT"),
			Env:          os.Getenv("APP_ENV"),
			Debug:        os.Getenv("DEBUG") == "true",
			Currency:     currency,
			DefaultActor: actor,
		}
	})
}
