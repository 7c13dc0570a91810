package config

import (
	"os"
	"strconv"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName string
	Port    string
	Env     string
	Debug   bool

	// Inventory policy
	AllowNegativeAdjustment bool
	DefaultReorderPoint     int
	// Add more fields as needed
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:                 os.Getenv("APP_NAME"),
			Port:                    os.Getenv("PORT"),
			Env:                     os.Getenv("APP_ENV"),
			Debug:                   os.Getenv("DEBUG") == "true",
			AllowNegativeAdjustment: GetEnv("INVENTORY_ALLOW_NEGATIVE_ADJUST", "true") == "true",
			DefaultReorderPoint:     envInt("INVENTORY_DEFAULT_REORDER_POINT", 10),
		}
	})
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
