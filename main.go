package main

import (
	"log"

	"NanYang/FiberConfig"
	"NanYang/Models"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig is the process configuration, read from NANYANG_* variables.
type EnvConfig struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":3000"`
	DBPath     string `envconfig:"DB_PATH" default:"database.db"`
	CacheDir   string `envconfig:"CACHE_DIR" default:"cache"`
}

func main() {
	var cfg EnvConfig
	if err := envconfig.Process("nanyang", &cfg); err != nil {
		log.Fatal("invalid environment config:", err)
	}

	if err := Models.Connect(cfg.DBPath); err != nil {
		log.Fatal("database connect failed:", err)
	}

	FiberConfig.FiberConfig(cfg.ListenAddr, cfg.CacheDir)
}
