package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	appMarket "marketplace/internal/app/market"
	"marketplace/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to config file (env vars are used when empty)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	appMarket.Run(cfg)
}
