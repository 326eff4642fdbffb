package main

import (
	"fmt"
	"os"

	"kassa/internal/config"
	"kassa/internal/console"
	"kassa/internal/logging"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := console.Execute(console.Options{Config: cfg, Logger: logger}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
