package main

import (
	"github.com/joho/godotenv"

	"github.com/aljonuschka/reservation-ingest/internal/app"
)

func main() {
	// Optional .env for local runs; the deployed daemon gets real
	// environment variables.
	_ = godotenv.Load()

	app.Execute()
}
