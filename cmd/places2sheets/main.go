package main

import (
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/openlocal/places2sheets/commands"
)

func main() {
	// a missing .env is fine - the environment may be set directly
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}
