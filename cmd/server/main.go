package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"appraisal/internal/app/server"
)

func main() {
	if err := server.Run(); err != nil {
		log.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}
