package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"gitlab.com/dirk.krummacker/contact-book/internal/config"
	"gitlab.com/dirk.krummacker/contact-book/internal/logger"
	"gitlab.com/dirk.krummacker/contact-book/internal/service"
	"gitlab.com/dirk.krummacker/contact-book/internal/storage"
)

// Usage example on the command line:
// > CONTACTS_SERVER_PORT=8080 CONTACTS_DATABASE_DIR=/var/lib/contacts GIN_MODE=release go run main.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logger.New(cfg.Log)

	contacts, err := storage.Open(cfg.Database, storage.StaticPlatform(cfg.Platform.Native), log)
	if err != nil {
		log.Fatal().Err(err).Msg("could not open storage")
	}
	if err := contacts.Initialize(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("could not initialize storage")
	}

	if !cfg.Server.Logging {
		log.Info().Msg("turning off HTTP request logging")
	}
	router := service.SetupHttpRouter(contacts, log, cfg.Server.Logging)
	run(router, cfg.Server.Port, log)
}

func run(router *gin.Engine, port int, log zerolog.Logger) {
	addr := fmt.Sprintf(":%d", port)
	log.Info().Str("addr", addr).Msg("listening")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
