// Package main starts the personal finance ledger API.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/go-fintrack/fintrack/cmd/httpserver"
	"github.com/go-fintrack/fintrack/internal/middleware"
	"github.com/go-fintrack/fintrack/pkg/configpkg"
	"github.com/go-fintrack/fintrack/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("FINTRACK LEDGER API HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
