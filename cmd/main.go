// Package main runs the storefront API managing users, game and frame
// catalogs and the peer marketplace.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/gamevault/gamevault/cmd/httpserver"
	"github.com/gamevault/gamevault/internal/middleware"
	"github.com/gamevault/gamevault/pkg/configpkg"
	"github.com/gamevault/gamevault/pkg/dbpkg"

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

	logger.Info().Msg("STOREFRONT API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
