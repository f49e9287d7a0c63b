// Package commands implements the starwars command line.
package commands

import (
	"fmt"
	"os"

	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/config"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/handler"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/logger"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/repository"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/router"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/server"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "starwars",
	Short: "Star Wars catalogue REST API",
	Long: `Serves users, planets, characters and each user's favorite planets and
characters over a JSON REST API.

Configuration is read from the environment (and .env). DATABASE_URL selects
PostgreSQL; without it a SQLite file is used.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, routesCmd)
}

// bootstrap loads the configuration and builds the application logger.
func bootstrap() (*config.Config, *logger.LoggerService, *zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, loggerService, &log, nil
}

// newRouter wires repositories, services and handlers onto the router.
func newRouter(srv *server.Server, repos *repository.Repositories) (*echo.Echo, error) {
	services, err := service.NewService(srv, repos)
	if err != nil {
		return nil, fmt.Errorf("could not create services: %w", err)
	}

	handlers := handler.NewHandlers(srv, services)

	return router.NewRouter(srv, handlers), nil
}
