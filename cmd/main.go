package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pinboard/internal/handlers"
	"pinboard/internal/logger"
	"pinboard/internal/repository"
	"pinboard/internal/repository/db"
	"pinboard/internal/server"
	"pinboard/internal/service"

	"github.com/spf13/viper"
)

func main() {
	// load config.yml
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger with the configured level
	log := logger.Get(viper.GetString("log.level"))

	// open storage per configured driver
	repos, closeStorage, err := openStorage()
	if err != nil {
		log.Fatalw("failed to init storage", "err", err)
	}
	defer func() {
		if cerr := closeStorage(); cerr != nil {
			log.Errorw("failed to close storage", "err", cerr)
		}
	}()

	// wire dependencies
	services := service.NewService(repos, authConfig(), log)
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	// PINBOARD_SESSION_SIGNING_KEY overrides the config value
	viper.SetEnvPrefix("pinboard")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	return viper.ReadInConfig()
}

// authConfig collects the session-token settings.
func authConfig() service.AuthConfig {
	return service.AuthConfig{
		SigningKey: viper.GetString("session.signing_key"),
		SessionTTL: viper.GetInt("session.ttl_seconds"),
	}
}

// openStorage builds the repository layer for the configured driver:
// flat JSON files (default) or sqlite.
func openStorage() (*repository.Repository, func() error, error) {
	noClose := func() error { return nil }

	switch driver := viper.GetString("storage.driver"); driver {
	case "", "file":
		usersFile := viper.GetString("storage.users_file")
		if usersFile == "" {
			usersFile = "data/users.json"
		}
		notesDir := viper.GetString("storage.notes_dir")
		if notesDir == "" {
			notesDir = "data/notes"
		}
		return repository.NewFileRepository(usersFile, notesDir), noClose, nil

	case "sqlite":
		sqlDB, err := openDB()
		if err != nil {
			return nil, noClose, err
		}
		return repository.NewSQLiteRepository(sqlDB), sqlDB.Close, nil

	default:
		return nil, noClose, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// openDB initializes the SQLite database using configuration.
func openDB() (*sql.DB, error) {
	dbPath := viper.GetString("storage.sqlite_path")
	if dbPath == "" {
		dbPath = "app.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
