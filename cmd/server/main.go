// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/dmgarza/brawldeck/internal/config"
	"github.com/dmgarza/brawldeck/internal/database"
	"github.com/dmgarza/brawldeck/internal/handlers"
	"github.com/dmgarza/brawldeck/internal/history"
	"github.com/dmgarza/brawldeck/internal/identity"
	"github.com/dmgarza/brawldeck/internal/middleware"
)

func main() {
	identity.Init()
	cfg := config.Load()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	srv := handlers.NewServer(logger)
	srv.TurnTimeout = cfg.TurnTimeout

	if cfg.RedisAddr != "" {
		rec, err := history.Connect(cfg.RedisAddr, "", logger)
		if err != nil {
			logger.Warnf("action history disabled: %v", err)
		} else {
			srv.History = rec
			defer rec.Close()
		}
	}

	if cfg.DatabaseURL != "" {
		res, err := database.Connect(context.Background(), cfg.DatabaseURL, logger)
		if err != nil {
			logger.Warnf("results recording disabled: %v", err)
		} else {
			srv.Results = res
			defer res.Close()
		}
	}

	mux := http.NewServeMux()

	mux.Handle("/ws", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.WSHandler(logger, srv, cfg.AllowedOrigins),
	)))
	mux.Handle("/rooms", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.ListRoomsHandler(logger, srv),
	)))
	mux.HandleFunc("/healthz", handlers.HealthzHandler())

	logger.Infof("Running on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
