package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/rcoury/quick-feedback/app"
	"github.com/rcoury/quick-feedback/config"
	"github.com/rcoury/quick-feedback/database"
	"github.com/rcoury/quick-feedback/httpx"
	"github.com/rcoury/quick-feedback/log"
	"github.com/rcoury/quick-feedback/routes"
	"github.com/rcoury/quick-feedback/store"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	bearerServer := httpx.NewBearerServer(db, cfg)

	app := app.App{
		Store:        store.NewSQL(db),
		BearerServer: bearerServer,
		Config:       cfg,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
