package main

import (
	"net/http"
	"os"

	"yo-relay/internal/common/config"
	"yo-relay/internal/common/logging"
	"yo-relay/internal/relay"
	"yo-relay/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Log(logging.Error, "Could not load config: %v", err)
		os.Exit(1)
	}
	logging.SetLogLevel(cfg.LogLevel)

	routes, err := relay.Routes(cfg)
	if err != nil {
		logging.Log(logging.Error, "Could not create routes: %v", err)
		os.Exit(1)
	}

	logging.Log(logging.Info, "Server listening on %s", cfg.Listen)
	if err := http.ListenAndServe(cfg.Listen, router.NewRouter(routes)); err != nil {
		logging.Log(logging.Error, "Server stopped: %v", err)
		os.Exit(1)
	}
}
