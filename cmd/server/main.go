package main

import (
	"log/slog"
	"net/http"

	"github.com/tenantlens/tenantlens/internal/app"
	"github.com/tenantlens/tenantlens/internal/config"
	"github.com/tenantlens/tenantlens/internal/logger"
	"github.com/tenantlens/tenantlens/internal/routes"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	app := app.New(cfg)

	handler := routes.SetupRoutes(app)
	slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)

	err := http.ListenAndServe(":"+cfg.Port, handler)
	if err != nil {
		slog.Error("server failed", "error", err)
		panic(err)
	}
}
