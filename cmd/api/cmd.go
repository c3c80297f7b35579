package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/attendance-backend/internal/bootstrap"
	"github.com/GregMSThompson/attendance-backend/internal/config"
	"github.com/GregMSThompson/attendance-backend/internal/handlers"
	"github.com/GregMSThompson/attendance-backend/internal/response"
	"github.com/GregMSThompson/attendance-backend/internal/router"
	"github.com/GregMSThompson/attendance-backend/internal/services"
	"github.com/GregMSThompson/attendance-backend/internal/store"
	"github.com/GregMSThompson/attendance-backend/pkg/clock"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	clk := clock.System()

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	astore := store.NewAttendanceStore(bs.Firestore)

	// services
	userv := services.NewUserService(ustore, clk)
	aserv := services.NewAttendanceService(astore, clk, bs.Location)
	rserv := services.NewReportService(astore, ustore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.UserSvc = userv
	deps.AttendanceSvc = aserv
	deps.ReportSvc = rserv
	deps.Firebase = bs.Firebase
	deps.Environment = cfg.Environment
	deps.Version = config.Version
	deps.AllowedOrigins = cfg.AllowedOrigins

	// router
	r := router.NewRouter(deps)
	bs.Log.Info("server starting", "port", cfg.Port, "environment", cfg.Environment, "location", bs.Location.String())
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
