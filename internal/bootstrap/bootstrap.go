package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/attendance-backend/internal/config"
	"github.com/GregMSThompson/attendance-backend/pkg/clock"
	"github.com/GregMSThompson/attendance-backend/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client
	Firebase  *auth.Client // nil when cfg.AuthEnabled is false
	Location  *time.Location
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	bs.Location, err = clock.LoadLocation(cfg.Timezone)
	if err != nil {
		return bs, err
	}
	bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}
	if cfg.AuthEnabled {
		bs.Firebase, err = InitFirebase(applicationCtx, cfg.ProjectID)
		if err != nil {
			return bs, err
		}
	} else {
		bs.Log.Warn("authentication disabled; API routes are unauthenticated")
	}

	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.Firestore != nil {
		if err := bs.Firestore.Close(); err != nil {
			bs.Log.Error("failed to close firestore client", "error", err)
		}
	}
}
