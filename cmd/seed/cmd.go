// Command seed registers a user or changes an existing user's role. It is the
// only way to provision administrators when no identity token carries the
// admin claim.
//
//	go run ./cmd/seed -uid abc123 -email boss@example.com -role admin
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/GregMSThompson/attendance-backend/internal/bootstrap"
	"github.com/GregMSThompson/attendance-backend/internal/config"
	"github.com/GregMSThompson/attendance-backend/internal/errs"
	"github.com/GregMSThompson/attendance-backend/internal/models"
	"github.com/GregMSThompson/attendance-backend/internal/services"
	"github.com/GregMSThompson/attendance-backend/internal/store"
	"github.com/GregMSThompson/attendance-backend/pkg/clock"
	"github.com/GregMSThompson/attendance-backend/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	uid := flag.String("uid", "", "user id (required)")
	email := flag.String("email", "", "email, required when the user does not exist yet")
	role := flag.String("role", string(models.RoleAdmin), "employee or admin")
	flag.Parse()

	cfg := config.New()
	cfg.AuthEnabled = false
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	ctx := logger.ToContext(context.Background(), bs.Log.With("uid", *uid))

	if *uid == "" {
		exitOnError("missing flag", errs.NewValidationError("uid is required"), bs.Log)
	}
	r := models.Role(*role)
	if !r.Valid() {
		exitOnError("invalid role", errs.NewValidationError("role must be employee or admin"), bs.Log)
	}

	ustore := store.NewUserStore(bs.Firestore)
	userv := services.NewUserService(ustore, clock.System())

	if *email != "" {
		_, err = userv.Register(ctx, *uid, *email, r, true)
		var exists *errs.AlreadyExistsError
		if !errors.As(err, &exists) {
			exitOnError("register failed", err, bs.Log)
			bs.Log.Info("user registered", "uid", *uid, "role", r)
			return
		}
	}

	if _, err = userv.GetUser(ctx, *uid); err != nil {
		exitOnError("lookup failed", err, bs.Log)
	}
	exitOnError("set role failed", ustore.SetRole(ctx, *uid, r), bs.Log)
	bs.Log.Info("role updated", "uid", *uid, "role", r)
}
