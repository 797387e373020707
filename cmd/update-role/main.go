package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/futig/proposal-backend/internal/builder"
	"github.com/futig/proposal-backend/internal/entity"
	"go.uber.org/zap"
)

func main() {
	email := flag.String("email", "", "Email of the user to update")
	role := flag.String("role", string(entity.RoleAdmin), "Role to assign (client or admin)")

	// Flags are parsed together with -env while loading the configuration
	updater, logger, err := builder.BuildRoleUpdater()
	if err != nil {
		log.Fatal("Failed to build role updater:", err)
	}
	defer updater.Close()

	if *email == "" {
		logger.Fatal("email is required", zap.String("usage", "update-role -email user@example.com [-role admin]"))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	user, err := updater.Update(ctx, *email, entity.Role(*role))
	if err != nil {
		logger.Error("failed to update role",
			zap.String("email", *email),
			zap.Error(err))
		updater.Close()
		os.Exit(1)
	}

	logger.Info("role updated",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)))
}
