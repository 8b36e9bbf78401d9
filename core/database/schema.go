package database

import (
	"context"
	_ "embed"
	"fmt"

	"sparkle-booking/core/logger"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema applies the idempotent schema. Statements use IF NOT EXISTS so it is safe on every boot.
func EnsureSchema(ctx context.Context, db IDatabase) error {
	if _, err := db.SQLx().ExecContext(ctx, schemaSQL); err != nil {
		logger.Error("Database:EnsureSchema:Error", "error", err)
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.Info("Database:EnsureSchema:Success")
	return nil
}
