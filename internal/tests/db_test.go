package tests

import (
	"os"
	"testing"

	"contestbot/internal/config"
	"contestbot/internal/database"
)

// InitDB connects to the database named by the DB_* environment variables
// and applies the migrations. Tests are skipped when DB_HOST is unset, so
// the suite stays runnable without a live Postgres.
func InitDB(t *testing.T) *database.Postgres {
	t.Helper()

	if os.Getenv("DB_HOST") == "" {
		t.Skip("DB_HOST is not set, skipping database tests")
	}

	cfg := config.LoadPostgresConfig()
	db, err := database.NewPostgres(cfg)
	if err != nil {
		t.Fatal("Failed connect to database: ", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Log("Failed to close database: ", err)
		}
	})

	if err := database.Migrate(database.ConnString(cfg)); err != nil {
		t.Fatal("Failed to migrate database: ", err)
	}

	return db
}
