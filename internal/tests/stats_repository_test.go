package tests

import (
	"context"
	"testing"
	"time"

	"contestbot/internal/models"
	"contestbot/internal/repositories"
)

func TestStatsBumpAccumulates(t *testing.T) {
	db := InitDB(t)
	repo := repositories.NewStatsRepository(db.Db)
	ctx := context.Background()

	// Far in the past so reruns against the same database stay clean.
	day := time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC)
	if _, err := db.Db.ExecContext(ctx, "delete from daily_stats where day=$1", day); err != nil {
		t.Fatal(err)
	}

	if err := repo.Bump(ctx, day, models.StatDelta{NewUsers: 2, ReferralsMade: 1}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Bump(ctx, day, models.StatDelta{NewUsers: 3, MessagesSent: 10}); err != nil {
		t.Fatal(err)
	}

	stat, err := repo.Day(ctx, day)
	if err != nil {
		t.Fatal(err)
	}
	if stat.NewUsers != 5 {
		t.Fatal("NewUsers not accumulated: ", stat.NewUsers)
	}
	if stat.ReferralsMade != 1 || stat.MessagesSent != 10 {
		t.Fatal("Counters wrong: ", stat.ReferralsMade, stat.MessagesSent)
	}
}

func TestStatsActiveUsersSnapshot(t *testing.T) {
	db := InitDB(t)
	repo := repositories.NewStatsRepository(db.Db)
	ctx := context.Background()

	day := time.Date(1990, 1, 3, 0, 0, 0, 0, time.UTC)
	if _, err := db.Db.ExecContext(ctx, "delete from daily_stats where day=$1", day); err != nil {
		t.Fatal(err)
	}

	if err := repo.Bump(ctx, day, models.StatDelta{ActiveUsers: 7}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Bump(ctx, day, models.StatDelta{ActiveUsers: 4}); err != nil {
		t.Fatal(err)
	}

	stat, err := repo.Day(ctx, day)
	if err != nil {
		t.Fatal(err)
	}
	if stat.ActiveUsers != 4 {
		t.Fatal("ActiveUsers did not take the last snapshot: ", stat.ActiveUsers)
	}
}

func TestSettingsUpsert(t *testing.T) {
	db := InitDB(t)
	repo := repositories.NewSettingRepository(db.Db)
	ctx := context.Background()

	key := "test_setting"
	if err := repo.Set(ctx, key, "birinchi"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Set(ctx, key, "ikkinchi"); err != nil {
		t.Fatal(err)
	}

	value, err := repo.Get(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	if value != "ikkinchi" {
		t.Fatal("Set did not overwrite: ", value)
	}
}
