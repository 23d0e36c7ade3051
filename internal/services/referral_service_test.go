package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"contestbot/internal/config"
	"contestbot/internal/models"
	"contestbot/internal/repositories"
)

func newTestStats(users *fakeUserStore, referrals ReferralStore) *StatsService {
	settings := NewSettingsService(newFakeSettingStore())
	return NewStatsService(newFakeStatsStore(), users, referrals, settings)
}

func addUser(t *testing.T, users *fakeUserStore, id int64, balance int64) *models.User {
	t.Helper()
	user := &models.User{
		Id:           id,
		Balance:      balance,
		RegisteredAt: time.Now(),
		IsActive:     true,
		LastActiveAt: time.Now(),
	}
	if err := users.Upsert(context.Background(), user); err != nil {
		t.Fatal("Failed to add user: ", err)
	}
	return user
}

func TestRecordCreditsReferrerOnce(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	referrals := newFakeReferralStore(users)
	service := NewReferralService(referrals, newTestStats(users, referrals))

	addUser(t, users, 1, 0)
	addUser(t, users, 2, 0)

	if err := service.Record(ctx, 1, 2); err != nil {
		t.Fatal("First record failed: ", err)
	}

	referrer, err := users.FindById(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if referrer.Balance != config.REFERRAL_BONUS {
		t.Errorf("Referrer balance = %d, want %d", referrer.Balance, config.REFERRAL_BONUS)
	}

	err = service.Record(ctx, 1, 2)
	if !errors.Is(err, repositories.ErrAlreadyRecorded) {
		t.Fatalf("Second record error = %v, want ErrAlreadyRecorded", err)
	}

	referrer, err = users.FindById(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if referrer.Balance != config.REFERRAL_BONUS {
		t.Errorf("Referrer balance after duplicate = %d, want %d", referrer.Balance, config.REFERRAL_BONUS)
	}
}

func TestRecordRejectsSelfReferral(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	referrals := newFakeReferralStore(users)
	service := NewReferralService(referrals, newTestStats(users, referrals))

	addUser(t, users, 1, 0)

	err := service.Record(ctx, 1, 1)
	if !errors.Is(err, ErrSelfReferral) {
		t.Fatalf("Self-referral error = %v, want ErrSelfReferral", err)
	}

	user, err := users.FindById(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if user.Balance != 0 {
		t.Errorf("Balance after self-referral = %d, want 0", user.Balance)
	}
	if count, _ := referrals.CountAll(ctx); count != 0 {
		t.Errorf("Referral count after self-referral = %d, want 0", count)
	}
}

func TestRecordFailsForMissingReferrer(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	referrals := newFakeReferralStore(users)
	service := NewReferralService(referrals, newTestStats(users, referrals))

	addUser(t, users, 2, 0)

	err := service.Record(ctx, 99, 2)
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("Record with missing referrer = %v, want ErrNotFound", err)
	}
	if count, _ := referrals.CountAll(ctx); count != 0 {
		t.Errorf("Referral count = %d, want 0", count)
	}
}

func TestRecordCapturesBonusOnEdge(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	referrals := newFakeReferralStore(users)
	service := NewReferralService(referrals, newTestStats(users, referrals))

	addUser(t, users, 1, 0)
	addUser(t, users, 2, 0)

	if err := service.Record(ctx, 1, 2); err != nil {
		t.Fatal(err)
	}

	ref, err := referrals.FindByReferredId(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if ref.BonusAmount != config.REFERRAL_BONUS {
		t.Errorf("Edge bonus = %d, want %d", ref.BonusAmount, config.REFERRAL_BONUS)
	}
	if ref.ReferrerId != 1 || ref.ReferredId != 2 {
		t.Errorf("Edge = %d→%d, want 1→2", ref.ReferrerId, ref.ReferredId)
	}
}
