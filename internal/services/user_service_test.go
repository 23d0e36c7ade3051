package services

import (
	"context"
	"errors"
	"testing"

	"contestbot/internal/config"
)

func newTestUserService(users *fakeUserStore) (*UserService, *fakeReferralStore) {
	referrals := newFakeReferralStore(users)
	stats := newTestStats(users, referrals)
	referralService := NewReferralService(referrals, stats)
	return NewUserService(users, referralService, stats), referrals
}

func TestVerifyPhoneCreditsRegistrationBonus(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	service, _ := newTestUserService(users)

	if _, err := service.Register(ctx, 10, "tester", "Test", "", 0); err != nil {
		t.Fatal(err)
	}

	if err := service.VerifyPhone(ctx, 10, "+998901234567"); err != nil {
		t.Fatal(err)
	}

	user, err := service.GetById(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !user.PhoneNumber.Valid || user.PhoneNumber.String != "+998901234567" {
		t.Errorf("Phone = %+v, want +998901234567", user.PhoneNumber)
	}
	if user.Balance != config.REGISTRATION_BONUS {
		t.Errorf("Balance = %d, want %d", user.Balance, config.REGISTRATION_BONUS)
	}
}

func TestVerifyPhoneCreditsReferrer(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	service, referrals := newTestUserService(users)

	if _, err := service.Register(ctx, 1, "", "Referrer", "", 0); err != nil {
		t.Fatal(err)
	}
	if _, err := service.Register(ctx, 2, "", "Referred", "", 1); err != nil {
		t.Fatal(err)
	}

	if err := service.VerifyPhone(ctx, 2, "+998 90 123-45-67"); err != nil {
		t.Fatal(err)
	}

	referrer, err := service.GetById(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if referrer.Balance != config.REFERRAL_BONUS {
		t.Errorf("Referrer balance = %d, want %d", referrer.Balance, config.REFERRAL_BONUS)
	}
	if count, _ := referrals.CountByReferrer(ctx, 1); count != 1 {
		t.Errorf("Referral count = %d, want 1", count)
	}
}

func TestVerifyPhoneRejectsInvalidNumber(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	service, _ := newTestUserService(users)

	if _, err := service.Register(ctx, 10, "", "Test", "", 0); err != nil {
		t.Fatal(err)
	}

	for _, phone := range []string{"1234567", "+7 900 123 45 67", "+99890", "hello"} {
		if err := service.VerifyPhone(ctx, 10, phone); !errors.Is(err, ErrInvalidPhone) {
			t.Errorf("VerifyPhone(%q) = %v, want ErrInvalidPhone", phone, err)
		}
	}

	user, _ := service.GetById(ctx, 10)
	if user.Balance != 0 {
		t.Errorf("Balance after rejected phones = %d, want 0", user.Balance)
	}
}

func TestVerifyPhoneIsOneShot(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	service, _ := newTestUserService(users)

	if _, err := service.Register(ctx, 10, "", "Test", "", 0); err != nil {
		t.Fatal(err)
	}
	if err := service.VerifyPhone(ctx, 10, "+998901234567"); err != nil {
		t.Fatal(err)
	}

	err := service.VerifyPhone(ctx, 10, "+998907654321")
	if !errors.Is(err, ErrPhoneAlreadySet) {
		t.Fatalf("Second verify = %v, want ErrPhoneAlreadySet", err)
	}

	user, _ := service.GetById(ctx, 10)
	if user.Balance != config.REGISTRATION_BONUS {
		t.Errorf("Balance after repeat verify = %d, want %d", user.Balance, config.REGISTRATION_BONUS)
	}
	if user.PhoneNumber.String != "+998901234567" {
		t.Errorf("Phone = %q, want original number kept", user.PhoneNumber.String)
	}
}

func TestRegisterDiscardsSelfReferral(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	service, _ := newTestUserService(users)

	user, err := service.Register(ctx, 10, "", "Test", "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if user.ReferrerId.Valid {
		t.Errorf("ReferrerId = %+v, want invalid", user.ReferrerId)
	}
}

func TestRegisterKeepsFirstReferrer(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	service, _ := newTestUserService(users)

	if _, err := service.Register(ctx, 1, "", "A", "", 0); err != nil {
		t.Fatal(err)
	}
	if _, err := service.Register(ctx, 3, "", "B", "", 0); err != nil {
		t.Fatal(err)
	}
	if _, err := service.Register(ctx, 2, "", "C", "", 1); err != nil {
		t.Fatal(err)
	}

	// A later /start with someone else's link must not rebind the edge.
	user, err := service.Register(ctx, 2, "", "C", "", 3)
	if err != nil {
		t.Fatal(err)
	}
	if !user.ReferrerId.Valid || user.ReferrerId.Int64 != 1 {
		t.Errorf("ReferrerId = %+v, want 1", user.ReferrerId)
	}
}

func TestResetAllBalancesKeepsReferralHistory(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	service, referrals := newTestUserService(users)

	if _, err := service.Register(ctx, 1, "", "A", "", 0); err != nil {
		t.Fatal(err)
	}
	if _, err := service.Register(ctx, 2, "", "B", "", 1); err != nil {
		t.Fatal(err)
	}
	if err := service.VerifyPhone(ctx, 2, "+998901234567"); err != nil {
		t.Fatal(err)
	}

	if err := service.ResetAllBalances(ctx); err != nil {
		t.Fatal(err)
	}

	for _, id := range []int64{1, 2} {
		user, _ := service.GetById(ctx, id)
		if user.Balance != 0 {
			t.Errorf("User %d balance = %d, want 0", id, user.Balance)
		}
	}
	if count, _ := referrals.CountAll(ctx); count != 1 {
		t.Errorf("Referral count after reset = %d, want 1", count)
	}
}
