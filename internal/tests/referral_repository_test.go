package tests

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"contestbot/internal/models"
	"contestbot/internal/repositories"
)

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func TestReferralAtomicBonus(t *testing.T) {
	db := InitDB(t)
	users := repositories.NewUserRepository(db.Db)
	referrals := repositories.NewReferralRepository(db.Db)
	ctx := context.Background()

	referrerId := time.Now().UnixNano()
	referredId := referrerId + 1
	for _, id := range []int64{referrerId, referredId} {
		user := &models.User{Id: id, RegisteredAt: time.Now(), LastActiveAt: time.Now()}
		if err := users.Upsert(ctx, user); err != nil {
			t.Fatal(err)
		}
	}

	ref := &models.Referral{
		ReferrerId:  referrerId,
		ReferredId:  referredId,
		BonusAmount: 2,
		CreatedAt:   time.Now(),
	}
	if err := referrals.SaveWithBonus(ctx, ref); err != nil {
		t.Fatal("Failed save referral: ", err)
	}
	if !ref.Id.Valid {
		t.Fatal("Referral id not returned")
	}

	referrer, err := users.FindById(ctx, referrerId)
	if err != nil {
		t.Fatal(err)
	}
	if referrer.Balance != 2 {
		t.Fatal("Referrer not credited: ", referrer.Balance)
	}

	// Unique constraint on referred_id: no second edge and no second credit.
	dup := &models.Referral{
		ReferrerId:  referrerId,
		ReferredId:  referredId,
		BonusAmount: 2,
		CreatedAt:   time.Now(),
	}
	if err := referrals.SaveWithBonus(ctx, dup); !errors.Is(err, repositories.ErrAlreadyRecorded) {
		t.Fatal("Duplicate edge: ", err)
	}

	referrer, err = users.FindById(ctx, referrerId)
	if err != nil {
		t.Fatal(err)
	}
	if referrer.Balance != 2 {
		t.Fatal("Referrer credited twice: ", referrer.Balance)
	}

	if count, err := referrals.CountByReferrer(ctx, referrerId); err != nil || count != 1 {
		t.Fatal("Count by referrer: ", count, err)
	}
}

func TestReferralMissingReferrerRollsBack(t *testing.T) {
	db := InitDB(t)
	users := repositories.NewUserRepository(db.Db)
	referrals := repositories.NewReferralRepository(db.Db)
	ctx := context.Background()

	referredId := time.Now().UnixNano()
	user := &models.User{Id: referredId, RegisteredAt: time.Now(), LastActiveAt: time.Now()}
	if err := users.Upsert(ctx, user); err != nil {
		t.Fatal(err)
	}

	ref := &models.Referral{
		ReferrerId:  -1,
		ReferredId:  referredId,
		BonusAmount: 2,
		CreatedAt:   time.Now(),
	}
	if err := referrals.SaveWithBonus(ctx, ref); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatal("Missing referrer: ", err)
	}

	// The edge must not survive the rollback.
	if _, err := referrals.FindByReferredId(ctx, referredId); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatal("Edge survived a failed credit: ", err)
	}
}
