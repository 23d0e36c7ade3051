package repositories

import (
	"context"
	"time"

	"contestbot/internal/models"

	"github.com/jmoiron/sqlx"
)

type ReferralRepository struct {
	db *sqlx.DB
}

func NewReferralRepository(db *sqlx.DB) *ReferralRepository {
	return &ReferralRepository{
		db: db,
	}
}

// SaveWithBonus inserts the referral edge and credits the referrer's
// balance in one transaction. A second edge for the same referred user
// trips the unique constraint and returns ErrAlreadyRecorded with the
// balance untouched; a missing referrer rolls the edge back.
func (r *ReferralRepository) SaveWithBonus(ctx context.Context, ref *models.Referral) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tx, err := r.db.Beginx()
	if err != nil {
		log.Error(err)
		return err
	}

	query, args, err := tx.BindNamed(
		`insert into referrals (referrer_id, referred_id, bonus_amount, created_at)
		 values (:referrer_id, :referred_id, :bonus_amount, :created_at) returning id`,
		ref,
	)
	if err != nil {
		log.Error("Error binding referral insert: ", err)
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return err
	}

	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&ref.Id); err != nil {
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		if isUniqueViolation(err) {
			return ErrAlreadyRecorded
		}
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		log.Error("Error inserting referral: ", err)
		return err
	}

	res, err := tx.ExecContext(
		ctx,
		"update users set balance = balance + $1, last_active_at=now() where id=$2",
		ref.BonusAmount,
		ref.ReferrerId,
	)
	if err != nil {
		log.Error("Error crediting referrer: ", err)
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		log.Error("Error committing referral: ", err)
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
			return er
		}
		return err
	}

	return nil
}

func (r *ReferralRepository) FindByReferredId(ctx context.Context, referredId int64) (*models.Referral, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var ref models.Referral
	err := r.db.GetContext(ctx, &ref, "select * from referrals where referred_id=$1", referredId)
	if err != nil {
		return nil, ErrNotFound
	}

	return &ref, nil
}

func (r *ReferralRepository) CountByReferrer(ctx context.Context, referrerId int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var res int
	if err := r.db.GetContext(ctx, &res, "select count(*) from referrals where referrer_id=$1", referrerId); err != nil {
		log.Error("Failed count referrals: ", err)
		return 0, err
	}

	return res, nil
}

func (r *ReferralRepository) CountAll(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var res int
	if err := r.db.GetContext(ctx, &res, "select count(*) from referrals"); err != nil {
		log.Error("Failed count all referrals: ", err)
		return 0, err
	}

	return res, nil
}

// TopReferrers groups edges by referrer, most referrals first; ties go to
// the earlier-registered referrer.
func (r *ReferralRepository) TopReferrers(ctx context.Context, limit int) ([]models.ReferrerCount, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res := make([]models.ReferrerCount, 0, limit)
	err := r.db.SelectContext(
		ctx,
		&res,
		`select r.referrer_id, u.first_name, u.last_name, u.username, count(*) as referral_count
		 from referrals r
		 left join users u on r.referrer_id = u.id
		 group by r.referrer_id, u.first_name, u.last_name, u.username, u.registered_at
		 order by referral_count desc, u.registered_at asc, r.referrer_id asc
		 limit $1`,
		limit,
	)
	if err != nil {
		log.Error("Failed select top referrers: ", err)
		return nil, err
	}

	return res, nil
}
