package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"contestbot/internal/config"
	"contestbot/internal/models"

	"github.com/jmoiron/sqlx"
)

var log = config.InitLogger()

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Upsert creates the user on first contact. An existing row is left
// untouched, so repeated /start calls never overwrite the referrer.
func (u *UserRepository) Upsert(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := u.db.NamedExecContext(
		ctx,
		`insert into users (id, username, first_name, last_name, referrer_id, registered_at, last_active_at)
		 values (:id, :username, :first_name, :last_name, :referrer_id, :registered_at, :last_active_at)
		 on conflict (id) do nothing`,
		user,
	)
	if err != nil {
		log.Error("Failed upsert user: ", err)
		return err
	}

	return nil
}

func (u *UserRepository) FindById(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var user models.User
	err := u.db.GetContext(ctx, &user, "select * from users where id=$1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error("Failed find user: ", err)
		return nil, err
	}

	return &user, nil
}

func (u *UserRepository) SetPhone(ctx context.Context, id int64, phone string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	res, err := u.db.ExecContext(
		ctx,
		"update users set phone_number=$1, last_active_at=now() where id=$2",
		phone,
		id,
	)
	if err != nil {
		log.Error("Failed set phone: ", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return nil
}

// CreditBalance adds amount to the user's balance. Negative amounts are
// allowed for resets.
func (u *UserRepository) CreditBalance(ctx context.Context, id int64, amount int64) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	res, err := u.db.ExecContext(
		ctx,
		"update users set balance = balance + $1, last_active_at=now() where id=$2",
		amount,
		id,
	)
	if err != nil {
		log.Error("Failed credit balance: ", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return nil
}

func (u *UserRepository) TouchActivity(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := u.db.ExecContext(ctx, "update users set last_active_at=now() where id=$1", id)
	if err != nil {
		log.Error("Failed touch activity: ", err)
		return err
	}

	return nil
}

// Rank is 1 + the number of active users with a strictly greater balance.
func (u *UserRepository) Rank(ctx context.Context, id int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var rank int
	err := u.db.GetContext(
		ctx,
		&rank,
		`select count(*) + 1 from users
		 where is_active and balance > (select balance from users where id=$1)`,
		id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		log.Error("Failed get rank: ", err)
		return 0, err
	}

	return rank, nil
}

// TopUsers returns active users with a positive balance, best first.
// The ordering is total: balance desc, then earlier registration, then id.
func (u *UserRepository) TopUsers(ctx context.Context, limit int) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	users := make([]models.User, 0, limit)
	err := u.db.SelectContext(
		ctx,
		&users,
		`select * from users
		 where is_active and balance > 0
		 order by balance desc, registered_at asc, id asc
		 limit $1`,
		limit,
	)
	if err != nil {
		log.Error("Failed select top users: ", err)
		return nil, err
	}

	return users, nil
}

func (u *UserRepository) ResetAllBalances(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := u.db.ExecContext(ctx, "update users set balance = 0"); err != nil {
		log.Error("Failed reset balances: ", err)
		return err
	}

	return nil
}

// Search looks the term up as an id first, then as a substring of the
// username or name fields.
func (u *UserRepository) Search(ctx context.Context, term string, limit int) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if id, err := strconv.ParseInt(term, 10, 64); err == nil {
		user, err := u.FindById(ctx, id)
		if err == nil {
			return []models.User{*user}, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	users := make([]models.User, 0, limit)
	pattern := "%" + term + "%"
	err := u.db.SelectContext(
		ctx,
		&users,
		`select * from users
		 where username ilike $1 or first_name ilike $1 or last_name ilike $1
		 order by balance desc, registered_at asc, id asc
		 limit $2`,
		pattern,
		limit,
	)
	if err != nil {
		log.Error("Failed search users: ", err)
		return nil, err
	}

	return users, nil
}

// CountRegistered counts users who completed phone verification.
func (u *UserRepository) CountRegistered(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var res int
	if err := u.db.GetContext(ctx, &res, "select count(*) from users where phone_number is not null"); err != nil {
		log.Error("Failed count registered users: ", err)
		return 0, err
	}

	return res, nil
}

func (u *UserRepository) CountActiveSince(ctx context.Context, since time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var res int
	if err := u.db.GetContext(ctx, &res, "select count(*) from users where last_active_at >= $1", since); err != nil {
		log.Error("Failed count active users: ", err)
		return 0, err
	}

	return res, nil
}

func (u *UserRepository) CountRegisteredSince(ctx context.Context, since time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var res int
	if err := u.db.GetContext(ctx, &res, "select count(*) from users where registered_at >= $1", since); err != nil {
		log.Error("Failed count new users: ", err)
		return 0, err
	}

	return res, nil
}

func (u *UserRepository) SumBalances(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var res int64
	if err := u.db.GetContext(ctx, &res, "select coalesce(sum(balance), 0) from users where balance > 0"); err != nil {
		log.Error("Failed sum balances: ", err)
		return 0, err
	}

	return res, nil
}

// RegisteredChatIds lists ids of phone-verified users for bulk sends.
func (u *UserRepository) RegisteredChatIds(ctx context.Context) ([]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	ids := make([]int64, 0)
	err := u.db.SelectContext(
		ctx,
		&ids,
		"select id from users where phone_number is not null and is_active order by id",
	)
	if err != nil {
		log.Error("Failed select chat ids: ", err)
		return nil, err
	}

	return ids, nil
}

// ExportRows builds the full report snapshot: rank, identity, phone,
// balance, dates, referral count and the name of whoever referred the user.
func (u *UserRepository) ExportRows(ctx context.Context, limit int) ([]models.ExportRow, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	rows := make([]models.ExportRow, 0)
	err := u.db.SelectContext(
		ctx,
		&rows,
		`select row_number() over (order by u.balance desc, u.registered_at asc, u.id asc) as rank,
		        u.id, u.username, u.first_name, u.last_name, u.phone_number,
		        u.balance, u.registered_at, u.last_active_at,
		        coalesce(rc.referral_count, 0) as referral_count,
		        coalesce(ru.first_name || ' ' || coalesce(ru.last_name, ''), ru.username, cast(ru.id as text)) as referrer_name
		 from users u
		 left join (
		     select referrer_id, count(*) as referral_count
		     from referrals group by referrer_id
		 ) rc on u.id = rc.referrer_id
		 left join referrals ref on u.id = ref.referred_id
		 left join users ru on ref.referrer_id = ru.id
		 where u.phone_number is not null
		 order by u.balance desc, u.registered_at asc, u.id asc
		 limit $1`,
		limit,
	)
	if err != nil {
		log.Error("Failed select export rows: ", err)
		return nil, err
	}

	return rows, nil
}
