package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"contestbot/internal/config"
	"contestbot/internal/models"
	"contestbot/internal/repositories"
	"contestbot/internal/util"
)

var log = config.InitLogger()

// UserStore is the slice of the relational store the user flows depend on.
// *repositories.UserRepository implements it.
type UserStore interface {
	Upsert(ctx context.Context, user *models.User) error
	FindById(ctx context.Context, id int64) (*models.User, error)
	SetPhone(ctx context.Context, id int64, phone string) error
	CreditBalance(ctx context.Context, id int64, amount int64) error
	TouchActivity(ctx context.Context, id int64) error
	Rank(ctx context.Context, id int64) (int, error)
	TopUsers(ctx context.Context, limit int) ([]models.User, error)
	ResetAllBalances(ctx context.Context) error
	Search(ctx context.Context, term string, limit int) ([]models.User, error)
	CountRegistered(ctx context.Context) (int, error)
	CountActiveSince(ctx context.Context, since time.Time) (int, error)
	CountRegisteredSince(ctx context.Context, since time.Time) (int, error)
	SumBalances(ctx context.Context) (int64, error)
	RegisteredChatIds(ctx context.Context) ([]int64, error)
	ExportRows(ctx context.Context, limit int) ([]models.ExportRow, error)
}

type UserService struct {
	users     UserStore
	referrals *ReferralService
	stats     *StatsService
}

func NewUserService(users UserStore, referrals *ReferralService, stats *StatsService) *UserService {
	return &UserService{
		users:     users,
		referrals: referrals,
		stats:     stats,
	}
}

// Register creates the user on first contact. The referrer is captured
// once at creation; a self-reference or a later /start never changes it.
func (s *UserService) Register(ctx context.Context, id int64, username, firstName, lastName string, referrerId int64) (*models.User, error) {
	user := &models.User{
		Id:           id,
		Username:     util.NullString(username),
		FirstName:    util.NullString(firstName),
		LastName:     util.NullString(lastName),
		RegisteredAt: time.Now(),
		IsActive:     true,
		LastActiveAt: time.Now(),
	}
	if referrerId != 0 && referrerId != id {
		user.ReferrerId = sql.NullInt64{Int64: referrerId, Valid: true}
	}

	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, err
	}

	return s.users.FindById(ctx, id)
}

func (s *UserService) GetById(ctx context.Context, id int64) (*models.User, error) {
	return s.users.FindById(ctx, id)
}

func (s *UserService) TouchActivity(ctx context.Context, id int64) {
	if err := s.users.TouchActivity(ctx, id); err != nil {
		log.Error("Failed to touch activity: ", err)
	}
}

// VerifyPhone completes registration: it validates and stores the phone,
// credits the registration bonus and, when the user was referred, records
// the referral edge. The phone is set only once; a repeat submission is a
// no-op reported as ErrPhoneAlreadySet.
func (s *UserService) VerifyPhone(ctx context.Context, id int64, phone string) error {
	normalized, ok := util.NormalizePhone(phone)
	if !ok {
		return ErrInvalidPhone
	}

	user, err := s.users.FindById(ctx, id)
	if err != nil {
		return err
	}
	if user.PhoneNumber.Valid && user.PhoneNumber.String != "" {
		return ErrPhoneAlreadySet
	}

	if err := s.users.SetPhone(ctx, id, normalized); err != nil {
		return err
	}

	if err := s.users.CreditBalance(ctx, id, config.REGISTRATION_BONUS); err != nil {
		return err
	}

	if user.ReferrerId.Valid {
		err := s.referrals.Record(ctx, user.ReferrerId.Int64, id)
		if err != nil && !errors.Is(err, repositories.ErrAlreadyRecorded) && !errors.Is(err, repositories.ErrNotFound) {
			log.Error("Failed to record referral: ", err)
		}
	}

	s.stats.BumpNewUser(ctx)

	return nil
}

func (s *UserService) CreditBalance(ctx context.Context, id int64, amount int64) error {
	return s.users.CreditBalance(ctx, id, amount)
}

// ResetAllBalances zeroes every balance. Referral edges are history and
// stay untouched.
func (s *UserService) ResetAllBalances(ctx context.Context) error {
	return s.users.ResetAllBalances(ctx)
}

func (s *UserService) Search(ctx context.Context, term string, limit int) ([]models.User, error) {
	return s.users.Search(ctx, term, limit)
}

func (s *UserService) CountRegistered(ctx context.Context) (int, error) {
	return s.users.CountRegistered(ctx)
}

func (s *UserService) CountActiveLastDays(ctx context.Context, days int) (int, error) {
	return s.users.CountActiveSince(ctx, time.Now().AddDate(0, 0, -days))
}

func (s *UserService) CountRegisteredLastDays(ctx context.Context, days int) (int, error) {
	return s.users.CountRegisteredSince(ctx, time.Now().AddDate(0, 0, -days))
}

func (s *UserService) ExportRows(ctx context.Context, limit int) ([]models.ExportRow, error) {
	return s.users.ExportRows(ctx, limit)
}
