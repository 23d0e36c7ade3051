package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"contestbot/internal/models"

	"github.com/jmoiron/sqlx"
)

type SubscriptionRepository struct {
	db *sqlx.DB
}

func NewSubscriptionRepository(db *sqlx.DB) *SubscriptionRepository {
	return &SubscriptionRepository{
		db: db,
	}
}

func (s *SubscriptionRepository) Save(ctx context.Context, sub *models.MandatorySubscription) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query, args, err := s.db.BindNamed(
		`insert into subscriptions (channel_id, channel_handle, title, is_private, invite_link)
		 values (:channel_id, :channel_handle, :title, :is_private, :invite_link) returning id`,
		sub,
	)
	if err != nil {
		log.Error("Error binding subscription insert: ", err)
		return err
	}

	if err := s.db.QueryRowxContext(ctx, query, args...).Scan(&sub.Id); err != nil {
		log.Error("Error inserting subscription: ", err)
		return err
	}

	return nil
}

func (s *SubscriptionRepository) FindActive(ctx context.Context) ([]models.MandatorySubscription, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	subs := make([]models.MandatorySubscription, 0)
	err := s.db.SelectContext(
		ctx,
		&subs,
		"select * from subscriptions where is_active order by added_at asc",
	)
	if err != nil {
		log.Error("Failed select subscriptions: ", err)
		return nil, err
	}

	return subs, nil
}

func (s *SubscriptionRepository) FindByChannelId(ctx context.Context, channelId string) (*models.MandatorySubscription, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var sub models.MandatorySubscription
	err := s.db.GetContext(
		ctx,
		&sub,
		"select * from subscriptions where channel_id=$1 and is_active",
		channelId,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error("Failed find subscription: ", err)
		return nil, err
	}

	return &sub, nil
}

// Deactivate is a soft delete: the row stays for audit, the gate skips it.
func (s *SubscriptionRepository) Deactivate(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := s.db.ExecContext(ctx, "update subscriptions set is_active=false where id=$1", id)
	if err != nil {
		log.Error("Failed deactivate subscription: ", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return nil
}
