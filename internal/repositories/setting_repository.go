package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

type SettingRepository struct {
	db *sqlx.DB
}

func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{
		db: db,
	}
}

func (s *SettingRepository) Set(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.db.ExecContext(
		ctx,
		`insert into settings (key, value, updated_at) values ($1, $2, now())
		 on conflict (key) do update set value = excluded.value, updated_at = now()`,
		key,
		value,
	)
	if err != nil {
		log.Error("Failed set setting: ", err)
		return err
	}

	return nil
}

func (s *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var value string
	err := s.db.GetContext(ctx, &value, "select value from settings where key=$1", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		log.Error("Failed get setting: ", err)
		return "", err
	}

	return value, nil
}
