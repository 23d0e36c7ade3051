package repositories

import (
	"context"
	"database/sql"
	"time"

	"contestbot/internal/models"

	"github.com/jmoiron/sqlx"
)

type AdminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{
		db: db,
	}
}

func (a *AdminRepository) Add(ctx context.Context, userId int64, addedBy sql.NullInt64) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := a.db.ExecContext(
		ctx,
		"insert into admins (user_id, added_by) values ($1, $2) on conflict (user_id) do nothing",
		userId,
		addedBy,
	)
	if err != nil {
		log.Error("Failed add admin: ", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAlreadyExists
	}

	return nil
}

func (a *AdminRepository) Remove(ctx context.Context, userId int64) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := a.db.ExecContext(ctx, "delete from admins where user_id=$1", userId)
	if err != nil {
		log.Error("Failed remove admin: ", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return nil
}

func (a *AdminRepository) IsAdmin(ctx context.Context, userId int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var res int
	err := a.db.GetContext(ctx, &res, "select count(*) from admins where user_id=$1", userId)
	if err != nil {
		log.Error("Failed check admin: ", err)
		return false, err
	}

	return res > 0, nil
}

func (a *AdminRepository) FindAll(ctx context.Context) ([]models.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	admins := make([]models.Admin, 0)
	err := a.db.SelectContext(
		ctx,
		&admins,
		`select a.user_id, a.added_by, a.added_at, u.first_name, u.last_name, u.username
		 from admins a
		 left join users u on a.user_id = u.id
		 order by a.added_at asc`,
	)
	if err != nil {
		log.Error("Failed select admins: ", err)
		return nil, err
	}

	return admins, nil
}
