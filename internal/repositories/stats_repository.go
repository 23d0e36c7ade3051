package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"contestbot/internal/models"

	"github.com/jmoiron/sqlx"
)

type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{
		db: db,
	}
}

// Bump upserts the row for day. Counters are additive; active_users is a
// snapshot where the last write for the day wins.
func (s *StatsRepository) Bump(ctx context.Context, day time.Time, delta models.StatDelta) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.db.ExecContext(
		ctx,
		`insert into daily_stats (day, new_users, active_users, messages_sent, referrals_made)
		 values ($1, $2, $3, $4, $5)
		 on conflict (day) do update set
		     new_users = daily_stats.new_users + excluded.new_users,
		     active_users = case when excluded.active_users > 0 then excluded.active_users else daily_stats.active_users end,
		     messages_sent = daily_stats.messages_sent + excluded.messages_sent,
		     referrals_made = daily_stats.referrals_made + excluded.referrals_made`,
		day.Format("2006-01-02"),
		delta.NewUsers,
		delta.ActiveUsers,
		delta.MessagesSent,
		delta.ReferralsMade,
	)
	if err != nil {
		log.Error("Failed bump daily stats: ", err)
		return err
	}

	return nil
}

func (s *StatsRepository) Day(ctx context.Context, day time.Time) (*models.DailyStat, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var stat models.DailyStat
	err := s.db.GetContext(
		ctx,
		&stat,
		"select * from daily_stats where day=$1",
		day.Format("2006-01-02"),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.DailyStat{Day: day}, nil
		}
		log.Error("Failed get daily stats: ", err)
		return nil, err
	}

	return &stat, nil
}

func (s *StatsRepository) SumSince(ctx context.Context, since time.Time) (*models.PeriodStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var stats models.PeriodStats
	err := s.db.GetContext(
		ctx,
		&stats,
		`select coalesce(sum(new_users), 0) as new_users,
		        coalesce(sum(messages_sent), 0) as messages_sent,
		        coalesce(sum(referrals_made), 0) as referrals_made,
		        coalesce(cast(avg(active_users) as integer), 0) as avg_active_users
		 from daily_stats where day >= $1`,
		since.Format("2006-01-02"),
	)
	if err != nil {
		log.Error("Failed sum daily stats: ", err)
		return nil, err
	}

	return &stats, nil
}

// Range returns the per-day series from since, oldest first.
func (s *StatsRepository) Range(ctx context.Context, since time.Time) ([]models.DailyStat, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stats := make([]models.DailyStat, 0)
	err := s.db.SelectContext(
		ctx,
		&stats,
		"select * from daily_stats where day >= $1 order by day asc",
		since.Format("2006-01-02"),
	)
	if err != nil {
		log.Error("Failed select daily stats range: ", err)
		return nil, err
	}

	return stats, nil
}

func (s *StatsRepository) TotalMessages(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var res int
	if err := s.db.GetContext(ctx, &res, "select coalesce(sum(messages_sent), 0) from daily_stats"); err != nil {
		log.Error("Failed sum messages: ", err)
		return 0, err
	}

	return res, nil
}
