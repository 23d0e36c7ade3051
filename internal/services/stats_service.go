package services

import (
	"context"
	"time"

	"contestbot/internal/models"
)

// StatsStore is implemented by *repositories.StatsRepository.
type StatsStore interface {
	Bump(ctx context.Context, day time.Time, delta models.StatDelta) error
	Day(ctx context.Context, day time.Time) (*models.DailyStat, error)
	SumSince(ctx context.Context, since time.Time) (*models.PeriodStats, error)
	Range(ctx context.Context, since time.Time) ([]models.DailyStat, error)
	TotalMessages(ctx context.Context) (int, error)
}

type AllTimeStats struct {
	TotalUsers     int
	ActiveToday    int
	ActiveWeek     int
	ActiveMonth    int
	TotalReferrals int
	TotalMessages  int
}

type ContestStats struct {
	TotalParticipants int
	PointsDistributed int64
	AveragePoints     float64
	ContestActive     bool
	TopUsers          []models.User
}

type GrowthPoint struct {
	Day             time.Time
	NewUsers        int
	ActiveUsers     int
	CumulativeUsers int
}

type StatsService struct {
	repo      StatsStore
	users     UserStore
	referrals ReferralStore
	settings  *SettingsService
}

func NewStatsService(repo StatsStore, users UserStore, referrals ReferralStore, settings *SettingsService) *StatsService {
	return &StatsService{
		repo:      repo,
		users:     users,
		referrals: referrals,
		settings:  settings,
	}
}

func (s *StatsService) BumpNewUser(ctx context.Context) {
	if err := s.repo.Bump(ctx, time.Now(), models.StatDelta{NewUsers: 1}); err != nil {
		log.Error("Failed to bump new-user stat: ", err)
	}
}

func (s *StatsService) BumpReferral(ctx context.Context) {
	if err := s.repo.Bump(ctx, time.Now(), models.StatDelta{ReferralsMade: 1}); err != nil {
		log.Error("Failed to bump referral stat: ", err)
	}
}

func (s *StatsService) BumpMessagesSent(ctx context.Context, count int) {
	if count <= 0 {
		return
	}
	if err := s.repo.Bump(ctx, time.Now(), models.StatDelta{MessagesSent: count}); err != nil {
		log.Error("Failed to bump message stat: ", err)
	}
}

// RollActivity refreshes today's active_users snapshot with the count of
// users active in the last day. The value is "as of call time": later
// calls in the same day overwrite earlier ones, matching the historical
// approximation rather than a true distinct count.
func (s *StatsService) RollActivity(ctx context.Context) {
	active, err := s.users.CountActiveSince(ctx, time.Now().AddDate(0, 0, -1))
	if err != nil {
		log.Error("Failed to count active users: ", err)
		return
	}
	if active == 0 {
		return
	}
	if err := s.repo.Bump(ctx, time.Now(), models.StatDelta{ActiveUsers: active}); err != nil {
		log.Error("Failed to roll activity stat: ", err)
	}
}

func (s *StatsService) DayStats(ctx context.Context, daysAgo int) (*models.DailyStat, error) {
	return s.repo.Day(ctx, time.Now().AddDate(0, 0, -daysAgo))
}

func (s *StatsService) PeriodStats(ctx context.Context, days int) (*models.PeriodStats, error) {
	return s.repo.SumSince(ctx, time.Now().AddDate(0, 0, -days))
}

func (s *StatsService) AllTime(ctx context.Context) (*AllTimeStats, error) {
	totalUsers, err := s.users.CountRegistered(ctx)
	if err != nil {
		return nil, err
	}
	activeToday, err := s.users.CountActiveSince(ctx, time.Now().AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	activeWeek, err := s.users.CountActiveSince(ctx, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	activeMonth, err := s.users.CountActiveSince(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	totalReferrals, err := s.referrals.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalMessages, err := s.repo.TotalMessages(ctx)
	if err != nil {
		return nil, err
	}

	return &AllTimeStats{
		TotalUsers:     totalUsers,
		ActiveToday:    activeToday,
		ActiveWeek:     activeWeek,
		ActiveMonth:    activeMonth,
		TotalReferrals: totalReferrals,
		TotalMessages:  totalMessages,
	}, nil
}

// Growth returns the per-day series with a running user total.
func (s *StatsService) Growth(ctx context.Context, days int) ([]GrowthPoint, error) {
	stats, err := s.repo.Range(ctx, time.Now().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}

	points := make([]GrowthPoint, 0, len(stats))
	cumulative := 0
	for _, stat := range stats {
		cumulative += stat.NewUsers
		points = append(points, GrowthPoint{
			Day:             stat.Day,
			NewUsers:        stat.NewUsers,
			ActiveUsers:     stat.ActiveUsers,
			CumulativeUsers: cumulative,
		})
	}

	return points, nil
}

func (s *StatsService) Contest(ctx context.Context, topCount int) (*ContestStats, error) {
	participants, err := s.users.CountRegistered(ctx)
	if err != nil {
		return nil, err
	}
	points, err := s.users.SumBalances(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.users.TopUsers(ctx, topCount)
	if err != nil {
		return nil, err
	}

	avg := 0.0
	if participants > 0 {
		avg = float64(points) / float64(participants)
	}

	return &ContestStats{
		TotalParticipants: participants,
		PointsDistributed: points,
		AveragePoints:     avg,
		ContestActive:     s.settings.IsContestActive(ctx),
		TopUsers:          top,
	}, nil
}
