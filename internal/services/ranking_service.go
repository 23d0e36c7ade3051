package services

import (
	"context"
	"errors"

	"contestbot/internal/models"
	"contestbot/internal/repositories"
)

// Unranked is the rank reported for users excluded from the leaderboard:
// unknown, deactivated, or holding a zero balance.
const Unranked = 0

// RankingService derives the leaderboard order from store state on every
// call; nothing is cached. The order is total: balance descending, then
// registration time ascending, then user id ascending.
type RankingService struct {
	users UserStore
}

func NewRankingService(users UserStore) *RankingService {
	return &RankingService{
		users: users,
	}
}

// Rank returns the user's 1-based position among active users, or
// Unranked for users outside the board.
func (s *RankingService) Rank(ctx context.Context, userId int64) (int, error) {
	user, err := s.users.FindById(ctx, userId)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return Unranked, nil
		}
		return Unranked, err
	}
	if !user.IsActive || user.Balance <= 0 {
		return Unranked, nil
	}

	return s.users.Rank(ctx, userId)
}

func (s *RankingService) Top(ctx context.Context, limit int) ([]models.User, error) {
	return s.users.TopUsers(ctx, limit)
}
