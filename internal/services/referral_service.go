package services

import (
	"context"
	"time"

	"contestbot/internal/config"
	"contestbot/internal/models"
)

// ReferralStore is implemented by *repositories.ReferralRepository.
type ReferralStore interface {
	SaveWithBonus(ctx context.Context, ref *models.Referral) error
	FindByReferredId(ctx context.Context, referredId int64) (*models.Referral, error)
	CountByReferrer(ctx context.Context, referrerId int64) (int, error)
	CountAll(ctx context.Context) (int, error)
	TopReferrers(ctx context.Context, limit int) ([]models.ReferrerCount, error)
}

type ReferralService struct {
	repo  ReferralStore
	stats *StatsService
}

func NewReferralService(repo ReferralStore, stats *StatsService) *ReferralService {
	return &ReferralService{
		repo:  repo,
		stats: stats,
	}
}

// Record writes the referrer→referred edge and credits the referrer in one
// atomic unit. The bonus in effect now is captured on the edge. A repeat
// call for the same referred user returns repositories.ErrAlreadyRecorded
// and credits nothing; the store's unique constraint is the enforcement
// point, so two racing calls cannot both credit.
func (s *ReferralService) Record(ctx context.Context, referrerId, referredId int64) error {
	if referrerId == referredId {
		return ErrSelfReferral
	}

	ref := &models.Referral{
		ReferrerId:  referrerId,
		ReferredId:  referredId,
		BonusAmount: config.REFERRAL_BONUS,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.SaveWithBonus(ctx, ref); err != nil {
		return err
	}

	s.stats.BumpReferral(ctx)

	return nil
}

func (s *ReferralService) Count(ctx context.Context, referrerId int64) (int, error) {
	return s.repo.CountByReferrer(ctx, referrerId)
}

func (s *ReferralService) CountAll(ctx context.Context) (int, error) {
	return s.repo.CountAll(ctx)
}

func (s *ReferralService) TopReferrers(ctx context.Context, limit int) ([]models.ReferrerCount, error) {
	return s.repo.TopReferrers(ctx, limit)
}
