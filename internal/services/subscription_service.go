package services

import (
	"context"
	"strings"

	"contestbot/internal/models"
	"contestbot/internal/util"
)

// SubscriptionStore is implemented by *repositories.SubscriptionRepository.
type SubscriptionStore interface {
	Save(ctx context.Context, sub *models.MandatorySubscription) error
	FindActive(ctx context.Context) ([]models.MandatorySubscription, error)
	FindByChannelId(ctx context.Context, channelId string) (*models.MandatorySubscription, error)
	Deactivate(ctx context.Context, id int64) error
}

type SubscriptionService struct {
	repo SubscriptionStore
}

func NewSubscriptionService(repo SubscriptionStore) *SubscriptionService {
	return &SubscriptionService{
		repo: repo,
	}
}

// AddPublic registers a public channel by its @handle.
func (s *SubscriptionService) AddPublic(ctx context.Context, handle, title string) (*models.MandatorySubscription, error) {
	handle = strings.TrimPrefix(handle, "@")
	sub := &models.MandatorySubscription{
		ChannelId:     "@" + handle,
		ChannelHandle: util.NullString(handle),
		Title:         util.NullString(title),
		IsPrivate:     false,
		IsActive:      true,
	}
	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// AddPrivate registers an invite-link channel. Membership is confirmed
// through chat-member updates, not synchronous checks.
func (s *SubscriptionService) AddPrivate(ctx context.Context, inviteLink, title string) (*models.MandatorySubscription, error) {
	sub := &models.MandatorySubscription{
		ChannelId:  inviteLink,
		Title:      util.NullString(title),
		IsPrivate:  true,
		InviteLink: util.NullString(inviteLink),
		IsActive:   true,
	}
	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubscriptionService) ListActive(ctx context.Context) ([]models.MandatorySubscription, error) {
	return s.repo.FindActive(ctx)
}

func (s *SubscriptionService) Remove(ctx context.Context, id int64) error {
	return s.repo.Deactivate(ctx, id)
}
