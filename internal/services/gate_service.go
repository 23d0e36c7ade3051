package services

import (
	"context"

	"contestbot/internal/models"
)

// MembershipChecker queries the messaging platform for a user's status in
// a channel. channelRef is either "@handle" or a raw channel id.
type MembershipChecker interface {
	MemberStatus(ctx context.Context, channelRef string, userId int64) (models.MembershipStatus, error)
}

// Notifier delivers a plain message to a user. The bot layer provides it.
type Notifier interface {
	Notify(ctx context.Context, userId int64, text string) error
}

type GateResult struct {
	Passed  bool
	Missing []models.MandatorySubscription
}

// GateService decides whether a user may pass the mandatory-channel wall.
// Every evaluation goes out to the platform; results are never cached,
// since membership can change between interactions.
type GateService struct {
	subs     SubscriptionStore
	checker  MembershipChecker
	notifier Notifier
}

func NewGateService(subs SubscriptionStore, checker MembershipChecker, notifier Notifier) *GateService {
	return &GateService{
		subs:     subs,
		checker:  checker,
		notifier: notifier,
	}
}

// Attach wires the platform-facing parts once the bot connection exists.
func (s *GateService) Attach(checker MembershipChecker, notifier Notifier) {
	s.checker = checker
	s.notifier = notifier
}

// Evaluate checks every active public subscription. A status of left,
// kicked or restricted — or any error talking to the platform — counts as
// not satisfied: inability to verify blocks, it never passes. Private
// subscriptions are presumed satisfied here; their join requests are
// confirmed through HandleMembershipChange.
func (s *GateService) Evaluate(ctx context.Context, userId int64) (GateResult, error) {
	subs, err := s.subs.FindActive(ctx)
	if err != nil {
		return GateResult{}, err
	}

	missing := make([]models.MandatorySubscription, 0)
	for _, sub := range subs {
		if sub.IsPrivate {
			continue
		}

		ref := sub.ChannelId
		if sub.ChannelHandle.Valid && sub.ChannelHandle.String != "" {
			ref = "@" + sub.ChannelHandle.String
		}

		if s.checker == nil {
			missing = append(missing, sub)
			continue
		}

		status, err := s.checker.MemberStatus(ctx, ref, userId)
		if err != nil {
			log.Debug("Membership check failed for ", ref, ": ", err)
			missing = append(missing, sub)
			continue
		}
		if !status.Satisfied() {
			missing = append(missing, sub)
		}
	}

	return GateResult{
		Passed:  len(missing) == 0,
		Missing: missing,
	}, nil
}

// HandleMembershipChange reacts to a chat-member update from the platform.
// When a user's join request for a mandatory channel is accepted, the user
// is told to return to the bot.
func (s *GateService) HandleMembershipChange(ctx context.Context, channelId string, userId int64, status models.MembershipStatus) {
	if !status.Satisfied() {
		return
	}

	if _, err := s.subs.FindByChannelId(ctx, channelId); err != nil {
		return
	}

	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userId, "✅ Sizning so'rovingiz qabul qilindi! Endi /start buyrug'ini bosing."); err != nil {
		log.Debug("Failed to notify user about accepted join request: ", err)
	}
}
