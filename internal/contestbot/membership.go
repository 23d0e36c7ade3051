package contestbot

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	appModels "contestbot/internal/models"
)

// BotMembershipChecker resolves membership through the live Telegram API.
type BotMembershipChecker struct {
	b *bot.Bot
}

func NewBotMembershipChecker(b *bot.Bot) *BotMembershipChecker {
	return &BotMembershipChecker{b: b}
}

func (c *BotMembershipChecker) MemberStatus(ctx context.Context, channelRef string, userId int64) (appModels.MembershipStatus, error) {
	member, err := c.b.GetChatMember(ctx, &bot.GetChatMemberParams{
		ChatID: channelRef,
		UserID: userId,
	})
	if err != nil {
		return appModels.MembershipUnknown, err
	}

	return statusFromChatMember(member), nil
}

func statusFromChatMember(member *models.ChatMember) appModels.MembershipStatus {
	switch member.Type {
	case models.ChatMemberTypeOwner:
		return appModels.MembershipCreator
	case models.ChatMemberTypeAdministrator:
		return appModels.MembershipAdministrator
	case models.ChatMemberTypeMember:
		return appModels.MembershipMember
	case models.ChatMemberTypeRestricted:
		return appModels.MembershipRestricted
	case models.ChatMemberTypeLeft:
		return appModels.MembershipLeft
	case models.ChatMemberTypeBanned:
		return appModels.MembershipKicked
	default:
		return appModels.MembershipUnknown
	}
}

// BotNotifier delivers gate notifications through the bot.
type BotNotifier struct {
	b *bot.Bot
}

func NewBotNotifier(b *bot.Bot) *BotNotifier {
	return &BotNotifier{b: b}
}

func (n *BotNotifier) Notify(ctx context.Context, userId int64, text string) error {
	_, err := n.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: userId,
		Text:   text,
	})
	return err
}
