package command

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"contestbot/internal/services"
	"contestbot/internal/util"
)

type BalanceCommand struct {
	bt      *bot.Bot
	us      *services.UserService
	ranking *services.RankingService
}

func NewBalanceCommand(b *bot.Bot, us *services.UserService, ranking *services.RankingService) *BalanceCommand {
	return &BalanceCommand{
		bt:      b,
		us:      us,
		ranking: ranking,
	}
}

func (c *BalanceCommand) Execute(ctx context.Context, msg *models.Message) {
	chatId := msg.Chat.ID

	user, err := c.us.GetById(ctx, chatId)
	if err != nil {
		log.Error("Failed to load user: ", err)
		if _, err := util.SendTextMessage(c.bt, chatId, msgGenericError); err != nil {
			log.Error(err)
		}
		return
	}

	rank, err := c.ranking.Rank(ctx, chatId)
	if err != nil {
		log.Error("Failed to compute rank: ", err)
		rank = services.Unranked
	}

	rankText := "—"
	if rank != services.Unranked {
		rankText = fmt.Sprintf("%d-chi", rank)
	}

	text := fmt.Sprintf("👤 Sizning ballaringiz: %d ball\n📊 Sizning o'rningiz: %v", user.Balance, rankText)
	if _, err := util.SendTextMessage(c.bt, chatId, text); err != nil {
		log.Error(err)
	}
}
