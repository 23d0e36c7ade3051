package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"contestbot/internal/config"
	appModels "contestbot/internal/models"
	"contestbot/internal/services"
	"contestbot/internal/util"
)

type RatingCommand struct {
	bt      *bot.Bot
	ranking *services.RankingService
}

func NewRatingCommand(b *bot.Bot, ranking *services.RankingService) *RatingCommand {
	return &RatingCommand{
		bt:      b,
		ranking: ranking,
	}
}

func (c *RatingCommand) Execute(ctx context.Context, msg *models.Message) {
	chatId := msg.Chat.ID

	top, err := c.ranking.Top(ctx, config.TOP_RATING_COUNT)
	if err != nil {
		log.Error("Failed to load rating: ", err)
		if _, err := util.SendTextMessage(c.bt, chatId, msgGenericError); err != nil {
			log.Error(err)
		}
		return
	}

	if len(top) == 0 {
		if _, err := util.SendTextMessage(c.bt, chatId, "📊 Hali reyting mavjud emas."); err != nil {
			log.Error(err)
		}
		return
	}

	if _, err := util.SendTextMessage(c.bt, chatId, formatRating(top)); err != nil {
		log.Error(err)
	}
}

func formatRating(top []appModels.User) string {
	var sb strings.Builder
	sb.WriteString(msgRatingHeader)
	sb.WriteString("\n\n")

	for i, user := range top {
		sb.WriteString(fmt.Sprintf("%v %v - %d ball\n", rankEmoji(i+1), user.DisplayName(), user.Balance))
	}

	return sb.String()
}

func rankEmoji(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", rank)
	}
}
