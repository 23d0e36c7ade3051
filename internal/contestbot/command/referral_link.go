package command

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"contestbot/internal/config"
	"contestbot/internal/services"
	"contestbot/internal/util"
)

type ReferralLinkCommand struct {
	bt *bot.Bot
	rs *services.ReferralService
}

func NewReferralLinkCommand(b *bot.Bot, rs *services.ReferralService) *ReferralLinkCommand {
	return &ReferralLinkCommand{
		bt: b,
		rs: rs,
	}
}

func (c *ReferralLinkCommand) Execute(ctx context.Context, msg *models.Message) {
	chatId := msg.Chat.ID

	me, err := c.bt.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info: ", err)
		if _, err := util.SendTextMessage(c.bt, chatId, msgGenericError); err != nil {
			log.Error(err)
		}
		return
	}

	link := util.BuildReferralLink(me.Username, chatId)

	count, err := c.rs.Count(ctx, chatId)
	if err != nil {
		log.Error("Failed to count referrals: ", err)
		count = 0
	}

	text := fmt.Sprintf(`👆 Referal havolangiz:
%v

Har bir do'stingiz ushbu havola orqali ro'yxatdan o'tsa, sizga %d ball qo'shiladi!
🎁 Ball toplang va g'olib bo'ling!

📊 Sizning referallaringiz: %d ta
💰 Referal orqali olingan ball: %d ball`,
		link, config.REFERRAL_BONUS, count, int64(count)*config.REFERRAL_BONUS)

	if _, err := util.SendTextMessage(c.bt, chatId, text); err != nil {
		log.Error(err)
	}
}
